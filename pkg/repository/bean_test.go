package repository_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"
	"go.openly.dev/pointy"
	"gorm.io/gorm"

	"droscher.com/BrewJournal/pkg/model"
	"droscher.com/BrewJournal/pkg/repository"
)

type BeanTestSuite struct {
	RepositorySuite
}

func TestBeanTestSuite(t *testing.T) {
	suite.Run(t, new(BeanTestSuite))
}

func (suite *BeanTestSuite) TearDownTest() {
	suite.NoError(suite.mock.ExpectationsWereMet())
}

func (suite *BeanTestSuite) TestAddBean_AddsBean() {
	bean := model.CoffeeBean{
		Name:       "Apollo",
		Brand:      "Counter Culture",
		RoastLevel: model.RoastLight,
		Origin:     "Ethiopia",
	}

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "coffee_beans" ("created_at","updated_at","deleted_at","name","brand","roast_level","origin") VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING "id"`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), nil, "Apollo", "Counter Culture", int64(model.RoastLight), "Ethiopia").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uint(10)))
	suite.mock.ExpectCommit()

	result, err := suite.repository.AddBean(context.Background(), bean)
	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Equal(uint(10), result.ID)
	suite.Equal("Apollo", result.Name)
}

func (suite *BeanTestSuite) TestAddBean_ReturnsError() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery("^INSERT INTO (.+)").WillReturnError(gorm.ErrInvalidData)
	suite.mock.ExpectRollback()

	result, err := suite.repository.AddBean(context.Background(), model.CoffeeBean{Name: "Apollo"})

	suite.Nil(result)
	suite.EqualError(err, "unsupported data")
}

func (suite *BeanTestSuite) TestGetBeanByID_GetsBean() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "coffee_beans" WHERE "coffee_beans"."id" = $1 AND "coffee_beans"."deleted_at" IS NULL ORDER BY "coffee_beans"."id" LIMIT $2`)).
		WithArgs(10, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "brand", "roast_level", "origin"}).
			AddRow(10, "Hair Bender", "Stumptown", int(model.RoastMedium), "Blend"))

	bean, err := suite.repository.GetBeanByID(context.Background(), 10)

	suite.Require().NoError(err)
	suite.Equal(uint(10), bean.ID)
	suite.Equal("Hair Bender", bean.Name)
	suite.Equal("Stumptown", bean.Brand)
	suite.Equal(model.RoastMedium, bean.RoastLevel)
}

func (suite *BeanTestSuite) TestGetBeanByID_NotFound() {
	suite.mock.ExpectQuery("^SELECT (.+)").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	bean, err := suite.repository.GetBeanByID(context.Background(), 999)

	suite.Nil(bean)
	suite.ErrorIs(err, repository.ErrNotFound)
}

func (suite *BeanTestSuite) TestFindBeans_AppliesFilterCriteria() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "coffee_beans" WHERE name ILIKE $1 AND brand ILIKE $2 AND roast_level = $3 AND origin ILIKE $4 AND "coffee_beans"."deleted_at" IS NULL ORDER BY created_at desc`)).
		WithArgs("%Apollo%", "%Counter%", int64(model.RoastLight), "%Ethiopia%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Apollo"))

	filter := &repository.BeanFilter{
		Name:       pointy.String("Apollo"),
		Brand:      pointy.String("Counter"),
		RoastLevel: roastLevelPtr(model.RoastLight),
		Origin:     pointy.String("Ethiopia"),
	}

	beans, err := suite.repository.FindBeans(context.Background(), filter)

	suite.Require().NoError(err)
	suite.Len(beans, 1)
	suite.Equal("Apollo", beans[0].Name)
}

func (suite *BeanTestSuite) TestFindBeans_NilFilterReturnsAll() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "coffee_beans" WHERE "coffee_beans"."deleted_at" IS NULL ORDER BY created_at desc`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(2, "Hair Bender").
			AddRow(1, "Apollo"))

	beans, err := suite.repository.FindBeans(context.Background(), nil)

	suite.Require().NoError(err)
	suite.Len(beans, 2)
}

func (suite *BeanTestSuite) TestUpdateBean_SavesAllFields() {
	bean := &model.CoffeeBean{
		Model:      gorm.Model{ID: 10},
		Name:       "Apollo",
		Brand:      "Counter Culture",
		RoastLevel: model.RoastMediumLight,
		Origin:     "Ethiopia",
	}

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "coffee_beans" SET "created_at"=$1,"updated_at"=$2,"deleted_at"=$3,"name"=$4,"brand"=$5,"roast_level"=$6,"origin"=$7 WHERE "coffee_beans"."deleted_at" IS NULL AND "id" = $8`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), nil, "Apollo", "Counter Culture", int64(model.RoastMediumLight), "Ethiopia", 10).
		WillReturnResult(sqlmock.NewResult(10, 1))
	suite.mock.ExpectCommit()

	updated, err := suite.repository.UpdateBean(context.Background(), bean)

	suite.Require().NoError(err)
	suite.Equal(model.RoastMediumLight, updated.RoastLevel)
}

func (suite *BeanTestSuite) TestDeleteBean_SoftDeletesBean() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "coffee_beans" SET "deleted_at"=$1 WHERE "coffee_beans"."id" = $2 AND "coffee_beans"."deleted_at" IS NULL`)).
		WithArgs(sqlmock.AnyArg(), 10).
		WillReturnResult(sqlmock.NewResult(1, 1))
	suite.mock.ExpectCommit()

	suite.NoError(suite.repository.DeleteBean(context.Background(), 10))
}

func (suite *BeanTestSuite) TestDeleteBean_NotFound() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec("^UPDATE (.+)").
		WithArgs(sqlmock.AnyArg(), 999).
		WillReturnResult(sqlmock.NewResult(0, 0))
	suite.mock.ExpectCommit()

	err := suite.repository.DeleteBean(context.Background(), 999)

	suite.ErrorIs(err, repository.ErrNotFound)
}

func (suite *BeanTestSuite) TestRecentBeans_OrdersByCreationDate() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "coffee_beans" WHERE "coffee_beans"."deleted_at" IS NULL ORDER BY created_at desc LIMIT $1`)).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(3, "Newest").
			AddRow(2, "Older"))

	beans, err := suite.repository.RecentBeans(context.Background(), 2)

	suite.Require().NoError(err)
	suite.Len(beans, 2)
	suite.Equal("Newest", beans[0].Name)
}

func (suite *BeanTestSuite) TestMostUsedBeans_JoinsSessions() {
	suite.mock.ExpectQuery(`SELECT (.+) FROM "coffee_beans" INNER JOIN brew_sessions bs ON bs\.coffee_bean_id = coffee_beans\.id AND bs\.deleted_at IS NULL (.+) GROUP BY (.+) ORDER BY count\(bs\.id\) desc LIMIT (.+)`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "Apollo").
			AddRow(2, "Hair Bender"))

	beans, err := suite.repository.MostUsedBeans(context.Background(), 5)

	suite.Require().NoError(err)
	suite.Len(beans, 2)
	suite.Equal("Apollo", beans[0].Name)
}

func (suite *BeanTestSuite) TestCountBeans() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "coffee_beans" WHERE "coffee_beans"."deleted_at" IS NULL`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := suite.repository.CountBeans(context.Background())

	suite.Require().NoError(err)
	suite.Equal(int64(7), count)
}

func (suite *BeanTestSuite) TestCountSessionsForBean() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "brew_sessions" WHERE coffee_bean_id = $1 AND "brew_sessions"."deleted_at" IS NULL`)).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := suite.repository.CountSessionsForBean(context.Background(), 10)

	suite.Require().NoError(err)
	suite.Equal(int64(3), count)
}

func roastLevelPtr(level model.RoastLevel) *model.RoastLevel {
	return &level
}
