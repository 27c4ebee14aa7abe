package repository_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"
	"go.openly.dev/pointy"

	"droscher.com/BrewJournal/pkg/model"
	"droscher.com/BrewJournal/pkg/repository"
)

type EquipmentTestSuite struct {
	RepositorySuite
}

func TestEquipmentTestSuite(t *testing.T) {
	suite.Run(t, new(EquipmentTestSuite))
}

func (suite *EquipmentTestSuite) TearDownTest() {
	suite.NoError(suite.mock.ExpectationsWereMet())
}

func (suite *EquipmentTestSuite) TestAddEquipment_AddsEquipment() {
	equipment := model.BrewingEquipment{
		Vendor:         "Gaggia",
		EquipmentModel: "Classic Pro",
		Type:           model.EquipmentEspressoMachine,
		Specifications: map[string]string{"pressure_bars": "9"},
	}

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "brewing_equipments" ("created_at","updated_at","deleted_at","vendor","equipment_model","type","specifications") VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING "id"`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), nil, "Gaggia", "Classic Pro", int64(model.EquipmentEspressoMachine), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uint(3)))
	suite.mock.ExpectCommit()

	result, err := suite.repository.AddEquipment(context.Background(), equipment)

	suite.Require().NoError(err)
	suite.Equal(uint(3), result.ID)
	suite.Equal("Gaggia Classic Pro", result.DisplayName())
}

func (suite *EquipmentTestSuite) TestGetEquipmentByID_NotFound() {
	suite.mock.ExpectQuery("^SELECT (.+)").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	equipment, err := suite.repository.GetEquipmentByID(context.Background(), 999)

	suite.Nil(equipment)
	suite.ErrorIs(err, repository.ErrNotFound)
}

func (suite *EquipmentTestSuite) TestFindEquipment_AppliesFilterCriteria() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "brewing_equipments" WHERE type = $1 AND vendor ILIKE $2 AND "brewing_equipments"."deleted_at" IS NULL ORDER BY created_at desc`)).
		WithArgs(int64(model.EquipmentGrinder), "%Baratza%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "vendor", "equipment_model", "type"}).
			AddRow(1, "Baratza", "Encore", int(model.EquipmentGrinder)))

	filter := &repository.EquipmentFilter{
		Type:   equipmentTypePtr(model.EquipmentGrinder),
		Vendor: pointy.String("Baratza"),
	}

	equipment, err := suite.repository.FindEquipment(context.Background(), filter)

	suite.Require().NoError(err)
	suite.Len(equipment, 1)
	suite.Equal("Baratza", equipment[0].Vendor)
}

func (suite *EquipmentTestSuite) TestEquipmentExists_MatchesCaseInsensitively() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "brewing_equipments" WHERE lower(vendor) = lower($1) AND lower(equipment_model) = lower($2) AND id <> $3 AND "brewing_equipments"."deleted_at" IS NULL`)).
		WithArgs("gaggia", "classic pro", 0).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := suite.repository.EquipmentExists(context.Background(), "gaggia", "classic pro", 0)

	suite.Require().NoError(err)
	suite.True(exists)
}

func (suite *EquipmentTestSuite) TestEquipmentExists_ExcludesOwnRecord() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "brewing_equipments" WHERE lower(vendor) = lower($1) AND lower(equipment_model) = lower($2) AND id <> $3 AND "brewing_equipments"."deleted_at" IS NULL`)).
		WithArgs("Gaggia", "Classic Pro", 3).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err := suite.repository.EquipmentExists(context.Background(), "Gaggia", "Classic Pro", 3)

	suite.Require().NoError(err)
	suite.False(exists)
}

func (suite *EquipmentTestSuite) TestEquipmentVendors_ReturnsDistinctVendors() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT DISTINCT "vendor" FROM "brewing_equipments" WHERE "brewing_equipments"."deleted_at" IS NULL ORDER BY vendor asc`)).
		WillReturnRows(sqlmock.NewRows([]string{"vendor"}).
			AddRow("Baratza").
			AddRow("Gaggia").
			AddRow("Hario"))

	vendors, err := suite.repository.EquipmentVendors(context.Background())

	suite.Require().NoError(err)
	suite.Equal([]string{"Baratza", "Gaggia", "Hario"}, vendors)
}

func (suite *EquipmentTestSuite) TestEquipmentModels_FiltersByVendor() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT DISTINCT "equipment_model" FROM "brewing_equipments" WHERE vendor ILIKE $1 AND "brewing_equipments"."deleted_at" IS NULL ORDER BY equipment_model asc`)).
		WithArgs("Hario").
		WillReturnRows(sqlmock.NewRows([]string{"equipment_model"}).
			AddRow("Switch").
			AddRow("V60"))

	models, err := suite.repository.EquipmentModels(context.Background(), pointy.String("Hario"))

	suite.Require().NoError(err)
	suite.Equal([]string{"Switch", "V60"}, models)
}

func (suite *EquipmentTestSuite) TestMostUsedEquipment_JoinsSessions() {
	suite.mock.ExpectQuery(`SELECT (.+) FROM "brewing_equipments" INNER JOIN brew_sessions bs ON bs\.brewing_equipment_id = brewing_equipments\.id AND bs\.deleted_at IS NULL (.+) GROUP BY (.+) ORDER BY count\(bs\.id\) desc LIMIT (.+)`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "vendor"}).
			AddRow(1, "Gaggia"))

	equipment, err := suite.repository.MostUsedEquipment(context.Background(), 10)

	suite.Require().NoError(err)
	suite.Len(equipment, 1)
}

func (suite *EquipmentTestSuite) TestDeleteEquipment_SoftDeletesEquipment() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(regexp.QuoteMeta(`UPDATE "brewing_equipments" SET "deleted_at"=$1 WHERE "brewing_equipments"."id" = $2 AND "brewing_equipments"."deleted_at" IS NULL`)).
		WithArgs(sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(1, 1))
	suite.mock.ExpectCommit()

	suite.NoError(suite.repository.DeleteEquipment(context.Background(), 3))
}

func (suite *EquipmentTestSuite) TestCountSessionsForEquipment() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "brew_sessions" WHERE brewing_equipment_id = $1 AND "brew_sessions"."deleted_at" IS NULL`)).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := suite.repository.CountSessionsForEquipment(context.Background(), 3)

	suite.Require().NoError(err)
	suite.Equal(int64(4), count)
}

func equipmentTypePtr(equipmentType model.EquipmentType) *model.EquipmentType {
	return &equipmentType
}
