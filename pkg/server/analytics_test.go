package server_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.openly.dev/pointy"
	"gorm.io/gorm"

	"droscher.com/BrewJournal/pkg/model"
)

type AnalyticsHandlerTestSuite struct {
	ServerTestSuite
}

func TestAnalyticsHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AnalyticsHandlerTestSuite))
}

func (suite *AnalyticsHandlerTestSuite) stubCounts() {
	suite.beans.countBeans = func() (int64, error) { return 4, nil }
	suite.grinds.countGrindSettings = func() (int64, error) { return 2, nil }
	suite.equipment.countEquipment = func() (int64, error) { return 1, nil }
	suite.sessions.countSessions = func() (int64, error) { return 3, nil }
}

func (suite *AnalyticsHandlerTestSuite) TestDashboard_AggregatesSessions() {
	suite.stubCounts()
	suite.sessions.allSessions = func() ([]*model.BrewSession, error) {
		return []*model.BrewSession{
			{Model: gorm.Model{ID: 1}, Method: model.MethodEspresso, Rating: pointy.Int(8)},
			{Model: gorm.Model{ID: 2}, Method: model.MethodEspresso, Rating: pointy.Int(9)},
			{Model: gorm.Model{ID: 3}, Method: model.MethodPourOver, Rating: pointy.Int(7)},
		}, nil
	}

	recorder := suite.request(http.MethodGet, "/analytics/dashboard", nil)

	suite.Equal(http.StatusOK, recorder.Code)

	var body struct {
		TotalCoffeeBeans  int64   `json:"totalCoffeeBeans"`
		TotalBrewSessions int64   `json:"totalBrewSessions"`
		AverageRating     float64 `json:"averageRating"`
		BrewMethodStats   []struct {
			Method        string  `json:"method"`
			Count         int     `json:"count"`
			AverageRating float64 `json:"averageRating"`
		} `json:"brewMethodStats"`
	}

	suite.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &body))
	suite.Equal(int64(4), body.TotalCoffeeBeans)
	suite.Equal(int64(3), body.TotalBrewSessions)
	suite.InDelta(8.0, body.AverageRating, 1e-9)
	suite.Require().Len(body.BrewMethodStats, 2)
	suite.Equal("Espresso", body.BrewMethodStats[0].Method)
	suite.Equal(2, body.BrewMethodStats[0].Count)
	suite.InDelta(8.5, body.BrewMethodStats[0].AverageRating, 1e-9)
}

func (suite *AnalyticsHandlerTestSuite) TestDashboard_CountErrorIsInternal() {
	suite.beans.countBeans = func() (int64, error) { return 0, errors.New("connection refused") }

	recorder := suite.request(http.MethodGet, "/analytics/dashboard", nil)

	suite.Equal(http.StatusInternalServerError, recorder.Code)
	suite.Equal("internal_error", suite.decodeError(recorder).Code)
}

func (suite *AnalyticsHandlerTestSuite) TestCorrelations_EmptyJournal() {
	suite.sessions.allSessions = func() ([]*model.BrewSession, error) {
		return nil, nil
	}

	recorder := suite.request(http.MethodGet, "/analytics/correlations", nil)

	suite.Equal(http.StatusOK, recorder.Code)
	suite.JSONEq(`{"grindSize":[],"waterTemperature":[],"brewTime":[],"overallCorrelationStrength":0}`,
		recorder.Body.String())
}

func (suite *AnalyticsHandlerTestSuite) TestRecommendations_EmptyWithoutRatings() {
	suite.sessions.allSessions = func() ([]*model.BrewSession, error) {
		return []*model.BrewSession{
			{Model: gorm.Model{ID: 1}, Method: model.MethodDrip},
		}, nil
	}

	recorder := suite.request(http.MethodGet, "/analytics/recommendations", nil)

	suite.Equal(http.StatusOK, recorder.Code)
	suite.JSONEq(`[]`, recorder.Body.String())
}

func (suite *AnalyticsHandlerTestSuite) TestEquipmentPerformance_ReportsScores() {
	equipmentID := pointy.Uint(3)
	equipment := &model.BrewingEquipment{Model: gorm.Model{ID: 3}, Vendor: "Gaggia", EquipmentModel: "Classic Pro"}

	suite.sessions.allSessions = func() ([]*model.BrewSession, error) {
		return []*model.BrewSession{
			{Model: gorm.Model{ID: 1}, Rating: pointy.Int(8), BrewingEquipmentID: equipmentID, BrewingEquipment: equipment},
			{Model: gorm.Model{ID: 2}, Rating: pointy.Int(6), BrewingEquipmentID: equipmentID, BrewingEquipment: equipment},
		}, nil
	}

	recorder := suite.request(http.MethodGet, "/analytics/equipment-performance", nil)

	suite.Equal(http.StatusOK, recorder.Code)

	var body struct {
		Equipment []struct {
			Name             string  `json:"name"`
			TotalUses        int     `json:"totalUses"`
			PerformanceScore float64 `json:"performanceScore"`
		} `json:"equipment"`
		BestPerforming *struct {
			Name string `json:"name"`
		} `json:"bestPerforming"`
	}

	suite.Require().NoError(json.Unmarshal(recorder.Body.Bytes(), &body))
	suite.Require().Len(body.Equipment, 1)
	suite.Equal("Gaggia Classic Pro", body.Equipment[0].Name)
	suite.Equal(2, body.Equipment[0].TotalUses)
	suite.InDelta(37.0, body.Equipment[0].PerformanceScore, 1e-9)
	suite.Require().NotNil(body.BestPerforming)
	suite.Equal("Gaggia Classic Pro", body.BestPerforming.Name)
}
