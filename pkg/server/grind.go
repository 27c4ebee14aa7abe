package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"droscher.com/BrewJournal/pkg/repository"
)

func (s *Server) listGrindSettings(c *gin.Context) {
	params := newQueryParams(c)
	filter := &repository.GrindFilter{
		MinGrindSize: params.integer("minGrindSize"),
		MaxGrindSize: params.integer("maxGrindSize"),
		GrinderType:  params.str("grinderType"),
		MinWeight:    params.float("minWeight"),
		MaxWeight:    params.float("maxWeight"),
		CreatedFrom:  params.timestamp("createdFrom"),
		CreatedTo:    params.timestamp("createdTo"),
	}

	if err := params.err(); err != nil {
		s.respondError(c, err)

		return
	}

	settings, err := s.grinds.FindGrindSettings(c.Request.Context(), filter)
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, grindsFromModel(settings))
}

func (s *Server) createGrindSetting(c *gin.Context) {
	var req grindSettingRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBindError(c, err)

		return
	}

	if err := validateGrindRequest(&req); err != nil {
		s.respondError(c, err)

		return
	}

	setting, err := s.grinds.AddGrindSetting(c.Request.Context(), grindToModel(&req))
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusCreated, grindFromModel(setting))
}

func (s *Server) getGrindSetting(c *gin.Context) {
	settingID, err := parseID(c)
	if err != nil {
		s.respondError(c, err)

		return
	}

	setting, err := s.grinds.GetGrindSettingByID(c.Request.Context(), settingID)
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, grindFromModel(setting))
}

func (s *Server) updateGrindSetting(c *gin.Context) {
	settingID, err := parseID(c)
	if err != nil {
		s.respondError(c, err)

		return
	}

	var req grindSettingRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBindError(c, err)

		return
	}

	if err := validateGrindRequest(&req); err != nil {
		s.respondError(c, err)

		return
	}

	setting, err := s.grinds.GetGrindSettingByID(c.Request.Context(), settingID)
	if err != nil {
		s.respondError(c, err)

		return
	}

	setting.GrindSize = *req.GrindSize
	setting.GrindTimeSeconds = *req.GrindTimeSeconds
	setting.GrindWeightGrams = *req.GrindWeightGrams
	setting.GrinderType = req.GrinderType
	setting.Notes = req.Notes

	updated, err := s.grinds.UpdateGrindSetting(c.Request.Context(), setting)
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, grindFromModel(updated))
}

func (s *Server) deleteGrindSetting(c *gin.Context) {
	settingID, err := parseID(c)
	if err != nil {
		s.respondError(c, err)

		return
	}

	if _, err := s.grinds.GetGrindSettingByID(c.Request.Context(), settingID); err != nil {
		s.respondError(c, err)

		return
	}

	references, err := s.grinds.CountSessionsForGrindSetting(c.Request.Context(), settingID)
	if err != nil {
		s.respondError(c, err)

		return
	}

	if references > 0 {
		s.respondError(c, fmt.Errorf("%w: grind setting %d is referenced by %d brew session(s)", ErrConflict, settingID, references))

		return
	}

	if err := s.grinds.DeleteGrindSetting(c.Request.Context(), settingID); err != nil {
		s.respondError(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) recentGrindSettings(c *gin.Context) {
	count, err := parseCount(c)
	if err != nil {
		s.respondError(c, err)

		return
	}

	settings, err := s.grinds.RecentGrindSettings(c.Request.Context(), count)
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, grindsFromModel(settings))
}

func (s *Server) mostUsedGrindSettings(c *gin.Context) {
	count, err := parseCount(c)
	if err != nil {
		s.respondError(c, err)

		return
	}

	settings, err := s.grinds.MostUsedGrindSettings(c.Request.Context(), count)
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, grindsFromModel(settings))
}

func (s *Server) grinderTypes(c *gin.Context) {
	types, err := s.grinds.GrinderTypes(c.Request.Context())
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, types)
}
