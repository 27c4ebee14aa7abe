package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"droscher.com/BrewJournal/pkg/analytics"
)

func (s *Server) analyticsDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		counts analytics.EntityCounts
		err    error
	)

	if counts.CoffeeBeans, err = s.beans.CountBeans(ctx); err != nil {
		s.respondError(c, err)

		return
	}

	if counts.GrindSettings, err = s.grinds.CountGrindSettings(ctx); err != nil {
		s.respondError(c, err)

		return
	}

	if counts.BrewingEquipment, err = s.equipment.CountEquipment(ctx); err != nil {
		s.respondError(c, err)

		return
	}

	if counts.BrewSessions, err = s.sessions.CountSessions(ctx); err != nil {
		s.respondError(c, err)

		return
	}

	sessions, err := s.sessions.AllSessions(ctx)
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, analytics.BuildDashboard(counts, sessions))
}

func (s *Server) analyticsCorrelations(c *gin.Context) {
	sessions, err := s.sessions.AllSessions(c.Request.Context())
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, analytics.BuildCorrelations(sessions))
}

func (s *Server) analyticsRecommendations(c *gin.Context) {
	sessions, err := s.sessions.AllSessions(c.Request.Context())
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, analytics.BuildRecommendations(sessions))
}

func (s *Server) analyticsEquipmentPerformance(c *gin.Context) {
	sessions, err := s.sessions.AllSessions(c.Request.Context())
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, analytics.BuildEquipmentPerformance(sessions))
}
