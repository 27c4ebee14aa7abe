package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"

	"droscher.com/BrewJournal/pkg/repository"
)

func (s *Server) listSessions(c *gin.Context) {
	params := newQueryParams(c)
	filter := &repository.SessionFilter{
		Method:         params.brewMethod("method"),
		CoffeeBeanID:   params.uinteger("coffeeBeanId"),
		GrindSettingID: params.uinteger("grindSettingId"),
		EquipmentID:    params.uinteger("equipmentId"),
		MinTemperature: params.float("minTemperature"),
		MaxTemperature: params.float("maxTemperature"),
		MinRating:      params.integer("minRating"),
		MaxRating:      params.integer("maxRating"),
		Favorite:       params.boolean("favorite"),
		CreatedFrom:    params.timestamp("createdFrom"),
		CreatedTo:      params.timestamp("createdTo"),
	}

	if err := params.err(); err != nil {
		s.respondError(c, err)

		return
	}

	sessions, err := s.sessions.FindSessions(c.Request.Context(), filter)
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, sessionsFromModel(sessions))
}

func (s *Server) createSession(c *gin.Context) {
	var req brewSessionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBindError(c, err)

		return
	}

	if err := validateSessionRequest(&req); err != nil {
		s.respondError(c, err)

		return
	}

	if err := s.checkSessionRules(c, &req); err != nil {
		s.respondError(c, err)

		return
	}

	session, err := s.sessions.AddSession(c.Request.Context(), sessionToModel(&req))
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusCreated, sessionFromModel(session))
}

// checkSessionRules enforces the per-method brew ranges and that every
// referenced row exists before anything is written.
func (s *Server) checkSessionRules(c *gin.Context, req *brewSessionRequest) error {
	errs := validateBrewParameters(*req.Method, *req.WaterTemperature, *req.BrewTimeSeconds)

	ctx := c.Request.Context()

	if _, err := s.beans.GetBeanByID(ctx, *req.CoffeeBeanID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		multierr.AppendInto(&errs, fmt.Errorf("%w: coffee bean %d does not exist", ErrBusinessRule, *req.CoffeeBeanID))
	}

	if _, err := s.grinds.GetGrindSettingByID(ctx, *req.GrindSettingID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		multierr.AppendInto(&errs, fmt.Errorf("%w: grind setting %d does not exist", ErrBusinessRule, *req.GrindSettingID))
	}

	if req.BrewingEquipmentID != nil {
		if _, err := s.equipment.GetEquipmentByID(ctx, *req.BrewingEquipmentID); err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				return err
			}

			multierr.AppendInto(&errs, fmt.Errorf("%w: equipment %d does not exist", ErrBusinessRule, *req.BrewingEquipmentID))
		}
	}

	return errs
}

func (s *Server) getSession(c *gin.Context) {
	sessionID, err := parseID(c)
	if err != nil {
		s.respondError(c, err)

		return
	}

	session, err := s.sessions.GetSessionByID(c.Request.Context(), sessionID)
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, sessionFromModel(session))
}

func (s *Server) updateSession(c *gin.Context) {
	sessionID, err := parseID(c)
	if err != nil {
		s.respondError(c, err)

		return
	}

	var req brewSessionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBindError(c, err)

		return
	}

	if err := validateSessionRequest(&req); err != nil {
		s.respondError(c, err)

		return
	}

	session, err := s.sessions.GetSessionByID(c.Request.Context(), sessionID)
	if err != nil {
		s.respondError(c, err)

		return
	}

	if err := s.checkSessionRules(c, &req); err != nil {
		s.respondError(c, err)

		return
	}

	session.Method = *req.Method
	session.WaterTemperature = *req.WaterTemperature
	session.BrewTimeSeconds = *req.BrewTimeSeconds
	session.TastingNotes = req.TastingNotes
	session.Rating = req.Rating
	session.Favorite = req.Favorite
	session.CoffeeBeanID = *req.CoffeeBeanID
	session.GrindSettingID = *req.GrindSettingID
	session.BrewingEquipmentID = req.BrewingEquipmentID

	updated, err := s.sessions.UpdateSession(c.Request.Context(), session)
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, sessionFromModel(updated))
}

func (s *Server) deleteSession(c *gin.Context) {
	sessionID, err := parseID(c)
	if err != nil {
		s.respondError(c, err)

		return
	}

	if err := s.sessions.DeleteSession(c.Request.Context(), sessionID); err != nil {
		s.respondError(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

type favoriteRequest struct {
	Favorite bool `json:"favorite"`
}

func (s *Server) setSessionFavorite(c *gin.Context) {
	sessionID, err := parseID(c)
	if err != nil {
		s.respondError(c, err)

		return
	}

	var req favoriteRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBindError(c, err)

		return
	}

	if err := s.sessions.SetSessionFavorite(c.Request.Context(), sessionID, req.Favorite); err != nil {
		s.respondError(c, err)

		return
	}

	session, err := s.sessions.GetSessionByID(c.Request.Context(), sessionID)
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, sessionFromModel(session))
}

func (s *Server) favoriteSessions(c *gin.Context) {
	count, err := parseCount(c)
	if err != nil {
		s.respondError(c, err)

		return
	}

	sessions, err := s.sessions.FavoriteSessions(c.Request.Context(), count)
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, sessionsFromModel(sessions))
}

func (s *Server) recentSessions(c *gin.Context) {
	count, err := parseCount(c)
	if err != nil {
		s.respondError(c, err)

		return
	}

	sessions, err := s.sessions.RecentSessions(c.Request.Context(), count)
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, sessionsFromModel(sessions))
}

func (s *Server) topRatedSessions(c *gin.Context) {
	count, err := parseCount(c)
	if err != nil {
		s.respondError(c, err)

		return
	}

	sessions, err := s.sessions.TopRatedSessions(c.Request.Context(), count)
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, sessionsFromModel(sessions))
}
