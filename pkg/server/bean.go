package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"droscher.com/BrewJournal/pkg/repository"
)

func (s *Server) listBeans(c *gin.Context) {
	params := newQueryParams(c)
	filter := &repository.BeanFilter{
		Name:        params.str("name"),
		Brand:       params.str("brand"),
		RoastLevel:  params.roastLevel("roastLevel"),
		Origin:      params.str("origin"),
		CreatedFrom: params.timestamp("createdFrom"),
		CreatedTo:   params.timestamp("createdTo"),
	}

	if err := params.err(); err != nil {
		s.respondError(c, err)

		return
	}

	beans, err := s.beans.FindBeans(c.Request.Context(), filter)
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, beansFromModel(beans))
}

func (s *Server) createBean(c *gin.Context) {
	var req coffeeBeanRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBindError(c, err)

		return
	}

	if err := validateBeanRequest(&req); err != nil {
		s.respondError(c, err)

		return
	}

	bean, err := s.beans.AddBean(c.Request.Context(), beanToModel(&req))
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusCreated, beanFromModel(bean))
}

func (s *Server) getBean(c *gin.Context) {
	beanID, err := parseID(c)
	if err != nil {
		s.respondError(c, err)

		return
	}

	bean, err := s.beans.GetBeanByID(c.Request.Context(), beanID)
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, beanFromModel(bean))
}

func (s *Server) updateBean(c *gin.Context) {
	beanID, err := parseID(c)
	if err != nil {
		s.respondError(c, err)

		return
	}

	var req coffeeBeanRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBindError(c, err)

		return
	}

	if err := validateBeanRequest(&req); err != nil {
		s.respondError(c, err)

		return
	}

	bean, err := s.beans.GetBeanByID(c.Request.Context(), beanID)
	if err != nil {
		s.respondError(c, err)

		return
	}

	bean.Name = req.Name
	bean.Brand = req.Brand
	bean.RoastLevel = *req.RoastLevel
	bean.Origin = req.Origin

	updated, err := s.beans.UpdateBean(c.Request.Context(), bean)
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, beanFromModel(updated))
}

func (s *Server) deleteBean(c *gin.Context) {
	beanID, err := parseID(c)
	if err != nil {
		s.respondError(c, err)

		return
	}

	if _, err := s.beans.GetBeanByID(c.Request.Context(), beanID); err != nil {
		s.respondError(c, err)

		return
	}

	references, err := s.beans.CountSessionsForBean(c.Request.Context(), beanID)
	if err != nil {
		s.respondError(c, err)

		return
	}

	if references > 0 {
		s.respondError(c, fmt.Errorf("%w: coffee bean %d is referenced by %d brew session(s)", ErrConflict, beanID, references))

		return
	}

	if err := s.beans.DeleteBean(c.Request.Context(), beanID); err != nil {
		s.respondError(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) recentBeans(c *gin.Context) {
	count, err := parseCount(c)
	if err != nil {
		s.respondError(c, err)

		return
	}

	beans, err := s.beans.RecentBeans(c.Request.Context(), count)
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, beansFromModel(beans))
}

func (s *Server) mostUsedBeans(c *gin.Context) {
	count, err := parseCount(c)
	if err != nil {
		s.respondError(c, err)

		return
	}

	beans, err := s.beans.MostUsedBeans(c.Request.Context(), count)
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, beansFromModel(beans))
}
