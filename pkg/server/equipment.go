package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"droscher.com/BrewJournal/pkg/repository"
)

func (s *Server) listEquipment(c *gin.Context) {
	params := newQueryParams(c)
	filter := &repository.EquipmentFilter{
		Type:        params.equipmentType("type"),
		Vendor:      params.str("vendor"),
		Model:       params.str("model"),
		CreatedFrom: params.timestamp("createdFrom"),
		CreatedTo:   params.timestamp("createdTo"),
	}

	if err := params.err(); err != nil {
		s.respondError(c, err)

		return
	}

	equipment, err := s.equipment.FindEquipment(c.Request.Context(), filter)
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, equipmentsFromModel(equipment))
}

func (s *Server) createEquipment(c *gin.Context) {
	var req equipmentRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBindError(c, err)

		return
	}

	if err := validateEquipmentRequest(&req); err != nil {
		s.respondError(c, err)

		return
	}

	if err := s.checkEquipmentRules(c, &req, 0); err != nil {
		s.respondError(c, err)

		return
	}

	equipment, err := s.equipment.AddEquipment(c.Request.Context(), equipmentToModel(&req))
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusCreated, equipmentFromModel(equipment))
}

func (s *Server) checkEquipmentRules(c *gin.Context, req *equipmentRequest, excludeID uint) error {
	if err := validateEquipmentSpecs(*req.Type, req.Specifications); err != nil {
		return err
	}

	exists, err := s.equipment.EquipmentExists(c.Request.Context(), req.Vendor, req.Model, excludeID)
	if err != nil {
		return err
	}

	if exists {
		return fmt.Errorf("%w: equipment %s %s already exists", ErrBusinessRule, req.Vendor, req.Model)
	}

	return nil
}

func (s *Server) getEquipment(c *gin.Context) {
	equipmentID, err := parseID(c)
	if err != nil {
		s.respondError(c, err)

		return
	}

	equipment, err := s.equipment.GetEquipmentByID(c.Request.Context(), equipmentID)
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, equipmentFromModel(equipment))
}

func (s *Server) updateEquipment(c *gin.Context) {
	equipmentID, err := parseID(c)
	if err != nil {
		s.respondError(c, err)

		return
	}

	var req equipmentRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondBindError(c, err)

		return
	}

	if err := validateEquipmentRequest(&req); err != nil {
		s.respondError(c, err)

		return
	}

	equipment, err := s.equipment.GetEquipmentByID(c.Request.Context(), equipmentID)
	if err != nil {
		s.respondError(c, err)

		return
	}

	if err := s.checkEquipmentRules(c, &req, equipmentID); err != nil {
		s.respondError(c, err)

		return
	}

	equipment.Vendor = req.Vendor
	equipment.EquipmentModel = req.Model
	equipment.Type = *req.Type
	equipment.Specifications = req.Specifications

	updated, err := s.equipment.UpdateEquipment(c.Request.Context(), equipment)
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, equipmentFromModel(updated))
}

func (s *Server) deleteEquipment(c *gin.Context) {
	equipmentID, err := parseID(c)
	if err != nil {
		s.respondError(c, err)

		return
	}

	if _, err := s.equipment.GetEquipmentByID(c.Request.Context(), equipmentID); err != nil {
		s.respondError(c, err)

		return
	}

	references, err := s.equipment.CountSessionsForEquipment(c.Request.Context(), equipmentID)
	if err != nil {
		s.respondError(c, err)

		return
	}

	if references > 0 {
		s.respondError(c, fmt.Errorf("%w: equipment %d is referenced by %d brew session(s)", ErrConflict, equipmentID, references))

		return
	}

	if err := s.equipment.DeleteEquipment(c.Request.Context(), equipmentID); err != nil {
		s.respondError(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) mostUsedEquipment(c *gin.Context) {
	count, err := parseCount(c)
	if err != nil {
		s.respondError(c, err)

		return
	}

	equipment, err := s.equipment.MostUsedEquipment(c.Request.Context(), count)
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, equipmentsFromModel(equipment))
}

func (s *Server) equipmentVendors(c *gin.Context) {
	vendors, err := s.equipment.EquipmentVendors(c.Request.Context())
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, vendors)
}

func (s *Server) equipmentModels(c *gin.Context) {
	params := newQueryParams(c)
	vendor := params.str("vendor")

	models, err := s.equipment.EquipmentModels(c.Request.Context(), vendor)
	if err != nil {
		s.respondError(c, err)

		return
	}

	c.JSON(http.StatusOK, models)
}
