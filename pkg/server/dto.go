package server

import (
	"time"

	"droscher.com/BrewJournal/pkg/model"
)

// Wire DTOs and their explicit conversions. Timestamps are owned by the
// store: conversions never copy CreatedAt/UpdatedAt from a request.

type coffeeBeanRequest struct {
	Name       string            `json:"name"`
	Brand      string            `json:"brand"`
	RoastLevel *model.RoastLevel `json:"roastLevel"`
	Origin     string            `json:"origin"`
}

type coffeeBeanDTO struct {
	ID         uint             `json:"id"`
	Name       string           `json:"name"`
	Brand      string           `json:"brand"`
	RoastLevel model.RoastLevel `json:"roastLevel"`
	Origin     string           `json:"origin,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

func beanToModel(req *coffeeBeanRequest) model.CoffeeBean {
	return model.CoffeeBean{
		Name:       req.Name,
		Brand:      req.Brand,
		RoastLevel: *req.RoastLevel,
		Origin:     req.Origin,
	}
}

func beanFromModel(bean *model.CoffeeBean) coffeeBeanDTO {
	return coffeeBeanDTO{
		ID:         bean.ID,
		Name:       bean.Name,
		Brand:      bean.Brand,
		RoastLevel: bean.RoastLevel,
		Origin:     bean.Origin,
		CreatedAt:  bean.CreatedAt,
		UpdatedAt:  bean.UpdatedAt,
	}
}

func beansFromModel(beans []*model.CoffeeBean) []coffeeBeanDTO {
	dtos := make([]coffeeBeanDTO, 0, len(beans))

	for _, bean := range beans {
		dtos = append(dtos, beanFromModel(bean))
	}

	return dtos
}

type grindSettingRequest struct {
	GrindSize        *int     `json:"grindSize"`
	GrindTimeSeconds *float64 `json:"grindTimeSeconds"`
	GrindWeightGrams *float64 `json:"grindWeightGrams"`
	GrinderType      string   `json:"grinderType"`
	Notes            string   `json:"notes"`
}

type grindSettingDTO struct {
	ID               uint      `json:"id"`
	GrindSize        int       `json:"grindSize"`
	GrindTimeSeconds float64   `json:"grindTimeSeconds"`
	GrindWeightGrams float64   `json:"grindWeightGrams"`
	GrinderType      string    `json:"grinderType"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func grindToModel(req *grindSettingRequest) model.GrindSetting {
	return model.GrindSetting{
		GrindSize:        *req.GrindSize,
		GrindTimeSeconds: *req.GrindTimeSeconds,
		GrindWeightGrams: *req.GrindWeightGrams,
		GrinderType:      req.GrinderType,
		Notes:            req.Notes,
	}
}

func grindFromModel(setting *model.GrindSetting) grindSettingDTO {
	return grindSettingDTO{
		ID:               setting.ID,
		GrindSize:        setting.GrindSize,
		GrindTimeSeconds: setting.GrindTimeSeconds,
		GrindWeightGrams: setting.GrindWeightGrams,
		GrinderType:      setting.GrinderType,
		Notes:            setting.Notes,
		CreatedAt:        setting.CreatedAt,
		UpdatedAt:        setting.UpdatedAt,
	}
}

func grindsFromModel(settings []*model.GrindSetting) []grindSettingDTO {
	dtos := make([]grindSettingDTO, 0, len(settings))

	for _, setting := range settings {
		dtos = append(dtos, grindFromModel(setting))
	}

	return dtos
}

type equipmentRequest struct {
	Vendor         string               `json:"vendor"`
	Model          string               `json:"model"`
	Type           *model.EquipmentType `json:"type"`
	Specifications map[string]string    `json:"specifications"`
}

type equipmentDTO struct {
	ID             uint                `json:"id"`
	Vendor         string              `json:"vendor"`
	Model          string              `json:"model"`
	Type           model.EquipmentType `json:"type"`
	Specifications map[string]string   `json:"specifications,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

func equipmentToModel(req *equipmentRequest) model.BrewingEquipment {
	return model.BrewingEquipment{
		Vendor:         req.Vendor,
		EquipmentModel: req.Model,
		Type:           *req.Type,
		Specifications: req.Specifications,
	}
}

func equipmentFromModel(equipment *model.BrewingEquipment) equipmentDTO {
	return equipmentDTO{
		ID:             equipment.ID,
		Vendor:         equipment.Vendor,
		Model:          equipment.EquipmentModel,
		Type:           equipment.Type,
		Specifications: equipment.Specifications,
		CreatedAt:      equipment.CreatedAt,
		UpdatedAt:      equipment.UpdatedAt,
	}
}

func equipmentsFromModel(equipment []*model.BrewingEquipment) []equipmentDTO {
	dtos := make([]equipmentDTO, 0, len(equipment))

	for _, item := range equipment {
		dtos = append(dtos, equipmentFromModel(item))
	}

	return dtos
}

type brewSessionRequest struct {
	Method             *model.BrewMethod `json:"method"`
	WaterTemperature   *float64          `json:"waterTemperature"`
	BrewTimeSeconds    *int              `json:"brewTimeSeconds"`
	TastingNotes       string            `json:"tastingNotes"`
	Rating             *int              `json:"rating"`
	Favorite           bool              `json:"favorite"`
	CoffeeBeanID       *uint             `json:"coffeeBeanId"`
	GrindSettingID     *uint             `json:"grindSettingId"`
	BrewingEquipmentID *uint             `json:"brewingEquipmentId"`
}

type brewSessionDTO struct {
	ID               uint             `json:"id"`
	Method           model.BrewMethod `json:"method"`
	WaterTemperature float64          `json:"waterTemperature"`
	BrewTimeSeconds  int              `json:"brewTimeSeconds"`
	TastingNotes     string           `json:"tastingNotes,omitempty"`
	Rating           *int             `json:"rating"`
	Favorite         bool             `json:"favorite"`
	CoffeeBean       coffeeBeanDTO    `json:"coffeeBean"`
	GrindSetting     grindSettingDTO  `json:"grindSetting"`
	BrewingEquipment *equipmentDTO    `json:"brewingEquipment,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

func sessionToModel(req *brewSessionRequest) model.BrewSession {
	return model.BrewSession{
		Method:             *req.Method,
		WaterTemperature:   *req.WaterTemperature,
		BrewTimeSeconds:    *req.BrewTimeSeconds,
		TastingNotes:       req.TastingNotes,
		Rating:             req.Rating,
		Favorite:           req.Favorite,
		CoffeeBeanID:       *req.CoffeeBeanID,
		GrindSettingID:     *req.GrindSettingID,
		BrewingEquipmentID: req.BrewingEquipmentID,
	}
}

func sessionFromModel(session *model.BrewSession) brewSessionDTO {
	dto := brewSessionDTO{
		ID:               session.ID,
		Method:           session.Method,
		WaterTemperature: session.WaterTemperature,
		BrewTimeSeconds:  session.BrewTimeSeconds,
		TastingNotes:     session.TastingNotes,
		Rating:           session.Rating,
		Favorite:         session.Favorite,
		CoffeeBean:       beanFromModel(&session.CoffeeBean),
		GrindSetting:     grindFromModel(&session.GrindSetting),
		CreatedAt:        session.CreatedAt,
		UpdatedAt:        session.UpdatedAt,
	}

	if session.BrewingEquipment != nil {
		equipment := equipmentFromModel(session.BrewingEquipment)
		dto.BrewingEquipment = &equipment
	}

	return dto
}

func sessionsFromModel(sessions []*model.BrewSession) []brewSessionDTO {
	dtos := make([]brewSessionDTO, 0, len(sessions))

	for _, session := range sessions {
		dtos = append(dtos, sessionFromModel(session))
	}

	return dtos
}
