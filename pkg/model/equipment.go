package model

import (
	"strings"

	"gorm.io/gorm"
)

type BrewingEquipment struct {
	gorm.Model
	Vendor         string `gorm:"uniqueIndex:idx_equipment_unique"`
	EquipmentModel string `gorm:"uniqueIndex:idx_equipment_unique;column:equipment_model"`
	Type           EquipmentType
	Specifications map[string]string `gorm:"serializer:json"`
}

// DisplayName is the flattened "Vendor Model" label used in analytics output.
func (e BrewingEquipment) DisplayName() string {
	return strings.TrimSpace(e.Vendor + " " + e.EquipmentModel)
}
