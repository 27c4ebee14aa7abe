package model

import "gorm.io/gorm"

type BrewSession struct {
	gorm.Model
	Method             BrewMethod
	WaterTemperature   float64
	BrewTimeSeconds    int
	TastingNotes       string
	Rating             *int
	Favorite           bool
	CoffeeBeanID       uint
	GrindSettingID     uint
	BrewingEquipmentID *uint

	CoffeeBean       CoffeeBean        `gorm:"foreignKey:CoffeeBeanID"`
	GrindSetting     GrindSetting      `gorm:"foreignKey:GrindSettingID"`
	BrewingEquipment *BrewingEquipment `gorm:"foreignKey:BrewingEquipmentID"`
}

// Rated reports whether the session carries an outcome rating.
func (s BrewSession) Rated() bool {
	return s.Rating != nil
}
