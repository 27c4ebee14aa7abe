package model

import "gorm.io/gorm"

type GrindSetting struct {
	gorm.Model
	GrindSize        int
	GrindTimeSeconds float64
	GrindWeightGrams float64
	GrinderType      string
	Notes            string
}
