package model

import (
	"strings"

	"gorm.io/gorm"
)

type CoffeeBean struct {
	gorm.Model
	Name       string `gorm:"uniqueIndex:idx_bean_unique"`
	Brand      string `gorm:"uniqueIndex:idx_bean_unique"`
	RoastLevel RoastLevel
	Origin     string
}

// DisplayName is the flattened "Brand Name" label used in session summaries.
func (b CoffeeBean) DisplayName() string {
	return strings.TrimSpace(b.Brand + " " + b.Name)
}
