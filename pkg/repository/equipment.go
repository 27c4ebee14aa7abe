package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"droscher.com/BrewJournal/pkg/model"
)

type EquipmentFilter struct {
	Type        *model.EquipmentType
	Vendor      *string
	Model       *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type EquipmentRepository interface {
	AddEquipment(ctx context.Context, equipment model.BrewingEquipment) (*model.BrewingEquipment, error)
	GetEquipmentByID(ctx context.Context, equipmentID uint) (*model.BrewingEquipment, error)
	FindEquipment(ctx context.Context, filter *EquipmentFilter) ([]*model.BrewingEquipment, error)
	UpdateEquipment(ctx context.Context, equipment *model.BrewingEquipment) (*model.BrewingEquipment, error)
	DeleteEquipment(ctx context.Context, equipmentID uint) error
	MostUsedEquipment(ctx context.Context, count int) ([]*model.BrewingEquipment, error)
	EquipmentVendors(ctx context.Context) ([]string, error)
	EquipmentModels(ctx context.Context, vendor *string) ([]string, error)
	EquipmentExists(ctx context.Context, vendor string, equipmentModel string, excludeID uint) (bool, error)
	CountEquipment(ctx context.Context) (int64, error)
	CountSessionsForEquipment(ctx context.Context, equipmentID uint) (int64, error)
}

func (r *Repository) AddEquipment(ctx context.Context, equipment model.BrewingEquipment) (*model.BrewingEquipment, error) {
	if result := r.DB.WithContext(ctx).Create(&equipment); result.Error != nil {
		return nil, result.Error
	}

	return &equipment, nil
}

func (r *Repository) GetEquipmentByID(ctx context.Context, equipmentID uint) (*model.BrewingEquipment, error) {
	var equipment model.BrewingEquipment

	result := r.DB.WithContext(ctx).First(&equipment, equipmentID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, result.Error
	}

	return &equipment, nil
}

func (r *Repository) FindEquipment(ctx context.Context, filter *EquipmentFilter) ([]*model.BrewingEquipment, error) {
	var equipment []*model.BrewingEquipment

	query := r.DB.WithContext(ctx).Order("created_at desc")

	if filter != nil {
		if filter.Type != nil {
			query = query.Where("type = ?", *filter.Type)
		}

		if filter.Vendor != nil {
			query = query.Where("vendor ILIKE ?", "%"+*filter.Vendor+"%")
		}

		if filter.Model != nil {
			query = query.Where("equipment_model ILIKE ?", "%"+*filter.Model+"%")
		}

		if filter.CreatedFrom != nil {
			query = query.Where("created_at >= ?", *filter.CreatedFrom)
		}

		if filter.CreatedTo != nil {
			query = query.Where("created_at <= ?", *filter.CreatedTo)
		}
	}

	if result := query.Find(&equipment); result.Error != nil {
		return nil, result.Error
	}

	return equipment, nil
}

func (r *Repository) UpdateEquipment(ctx context.Context, equipment *model.BrewingEquipment) (*model.BrewingEquipment, error) {
	if result := r.DB.WithContext(ctx).Save(equipment); result.Error != nil {
		return nil, result.Error
	}

	return equipment, nil
}

func (r *Repository) DeleteEquipment(ctx context.Context, equipmentID uint) error {
	result := r.DB.WithContext(ctx).Delete(&model.BrewingEquipment{}, equipmentID)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *Repository) MostUsedEquipment(ctx context.Context, count int) ([]*model.BrewingEquipment, error) {
	var equipment []*model.BrewingEquipment

	result := r.DB.WithContext(ctx).Table("brewing_equipments").
		Joins("INNER JOIN brew_sessions bs ON bs.brewing_equipment_id = brewing_equipments.id AND bs.deleted_at IS NULL").
		Where("brewing_equipments.deleted_at IS NULL").
		Group("brewing_equipments.id").
		Order("count(bs.id) desc").
		Limit(count).
		Find(&equipment)
	if result.Error != nil {
		return nil, result.Error
	}

	return equipment, nil
}

func (r *Repository) EquipmentVendors(ctx context.Context) ([]string, error) {
	var vendors []string

	result := r.DB.WithContext(ctx).Model(&model.BrewingEquipment{}).
		Distinct("vendor").
		Order("vendor asc").
		Pluck("vendor", &vendors)
	if result.Error != nil {
		return nil, result.Error
	}

	return vendors, nil
}

func (r *Repository) EquipmentModels(ctx context.Context, vendor *string) ([]string, error) {
	var models []string

	query := r.DB.WithContext(ctx).Model(&model.BrewingEquipment{}).
		Distinct("equipment_model").
		Order("equipment_model asc")

	if vendor != nil {
		query = query.Where("vendor ILIKE ?", *vendor)
	}

	if result := query.Pluck("equipment_model", &models); result.Error != nil {
		return nil, result.Error
	}

	return models, nil
}

// EquipmentExists backs the duplicate vendor+model business rule. The id of the
// record being updated is excluded so a full-record update does not collide
// with itself.
func (r *Repository) EquipmentExists(ctx context.Context, vendor string, equipmentModel string, excludeID uint) (bool, error) {
	var count int64

	result := r.DB.WithContext(ctx).Model(&model.BrewingEquipment{}).
		Where("lower(vendor) = lower(?)", vendor).
		Where("lower(equipment_model) = lower(?)", equipmentModel).
		Where("id <> ?", excludeID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (r *Repository) CountEquipment(ctx context.Context) (int64, error) {
	var count int64

	result := r.DB.WithContext(ctx).Model(&model.BrewingEquipment{}).Count(&count)

	return count, result.Error
}

func (r *Repository) CountSessionsForEquipment(ctx context.Context, equipmentID uint) (int64, error) {
	var count int64

	result := r.DB.WithContext(ctx).Model(&model.BrewSession{}).Where("brewing_equipment_id = ?", equipmentID).Count(&count)

	return count, result.Error
}
