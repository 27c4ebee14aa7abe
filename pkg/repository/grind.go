package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"droscher.com/BrewJournal/pkg/model"
)

type GrindFilter struct {
	MinGrindSize *int
	MaxGrindSize *int
	GrinderType  *string
	MinWeight    *float64
	MaxWeight    *float64
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
}

type GrindRepository interface {
	AddGrindSetting(ctx context.Context, setting model.GrindSetting) (*model.GrindSetting, error)
	GetGrindSettingByID(ctx context.Context, settingID uint) (*model.GrindSetting, error)
	FindGrindSettings(ctx context.Context, filter *GrindFilter) ([]*model.GrindSetting, error)
	UpdateGrindSetting(ctx context.Context, setting *model.GrindSetting) (*model.GrindSetting, error)
	DeleteGrindSetting(ctx context.Context, settingID uint) error
	RecentGrindSettings(ctx context.Context, count int) ([]*model.GrindSetting, error)
	MostUsedGrindSettings(ctx context.Context, count int) ([]*model.GrindSetting, error)
	GrinderTypes(ctx context.Context) ([]string, error)
	CountGrindSettings(ctx context.Context) (int64, error)
	CountSessionsForGrindSetting(ctx context.Context, settingID uint) (int64, error)
}

func (r *Repository) AddGrindSetting(ctx context.Context, setting model.GrindSetting) (*model.GrindSetting, error) {
	if result := r.DB.WithContext(ctx).Create(&setting); result.Error != nil {
		return nil, result.Error
	}

	return &setting, nil
}

func (r *Repository) GetGrindSettingByID(ctx context.Context, settingID uint) (*model.GrindSetting, error) {
	var setting model.GrindSetting

	result := r.DB.WithContext(ctx).First(&setting, settingID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, result.Error
	}

	return &setting, nil
}

func (r *Repository) FindGrindSettings(ctx context.Context, filter *GrindFilter) ([]*model.GrindSetting, error) {
	var settings []*model.GrindSetting

	query := r.DB.WithContext(ctx).Order("created_at desc")

	if filter != nil {
		if filter.MinGrindSize != nil {
			query = query.Where("grind_size >= ?", *filter.MinGrindSize)
		}

		if filter.MaxGrindSize != nil {
			query = query.Where("grind_size <= ?", *filter.MaxGrindSize)
		}

		if filter.GrinderType != nil {
			query = query.Where("grinder_type ILIKE ?", "%"+*filter.GrinderType+"%")
		}

		if filter.MinWeight != nil {
			query = query.Where("grind_weight_grams >= ?", *filter.MinWeight)
		}

		if filter.MaxWeight != nil {
			query = query.Where("grind_weight_grams <= ?", *filter.MaxWeight)
		}

		if filter.CreatedFrom != nil {
			query = query.Where("created_at >= ?", *filter.CreatedFrom)
		}

		if filter.CreatedTo != nil {
			query = query.Where("created_at <= ?", *filter.CreatedTo)
		}
	}

	if result := query.Find(&settings); result.Error != nil {
		return nil, result.Error
	}

	return settings, nil
}

func (r *Repository) UpdateGrindSetting(ctx context.Context, setting *model.GrindSetting) (*model.GrindSetting, error) {
	if result := r.DB.WithContext(ctx).Save(setting); result.Error != nil {
		return nil, result.Error
	}

	return setting, nil
}

func (r *Repository) DeleteGrindSetting(ctx context.Context, settingID uint) error {
	result := r.DB.WithContext(ctx).Delete(&model.GrindSetting{}, settingID)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *Repository) RecentGrindSettings(ctx context.Context, count int) ([]*model.GrindSetting, error) {
	var settings []*model.GrindSetting

	result := r.DB.WithContext(ctx).Order("created_at desc").Limit(count).Find(&settings)
	if result.Error != nil {
		return nil, result.Error
	}

	return settings, nil
}

func (r *Repository) MostUsedGrindSettings(ctx context.Context, count int) ([]*model.GrindSetting, error) {
	var settings []*model.GrindSetting

	result := r.DB.WithContext(ctx).Table("grind_settings").
		Joins("INNER JOIN brew_sessions bs ON bs.grind_setting_id = grind_settings.id AND bs.deleted_at IS NULL").
		Where("grind_settings.deleted_at IS NULL").
		Group("grind_settings.id").
		Order("count(bs.id) desc").
		Limit(count).
		Find(&settings)
	if result.Error != nil {
		return nil, result.Error
	}

	return settings, nil
}

func (r *Repository) GrinderTypes(ctx context.Context) ([]string, error) {
	var types []string

	result := r.DB.WithContext(ctx).Model(&model.GrindSetting{}).
		Distinct("grinder_type").
		Order("grinder_type asc").
		Pluck("grinder_type", &types)
	if result.Error != nil {
		return nil, result.Error
	}

	return types, nil
}

func (r *Repository) CountGrindSettings(ctx context.Context) (int64, error) {
	var count int64

	result := r.DB.WithContext(ctx).Model(&model.GrindSetting{}).Count(&count)

	return count, result.Error
}

func (r *Repository) CountSessionsForGrindSetting(ctx context.Context, settingID uint) (int64, error) {
	var count int64

	result := r.DB.WithContext(ctx).Model(&model.BrewSession{}).Where("grind_setting_id = ?", settingID).Count(&count)

	return count, result.Error
}
