package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"droscher.com/BrewJournal/pkg/model"
)

type SessionFilter struct {
	Method         *model.BrewMethod
	CoffeeBeanID   *uint
	GrindSettingID *uint
	EquipmentID    *uint
	MinTemperature *float64
	MaxTemperature *float64
	MinRating      *int
	MaxRating      *int
	Favorite       *bool
	CreatedFrom    *time.Time
	CreatedTo      *time.Time
}

type SessionRepository interface { //nolint:interfacebloat // this is an acceptable interface
	AddSession(ctx context.Context, session model.BrewSession) (*model.BrewSession, error)
	GetSessionByID(ctx context.Context, sessionID uint) (*model.BrewSession, error)
	FindSessions(ctx context.Context, filter *SessionFilter) ([]*model.BrewSession, error)
	UpdateSession(ctx context.Context, session *model.BrewSession) (*model.BrewSession, error)
	DeleteSession(ctx context.Context, sessionID uint) error
	FavoriteSessions(ctx context.Context, count int) ([]*model.BrewSession, error)
	RecentSessions(ctx context.Context, count int) ([]*model.BrewSession, error)
	TopRatedSessions(ctx context.Context, count int) ([]*model.BrewSession, error)
	SetSessionFavorite(ctx context.Context, sessionID uint, favorite bool) error
	AllSessions(ctx context.Context) ([]*model.BrewSession, error)
	CountSessions(ctx context.Context) (int64, error)
}

func (r *Repository) AddSession(ctx context.Context, session model.BrewSession) (*model.BrewSession, error) {
	if result := r.DB.WithContext(ctx).Omit("CoffeeBean", "GrindSetting", "BrewingEquipment").Create(&session); result.Error != nil {
		return nil, result.Error
	}

	return r.GetSessionByID(ctx, session.ID)
}

func (r *Repository) GetSessionByID(ctx context.Context, sessionID uint) (*model.BrewSession, error) {
	var session model.BrewSession

	result := r.DB.WithContext(ctx).
		Joins("CoffeeBean").
		Joins("GrindSetting").
		Joins("BrewingEquipment").
		First(&session, sessionID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, result.Error
	}

	return &session, nil
}

func (r *Repository) FindSessions(ctx context.Context, filter *SessionFilter) ([]*model.BrewSession, error) {
	var sessions []*model.BrewSession

	query := r.DB.WithContext(ctx).
		Joins("CoffeeBean").
		Joins("GrindSetting").
		Joins("BrewingEquipment").
		Order("brew_sessions.created_at desc")

	query = sessionQueryWithCriteria(filter, query)

	if result := query.Find(&sessions); result.Error != nil {
		return nil, result.Error
	}

	return sessions, nil
}

//nolint:cyclop // this is as simple as it can be given the number of parameters
func sessionQueryWithCriteria(filter *SessionFilter, query *gorm.DB) *gorm.DB {
	if filter == nil {
		return query
	}

	if filter.Method != nil {
		query = query.Where("brew_sessions.method = ?", *filter.Method)
	}

	if filter.CoffeeBeanID != nil {
		query = query.Where("brew_sessions.coffee_bean_id = ?", *filter.CoffeeBeanID)
	}

	if filter.GrindSettingID != nil {
		query = query.Where("brew_sessions.grind_setting_id = ?", *filter.GrindSettingID)
	}

	if filter.EquipmentID != nil {
		query = query.Where("brew_sessions.brewing_equipment_id = ?", *filter.EquipmentID)
	}

	if filter.MinTemperature != nil {
		query = query.Where("brew_sessions.water_temperature >= ?", *filter.MinTemperature)
	}

	if filter.MaxTemperature != nil {
		query = query.Where("brew_sessions.water_temperature <= ?", *filter.MaxTemperature)
	}

	if filter.MinRating != nil {
		query = query.Where("brew_sessions.rating >= ?", *filter.MinRating)
	}

	if filter.MaxRating != nil {
		query = query.Where("brew_sessions.rating <= ?", *filter.MaxRating)
	}

	if filter.Favorite != nil {
		query = query.Where("brew_sessions.favorite = ?", *filter.Favorite)
	}

	if filter.CreatedFrom != nil {
		query = query.Where("brew_sessions.created_at >= ?", *filter.CreatedFrom)
	}

	if filter.CreatedTo != nil {
		query = query.Where("brew_sessions.created_at <= ?", *filter.CreatedTo)
	}

	return query
}

func (r *Repository) UpdateSession(ctx context.Context, session *model.BrewSession) (*model.BrewSession, error) {
	if result := r.DB.WithContext(ctx).Omit("CoffeeBean", "GrindSetting", "BrewingEquipment").Save(session); result.Error != nil {
		return nil, result.Error
	}

	return r.GetSessionByID(ctx, session.ID)
}

func (r *Repository) DeleteSession(ctx context.Context, sessionID uint) error {
	result := r.DB.WithContext(ctx).Delete(&model.BrewSession{}, sessionID)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *Repository) FavoriteSessions(ctx context.Context, count int) ([]*model.BrewSession, error) {
	var sessions []*model.BrewSession

	result := r.DB.WithContext(ctx).
		Joins("CoffeeBean").
		Joins("GrindSetting").
		Joins("BrewingEquipment").
		Where("brew_sessions.favorite = ?", true).
		Order("brew_sessions.created_at desc").
		Limit(count).
		Find(&sessions)
	if result.Error != nil {
		return nil, result.Error
	}

	return sessions, nil
}

func (r *Repository) RecentSessions(ctx context.Context, count int) ([]*model.BrewSession, error) {
	var sessions []*model.BrewSession

	result := r.DB.WithContext(ctx).
		Joins("CoffeeBean").
		Joins("GrindSetting").
		Joins("BrewingEquipment").
		Order("brew_sessions.created_at desc").
		Limit(count).
		Find(&sessions)
	if result.Error != nil {
		return nil, result.Error
	}

	return sessions, nil
}

func (r *Repository) TopRatedSessions(ctx context.Context, count int) ([]*model.BrewSession, error) {
	var sessions []*model.BrewSession

	result := r.DB.WithContext(ctx).
		Joins("CoffeeBean").
		Joins("GrindSetting").
		Joins("BrewingEquipment").
		Where("brew_sessions.rating IS NOT NULL").
		Order("brew_sessions.rating desc, brew_sessions.created_at desc").
		Limit(count).
		Find(&sessions)
	if result.Error != nil {
		return nil, result.Error
	}

	return sessions, nil
}

func (r *Repository) SetSessionFavorite(ctx context.Context, sessionID uint, favorite bool) error {
	result := r.DB.WithContext(ctx).Model(&model.BrewSession{}).
		Where("id = ?", sessionID).
		Update("favorite", favorite)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// AllSessions is the whole-table scan feeding the analytics aggregator.
func (r *Repository) AllSessions(ctx context.Context) ([]*model.BrewSession, error) {
	var sessions []*model.BrewSession

	result := r.DB.WithContext(ctx).
		Joins("CoffeeBean").
		Joins("GrindSetting").
		Joins("BrewingEquipment").
		Find(&sessions)
	if result.Error != nil {
		return nil, result.Error
	}

	return sessions, nil
}

func (r *Repository) CountSessions(ctx context.Context) (int64, error) {
	var count int64

	result := r.DB.WithContext(ctx).Model(&model.BrewSession{}).Count(&count)

	return count, result.Error
}
