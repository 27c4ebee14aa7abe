package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"droscher.com/BrewJournal/pkg/model"
)

type BeanFilter struct {
	Name        *string
	Brand       *string
	RoastLevel  *model.RoastLevel
	Origin      *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type BeanRepository interface {
	AddBean(ctx context.Context, bean model.CoffeeBean) (*model.CoffeeBean, error)
	GetBeanByID(ctx context.Context, beanID uint) (*model.CoffeeBean, error)
	FindBeans(ctx context.Context, filter *BeanFilter) ([]*model.CoffeeBean, error)
	UpdateBean(ctx context.Context, bean *model.CoffeeBean) (*model.CoffeeBean, error)
	DeleteBean(ctx context.Context, beanID uint) error
	RecentBeans(ctx context.Context, count int) ([]*model.CoffeeBean, error)
	MostUsedBeans(ctx context.Context, count int) ([]*model.CoffeeBean, error)
	CountBeans(ctx context.Context) (int64, error)
	CountSessionsForBean(ctx context.Context, beanID uint) (int64, error)
}

func (r *Repository) AddBean(ctx context.Context, bean model.CoffeeBean) (*model.CoffeeBean, error) {
	if result := r.DB.WithContext(ctx).Create(&bean); result.Error != nil {
		return nil, result.Error
	}

	return &bean, nil
}

func (r *Repository) GetBeanByID(ctx context.Context, beanID uint) (*model.CoffeeBean, error) {
	var bean model.CoffeeBean

	result := r.DB.WithContext(ctx).First(&bean, beanID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		return nil, result.Error
	}

	return &bean, nil
}

func (r *Repository) FindBeans(ctx context.Context, filter *BeanFilter) ([]*model.CoffeeBean, error) {
	var beans []*model.CoffeeBean

	query := r.DB.WithContext(ctx).Order("created_at desc")

	if filter != nil {
		if filter.Name != nil {
			query = query.Where("name ILIKE ?", "%"+*filter.Name+"%")
		}

		if filter.Brand != nil {
			query = query.Where("brand ILIKE ?", "%"+*filter.Brand+"%")
		}

		if filter.RoastLevel != nil {
			query = query.Where("roast_level = ?", *filter.RoastLevel)
		}

		if filter.Origin != nil {
			query = query.Where("origin ILIKE ?", "%"+*filter.Origin+"%")
		}

		if filter.CreatedFrom != nil {
			query = query.Where("created_at >= ?", *filter.CreatedFrom)
		}

		if filter.CreatedTo != nil {
			query = query.Where("created_at <= ?", *filter.CreatedTo)
		}
	}

	if result := query.Find(&beans); result.Error != nil {
		return nil, result.Error
	}

	return beans, nil
}

func (r *Repository) UpdateBean(ctx context.Context, bean *model.CoffeeBean) (*model.CoffeeBean, error) {
	if result := r.DB.WithContext(ctx).Save(bean); result.Error != nil {
		return nil, result.Error
	}

	return bean, nil
}

func (r *Repository) DeleteBean(ctx context.Context, beanID uint) error {
	result := r.DB.WithContext(ctx).Delete(&model.CoffeeBean{}, beanID)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *Repository) RecentBeans(ctx context.Context, count int) ([]*model.CoffeeBean, error) {
	var beans []*model.CoffeeBean

	result := r.DB.WithContext(ctx).Order("created_at desc").Limit(count).Find(&beans)
	if result.Error != nil {
		return nil, result.Error
	}

	return beans, nil
}

func (r *Repository) MostUsedBeans(ctx context.Context, count int) ([]*model.CoffeeBean, error) {
	var beans []*model.CoffeeBean

	result := r.DB.WithContext(ctx).Table("coffee_beans").
		Joins("INNER JOIN brew_sessions bs ON bs.coffee_bean_id = coffee_beans.id AND bs.deleted_at IS NULL").
		Where("coffee_beans.deleted_at IS NULL").
		Group("coffee_beans.id").
		Order("count(bs.id) desc").
		Limit(count).
		Find(&beans)
	if result.Error != nil {
		return nil, result.Error
	}

	return beans, nil
}

func (r *Repository) CountBeans(ctx context.Context) (int64, error) {
	var count int64

	result := r.DB.WithContext(ctx).Model(&model.CoffeeBean{}).Count(&count)

	return count, result.Error
}

func (r *Repository) CountSessionsForBean(ctx context.Context, beanID uint) (int64, error) {
	var count int64

	result := r.DB.WithContext(ctx).Model(&model.BrewSession{}).Where("coffee_bean_id = ?", beanID).Count(&count)

	return count, result.Error
}
