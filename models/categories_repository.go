package models

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type CategoriesRepository struct {
	db *gorm.DB
}

func NewCategoriesRepository(db *gorm.DB) *CategoriesRepository {
	return &CategoriesRepository{db: db}
}

func (r *CategoriesRepository) GetAllCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&categories).Error; err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	return categories, nil
}

func (r *CategoriesRepository) CreateCategory(ctx context.Context, category *Category) error {
	return categoryErrors.translate(r.db.WithContext(ctx).Create(category).Error)
}
