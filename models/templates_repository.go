package models

import (
	"context"

	"github.com/mytheresa/product-barcode/search"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type TemplatesRepository struct {
	db *gorm.DB
}

type TemplateFilters struct {
	CategoryCode  string
	PriceLessThan *float64
	// Name is a rec_name clause; it also matches the code numbers of the
	// template's products.
	Name            *search.Clause
	IncludeInactive bool
}

func NewTemplatesRepository(db *gorm.DB) *TemplatesRepository {
	return &TemplatesRepository{
		db: db,
	}
}

func (r *TemplatesRepository) filteredQuery(db *gorm.DB, filters TemplateFilters) (*gorm.DB, error) {
	query := db.Model(&Template{}).
		Joins("LEFT JOIN categories ON categories.id = templates.category_id")

	if !filters.IncludeInactive {
		query = query.Where("templates.active = ?", true)
	}
	if filters.CategoryCode != "" {
		query = query.Where("categories.code = ?", filters.CategoryCode)
	}
	if filters.PriceLessThan != nil {
		query = query.Where("templates.list_price < ?", *filters.PriceLessThan)
	}
	if filters.Name != nil {
		sql, args, err := compileDomain(db, templateFields, search.TemplateRecName(*filters.Name), !filters.IncludeInactive)
		if err != nil {
			return nil, err
		}
		query = query.Where(sql, args...)
	}
	return query, nil
}

func (r *TemplatesRepository) GetFilteredTemplates(ctx context.Context, offset, limit int, filters TemplateFilters) ([]Template, int64, error) {
	var templates []Template
	var total int64

	query, err := r.filteredQuery(r.db.WithContext(ctx), filters)
	if err != nil {
		return nil, 0, err
	}

	// Count total after filtering
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count templates")
	}

	// Apply pagination
	if err := query.Preload("Category").Order("templates.id ASC").Offset(offset).Limit(limit).Find(&templates).Error; err != nil {
		return nil, 0, errors.Wrap(err, "list templates")
	}

	return templates, total, nil
}

func (r *TemplatesRepository) GetByID(ctx context.Context, id uint) (*Template, error) {
	var template Template
	if err := r.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("products.id ASC")
		}).
		Preload("Products.Codes", func(db *gorm.DB) *gorm.DB {
			return db.Order(CodeOrder)
		}).
		Preload("Category").
		First(&template, id).Error; err != nil {
		return nil, templateErrors.translate(err)
	}
	return &template, nil
}
