package models

import (
	"context"

	"github.com/mytheresa/product-barcode/search"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

type ProductFilters struct {
	// Name is a rec_name clause: it matches the product code, the
	// template name and the numbers of the product's codes.
	Name            *search.Clause
	TemplateID      uint
	IncludeInactive bool
}

type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{db: db}
}

func (r *ProductsRepository) searchQuery(db *gorm.DB, filters ProductFilters) (*gorm.DB, error) {
	query := db.Model(&Product{})
	if !filters.IncludeInactive {
		query = query.Where("products.active = ?", true)
	}
	if filters.TemplateID != 0 {
		query = query.Where("products.template_id = ?", filters.TemplateID)
	}
	if filters.Name != nil {
		sql, args, err := compileDomain(db, productFields, search.ProductRecName(*filters.Name), !filters.IncludeInactive)
		if err != nil {
			return nil, err
		}
		query = query.Where(sql, args...)
	}
	return query, nil
}

// Search returns the products matching filters, with their template and
// codes loaded.
func (r *ProductsRepository) Search(ctx context.Context, offset, limit int, filters ProductFilters) ([]Product, int64, error) {
	var products []Product
	var total int64

	query, err := r.searchQuery(r.db.WithContext(ctx), filters)
	if err != nil {
		return nil, 0, err
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count products")
	}
	if err := query.
		Preload("Template").
		Preload("Codes", func(db *gorm.DB) *gorm.DB {
			return db.Order(CodeOrder)
		}).
		Order("products.id ASC").
		Offset(offset).
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, 0, errors.Wrap(err, "search products")
	}
	return products, total, nil
}

func (r *ProductsRepository) GetByID(ctx context.Context, id uint) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).
		Preload("Template.Category").
		Preload("Codes", func(db *gorm.DB) *gorm.DB {
			return db.Order(CodeOrder)
		}).
		First(&product, id).Error; err != nil {
		return nil, productErrors.translate(err)
	}
	return &product, nil
}

// Copy duplicates a product within its template. Codes are not copied:
// a barcode identifies exactly one product.
func (r *ProductsRepository) Copy(ctx context.Context, id uint) (*Product, error) {
	var copied *Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var source Product
		if err := tx.First(&source, id).Error; err != nil {
			return productErrors.translate(err)
		}
		copied = &Product{
			TemplateID: source.TemplateID,
			Code:       source.Code,
			Price:      source.Price,
			Active:     source.Active,
		}
		if err := tx.Create(copied).Error; err != nil {
			return productErrors.translate(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, copied.ID)
}
