package models

import (
	"testing"

	"github.com/mytheresa/product-barcode/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestProductsSearchQuery(t *testing.T) {
	db := newDryRunDB(t)
	repo := NewProductsRepository(db)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		query, err := repo.searchQuery(tx, ProductFilters{
			Name: &search.Clause{Field: "rec_name", Operator: search.ILike, Value: "%333931%"},
		})
		require.NoError(t, err)
		return query.Find(&[]Product{})
	})

	assert.Contains(t, sql, `FROM "products"`)
	assert.Contains(t, sql, "products.active = true")
	assert.Contains(t, sql, "products.id IN (SELECT product_codes.product_id FROM product_codes WHERE product_codes.number ILIKE '%333931%' AND product_codes.active = true)")
	assert.Contains(t, sql, "products.code ILIKE '%333931%'")
}

func TestProductsSearchQueryIncludeInactive(t *testing.T) {
	db := newDryRunDB(t)
	repo := NewProductsRepository(db)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		query, err := repo.searchQuery(tx, ProductFilters{IncludeInactive: true, TemplateID: 7})
		require.NoError(t, err)
		return query.Find(&[]Product{})
	})

	assert.NotContains(t, sql, "products.active")
	assert.Contains(t, sql, "products.template_id = 7")
}

func TestProductsSearchQueryIncludeInactiveCodes(t *testing.T) {
	db := newDryRunDB(t)
	repo := NewProductsRepository(db)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		query, err := repo.searchQuery(tx, ProductFilters{
			IncludeInactive: true,
			Name:            &search.Clause{Field: "rec_name", Operator: search.ILike, Value: "%333931%"},
		})
		require.NoError(t, err)
		return query.Find(&[]Product{})
	})

	assert.Contains(t, sql, "WHERE product_codes.number ILIKE '%333931%')")
	assert.NotContains(t, sql, "product_codes.active")
}

func TestTemplatesFilteredQuery(t *testing.T) {
	db := newDryRunDB(t)
	repo := NewTemplatesRepository(db)
	price := 20.5

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		query, err := repo.filteredQuery(tx, TemplateFilters{
			CategoryCode:  "shoes",
			PriceLessThan: &price,
			Name:          &search.Clause{Field: "rec_name", Operator: search.NotILike, Value: "%400638%"},
		})
		require.NoError(t, err)
		return query.Find(&[]Template{})
	})

	assert.Contains(t, sql, "LEFT JOIN categories ON categories.id = templates.category_id")
	assert.Contains(t, sql, "categories.code = 'shoes'")
	assert.Contains(t, sql, "templates.list_price < 20.5")
	assert.Contains(t, sql, "templates.name NOT ILIKE '%400638%' AND templates.id NOT IN (SELECT products.template_id FROM products")
}

func TestCodesSearchQuery(t *testing.T) {
	db := newDryRunDB(t)
	repo := NewCodesRepository(db, nil)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		query, err := repo.searchQuery(tx, search.Clause{Field: "rec_name", Operator: search.ILike, Value: "%84.5%"}, false)
		require.NoError(t, err)
		return query.Order(CodeOrder).Find(&[]Code{})
	})

	assert.Contains(t, sql, "product_codes.number ~ '^840+5$'")
	assert.Contains(t, sql, "product_codes.active = true")
	assert.Contains(t, sql, "ORDER BY product_codes.product_id ASC, product_codes.sequence IS NULL")
}

func TestCodesSearchQueryRejectsUnknownFields(t *testing.T) {
	repo := NewCodesRepository(newDryRunDB(t), nil)

	_, err := repo.searchQuery(repo.db, search.Clause{Field: "price", Operator: search.Equal, Value: "1"}, false)

	assert.ErrorIs(t, err, ErrUnknownField)
}
