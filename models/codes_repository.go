package models

import (
	"context"
	"fmt"
	"strings"

	"github.com/mytheresa/product-barcode/barcode"
	"github.com/mytheresa/product-barcode/search"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ImportError reports the row of an import that could not be saved.
// Rows are numbered from 1, not counting the header.
type ImportError struct {
	Row int
	Err error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

type CodesRepository struct {
	db        *gorm.DB
	validator *barcode.Validator
}

func NewCodesRepository(db *gorm.DB, validator *barcode.Validator) *CodesRepository {
	return &CodesRepository{db: db, validator: validator}
}

func (r *CodesRepository) ListByProduct(ctx context.Context, productID uint) ([]Code, error) {
	var codes []Code
	if err := r.db.WithContext(ctx).
		Where("product_codes.product_id = ?", productID).
		Order(CodeOrder).
		Find(&codes).Error; err != nil {
		return nil, errors.Wrap(err, "list codes")
	}
	return codes, nil
}

func (r *CodesRepository) Get(ctx context.Context, id uint) (*Code, error) {
	var code Code
	if err := r.db.WithContext(ctx).First(&code, id).Error; err != nil {
		return nil, codeErrors.translate(err)
	}
	return &code, nil
}

// validate checks the number of code and keeps the repaired number when
// the barcode type had been typed in front of it.
func (r *CodesRepository) validate(code *Code) error {
	if strings.TrimSpace(code.Number) == "" {
		return ErrNumberRequired
	}
	number, err := r.validator.Validate(code.Barcode, code.Number)
	if err != nil {
		return err
	}
	code.Number = number
	return nil
}

func (r *CodesRepository) create(tx *gorm.DB, code *Code) error {
	if err := r.validate(code); err != nil {
		return err
	}
	return codeErrors.translate(tx.Create(code).Error)
}

func (r *CodesRepository) Create(ctx context.Context, code *Code) error {
	return r.create(r.db.WithContext(ctx), code)
}

func (r *CodesRepository) Update(ctx context.Context, code *Code) error {
	if err := r.validate(code); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Model(code).
		Select("Barcode", "Number", "Sequence", "Active").
		Updates(code)
	if result.Error != nil {
		return codeErrors.translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCodeNotFound
	}
	return nil
}

func (r *CodesRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Code{}, id)
	if result.Error != nil {
		return errors.Wrap(result.Error, "delete code")
	}
	if result.RowsAffected == 0 {
		return ErrCodeNotFound
	}
	return nil
}

func (r *CodesRepository) searchQuery(db *gorm.DB, clause search.Clause, includeInactive bool) (*gorm.DB, error) {
	// A code is named by its number.
	if clause.Field == "rec_name" {
		clause = clause.WithField("number")
	}
	sql, args, err := compileDomain(db, codeFields, clause, !includeInactive)
	if err != nil {
		return nil, err
	}
	query := db.Model(&Code{}).Where(sql, args...)
	if !includeInactive {
		query = query.Where("product_codes.active = ?", true)
	}
	return query, nil
}

// Search returns the codes matching clause. Number searches support the
// "prefix.suffix" zero padding shorthand.
func (r *CodesRepository) Search(ctx context.Context, clause search.Clause, offset, limit int, includeInactive bool) ([]Code, int64, error) {
	var codes []Code
	var total int64

	query, err := r.searchQuery(r.db.WithContext(ctx), clause, includeInactive)
	if err != nil {
		return nil, 0, err
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count codes")
	}
	if err := query.Order(CodeOrder).Offset(offset).Limit(limit).Find(&codes).Error; err != nil {
		return nil, 0, errors.Wrap(err, "search codes")
	}
	return codes, total, nil
}

// Import saves all codes or none of them.
func (r *CodesRepository) Import(ctx context.Context, codes []Code) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range codes {
			if err := r.create(tx, &codes[i]); err != nil {
				return &ImportError{Row: i + 1, Err: err}
			}
		}
		return nil
	})
}
