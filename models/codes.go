package models

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// DefaultCodeSequence is the sequence given to codes created without one.
const DefaultCodeSequence = 1

// CodeOrder lists codes by product, then sequence with unsequenced
// codes last.
const CodeOrder = "product_codes.product_id ASC, product_codes.sequence IS NULL, product_codes.sequence ASC, product_codes.id ASC"

var ErrNumberRequired = errors.New("code number is required")

// Code is a barcode number attached to a product. Barcode names the
// symbology whose check digit rule the number must satisfy; an empty
// barcode means the number is not checked.
type Code struct {
	ID        uint   `gorm:"primaryKey"`
	Barcode   string `gorm:"size:16;not null;default:'';uniqueIndex:idx_product_codes_barcode_number"`
	Number    string `gorm:"not null;uniqueIndex:idx_product_codes_barcode_number"`
	Sequence  *int
	Active    bool    `gorm:"not null"`
	ProductID uint    `gorm:"not null;index"`
	Product   Product `gorm:"foreignKey:ProductID"`
}

func (c *Code) TableName() string {
	return "product_codes"
}

// BeforeSave normalizes the code before gorm writes it.
func (c *Code) BeforeSave(tx *gorm.DB) error {
	c.Barcode = strings.ToUpper(strings.TrimSpace(c.Barcode))
	c.Number = strings.TrimSpace(c.Number)
	if c.Number == "" {
		return ErrNumberRequired
	}
	return nil
}

// RecName is the barcode type followed by the number.
func (c *Code) RecName() string {
	return c.Barcode + c.Number
}

// Values implements search.Record.
func (c Code) Values(path string) []any {
	switch path {
	case "id":
		return []any{strconv.FormatUint(uint64(c.ID), 10)}
	case "number", "rec_name":
		return []any{c.Number}
	case "barcode":
		return []any{c.Barcode}
	case "active":
		return []any{c.Active}
	case "product_id":
		return []any{strconv.FormatUint(uint64(c.ProductID), 10)}
	}
	return nil
}
