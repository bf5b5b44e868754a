package models

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a sellable variant of a template. It owns the barcode
// codes printed on its packaging.
type Product struct {
	ID         uint            `gorm:"primaryKey"`
	TemplateID uint            `gorm:"not null;index"`
	Template   Template        `gorm:"foreignKey:TemplateID"`
	Code       string          `gorm:"index"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Active     bool            `gorm:"not null"`
	Codes      []Code          `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

func (p *Product) TableName() string {
	return "products"
}

// EffectivePrice falls back to the template list price when the
// product has no price of its own.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.Price.IsZero() {
		return p.Template.ListPrice
	}
	return p.Price
}

// RecName is the display name of the product.
func (p *Product) RecName() string {
	if p.Code == "" {
		return p.Template.Name
	}
	return "[" + p.Code + "] " + p.Template.Name
}

// CodeNumber returns the number of the first active code of the given
// barcode type, in code order.
func (p *Product) CodeNumber(barcodeType string) (string, bool) {
	for _, c := range p.Codes {
		if c.Active && c.Barcode != "" && strings.EqualFold(c.Barcode, barcodeType) {
			return c.Number, true
		}
	}
	return "", false
}

// BarcodeFields returns one "code_<type>" entry per barcode type, nil
// when the product has no code of that type.
func (p *Product) BarcodeFields(types []string) map[string]*string {
	fields := make(map[string]*string, len(types))
	for _, t := range types {
		key := "code_" + strings.ToLower(t)
		if number, ok := p.CodeNumber(t); ok {
			fields[key] = &number
		} else {
			fields[key] = nil
		}
	}
	return fields
}

// Values implements search.Record.
func (p Product) Values(path string) []any {
	switch path {
	case "id":
		return []any{strconv.FormatUint(uint64(p.ID), 10)}
	case "code":
		return []any{p.Code}
	case "name":
		return []any{p.Template.Name}
	case "active":
		return []any{p.Active}
	case "template_id":
		return []any{strconv.FormatUint(uint64(p.TemplateID), 10)}
	case "codes.number", "codes.barcode":
		values := make([]any, 0, len(p.Codes))
		for _, c := range p.Codes {
			values = append(values, c.Values(strings.TrimPrefix(path, "codes."))...)
		}
		return values
	}
	return nil
}
