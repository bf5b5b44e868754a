package models

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Template groups the variants of one article. It carries the name,
// list price and category shared by its products.
type Template struct {
	ID         uint            `gorm:"primaryKey"`
	Name       string          `gorm:"not null;index"`
	ListPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CategoryID uint            `gorm:"not null"`
	Category   Category        `gorm:"foreignKey:CategoryID"`
	Active     bool            `gorm:"not null"`
	Products   []Product       `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE"`
}

func (t *Template) TableName() string {
	return "templates"
}

// Values implements search.Record.
func (t Template) Values(path string) []any {
	switch path {
	case "id":
		return []any{strconv.FormatUint(uint64(t.ID), 10)}
	case "name":
		return []any{t.Name}
	case "active":
		return []any{t.Active}
	case "category.code":
		return []any{t.Category.Code}
	}
	if rest, ok := strings.CutPrefix(path, "products."); ok {
		var values []any
		for _, p := range t.Products {
			values = append(values, p.Values(rest)...)
		}
		return values
	}
	return nil
}
