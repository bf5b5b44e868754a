package models

// Category represents a product category.
// It includes a unique code and a human-readable name, and is shared by
// the templates filed under it.
type Category struct {
	ID        uint       `gorm:"primaryKey"`
	Code      string     `gorm:"uniqueIndex;not null"`
	Name      string     `gorm:"not null"`
	Templates []Template `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

func (c *Category) TableName() string {
	return "categories"
}
