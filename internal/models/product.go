// internal/models/product.go
package models

type Product struct {
	BaseModel
	Name        string `json:"name" gorm:"size:255;not null"`
	Description string `json:"description" gorm:"type:text"`
	Price       int64  `json:"price" gorm:"not null"`
	Image       string `json:"image,omitempty" gorm:"size:500"`
	CategoryID  int64  `json:"category_id" gorm:"index"`
	Stock       int64  `json:"stock" gorm:"not null;default:0"`
	Version     int64  `json:"-" gorm:"not null;default:0"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}

// InStock reports whether the product can currently be ordered.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

type Category struct {
	BaseModel
	Name        string `json:"name" gorm:"size:255;not null"`
	Description string `json:"description" gorm:"type:text"`
	Image       string `json:"image,omitempty" gorm:"size:500"`
	SortOrder   int    `json:"order" gorm:"column:sort_order;default:0"`
}
