package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name          string          `gorm:"size:150;not null" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	OriginalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"originalPrice"`
	Unit          string          `gorm:"size:30" json:"unit"`
	Image         string          `json:"image"`

	CategoryID uint         `gorm:"index;not null" json:"categoryId"`
	Category   *Category    `json:"category,omitempty"`
	ShopID     uint         `gorm:"index;not null" json:"shopId"`
	Shop       *ShopProfile `json:"shop,omitempty"`

	Stock       int     `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	InStock     bool    `gorm:"not null" json:"inStock"`
	Rating      float64 `gorm:"not null;default:0" json:"rating"`
	ReviewCount int     `gorm:"not null;default:0" json:"reviewCount"`

	Reviews []ProductReview `json:"-"`
}
