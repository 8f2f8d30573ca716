package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	OrderID uint `gorm:"index;not null" json:"orderId"`

	ProductID uint     `gorm:"index;not null" json:"productId"`
	Product   *Product `json:"-"`

	// snapshot at order time
	ProductName  string          `gorm:"size:150;not null" json:"productName"`
	ProductPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"productPrice"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	ItemTotal    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"itemTotal"`
}
