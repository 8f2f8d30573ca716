package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ShopProfile struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null" json:"userId"`
	User   User `json:"-"`

	ShopName     string `gorm:"size:150;not null" json:"shopName"`
	Description  string `gorm:"type:text" json:"description"`
	Phone        string `gorm:"size:30" json:"phone"`
	Image        string `json:"image"`
	AddressLine1 string `gorm:"size:255;not null" json:"addressLine1"`
	AddressLine2 string `gorm:"size:255" json:"addressLine2"`
	City         string `gorm:"size:100;not null" json:"city"`
	State        string `gorm:"size:100;not null" json:"state"`
	ZipCode      string `gorm:"size:20;not null" json:"zipCode"`

	DeliveryRadius float64         `gorm:"not null;default:5" json:"deliveryRadius"`
	MinimumOrder   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"minimumOrder"`
	OpeningTime    string          `gorm:"size:5;default:'08:00'" json:"openingTime"`
	ClosingTime    string          `gorm:"size:5;default:'22:00'" json:"closingTime"`
	IsOpen         bool            `gorm:"not null" json:"isOpen"`

	Rating      float64 `gorm:"not null;default:0" json:"rating"`
	ReviewCount int     `gorm:"not null;default:0" json:"reviewCount"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	Products []Product `gorm:"foreignKey:ShopID" json:"-"`
	Orders   []Order   `gorm:"foreignKey:ShopID" json:"-"`
}

func (s ShopProfile) Coordinates() (*float64, *float64) { return s.Latitude, s.Longitude }
func (s ShopProfile) Radius() float64                   { return s.DeliveryRadius }
