package entity

import (
	"gorm.io/gorm"
)

type Address struct {
	gorm.Model
	UserID uint  `gorm:"index;not null" json:"userId"`
	User   *User `json:"-"`

	Label        string `gorm:"size:50;default:'Home'" json:"label"`
	AddressLine1 string `gorm:"size:255;not null" json:"addressLine1"`
	AddressLine2 string `gorm:"size:255" json:"addressLine2"`
	City         string `gorm:"size:100;not null" json:"city"`
	State        string `gorm:"size:100;not null" json:"state"`
	ZipCode      string `gorm:"size:20;not null" json:"zipCode"`
	IsDefault    bool   `gorm:"not null;default:false" json:"isDefault"`

	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (a Address) Coordinates() (*float64, *float64) { return a.Latitude, a.Longitude }
