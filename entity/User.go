package entity

import (
	"gorm.io/gorm"
)

const (
	RoleBuyer = "buyer"
	RoleOwner = "owner"
)

type User struct {
	gorm.Model
	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"size:191;uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Phone    string `gorm:"size:30" json:"phone"`
	Role     string `gorm:"size:20;not null;default:buyer" json:"role"`

	// Relations — preload only when needed
	Shop      *ShopProfile    `gorm:"foreignKey:UserID" json:"-"`
	Addresses []Address       `json:"-"`
	Orders    []Order         `gorm:"foreignKey:BuyerID" json:"-"`
	Reviews   []ProductReview `json:"-"`
}
