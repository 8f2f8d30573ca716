package entity

import (
	"gorm.io/gorm"
)

// one review per (user, product); checked by ReviewService, not a DB constraint
type ProductReview struct {
	gorm.Model
	Rating  int    `gorm:"not null;check:rating BETWEEN 1 AND 5" json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`

	ProductID uint     `gorm:"index;not null" json:"productId"`
	Product   *Product `json:"-"`
	UserID    uint     `gorm:"index;not null" json:"userId"`
	User      *User    `json:"user,omitempty"`
}
