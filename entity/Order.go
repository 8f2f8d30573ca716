package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	StatusPlaced         OrderStatus = "Placed"
	StatusAccepted       OrderStatus = "Accepted"
	StatusPreparing      OrderStatus = "Preparing"
	StatusOutForDelivery OrderStatus = "Out for Delivery"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
)

var OrderStatuses = []OrderStatus{
	StatusPlaced, StatusAccepted, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

const (
	PaymentCard   = "Card"
	PaymentCash   = "Cash"
	PaymentWallet = "Wallet"
)

type Order struct {
	gorm.Model
	BuyerID uint  `gorm:"index;not null" json:"buyerId"`
	Buyer   *User `json:"buyer,omitempty"`

	// nil until an owner accepts the order
	ShopID *uint        `gorm:"index" json:"shopId"`
	Shop   *ShopProfile `json:"shop,omitempty"`

	AddressID uint     `gorm:"not null" json:"addressId"`
	Address   *Address `json:"address,omitempty"`

	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalAmount"`
	Status        OrderStatus     `gorm:"size:30;index;not null;default:Placed" json:"status"`
	PaymentMethod string          `gorm:"size:20;not null" json:"paymentMethod"`
	Notes         string          `gorm:"type:text" json:"notes"`

	AcceptedAt       *time.Time `json:"acceptedAt,omitempty"`
	PreparedAt       *time.Time `json:"preparedAt,omitempty"`
	OutForDeliveryAt *time.Time `json:"outForDeliveryAt,omitempty"`
	DeliveredAt      *time.Time `json:"deliveredAt,omitempty"`
	CancelledAt      *time.Time `json:"cancelledAt,omitempty"`

	Items []OrderItem `json:"items,omitempty"`
}

// Coordinates of the delivery address; requires Address to be preloaded.
func (o Order) Coordinates() (*float64, *float64) {
	if o.Address == nil {
		return nil, nil
	}
	return o.Address.Coordinates()
}
