package services

import (
	"time"

	"github.com/avishkar-004/Grocery-Delivery-System-sub001/entity"
	"github.com/shopspring/decimal"
)

const (
	EventOrderPlaced = "order.placed"
	EventOrderStatus = "order.status"
)

// OrderEvent is published after an order transaction commits.
type OrderEvent struct {
	Type        string             `json:"type"`
	OrderID     uint               `json:"orderId"`
	BuyerID     uint               `json:"buyerId"`
	ShopID      *uint              `json:"shopId,omitempty"`
	OwnerID     uint               `json:"ownerId,omitempty"`
	Status      entity.OrderStatus `json:"status"`
	TotalAmount decimal.Decimal    `json:"totalAmount"`
	At          time.Time          `json:"at"`
}

// OrderPublisher receives order events; implementations must not block.
type OrderPublisher interface {
	PublishOrderEvent(evt OrderEvent)
}

// Publishers fans an event out to several publishers.
type Publishers []OrderPublisher

func (ps Publishers) PublishOrderEvent(evt OrderEvent) {
	for _, p := range ps {
		if p != nil {
			p.PublishOrderEvent(evt)
		}
	}
}
