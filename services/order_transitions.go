package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/avishkar-004/Grocery-Delivery-System-sub001/entity"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/pkg/apperr"

	"gorm.io/gorm"
)

// ownerTransitions lists the moves an owner may make once an order is accepted.
// Placed -> Accepted only happens through Accept.
var ownerTransitions = map[entity.OrderStatus][]entity.OrderStatus{
	entity.StatusAccepted:       {entity.StatusPreparing, entity.StatusCancelled},
	entity.StatusPreparing:      {entity.StatusOutForDelivery, entity.StatusCancelled},
	entity.StatusOutForDelivery: {entity.StatusDelivered, entity.StatusCancelled},
	entity.StatusDelivered:      {},
	entity.StatusCancelled:      {},
}

var buyerCancellable = map[entity.OrderStatus]bool{
	entity.StatusPlaced:    true,
	entity.StatusAccepted:  true,
	entity.StatusPreparing: true,
}

var statusStamp = map[entity.OrderStatus]string{
	entity.StatusAccepted:       "accepted_at",
	entity.StatusPreparing:      "prepared_at",
	entity.StatusOutForDelivery: "out_for_delivery_at",
	entity.StatusDelivered:      "delivered_at",
	entity.StatusCancelled:      "cancelled_at",
}

func CanTransition(from, to entity.OrderStatus) bool {
	for _, next := range ownerTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func cannotTransition(from, to entity.OrderStatus) error {
	return apperr.BadRequest(fmt.Sprintf("cannot transition from %s to %s", from, to))
}

// restoreStock puts every item's quantity back and marks the products in stock.
func (s *OrderService) restoreStock(tx *gorm.DB, orderID uint) error {
	items, err := s.Repo.GetOrderItems(tx, orderID)
	if err != nil {
		return err
	}
	for _, it := range items {
		if err := s.ProductRepo.RestoreStock(tx, it.ProductID, it.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// ----- Owner actions -----

// Accept claims an unclaimed Placed order for the owner's shop. The claim is a
// single conditional update, so two owners racing for one order cannot both win.
func (s *OrderService) Accept(ownerID, orderID uint) (*entity.Order, error) {
	shop, err := s.ownerShop(ownerID)
	if err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		ok, err := s.Repo.Claim(tx, orderID, shop.ID, time.Now())
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		o, err := s.Repo.GetOrderTx(tx, orderID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("order not found")
		}
		if err != nil {
			return err
		}
		if o.ShopID != nil {
			return apperr.BadRequest("order already accepted")
		}
		return cannotTransition(o.Status, entity.StatusAccepted)
	})
	if err != nil {
		return nil, err
	}

	out, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	s.publish(EventOrderStatus, out)
	return out, nil
}

// UpdateStatus moves an accepted order along the owner transition table.
// Cancelling restores stock in the same transaction.
func (s *OrderService) UpdateStatus(ownerID, orderID uint, to entity.OrderStatus) (*entity.Order, error) {
	if !to.Valid() {
		return nil, apperr.BadRequest(fmt.Sprintf("invalid status %q", to))
	}
	shop, err := s.ownerShop(ownerID)
	if err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetOrderTx(tx, orderID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("order not found")
		}
		if err != nil {
			return err
		}
		if o.ShopID != nil && *o.ShopID != shop.ID {
			return apperr.Forbidden("order belongs to another shop")
		}
		if !CanTransition(o.Status, to) {
			return cannotTransition(o.Status, to)
		}

		ok, err := s.Repo.UpdateStatusGuard(tx, o.ID, o.Status, to, statusStamp[to], time.Now())
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Conflict("order status changed concurrently, reload and retry")
		}
		if to == entity.StatusCancelled {
			return s.restoreStock(tx, o.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	s.publish(EventOrderStatus, out)
	return out, nil
}

// ----- Buyer actions -----

// Cancel lets a buyer cancel their own order before it leaves the shop.
func (s *OrderService) Cancel(buyerID, orderID uint) (*entity.Order, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetOrderTx(tx, orderID)
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && o.BuyerID != buyerID) {
			return apperr.NotFound("order not found")
		}
		if err != nil {
			return err
		}
		if !buyerCancellable[o.Status] {
			return apperr.BadRequest(fmt.Sprintf("order cannot be cancelled in status %s", o.Status))
		}

		ok, err := s.Repo.UpdateStatusGuard(tx, o.ID, o.Status, entity.StatusCancelled, statusStamp[entity.StatusCancelled], time.Now())
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Conflict("order status changed concurrently, reload and retry")
		}
		return s.restoreStock(tx, o.ID)
	})
	if err != nil {
		return nil, err
	}

	out, err := s.Repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	s.publish(EventOrderStatus, out)
	return out, nil
}
