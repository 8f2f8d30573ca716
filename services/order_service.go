package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avishkar-004/Grocery-Delivery-System-sub001/entity"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/pkg/apperr"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/pkg/geo"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/repository"
	"github.com/shopspring/decimal"

	"gorm.io/gorm"
)

type OrderService struct {
	DB          *gorm.DB
	Repo        *repository.OrderRepository
	ProductRepo *repository.ProductRepository
	AddrRepo    *repository.AddressRepository
	ShopRepo    *repository.ShopRepository
	Events      OrderPublisher
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	productRepo *repository.ProductRepository,
	addrRepo *repository.AddressRepository,
	shopRepo *repository.ShopRepository,
	events OrderPublisher,
) *OrderService {
	return &OrderService{
		DB:          db,
		Repo:        repo,
		ProductRepo: productRepo,
		AddrRepo:    addrRepo,
		ShopRepo:    shopRepo,
		Events:      events,
	}
}

// ----- DTOs from Controller -----
// MaxLineQuantity caps one product's quantity in an order, after merging repeats.
const MaxLineQuantity = 10000

// maxOrderTotal is the largest value a decimal(10,2) money column holds.
var maxOrderTotal = decimal.RequireFromString("99999999.99")

type OrderLineInput struct {
	ProductID uint `json:"productId" binding:"required,gt=0"`
	Quantity  int  `json:"quantity" binding:"required,min=1,max=10000"`
}

type PlaceOrderInput struct {
	AddressID     uint             `json:"addressId" binding:"required,gt=0"`
	PaymentMethod string           `json:"paymentMethod" binding:"required,oneof=Card Cash Wallet"`
	Notes         string           `json:"notes" binding:"omitempty,max=1000"`
	Items         []OrderLineInput `json:"items" binding:"required,min=1,dive"`
}

type OrderPage struct {
	Items []entity.Order `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// mergeLines validates quantities and folds repeated products into one line.
func mergeLines(lines []OrderLineInput) ([]OrderLineInput, error) {
	if len(lines) == 0 {
		return nil, apperr.Validation(apperr.FieldError{Field: "items", Message: "order must contain at least one item"})
	}
	merged := make([]OrderLineInput, 0, len(lines))
	index := map[uint]int{}
	for i, l := range lines {
		if l.ProductID == 0 {
			return nil, apperr.Validation(apperr.FieldError{Field: fmt.Sprintf("items[%d].productId", i), Message: "productId is required"})
		}
		if l.Quantity < 1 {
			return nil, apperr.Validation(apperr.FieldError{Field: fmt.Sprintf("items[%d].quantity", i), Message: "quantity must be at least 1"})
		}
		if l.Quantity > MaxLineQuantity {
			return nil, tooMany(fmt.Sprintf("items[%d].quantity", i))
		}
		if at, ok := index[l.ProductID]; ok {
			if merged[at].Quantity > MaxLineQuantity-l.Quantity {
				return nil, tooMany(fmt.Sprintf("items[%d].quantity", i))
			}
			merged[at].Quantity += l.Quantity
			continue
		}
		index[l.ProductID] = len(merged)
		merged = append(merged, l)
	}
	return merged, nil
}

func tooMany(field string) error {
	return apperr.Validation(apperr.FieldError{
		Field:   field,
		Message: fmt.Sprintf("quantity per product must be at most %d", MaxLineQuantity),
	})
}

func insufficientStock(p *entity.Product) error {
	return apperr.BadRequest(fmt.Sprintf("insufficient stock for %s", p.Name))
}

// ----- Place -----

// Place creates an order, snapshots product names and prices, and decrements
// stock, all in one transaction.
func (s *OrderService) Place(buyerID uint, in PlaceOrderInput) (*entity.Order, error) {
	lines, err := mergeLines(in.Items)
	if err != nil {
		return nil, err
	}
	payment := strings.TrimSpace(in.PaymentMethod)
	if payment != entity.PaymentCard && payment != entity.PaymentCash && payment != entity.PaymentWallet {
		return nil, apperr.Validation(apperr.FieldError{Field: "paymentMethod", Message: "paymentMethod must be one of [Card Cash Wallet]"})
	}

	var order entity.Order
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := s.AddrRepo.FindForUser(tx, in.AddressID, buyerID); err != nil {
			return notFoundAddress(err)
		}

		total := decimal.Zero
		items := make([]entity.OrderItem, 0, len(lines))
		for _, l := range lines {
			p, err := s.ProductRepo.GetTx(tx, l.ProductID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound(fmt.Sprintf("product %d not found", l.ProductID))
			}
			if err != nil {
				return err
			}
			if !p.InStock || (p.Stock > 0 && p.Stock < l.Quantity) {
				return insufficientStock(p)
			}

			itemTotal := p.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
			total = total.Add(itemTotal)
			if itemTotal.GreaterThan(maxOrderTotal) || total.GreaterThan(maxOrderTotal) {
				return apperr.BadRequest(fmt.Sprintf("order total exceeds %s", maxOrderTotal.StringFixed(2)))
			}

			// stock 0 with inStock set means the product is not stock-tracked
			if p.Stock > 0 {
				ok, err := s.ProductRepo.DecrementStock(tx, p.ID, l.Quantity)
				if err != nil {
					return err
				}
				if !ok {
					return insufficientStock(p)
				}
				if err := s.ProductRepo.MarkOutOfStockIfEmpty(tx, p.ID); err != nil {
					return err
				}
			}

			items = append(items, entity.OrderItem{
				ProductID:    p.ID,
				ProductName:  p.Name,
				ProductPrice: p.Price,
				Quantity:     l.Quantity,
				ItemTotal:    itemTotal,
			})
		}

		order = entity.Order{
			BuyerID:       buyerID,
			AddressID:     in.AddressID,
			TotalAmount:   total,
			Status:        entity.StatusPlaced,
			PaymentMethod: payment,
			Notes:         strings.TrimSpace(in.Notes),
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		return s.Repo.CreateOrderItems(tx, items)
	})
	if err != nil {
		return nil, err
	}

	out, err := s.Repo.GetOrder(order.ID)
	if err != nil {
		return nil, err
	}
	s.publish(EventOrderPlaced, out)
	return out, nil
}

// ----- Reads -----

func (s *OrderService) ListMine(buyerID uint, status entity.OrderStatus) ([]entity.Order, error) {
	if status != "" && !status.Valid() {
		return nil, apperr.BadRequest("invalid status filter")
	}
	return s.Repo.ListForBuyer(buyerID, status)
}

func (s *OrderService) ownerShop(ownerID uint) (*entity.ShopProfile, error) {
	shop, err := s.ShopRepo.FindByUserID(ownerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Forbidden("create a shop profile first")
	}
	return shop, err
}

// Get returns an order to its buyer, to the owner of the accepting shop, or to
// any owner while it is still unclaimed.
func (s *OrderService) Get(userID uint, role string, orderID uint) (*entity.Order, error) {
	o, err := s.Repo.GetOrder(orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("order not found")
	}
	if err != nil {
		return nil, err
	}

	if o.BuyerID == userID {
		return o, nil
	}
	if role == entity.RoleOwner {
		if o.ShopID == nil {
			return o, nil
		}
		shop, err := s.ShopRepo.FindByUserID(userID)
		if err == nil && shop.ID == *o.ShopID {
			return o, nil
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return nil, apperr.Forbidden("you are not allowed to view this order")
}

func (s *OrderService) ListForShop(ownerID uint, status entity.OrderStatus, page, limit int) (*OrderPage, error) {
	if status != "" && !status.Valid() {
		return nil, apperr.BadRequest("invalid status filter")
	}
	shop, err := s.ownerShop(ownerID)
	if err != nil {
		return nil, err
	}
	items, total, err := s.Repo.ListForShop(shop.ID, status, page, limit)
	if err != nil {
		return nil, err
	}
	return &OrderPage{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// Nearby lists unclaimed orders whose delivery address lies within the shop's radius.
func (s *OrderService) Nearby(ownerID uint) ([]geo.Nearby[entity.Order], error) {
	shop, err := s.ownerShop(ownerID)
	if err != nil {
		return nil, err
	}
	lat, lng := shop.Coordinates()
	if lat == nil || lng == nil {
		return nil, apperr.BadRequest("shop location is not set")
	}

	orders, err := s.Repo.ListUnclaimed()
	if err != nil {
		return nil, err
	}
	return geo.FindNearbyOrders(geo.Point{Lat: *lat, Lng: *lng}, shop.Radius(), orders), nil
}

func (s *OrderService) publish(typ string, o *entity.Order) {
	if s.Events == nil || o == nil {
		return
	}
	evt := OrderEvent{
		Type:        typ,
		OrderID:     o.ID,
		BuyerID:     o.BuyerID,
		ShopID:      o.ShopID,
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
		At:          time.Now(),
	}
	if o.Shop != nil {
		evt.OwnerID = o.Shop.UserID
	}
	s.Events.PublishOrderEvent(evt)
}
