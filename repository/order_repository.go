package repository

import (
	"time"

	"github.com/avishkar-004/Grocery-Delivery-System-sub001/entity"
	"github.com/shopspring/decimal"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Omit("Items").Create(o).Error
}

func (r *OrderRepository) CreateOrderItems(tx *gorm.DB, items []entity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}

// GetOrder loads an order with its items, address and shop.
func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.
		Preload("Items").
		Preload("Address", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Shop").
		First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderTx(tx *gorm.DB, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := tx.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderItems(tx *gorm.DB, orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := tx.Where("order_id = ?", orderID).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *OrderRepository) ListForBuyer(buyerID uint, status entity.OrderStatus) ([]entity.Order, error) {
	q := r.DB.Preload("Items").Preload("Shop").Where("buyer_id = ?", buyerID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []entity.Order
	err := q.Order("id DESC").Find(&out).Error
	return out, err
}

func (r *OrderRepository) ListForShop(shopID uint, status entity.OrderStatus, page, limit int) ([]entity.Order, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Where("shop_id = ?", shopID)
		if status != "" {
			db = db.Where("status = ?", status)
		}
		return db
	}

	var total int64
	if err := r.DB.Model(&entity.Order{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []entity.Order
	err := r.DB.Scopes(scope).
		Preload("Items").
		Preload("Buyer").
		Preload("Address", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Order("id DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&out).Error
	return out, total, err
}

// ListUnclaimed returns Placed orders no shop has accepted yet, with delivery addresses.
func (r *OrderRepository) ListUnclaimed() ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.
		Preload("Items").
		Preload("Address", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("shop_id IS NULL AND status = ?", entity.StatusPlaced).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

// ---------------- Status (guarded writes) ----------------

// Claim assigns shopID to an unclaimed Placed order in one conditional update.
func (r *OrderRepository) Claim(tx *gorm.DB, orderID, shopID uint, at time.Time) (bool, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND shop_id IS NULL AND status = ?", orderID, entity.StatusPlaced).
		Updates(map[string]any{
			"shop_id":     shopID,
			"status":      entity.StatusAccepted,
			"accepted_at": at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// UpdateStatusGuard moves an order from -> to only if it is still in from,
// stamping the column for the new status.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to entity.OrderStatus, stampColumn string, at time.Time) (bool, error) {
	updates := map[string]any{"status": to}
	if stampColumn != "" {
		updates[stampColumn] = at
	}
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ---------------- Dashboard ----------------

type StatusCount struct {
	Status entity.OrderStatus `json:"status"`
	Count  int64              `json:"count"`
}

func (r *OrderRepository) CountByStatus(shopID uint) ([]StatusCount, error) {
	var out []StatusCount
	err := r.DB.Model(&entity.Order{}).
		Select("status, COUNT(*) AS count").
		Where("shop_id = ?", shopID).
		Group("status").
		Scan(&out).Error
	return out, err
}

func (r *OrderRepository) DeliveredRevenue(shopID uint) (decimal.Decimal, error) {
	var totals []decimal.Decimal
	err := r.DB.Model(&entity.Order{}).
		Where("shop_id = ? AND status = ?", shopID, entity.StatusDelivered).
		Pluck("total_amount", &totals).Error
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t)
	}
	return sum, err
}
