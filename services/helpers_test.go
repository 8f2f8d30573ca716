package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/avishkar-004/Grocery-Delivery-System-sub001/configs"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/entity"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, configs.SetupDatabase(db, false, false))
	return db
}

func ptr[T any](v T) *T { return &v }

func mustUser(t *testing.T, db *gorm.DB, role string) *entity.User {
	t.Helper()
	u := &entity.User{Name: role + "-user", Email: uuid.NewString() + "@example.com", Password: "x", Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

func mustShop(t *testing.T, db *gorm.DB, owner *entity.User, lat, lng, radius float64) *entity.ShopProfile {
	t.Helper()
	s := &entity.ShopProfile{
		UserID:         owner.ID,
		ShopName:       "Shop of " + owner.Name,
		AddressLine1:   "1 Main St",
		City:           "New York",
		State:          "NY",
		ZipCode:        "10001",
		DeliveryRadius: radius,
		IsOpen:         true,
		Latitude:       &lat,
		Longitude:      &lng,
	}
	require.NoError(t, db.Create(s).Error)
	return s
}

func mustCategory(t *testing.T, db *gorm.DB, name string) *entity.Category {
	t.Helper()
	c := &entity.Category{Name: name}
	require.NoError(t, db.Create(c).Error)
	return c
}

func mustProduct(t *testing.T, db *gorm.DB, shop *entity.ShopProfile, cat *entity.Category, name, price string, stock int, inStock bool) *entity.Product {
	t.Helper()
	p := &entity.Product{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		CategoryID: cat.ID,
		ShopID:     shop.ID,
		Stock:      stock,
		InStock:    inStock,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func mustAddress(t *testing.T, db *gorm.DB, user *entity.User, lat, lng float64, isDefault bool) *entity.Address {
	t.Helper()
	a := &entity.Address{
		UserID:       user.ID,
		Label:        "Home",
		AddressLine1: "2 Side St",
		City:         "New York",
		State:        "NY",
		ZipCode:      "10002",
		IsDefault:    isDefault,
		Latitude:     &lat,
		Longitude:    &lng,
	}
	require.NoError(t, db.Create(a).Error)
	return a
}

func reloadProduct(t *testing.T, db *gorm.DB, id uint) *entity.Product {
	t.Helper()
	var p entity.Product
	require.NoError(t, db.First(&p, id).Error)
	return &p
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []OrderEvent
}

func (r *recordingPublisher) PublishOrderEvent(evt OrderEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
}

func (r *recordingPublisher) Events() []OrderEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]OrderEvent(nil), r.events...)
}

func newOrderService(db *gorm.DB, events OrderPublisher) *OrderService {
	return NewOrderService(db,
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewAddressRepository(db),
		repository.NewShopRepository(db),
		events,
	)
}

// orderFixture is a buyer with a default address near one owner's shop.
type orderFixture struct {
	db      *gorm.DB
	svc     *OrderService
	events  *recordingPublisher
	buyer   *entity.User
	owner   *entity.User
	shop    *entity.ShopProfile
	address *entity.Address
	cat     *entity.Category
}

func newOrderFixture(t *testing.T) *orderFixture {
	db := newTestDB(t)
	f := &orderFixture{db: db, events: &recordingPublisher{}}
	f.svc = newOrderService(db, f.events)
	f.buyer = mustUser(t, db, entity.RoleBuyer)
	f.owner = mustUser(t, db, entity.RoleOwner)
	f.shop = mustShop(t, db, f.owner, 40.7128, -74.0060, 10)
	f.address = mustAddress(t, db, f.buyer, 40.7130, -74.0065, true)
	f.cat = mustCategory(t, db, "Fruits")
	return f
}

func (f *orderFixture) place(t *testing.T, lines ...OrderLineInput) *entity.Order {
	t.Helper()
	o, err := f.svc.Place(f.buyer.ID, PlaceOrderInput{
		AddressID:     f.address.ID,
		PaymentMethod: entity.PaymentCash,
		Items:         lines,
	})
	require.NoError(t, err)
	return o
}
