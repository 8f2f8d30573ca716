package services

import (
	"errors"
	"log"
	"strings"

	"github.com/avishkar-004/Grocery-Delivery-System-sub001/entity"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/pkg/apperr"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/pkg/geo"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/repository"
	"github.com/shopspring/decimal"

	"gorm.io/gorm"
)

// LowStockThreshold is the stock level at or below which the dashboard flags a product.
const LowStockThreshold = 10

// Geocoder resolves a street address to coordinates.
type Geocoder interface {
	Geocode(address string) (lat, lng float64, err error)
}

// locate fills missing coordinates from the geocoder; failures are only logged.
func locate(g Geocoder, lat, lng *float64, parts ...string) (*float64, *float64) {
	if lat != nil && lng != nil {
		return lat, lng
	}
	if g == nil {
		return lat, lng
	}
	var nonEmpty []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	if len(nonEmpty) == 0 {
		return lat, lng
	}
	la, ln, err := g.Geocode(strings.Join(nonEmpty, ", "))
	if err != nil {
		log.Printf("geocoding %q failed: %v", strings.Join(nonEmpty, ", "), err)
		return lat, lng
	}
	return &la, &ln
}

type ShopService struct {
	Repo        *repository.ShopRepository
	ProductRepo *repository.ProductRepository
	OrderRepo   *repository.OrderRepository
	AddrRepo    *repository.AddressRepository
	Geo         Geocoder
}

func NewShopService(
	repo *repository.ShopRepository,
	productRepo *repository.ProductRepository,
	orderRepo *repository.OrderRepository,
	addrRepo *repository.AddressRepository,
	geocoder Geocoder,
) *ShopService {
	return &ShopService{Repo: repo, ProductRepo: productRepo, OrderRepo: orderRepo, AddrRepo: addrRepo, Geo: geocoder}
}

type ShopInput struct {
	ShopName       *string          `json:"shopName" binding:"omitempty,min=1,max=150"`
	Description    *string          `json:"description"`
	Phone          *string          `json:"phone" binding:"omitempty,max=30"`
	AddressLine1   *string          `json:"addressLine1" binding:"omitempty,min=1,max=255"`
	AddressLine2   *string          `json:"addressLine2" binding:"omitempty,max=255"`
	City           *string          `json:"city" binding:"omitempty,min=1,max=100"`
	State          *string          `json:"state" binding:"omitempty,min=1,max=100"`
	ZipCode        *string          `json:"zipCode" binding:"omitempty,min=1,max=20"`
	DeliveryRadius *float64         `json:"deliveryRadius" binding:"omitempty,gt=0"`
	MinimumOrder   *decimal.Decimal `json:"minimumOrder"`
	OpeningTime    *string          `json:"openingTime" binding:"omitempty,len=5"`
	ClosingTime    *string          `json:"closingTime" binding:"omitempty,len=5"`
	IsOpen         *bool            `json:"isOpen"`
	Latitude       *float64         `json:"latitude" binding:"omitempty,latitude"`
	Longitude      *float64         `json:"longitude" binding:"omitempty,longitude"`
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

// Create opens the owner's shop; an owner has at most one.
func (s *ShopService) Create(ownerID uint, in ShopInput) (*entity.ShopProfile, error) {
	var missing []apperr.FieldError
	required := []struct {
		field string
		v     *string
	}{
		{"shopName", in.ShopName}, {"addressLine1", in.AddressLine1},
		{"city", in.City}, {"state", in.State}, {"zipCode", in.ZipCode},
	}
	for _, r := range required {
		if str(r.v) == "" {
			missing = append(missing, apperr.FieldError{Field: r.field, Message: r.field + " is required"})
		}
	}
	if len(missing) > 0 {
		return nil, apperr.Validation(missing...)
	}
	if in.MinimumOrder != nil && in.MinimumOrder.IsNegative() {
		return nil, apperr.Validation(apperr.FieldError{Field: "minimumOrder", Message: "minimumOrder must not be negative"})
	}

	exists, err := s.Repo.ExistsForUser(ownerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("shop profile already exists")
	}

	shop := &entity.ShopProfile{
		UserID:         ownerID,
		ShopName:       str(in.ShopName),
		Description:    str(in.Description),
		Phone:          str(in.Phone),
		AddressLine1:   str(in.AddressLine1),
		AddressLine2:   str(in.AddressLine2),
		City:           str(in.City),
		State:          str(in.State),
		ZipCode:        str(in.ZipCode),
		DeliveryRadius: 5,
		OpeningTime:    "08:00",
		ClosingTime:    "22:00",
		IsOpen:         true,
	}
	if in.DeliveryRadius != nil {
		shop.DeliveryRadius = *in.DeliveryRadius
	}
	if in.MinimumOrder != nil {
		shop.MinimumOrder = *in.MinimumOrder
	}
	if in.OpeningTime != nil {
		shop.OpeningTime = *in.OpeningTime
	}
	if in.ClosingTime != nil {
		shop.ClosingTime = *in.ClosingTime
	}
	if in.IsOpen != nil {
		shop.IsOpen = *in.IsOpen
	}
	shop.Latitude, shop.Longitude = locate(s.Geo, in.Latitude, in.Longitude,
		shop.AddressLine1, shop.AddressLine2, shop.City, shop.State, shop.ZipCode)

	if err := s.Repo.Create(shop); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("shop profile already exists")
		}
		return nil, err
	}
	return shop, nil
}

// Mine returns the owner's shop or 404.
func (s *ShopService) Mine(ownerID uint) (*entity.ShopProfile, error) {
	shop, err := s.Repo.FindByUserID(ownerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("shop profile not found")
	}
	return shop, err
}

func (s *ShopService) UpdateMine(ownerID uint, in ShopInput) (*entity.ShopProfile, error) {
	shop, err := s.Mine(ownerID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	set := func(col string, v *string) {
		if v != nil {
			updates[col] = strings.TrimSpace(*v)
		}
	}
	set("shop_name", in.ShopName)
	set("description", in.Description)
	set("phone", in.Phone)
	set("address_line1", in.AddressLine1)
	set("address_line2", in.AddressLine2)
	set("city", in.City)
	set("state", in.State)
	set("zip_code", in.ZipCode)
	set("opening_time", in.OpeningTime)
	set("closing_time", in.ClosingTime)
	if in.DeliveryRadius != nil {
		updates["delivery_radius"] = *in.DeliveryRadius
	}
	if in.MinimumOrder != nil {
		if in.MinimumOrder.IsNegative() {
			return nil, apperr.Validation(apperr.FieldError{Field: "minimumOrder", Message: "minimumOrder must not be negative"})
		}
		updates["minimum_order"] = *in.MinimumOrder
	}
	if in.IsOpen != nil {
		updates["is_open"] = *in.IsOpen
	}

	addressChanged := in.AddressLine1 != nil || in.AddressLine2 != nil || in.City != nil || in.State != nil || in.ZipCode != nil
	if in.Latitude != nil && in.Longitude != nil {
		updates["latitude"] = *in.Latitude
		updates["longitude"] = *in.Longitude
	} else if addressChanged {
		pick := func(v *string, cur string) string {
			if v != nil {
				return *v
			}
			return cur
		}
		lat, lng := locate(s.Geo, nil, nil,
			pick(in.AddressLine1, shop.AddressLine1), pick(in.AddressLine2, shop.AddressLine2),
			pick(in.City, shop.City), pick(in.State, shop.State), pick(in.ZipCode, shop.ZipCode))
		if lat != nil && lng != nil {
			updates["latitude"] = *lat
			updates["longitude"] = *lng
		}
	}

	if len(updates) > 0 {
		if err := s.Repo.Update(shop.ID, updates); err != nil {
			return nil, err
		}
	}
	return s.Repo.FindByID(shop.ID)
}

func (s *ShopService) SetImage(ownerID uint, path string) (*entity.ShopProfile, error) {
	shop, err := s.Mine(ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Update(shop.ID, map[string]any{"image": path}); err != nil {
		return nil, err
	}
	shop.Image = path
	return shop, nil
}

func (s *ShopService) Get(id uint) (*entity.ShopProfile, error) {
	shop, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("shop not found")
	}
	return shop, err
}

func (s *ShopService) List(search string) ([]entity.ShopProfile, error) {
	return s.Repo.List(strings.TrimSpace(search))
}

func (s *ShopService) Products(shopID uint) ([]entity.Product, error) {
	if _, err := s.Get(shopID); err != nil {
		return nil, err
	}
	return s.ProductRepo.FindByShop(shopID)
}

// Nearby lists open shops whose delivery radius covers the point. Without a
// point the buyer's default address is used.
func (s *ShopService) Nearby(buyerID uint, lat, lng *float64) ([]entity.ShopProfile, error) {
	if lat == nil || lng == nil {
		if buyerID == 0 {
			return nil, apperr.BadRequest("lat and lng are required")
		}
		addr, err := s.AddrRepo.FindDefault(buyerID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.BadRequest("no location given and no default address set")
		}
		if err != nil {
			return nil, err
		}
		lat, lng = addr.Coordinates()
		if lat == nil || lng == nil {
			return nil, apperr.BadRequest("default address has no coordinates")
		}
	}

	shops, err := s.Repo.ListLocated()
	if err != nil {
		return nil, err
	}
	return geo.FilterNearbyShops(geo.Point{Lat: *lat, Lng: *lng}, shops), nil
}

type ShopDashboard struct {
	Shop           *entity.ShopProfile          `json:"shop"`
	OrdersByStatus map[entity.OrderStatus]int64 `json:"ordersByStatus"`
	TotalOrders    int64                        `json:"totalOrders"`
	Revenue        decimal.Decimal              `json:"revenue"`
	ProductCount   int64                        `json:"productCount"`
	LowStockCount  int64                        `json:"lowStockCount"`
}

func (s *ShopService) Dashboard(ownerID uint) (*ShopDashboard, error) {
	shop, err := s.Mine(ownerID)
	if err != nil {
		return nil, err
	}

	counts, err := s.OrderRepo.CountByStatus(shop.ID)
	if err != nil {
		return nil, err
	}
	out := &ShopDashboard{Shop: shop, OrdersByStatus: map[entity.OrderStatus]int64{}}
	for _, st := range entity.OrderStatuses {
		if st != entity.StatusPlaced {
			out.OrdersByStatus[st] = 0
		}
	}
	for _, c := range counts {
		out.OrdersByStatus[c.Status] = c.Count
		out.TotalOrders += c.Count
	}

	if out.Revenue, err = s.OrderRepo.DeliveredRevenue(shop.ID); err != nil {
		return nil, err
	}
	if out.ProductCount, err = s.ProductRepo.CountByShop(shop.ID); err != nil {
		return nil, err
	}
	if out.LowStockCount, err = s.ProductRepo.CountLowStock(shop.ID, LowStockThreshold); err != nil {
		return nil, err
	}
	return out, nil
}
