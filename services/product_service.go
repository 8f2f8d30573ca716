package services

import (
	"errors"
	"strings"

	"github.com/avishkar-004/Grocery-Delivery-System-sub001/entity"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/pkg/apperr"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/repository"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"

	"gorm.io/gorm"
)

type ProductService struct {
	Repo     *repository.ProductRepository
	ShopRepo *repository.ShopRepository
	CatRepo  *repository.CategoryRepository
}

func NewProductService(
	repo *repository.ProductRepository,
	shopRepo *repository.ShopRepository,
	catRepo *repository.CategoryRepository,
) *ProductService {
	return &ProductService{Repo: repo, ShopRepo: shopRepo, CatRepo: catRepo}
}

type ProductInput struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=150"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice"`
	Unit          *string          `json:"unit" binding:"omitempty,max=30"`
	Image         *string          `json:"image" binding:"omitempty,max=255"`
	CategoryID    *uint            `json:"categoryId" binding:"omitempty,gt=0"`
	Stock         *int             `json:"stock" binding:"omitempty,gte=0"`
	InStock       *bool            `json:"inStock"`
}

type ProductPage struct {
	Items []entity.Product `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

func (s *ProductService) List(f repository.ProductFilter) (*ProductPage, error) {
	f.Search = strings.TrimSpace(f.Search)
	items, total, err := s.Repo.List(f)
	if err != nil {
		return nil, err
	}
	return &ProductPage{Items: items, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

func (s *ProductService) Get(id uint) (*entity.Product, error) {
	p, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("product not found")
	}
	return p, err
}

func (s *ProductService) ownerShop(ownerID uint) (*entity.ShopProfile, error) {
	shop, err := s.ShopRepo.FindByUserID(ownerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Forbidden("create a shop profile first")
	}
	return shop, err
}

// Owned loads a product and checks it belongs to the owner's shop.
func (s *ProductService) Owned(ownerID, productID uint) (*entity.Product, error) {
	shop, err := s.ownerShop(ownerID)
	if err != nil {
		return nil, err
	}
	p, err := s.Get(productID)
	if err != nil {
		return nil, err
	}
	if p.ShopID != shop.ID {
		return nil, apperr.Forbidden("product belongs to another shop")
	}
	return p, nil
}

func (s *ProductService) checkCategory(id uint) error {
	if _, err := s.CatRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("category not found")
		}
		return err
	}
	return nil
}

func checkPrices(in ProductInput) error {
	var fields []apperr.FieldError
	if in.Price != nil && !in.Price.IsPositive() {
		fields = append(fields, apperr.FieldError{Field: "price", Message: "price must be greater than 0"})
	}
	if in.OriginalPrice != nil && in.OriginalPrice.IsNegative() {
		fields = append(fields, apperr.FieldError{Field: "originalPrice", Message: "originalPrice must not be negative"})
	}
	if len(fields) > 0 {
		return apperr.Validation(fields...)
	}
	return nil
}

func (s *ProductService) Mine(ownerID uint) ([]entity.Product, error) {
	shop, err := s.ownerShop(ownerID)
	if err != nil {
		return nil, err
	}
	return s.Repo.FindByShop(shop.ID)
}

// Create adds a product to the owner's shop. Positive stock always means in stock;
// with no stock the caller's inStock flag is kept (default true).
func (s *ProductService) Create(ownerID uint, in ProductInput) (*entity.Product, error) {
	var missing []apperr.FieldError
	if str(in.Name) == "" {
		missing = append(missing, apperr.FieldError{Field: "name", Message: "name is required"})
	}
	if in.Price == nil {
		missing = append(missing, apperr.FieldError{Field: "price", Message: "price is required"})
	}
	if in.CategoryID == nil {
		missing = append(missing, apperr.FieldError{Field: "categoryId", Message: "categoryId is required"})
	}
	if len(missing) > 0 {
		return nil, apperr.Validation(missing...)
	}
	if err := checkPrices(in); err != nil {
		return nil, err
	}

	shop, err := s.ownerShop(ownerID)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategory(*in.CategoryID); err != nil {
		return nil, err
	}

	p := &entity.Product{
		Name:        str(in.Name),
		Description: str(in.Description),
		Price:       *in.Price,
		Unit:        str(in.Unit),
		Image:       str(in.Image),
		CategoryID:  *in.CategoryID,
		ShopID:      shop.ID,
		InStock:     true,
	}
	if in.OriginalPrice != nil {
		p.OriginalPrice = *in.OriginalPrice
	}
	if in.Stock != nil {
		p.Stock = *in.Stock
	}
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
	if p.Stock > 0 {
		p.InStock = true
	}

	if err := s.Repo.Create(p); err != nil {
		return nil, err
	}
	return s.Get(p.ID)
}

func (s *ProductService) Update(ownerID, productID uint, in ProductInput) (*entity.Product, error) {
	p, err := s.Owned(ownerID, productID)
	if err != nil {
		return nil, err
	}
	if err := checkPrices(in); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperr.Validation(apperr.FieldError{Field: "name", Message: "name is required"})
		}
		updates["name"] = name
	}
	if in.Description != nil {
		updates["description"] = strings.TrimSpace(*in.Description)
	}
	if in.Price != nil {
		updates["price"] = *in.Price
	}
	if in.OriginalPrice != nil {
		updates["original_price"] = *in.OriginalPrice
	}
	if in.Unit != nil {
		updates["unit"] = strings.TrimSpace(*in.Unit)
	}
	if in.Image != nil {
		updates["image"] = strings.TrimSpace(*in.Image)
	}
	if in.CategoryID != nil && *in.CategoryID != p.CategoryID {
		if err := s.checkCategory(*in.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *in.CategoryID
	}
	if in.InStock != nil {
		updates["in_stock"] = *in.InStock
	}
	if in.Stock != nil {
		updates["stock"] = *in.Stock
		if *in.Stock > 0 {
			updates["in_stock"] = true
		}
	}

	if len(updates) > 0 {
		if err := s.Repo.Update(p.ID, updates); err != nil {
			return nil, err
		}
	}
	return s.Get(p.ID)
}

func (s *ProductService) Delete(ownerID, productID uint) error {
	p, err := s.Owned(ownerID, productID)
	if err != nil {
		return err
	}
	return s.Repo.Delete(p.ID)
}

func (s *ProductService) SetImage(ownerID, productID uint, path string) (*entity.Product, error) {
	p, err := s.Owned(ownerID, productID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Update(p.ID, map[string]any{"image": path}); err != nil {
		return nil, err
	}
	p.Image = path
	return p, nil
}

var exportHeaders = []string{
	"ID", "Name", "Category", "Price", "OriginalPrice", "Unit",
	"Stock", "InStock", "Rating", "ReviewCount", "UpdatedAt",
}

// Export builds a spreadsheet of the owner's products.
func (s *ProductService) Export(ownerID uint) (*xlsx.File, error) {
	products, err := s.Mine(ownerID)
	if err != nil {
		return nil, err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, err
	}

	header := sheet.AddRow()
	for _, h := range exportHeaders {
		header.AddCell().SetValue(h)
	}

	for _, p := range products {
		category := ""
		if p.Category != nil {
			category = p.Category.Name
		}
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(category)
		row.AddCell().SetValue(p.Price.StringFixed(2))
		row.AddCell().SetValue(p.OriginalPrice.StringFixed(2))
		row.AddCell().SetValue(p.Unit)
		row.AddCell().SetValue(p.Stock)
		row.AddCell().SetValue(p.InStock)
		row.AddCell().SetValue(p.Rating)
		row.AddCell().SetValue(p.ReviewCount)
		row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return file, nil
}
