package repository

import (
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/entity"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

type ProductFilter struct {
	CategoryID uint
	ShopID     uint
	Search     string
	InStock    *bool
	Page       int
	Limit      int
}

func (f ProductFilter) scope(db *gorm.DB) *gorm.DB {
	if f.CategoryID != 0 {
		db = db.Where("category_id = ?", f.CategoryID)
	}
	if f.ShopID != 0 {
		db = db.Where("shop_id = ?", f.ShopID)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		db = db.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	if f.InStock != nil {
		db = db.Where("in_stock = ?", *f.InStock)
	}
	return db
}

func (r *ProductRepository) List(f ProductFilter) ([]entity.Product, int64, error) {
	var total int64
	if err := r.DB.Model(&entity.Product{}).Scopes(f.scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []entity.Product
	err := r.DB.Scopes(f.scope).
		Preload("Category").
		Order("id DESC").
		Limit(f.Limit).Offset((f.Page - 1) * f.Limit).
		Find(&items).Error
	return items, total, err
}

func (r *ProductRepository) FindByID(id uint) (*entity.Product, error) {
	var p entity.Product
	if err := r.DB.Preload("Category").Preload("Shop").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) FindByShop(shopID uint) ([]entity.Product, error) {
	var items []entity.Product
	err := r.DB.Preload("Category").Where("shop_id = ?", shopID).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *ProductRepository) Create(p *entity.Product) error {
	return r.DB.Create(p).Error
}

func (r *ProductRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.Product{}).Where("id = ?", id).Updates(updates).Error
}

func (r *ProductRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.Product{}, id).Error
}

// ---------------- Stock (inside order transactions) ----------------

func (r *ProductRepository) GetTx(tx *gorm.DB, id uint) (*entity.Product, error) {
	var p entity.Product
	if err := tx.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// DecrementStock subtracts qty only while enough stock remains; reports whether a row changed.
func (r *ProductRepository) DecrementStock(tx *gorm.DB, id uint, qty int) (bool, error) {
	res := tx.Model(&entity.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *ProductRepository) MarkOutOfStockIfEmpty(tx *gorm.DB, id uint) error {
	return tx.Model(&entity.Product{}).
		Where("id = ? AND stock <= 0", id).
		Update("in_stock", false).Error
}

func (r *ProductRepository) RestoreStock(tx *gorm.DB, id uint, qty int) error {
	return tx.Model(&entity.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{"stock": gorm.Expr("stock + ?", qty), "in_stock": true}).Error
}

func (r *ProductRepository) UpdateRating(tx *gorm.DB, id uint, rating float64, count int) error {
	return tx.Model(&entity.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{"rating": rating, "review_count": count}).Error
}

// ---------------- Dashboard ----------------

func (r *ProductRepository) CountByShop(shopID uint) (int64, error) {
	var cnt int64
	err := r.DB.Model(&entity.Product{}).Where("shop_id = ?", shopID).Count(&cnt).Error
	return cnt, err
}

func (r *ProductRepository) CountLowStock(shopID uint, threshold int) (int64, error) {
	var cnt int64
	err := r.DB.Model(&entity.Product{}).
		Where("shop_id = ? AND stock <= ?", shopID, threshold).
		Count(&cnt).Error
	return cnt, err
}
