package repository

import (
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/entity"

	"gorm.io/gorm"
)

type ShopRepository struct {
	DB *gorm.DB
}

func NewShopRepository(db *gorm.DB) *ShopRepository {
	return &ShopRepository{DB: db}
}

func (r *ShopRepository) Create(shop *entity.ShopProfile) error {
	return r.DB.Create(shop).Error
}

func (r *ShopRepository) FindByID(id uint) (*entity.ShopProfile, error) {
	var shop entity.ShopProfile
	if err := r.DB.First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *ShopRepository) FindByUserID(userID uint) (*entity.ShopProfile, error) {
	var shop entity.ShopProfile
	if err := r.DB.Where("user_id = ?", userID).First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *ShopRepository) ExistsForUser(userID uint) (bool, error) {
	var cnt int64
	if err := r.DB.Model(&entity.ShopProfile{}).Where("user_id = ?", userID).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *ShopRepository) Update(shopID uint, updates map[string]any) error {
	return r.DB.Model(&entity.ShopProfile{}).Where("id = ?", shopID).Updates(updates).Error
}

// List returns shops by name, optionally filtered by a name/city search.
func (r *ShopRepository) List(search string) ([]entity.ShopProfile, error) {
	q := r.DB.Model(&entity.ShopProfile{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("shop_name LIKE ? OR city LIKE ?", like, like)
	}
	var shops []entity.ShopProfile
	err := q.Order("shop_name ASC").Find(&shops).Error
	return shops, err
}

// ListLocated returns shops that have coordinates.
func (r *ShopRepository) ListLocated() ([]entity.ShopProfile, error) {
	var shops []entity.ShopProfile
	err := r.DB.
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Find(&shops).Error
	return shops, err
}
