package repository

import (
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/entity"

	"gorm.io/gorm"
)

type AddressRepository struct {
	DB *gorm.DB
}

func NewAddressRepository(db *gorm.DB) *AddressRepository {
	return &AddressRepository{DB: db}
}

func (r *AddressRepository) ListForUser(userID uint) ([]entity.Address, error) {
	var items []entity.Address
	err := r.DB.Where("user_id = ?", userID).
		Order("is_default DESC, id DESC").
		Find(&items).Error
	return items, err
}

func (r *AddressRepository) FindForUser(tx *gorm.DB, id, userID uint) (*entity.Address, error) {
	var a entity.Address
	if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AddressRepository) FindDefault(userID uint) (*entity.Address, error) {
	var a entity.Address
	if err := r.DB.Where("user_id = ? AND is_default = ?", userID, true).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AddressRepository) CountForUser(tx *gorm.DB, userID uint) (int64, error) {
	var cnt int64
	err := tx.Model(&entity.Address{}).Where("user_id = ?", userID).Count(&cnt).Error
	return cnt, err
}

func (r *AddressRepository) Create(tx *gorm.DB, a *entity.Address) error {
	return tx.Create(a).Error
}

func (r *AddressRepository) Save(tx *gorm.DB, a *entity.Address) error {
	return tx.Save(a).Error
}

func (r *AddressRepository) Delete(tx *gorm.DB, id uint) error {
	return tx.Delete(&entity.Address{}, id).Error
}

// UnsetSiblingDefaults clears is_default on every other address of the user.
func (r *AddressRepository) UnsetSiblingDefaults(tx *gorm.DB, userID, keepID uint) error {
	return tx.Model(&entity.Address{}).
		Where("user_id = ? AND id <> ? AND is_default = ?", userID, keepID, true).
		Update("is_default", false).Error
}

func (r *AddressRepository) SetDefault(tx *gorm.DB, id uint) error {
	return tx.Model(&entity.Address{}).Where("id = ?", id).Update("is_default", true).Error
}

// LatestForUser returns the most recently created address, or gorm.ErrRecordNotFound.
func (r *AddressRepository) LatestForUser(tx *gorm.DB, userID uint) (*entity.Address, error) {
	var a entity.Address
	if err := tx.Where("user_id = ?", userID).Order("id DESC").First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}
