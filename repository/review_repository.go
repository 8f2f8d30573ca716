package repository

import (
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/entity"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) Create(tx *gorm.DB, rev *entity.ProductReview) error {
	return tx.Create(rev).Error
}

func (r *ReviewRepository) Save(tx *gorm.DB, rev *entity.ProductReview) error {
	return tx.Save(rev).Error
}

func (r *ReviewRepository) Delete(tx *gorm.DB, id uint) error {
	return tx.Delete(&entity.ProductReview{}, id).Error
}

func (r *ReviewRepository) FindByID(id uint) (*entity.ProductReview, error) {
	var rev entity.ProductReview
	if err := r.DB.First(&rev, id).Error; err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *ReviewRepository) ExistsForUserProduct(userID, productID uint) (bool, error) {
	var cnt int64
	err := r.DB.Model(&entity.ProductReview{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&cnt).Error
	return cnt > 0, err
}

// Ratings reads every rating of a product; used to recompute the mean.
func (r *ReviewRepository) Ratings(tx *gorm.DB, productID uint) ([]int, error) {
	var ratings []int
	err := tx.Model(&entity.ProductReview{}).
		Where("product_id = ?", productID).
		Pluck("rating", &ratings).Error
	return ratings, err
}

func (r *ReviewRepository) ListForProduct(productID uint, limit, offset int) ([]entity.ProductReview, int64, error) {
	var total int64
	if err := r.DB.Model(&entity.ProductReview{}).Where("product_id = ?", productID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []entity.ProductReview
	err := r.DB.Preload("User").
		Where("product_id = ?", productID).
		Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&items).Error
	return items, total, err
}

func (r *ReviewRepository) ListForUser(userID uint) ([]entity.ProductReview, error) {
	var items []entity.ProductReview
	err := r.DB.Where("user_id = ?", userID).Order("id DESC").Find(&items).Error
	return items, err
}
