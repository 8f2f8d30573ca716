package repository

import (
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/entity"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) FindAll() ([]entity.Category, error) {
	var cats []entity.Category
	err := r.DB.Order("name ASC").Find(&cats).Error
	return cats, err
}

func (r *CategoryRepository) FindByID(id uint) (*entity.Category, error) {
	var cat entity.Category
	if err := r.DB.First(&cat, id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

// CountByName counts categories named name, excluding exceptID.
func (r *CategoryRepository) CountByName(name string, exceptID uint) (int64, error) {
	var cnt int64
	q := r.DB.Model(&entity.Category{}).Where("name = ?", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	err := q.Count(&cnt).Error
	return cnt, err
}

func (r *CategoryRepository) Create(cat *entity.Category) error {
	return r.DB.Create(cat).Error
}

func (r *CategoryRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.Category{}).Where("id = ?", id).Updates(updates).Error
}

func (r *CategoryRepository) Delete(id uint) error {
	// hard delete so the unique name can be reused
	return r.DB.Unscoped().Delete(&entity.Category{}, id).Error
}

func (r *CategoryRepository) CountProducts(id uint) (int64, error) {
	var cnt int64
	err := r.DB.Model(&entity.Product{}).Where("category_id = ?", id).Count(&cnt).Error
	return cnt, err
}
