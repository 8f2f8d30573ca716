package services

import (
	"errors"
	"strings"

	"github.com/avishkar-004/Grocery-Delivery-System-sub001/entity"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/pkg/apperr"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/repository"

	"gorm.io/gorm"
)

type CategoryService struct {
	Repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{Repo: repo}
}

type CategoryInput struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	Image       *string `json:"image" binding:"omitempty,max=255"`
}

func (s *CategoryService) List() ([]entity.Category, error) {
	return s.Repo.FindAll()
}

func (s *CategoryService) Get(id uint) (*entity.Category, error) {
	cat, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("category not found")
	}
	return cat, err
}

func (s *CategoryService) ensureUniqueName(name string, exceptID uint) error {
	n, err := s.Repo.CountByName(name, exceptID)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.Conflict("category name already exists")
	}
	return nil
}

func (s *CategoryService) Create(in CategoryInput) (*entity.Category, error) {
	name := str(in.Name)
	if name == "" {
		return nil, apperr.Validation(apperr.FieldError{Field: "name", Message: "name is required"})
	}
	if err := s.ensureUniqueName(name, 0); err != nil {
		return nil, err
	}

	cat := &entity.Category{Name: name, Description: str(in.Description), Image: str(in.Image)}
	if err := s.Repo.Create(cat); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("category name already exists")
		}
		return nil, err
	}
	return cat, nil
}

func (s *CategoryService) Update(id uint, in CategoryInput) (*entity.Category, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apperr.Validation(apperr.FieldError{Field: "name", Message: "name is required"})
		}
		if err := s.ensureUniqueName(name, id); err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if in.Description != nil {
		updates["description"] = strings.TrimSpace(*in.Description)
	}
	if in.Image != nil {
		updates["image"] = strings.TrimSpace(*in.Image)
	}
	if len(updates) > 0 {
		if err := s.Repo.Update(id, updates); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperr.Conflict("category name already exists")
			}
			return nil, err
		}
	}
	return s.Get(id)
}

// Delete removes a category that no product references.
func (s *CategoryService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	n, err := s.Repo.CountProducts(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return apperr.BadRequest("category still has products")
	}
	return s.Repo.Delete(id)
}
