package services

import (
	"errors"
	"math"
	"strings"

	"github.com/avishkar-004/Grocery-Delivery-System-sub001/entity"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/pkg/apperr"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/repository"

	"gorm.io/gorm"
)

type ReviewService struct {
	DB          *gorm.DB
	Repo        *repository.ReviewRepository
	ProductRepo *repository.ProductRepository
}

func NewReviewService(db *gorm.DB, repo *repository.ReviewRepository, productRepo *repository.ProductRepository) *ReviewService {
	return &ReviewService{DB: db, Repo: repo, ProductRepo: productRepo}
}

type CreateReviewInput struct {
	ProductID uint   `json:"productId" binding:"required,gt=0"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment" binding:"omitempty,max=2000"`
}

type UpdateReviewInput struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty,max=2000"`
}

type ProductReviews struct {
	Items       []entity.ProductReview `json:"items"`
	Total       int64                  `json:"total"`
	Rating      float64                `json:"rating"`
	ReviewCount int                    `json:"reviewCount"`
	Page        int                    `json:"page"`
	Limit       int                    `json:"limit"`
}

// AverageRating is the mean of ratings rounded to one decimal, 0 when empty.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return math.Round(float64(sum)/float64(len(ratings))*10) / 10
}

// recompute refreshes the product's rating and review count inside tx.
func (s *ReviewService) recompute(tx *gorm.DB, productID uint) error {
	ratings, err := s.Repo.Ratings(tx, productID)
	if err != nil {
		return err
	}
	return s.ProductRepo.UpdateRating(tx, productID, AverageRating(ratings), len(ratings))
}

func (s *ReviewService) product(id uint) (*entity.Product, error) {
	p, err := s.ProductRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("product not found")
	}
	return p, err
}

func (s *ReviewService) ListForProduct(productID uint, page, limit int) (*ProductReviews, error) {
	p, err := s.product(productID)
	if err != nil {
		return nil, err
	}
	items, total, err := s.Repo.ListForProduct(productID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return &ProductReviews{
		Items:       items,
		Total:       total,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		Page:        page,
		Limit:       limit,
	}, nil
}

func (s *ReviewService) ListMine(userID uint) ([]entity.ProductReview, error) {
	return s.Repo.ListForUser(userID)
}

func (s *ReviewService) Create(userID uint, in CreateReviewInput) (*entity.ProductReview, error) {
	if _, err := s.product(in.ProductID); err != nil {
		return nil, err
	}
	exists, err := s.Repo.ExistsForUserProduct(userID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("you have already reviewed this product")
	}

	rev := &entity.ProductReview{
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
		ProductID: in.ProductID,
		UserID:    userID,
	}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Create(tx, rev); err != nil {
			return err
		}
		return s.recompute(tx, rev.ProductID)
	})
	if err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *ReviewService) authored(userID, id uint) (*entity.ProductReview, error) {
	rev, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("review not found")
	}
	if err != nil {
		return nil, err
	}
	if rev.UserID != userID {
		return nil, apperr.Forbidden("you can only modify your own reviews")
	}
	return rev, nil
}

func (s *ReviewService) Update(userID, id uint, in UpdateReviewInput) (*entity.ProductReview, error) {
	rev, err := s.authored(userID, id)
	if err != nil {
		return nil, err
	}
	if in.Rating != nil {
		rev.Rating = *in.Rating
	}
	if in.Comment != nil {
		rev.Comment = strings.TrimSpace(*in.Comment)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Save(tx, rev); err != nil {
			return err
		}
		return s.recompute(tx, rev.ProductID)
	})
	if err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *ReviewService) Delete(userID, id uint) error {
	rev, err := s.authored(userID, id)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Delete(tx, rev.ID); err != nil {
			return err
		}
		return s.recompute(tx, rev.ProductID)
	})
}
