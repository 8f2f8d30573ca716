package services

import (
	"errors"
	"strings"

	"github.com/avishkar-004/Grocery-Delivery-System-sub001/entity"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/pkg/apperr"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/repository"

	"gorm.io/gorm"
)

// AddressService keeps exactly one default address per user with at least one address.
type AddressService struct {
	DB   *gorm.DB
	Repo *repository.AddressRepository
	Geo  Geocoder
}

func NewAddressService(db *gorm.DB, repo *repository.AddressRepository, geocoder Geocoder) *AddressService {
	return &AddressService{DB: db, Repo: repo, Geo: geocoder}
}

type AddressInput struct {
	Label        *string  `json:"label" binding:"omitempty,max=50"`
	AddressLine1 *string  `json:"addressLine1" binding:"omitempty,min=1,max=255"`
	AddressLine2 *string  `json:"addressLine2" binding:"omitempty,max=255"`
	City         *string  `json:"city" binding:"omitempty,min=1,max=100"`
	State        *string  `json:"state" binding:"omitempty,min=1,max=100"`
	ZipCode      *string  `json:"zipCode" binding:"omitempty,min=1,max=20"`
	IsDefault    *bool    `json:"isDefault"`
	Latitude     *float64 `json:"latitude" binding:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude" binding:"omitempty,longitude"`
}

func notFoundAddress(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("address not found")
	}
	return err
}

func (s *AddressService) List(userID uint) ([]entity.Address, error) {
	return s.Repo.ListForUser(userID)
}

func (s *AddressService) Get(userID, id uint) (*entity.Address, error) {
	a, err := s.Repo.FindForUser(s.DB, id, userID)
	if err != nil {
		return nil, notFoundAddress(err)
	}
	return a, nil
}

// Create stores a new address. The first address of a user is always the default.
func (s *AddressService) Create(userID uint, in AddressInput) (*entity.Address, error) {
	var missing []apperr.FieldError
	required := []struct {
		field string
		v     *string
	}{
		{"addressLine1", in.AddressLine1}, {"city", in.City}, {"state", in.State}, {"zipCode", in.ZipCode},
	}
	for _, r := range required {
		if str(r.v) == "" {
			missing = append(missing, apperr.FieldError{Field: r.field, Message: r.field + " is required"})
		}
	}
	if len(missing) > 0 {
		return nil, apperr.Validation(missing...)
	}

	a := &entity.Address{
		UserID:       userID,
		Label:        str(in.Label),
		AddressLine1: str(in.AddressLine1),
		AddressLine2: str(in.AddressLine2),
		City:         str(in.City),
		State:        str(in.State),
		ZipCode:      str(in.ZipCode),
		IsDefault:    in.IsDefault != nil && *in.IsDefault,
	}
	if a.Label == "" {
		a.Label = "Home"
	}
	a.Latitude, a.Longitude = locate(s.Geo, in.Latitude, in.Longitude,
		a.AddressLine1, a.AddressLine2, a.City, a.State, a.ZipCode)

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		n, err := s.Repo.CountForUser(tx, userID)
		if err != nil {
			return err
		}
		if n == 0 {
			a.IsDefault = true
		}
		if err := s.Repo.Create(tx, a); err != nil {
			return err
		}
		if a.IsDefault {
			return s.Repo.UnsetSiblingDefaults(tx, userID, a.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Update edits an address. isDefault=false on the current default is ignored
// so the user never ends up without one.
func (s *AddressService) Update(userID, id uint, in AddressInput) (*entity.Address, error) {
	current, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	next := *current
	set(&next.Label, in.Label)
	set(&next.AddressLine1, in.AddressLine1)
	set(&next.AddressLine2, in.AddressLine2)
	set(&next.City, in.City)
	set(&next.State, in.State)
	set(&next.ZipCode, in.ZipCode)
	for _, r := range []struct{ field, v string }{
		{"addressLine1", next.AddressLine1}, {"city", next.City}, {"state", next.State}, {"zipCode", next.ZipCode},
	} {
		if r.v == "" {
			return nil, apperr.Validation(apperr.FieldError{Field: r.field, Message: r.field + " is required"})
		}
	}

	if in.Latitude != nil && in.Longitude != nil {
		next.Latitude, next.Longitude = in.Latitude, in.Longitude
	} else if in.AddressLine1 != nil || in.AddressLine2 != nil || in.City != nil || in.State != nil || in.ZipCode != nil {
		if lat, lng := locate(s.Geo, nil, nil,
			next.AddressLine1, next.AddressLine2, next.City, next.State, next.ZipCode); lat != nil && lng != nil {
			next.Latitude, next.Longitude = lat, lng
		}
	}
	if in.IsDefault != nil && *in.IsDefault {
		next.IsDefault = true
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.Save(tx, &next); err != nil {
			return err
		}
		if next.IsDefault {
			return s.Repo.UnsetSiblingDefaults(tx, userID, next.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &next, nil
}

func (s *AddressService) SetDefault(userID, id uint) (*entity.Address, error) {
	var out *entity.Address
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		a, err := s.Repo.FindForUser(tx, id, userID)
		if err != nil {
			return notFoundAddress(err)
		}
		if err := s.Repo.SetDefault(tx, a.ID); err != nil {
			return err
		}
		if err := s.Repo.UnsetSiblingDefaults(tx, userID, a.ID); err != nil {
			return err
		}
		a.IsDefault = true
		out = a
		return nil
	})
	return out, err
}

// Delete soft-deletes an address; when it was the default, the newest remaining
// address becomes the default.
func (s *AddressService) Delete(userID, id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		a, err := s.Repo.FindForUser(tx, id, userID)
		if err != nil {
			return notFoundAddress(err)
		}
		if err := s.Repo.Delete(tx, a.ID); err != nil {
			return err
		}
		if !a.IsDefault {
			return nil
		}
		next, err := s.Repo.LatestForUser(tx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return s.Repo.SetDefault(tx, next.ID)
	})
}
