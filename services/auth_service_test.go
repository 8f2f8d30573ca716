package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/avishkar-004/Grocery-Delivery-System-sub001/entity"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/pkg/apperr"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/repository"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_RegisterLoginProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), "test-secret", time.Hour)

	user, err := svc.Register(RegisterInput{Name: " Ann ", Email: "Ann@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", user.Email)
	assert.Equal(t, "Ann", user.Name)
	assert.Equal(t, entity.RoleBuyer, user.Role)
	assert.NotEqual(t, "secret1", user.Password)

	_, err = svc.Register(RegisterInput{Name: "Dup", Email: "ann@example.com", Password: "secret1"})
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(err))

	token, logged, err := svc.Login("ANN@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	claims, err := utils.ParseToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, entity.RoleBuyer, claims.Role)

	_, _, err = svc.Login("ann@example.com", "wrong")
	assert.Equal(t, http.StatusUnauthorized, apperr.StatusOf(err))
	_, _, err = svc.Login("nobody@example.com", "secret1")
	assert.Equal(t, http.StatusUnauthorized, apperr.StatusOf(err))

	updated, err := svc.UpdateProfile(user.ID, UpdateProfileInput{Phone: ptr("555-0100")})
	require.NoError(t, err)
	assert.Equal(t, "555-0100", updated.Phone)
	assert.Equal(t, "Ann", updated.Name)

	err = svc.ChangePassword(user.ID, ChangePasswordInput{CurrentPassword: "nope", NewPassword: "secret2"})
	assert.Equal(t, http.StatusUnauthorized, apperr.StatusOf(err))
	require.NoError(t, svc.ChangePassword(user.ID, ChangePasswordInput{CurrentPassword: "secret1", NewPassword: "secret2"}))
	_, _, err = svc.Login("ann@example.com", "secret2")
	assert.NoError(t, err)

	_, err = svc.GetProfile(9999)
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(err))
}

func TestAuth_RegisterOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), "s", time.Hour)

	u, err := svc.Register(RegisterInput{Name: "Olga", Email: "olga@example.com", Password: "secret1", Role: entity.RoleOwner})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleOwner, u.Role)
}
