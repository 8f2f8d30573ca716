package controllers

import (
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/pkg/resp"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/services"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/utils"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthController struct{ Svc *services.AuthService }

func NewAuthController(s *services.AuthService) *AuthController { return &AuthController{Svc: s} }

// POST /api/auth/register
func (h *AuthController) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, err)
		return
	}
	user, err := h.Svc.Register(req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, "user registered successfully", user)
}

// POST /api/auth/login
func (h *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, err)
		return
	}
	token, user, err := h.Svc.Login(req.Email, req.Password)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "login successful", gin.H{"token": token, "user": user})
}

// GET /api/auth/me, GET /api/users/profile
func (h *AuthController) Me(c *gin.Context) {
	user, err := h.Svc.GetProfile(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "profile", user)
}

// PUT /api/users/profile
func (h *AuthController) UpdateProfile(c *gin.Context) {
	var req services.UpdateProfileInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, err)
		return
	}
	user, err := h.Svc.UpdateProfile(utils.CurrentUserID(c), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "profile updated", user)
}

// PUT /api/users/password
func (h *AuthController) ChangePassword(c *gin.Context) {
	var req services.ChangePasswordInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, err)
		return
	}
	if err := h.Svc.ChangePassword(utils.CurrentUserID(c), req); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "password changed", nil)
}
