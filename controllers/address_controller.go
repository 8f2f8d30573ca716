package controllers

import (
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/pkg/resp"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/services"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/utils"

	"github.com/gin-gonic/gin"
)

type AddressController struct{ Svc *services.AddressService }

func NewAddressController(s *services.AddressService) *AddressController {
	return &AddressController{Svc: s}
}

// GET /api/addresses
func (h *AddressController) List(c *gin.Context) {
	items, err := h.Svc.List(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "addresses", items)
}

// GET /api/addresses/:id
func (h *AddressController) Detail(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid address id")
		return
	}
	a, err := h.Svc.Get(utils.CurrentUserID(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "address", a)
}

// POST /api/addresses
func (h *AddressController) Create(c *gin.Context) {
	var req services.AddressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, err)
		return
	}
	a, err := h.Svc.Create(utils.CurrentUserID(c), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, "address created", a)
}

// PUT /api/addresses/:id
func (h *AddressController) Update(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid address id")
		return
	}
	var req services.AddressInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, err)
		return
	}
	a, err := h.Svc.Update(utils.CurrentUserID(c), id, req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "address updated", a)
}

// PUT /api/addresses/:id/default
func (h *AddressController) SetDefault(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid address id")
		return
	}
	a, err := h.Svc.SetDefault(utils.CurrentUserID(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "default address set", a)
}

// DELETE /api/addresses/:id
func (h *AddressController) Delete(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid address id")
		return
	}
	if err := h.Svc.Delete(utils.CurrentUserID(c), id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "address deleted", nil)
}
