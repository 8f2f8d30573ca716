package controllers

import (
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/pkg/resp"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/services"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/utils"

	"github.com/gin-gonic/gin"
)

type CategoryController struct{ Svc *services.CategoryService }

func NewCategoryController(s *services.CategoryService) *CategoryController {
	return &CategoryController{Svc: s}
}

// GET /api/categories
func (h *CategoryController) List(c *gin.Context) {
	items, err := h.Svc.List()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "categories", items)
}

// GET /api/categories/:id
func (h *CategoryController) Detail(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid category id")
		return
	}
	cat, err := h.Svc.Get(id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "category", cat)
}

// POST /api/categories
func (h *CategoryController) Create(c *gin.Context) {
	var req services.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, err)
		return
	}
	cat, err := h.Svc.Create(req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, "category created", cat)
}

// PUT /api/categories/:id
func (h *CategoryController) Update(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid category id")
		return
	}
	var req services.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, err)
		return
	}
	cat, err := h.Svc.Update(id, req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "category updated", cat)
}

// DELETE /api/categories/:id
func (h *CategoryController) Delete(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid category id")
		return
	}
	if err := h.Svc.Delete(id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "category deleted", nil)
}
