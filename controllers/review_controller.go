package controllers

import (
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/pkg/resp"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/services"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/utils"

	"github.com/gin-gonic/gin"
)

type ReviewController struct{ Svc *services.ReviewService }

func NewReviewController(s *services.ReviewService) *ReviewController {
	return &ReviewController{Svc: s}
}

// GET /api/reviews/product/:productId?page=&limit=
func (h *ReviewController) ListForProduct(c *gin.Context) {
	productID, ok := utils.ParamID(c, "productId")
	if !ok {
		resp.BadRequest(c, "invalid product id")
		return
	}
	page, limit := utils.Paging(c, 10, 50)
	out, err := h.Svc.ListForProduct(productID, page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "product reviews", out)
}

// GET /api/reviews/my
func (h *ReviewController) ListMine(c *gin.Context) {
	items, err := h.Svc.ListMine(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "my reviews", items)
}

// POST /api/reviews
func (h *ReviewController) Create(c *gin.Context) {
	var req services.CreateReviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, err)
		return
	}
	rev, err := h.Svc.Create(utils.CurrentUserID(c), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, "review created", rev)
}

// PUT /api/reviews/:id
func (h *ReviewController) Update(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid review id")
		return
	}
	var req services.UpdateReviewInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, err)
		return
	}
	rev, err := h.Svc.Update(utils.CurrentUserID(c), id, req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "review updated", rev)
}

// DELETE /api/reviews/:id
func (h *ReviewController) Delete(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid review id")
		return
	}
	if err := h.Svc.Delete(utils.CurrentUserID(c), id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "review deleted", nil)
}
