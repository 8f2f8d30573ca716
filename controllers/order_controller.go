package controllers

import (
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/entity"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/pkg/resp"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/services"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/utils"

	"github.com/gin-gonic/gin"
)

type UpdateStatusRequest struct {
	Status entity.OrderStatus `json:"status" binding:"required"`
}

type OrderController struct{ Svc *services.OrderService }

func NewOrderController(s *services.OrderService) *OrderController { return &OrderController{Svc: s} }

// ===== Buyer =====

// POST /api/orders
func (h *OrderController) Place(c *gin.Context) {
	var req services.PlaceOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, err)
		return
	}
	o, err := h.Svc.Place(utils.CurrentUserID(c), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, "order placed successfully", o)
}

// GET /api/orders/my?status=
func (h *OrderController) ListMine(c *gin.Context) {
	items, err := h.Svc.ListMine(utils.CurrentUserID(c), entity.OrderStatus(c.Query("status")))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "my orders", items)
}

// PUT /api/orders/:id/cancel
func (h *OrderController) Cancel(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid order id")
		return
	}
	o, err := h.Svc.Cancel(utils.CurrentUserID(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "order cancelled", o)
}

// ===== Owner =====

// GET /api/orders/nearby
func (h *OrderController) Nearby(c *gin.Context) {
	items, err := h.Svc.Nearby(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "nearby orders", items)
}

// GET /api/orders/shop?status=&page=&limit=
func (h *OrderController) ListForShop(c *gin.Context) {
	page, limit := utils.Paging(c, 20, 200)
	out, err := h.Svc.ListForShop(utils.CurrentUserID(c), entity.OrderStatus(c.Query("status")), page, limit)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "shop orders", out)
}

// PUT /api/orders/:id/accept
func (h *OrderController) Accept(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid order id")
		return
	}
	o, err := h.Svc.Accept(utils.CurrentUserID(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "order accepted", o)
}

// PUT /api/orders/:id/status
func (h *OrderController) UpdateStatus(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid order id")
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, err)
		return
	}
	o, err := h.Svc.UpdateStatus(utils.CurrentUserID(c), id, req.Status)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "order status updated", o)
}

// ===== Both =====

// GET /api/orders/:id
func (h *OrderController) Detail(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid order id")
		return
	}
	o, err := h.Svc.Get(utils.CurrentUserID(c), utils.CurrentRole(c), id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "order", o)
}
