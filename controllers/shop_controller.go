package controllers

import (
	"strconv"

	"github.com/avishkar-004/Grocery-Delivery-System-sub001/entity"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/pkg/resp"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/services"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/utils"

	"github.com/gin-gonic/gin"
)

type ShopController struct {
	Svc     *services.ShopService
	Uploads Uploads
}

func NewShopController(s *services.ShopService, uploads Uploads) *ShopController {
	return &ShopController{Svc: s, Uploads: uploads}
}

// GET /api/shops?search=
func (h *ShopController) List(c *gin.Context) {
	shops, err := h.Svc.List(c.Query("search"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "shops", shops)
}

func queryFloat(c *gin.Context, key string) (*float64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, false
	}
	return &v, true
}

// GET /api/shops/nearby?lat=&lng=
func (h *ShopController) Nearby(c *gin.Context) {
	lat, ok1 := queryFloat(c, "lat")
	lng, ok2 := queryFloat(c, "lng")
	if !ok1 || !ok2 {
		resp.BadRequest(c, "lat and lng must be numbers")
		return
	}

	var buyerID uint
	if utils.CurrentRole(c) == entity.RoleBuyer {
		buyerID = utils.CurrentUserID(c)
	}
	shops, err := h.Svc.Nearby(buyerID, lat, lng)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "nearby shops", shops)
}

// GET /api/shops/:id
func (h *ShopController) Detail(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid shop id")
		return
	}
	shop, err := h.Svc.Get(id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "shop", shop)
}

// GET /api/shops/:id/products
func (h *ShopController) Products(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid shop id")
		return
	}
	items, err := h.Svc.Products(id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "shop products", items)
}

// POST /api/shops
func (h *ShopController) Create(c *gin.Context) {
	var req services.ShopInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, err)
		return
	}
	shop, err := h.Svc.Create(utils.CurrentUserID(c), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, "shop profile created", shop)
}

// GET /api/shops/me
func (h *ShopController) Mine(c *gin.Context) {
	shop, err := h.Svc.Mine(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "shop profile", shop)
}

// PUT /api/shops/me
func (h *ShopController) UpdateMine(c *gin.Context) {
	var req services.ShopInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, err)
		return
	}
	shop, err := h.Svc.UpdateMine(utils.CurrentUserID(c), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "shop profile updated", shop)
}

// POST /api/shops/me/image (multipart "image")
func (h *ShopController) UploadImage(c *gin.Context) {
	uid := utils.CurrentUserID(c)
	if _, err := h.Svc.Mine(uid); err != nil {
		resp.Error(c, err)
		return
	}
	path, err := h.Uploads.saveImage(c, "shops")
	if err != nil {
		resp.Error(c, err)
		return
	}
	shop, err := h.Svc.SetImage(uid, path)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "shop image uploaded", shop)
}

// GET /api/shops/me/dashboard
func (h *ShopController) Dashboard(c *gin.Context) {
	out, err := h.Svc.Dashboard(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "dashboard", out)
}
