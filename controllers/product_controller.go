package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/avishkar-004/Grocery-Delivery-System-sub001/pkg/resp"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/repository"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/services"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/utils"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	Svc     *services.ProductService
	Uploads Uploads
}

func NewProductController(s *services.ProductService, uploads Uploads) *ProductController {
	return &ProductController{Svc: s, Uploads: uploads}
}

func queryUint(c *gin.Context, key string) uint {
	n, _ := strconv.ParseUint(c.Query(key), 10, 64)
	return uint(n)
}

// GET /api/products?category=&shop=&search=&inStock=&page=&limit=
func (h *ProductController) List(c *gin.Context) {
	page, limit := utils.Paging(c, 20, 100)
	f := repository.ProductFilter{
		CategoryID: queryUint(c, "category"),
		ShopID:     queryUint(c, "shop"),
		Search:     c.Query("search"),
		Page:       page,
		Limit:      limit,
	}
	if raw := c.Query("inStock"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			resp.BadRequest(c, "inStock must be true or false")
			return
		}
		f.InStock = &v
	}

	out, err := h.Svc.List(f)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "products", out)
}

// GET /api/products/:id
func (h *ProductController) Detail(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid product id")
		return
	}
	p, err := h.Svc.Get(id)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "product", p)
}

// GET /api/products/mine
func (h *ProductController) Mine(c *gin.Context) {
	items, err := h.Svc.Mine(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "my products", items)
}

// POST /api/products
func (h *ProductController) Create(c *gin.Context) {
	var req services.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, err)
		return
	}
	p, err := h.Svc.Create(utils.CurrentUserID(c), req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, "product created", p)
}

// PUT /api/products/:id
func (h *ProductController) Update(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid product id")
		return
	}
	var req services.ProductInput
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Error(c, err)
		return
	}
	p, err := h.Svc.Update(utils.CurrentUserID(c), id, req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "product updated", p)
}

// DELETE /api/products/:id
func (h *ProductController) Delete(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid product id")
		return
	}
	if err := h.Svc.Delete(utils.CurrentUserID(c), id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "product deleted", nil)
}

// POST /api/products/:id/image (multipart "image")
func (h *ProductController) UploadImage(c *gin.Context) {
	id, ok := utils.ParamID(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid product id")
		return
	}
	uid := utils.CurrentUserID(c)
	if _, err := h.Svc.Owned(uid, id); err != nil {
		resp.Error(c, err)
		return
	}
	path, err := h.Uploads.saveImage(c, "products")
	if err != nil {
		resp.Error(c, err)
		return
	}
	p, err := h.Svc.SetImage(uid, id, path)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, "product image uploaded", p)
}

// GET /api/products/export
func (h *ProductController) Export(c *gin.Context) {
	file, err := h.Svc.Export(utils.CurrentUserID(c))
	if err != nil {
		resp.Error(c, err)
		return
	}

	name := fmt.Sprintf("products-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+name)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Transfer-Encoding", "binary")
	c.Header("Expires", "0")
	if err := file.Write(c.Writer); err != nil {
		resp.Error(c, err)
	}
}
