package routes

import (
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/configs"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/controllers"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/middlewares"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/repository"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/services"
	"github.com/avishkar-004/Grocery-Delivery-System-sub001/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Options carries the optional collaborators built in main.
type Options struct {
	Hub      *ws.OrderHub // nil disables /ws/orders
	Events   services.OrderPublisher
	Geocoder services.Geocoder
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, opt Options) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"success": true, "message": "ok"}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	shopRepo := repository.NewShopRepository(db)
	catRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	addrRepo := repository.NewAddressRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	shopSvc := services.NewShopService(shopRepo, productRepo, orderRepo, addrRepo, opt.Geocoder)
	catSvc := services.NewCategoryService(catRepo)
	productSvc := services.NewProductService(productRepo, shopRepo, catRepo)
	addrSvc := services.NewAddressService(db, addrRepo, opt.Geocoder)
	orderSvc := services.NewOrderService(db, orderRepo, productRepo, addrRepo, shopRepo, opt.Events)
	reviewSvc := services.NewReviewService(db, reviewRepo, productRepo)

	// Controllers
	uploads := controllers.Uploads{Dir: cfg.UploadDir, MaxSize: cfg.MaxFileSize}
	authCtrl := controllers.NewAuthController(authSvc)
	shopCtrl := controllers.NewShopController(shopSvc, uploads)
	catCtrl := controllers.NewCategoryController(catSvc)
	productCtrl := controllers.NewProductController(productSvc, uploads)
	addrCtrl := controllers.NewAddressController(addrSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	reviewCtrl := controllers.NewReviewController(reviewSvc)

	auth := middlewares.AuthMiddleware(cfg.JWTSecret)
	owner := middlewares.IsOwner()
	buyer := middlewares.IsBuyer()

	api := r.Group("/api")

	// Auth
	a := api.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.GET("/me", auth, authCtrl.Me)
	}

	// Users
	u := api.Group("/users", auth)
	{
		u.GET("/profile", authCtrl.Me)
		u.PUT("/profile", authCtrl.UpdateProfile)
		u.PUT("/password", authCtrl.ChangePassword)
	}

	// Shops
	s := api.Group("/shops")
	{
		s.GET("", shopCtrl.List)
		s.GET("/nearby", auth, shopCtrl.Nearby)
		s.POST("", auth, owner, shopCtrl.Create)
		s.GET("/me", auth, owner, shopCtrl.Mine)
		s.PUT("/me", auth, owner, shopCtrl.UpdateMine)
		s.POST("/me/image", auth, owner, shopCtrl.UploadImage)
		s.GET("/me/dashboard", auth, owner, shopCtrl.Dashboard)
		s.GET("/:id", shopCtrl.Detail)
		s.GET("/:id/products", shopCtrl.Products)
	}

	// Categories
	cat := api.Group("/categories")
	{
		cat.GET("", catCtrl.List)
		cat.GET("/:id", catCtrl.Detail)
		cat.POST("", auth, owner, catCtrl.Create)
		cat.PUT("/:id", auth, owner, catCtrl.Update)
		cat.DELETE("/:id", auth, owner, catCtrl.Delete)
	}

	// Products
	p := api.Group("/products")
	{
		p.GET("", productCtrl.List)
		p.GET("/mine", auth, owner, productCtrl.Mine)
		p.GET("/export", auth, owner, productCtrl.Export)
		p.GET("/:id", productCtrl.Detail)
		p.POST("", auth, owner, productCtrl.Create)
		p.PUT("/:id", auth, owner, productCtrl.Update)
		p.DELETE("/:id", auth, owner, productCtrl.Delete)
		p.POST("/:id/image", auth, owner, productCtrl.UploadImage)
	}

	// Addresses
	ad := api.Group("/addresses", auth)
	{
		ad.GET("", addrCtrl.List)
		ad.GET("/:id", addrCtrl.Detail)
		ad.POST("", addrCtrl.Create)
		ad.PUT("/:id", addrCtrl.Update)
		ad.PUT("/:id/default", addrCtrl.SetDefault)
		ad.DELETE("/:id", addrCtrl.Delete)
	}

	// Orders
	o := api.Group("/orders", auth)
	{
		o.POST("", buyer, orderCtrl.Place)
		o.GET("/my", buyer, orderCtrl.ListMine)
		o.PUT("/:id/cancel", buyer, orderCtrl.Cancel)

		o.GET("/nearby", owner, orderCtrl.Nearby)
		o.GET("/shop", owner, orderCtrl.ListForShop)
		o.PUT("/:id/accept", owner, orderCtrl.Accept)
		o.PUT("/:id/status", owner, orderCtrl.UpdateStatus)

		o.GET("/:id", orderCtrl.Detail)
	}

	// Reviews
	rv := api.Group("/reviews")
	{
		rv.GET("/product/:productId", reviewCtrl.ListForProduct)
		rv.GET("/my", auth, reviewCtrl.ListMine)
		rv.POST("", auth, buyer, reviewCtrl.Create)
		rv.PUT("/:id", auth, reviewCtrl.Update)
		rv.DELETE("/:id", auth, reviewCtrl.Delete)
	}

	// Live order events
	if opt.Hub != nil {
		r.GET("/ws/orders", middlewares.WSAuthMiddleware(cfg.JWTSecret), opt.Hub.HandleWebSocket)
	}

	r.NoRoute(middlewares.NotFound())
}
