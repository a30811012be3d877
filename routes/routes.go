package routes

import (
	"net/http"

	"sabores/access"
	"sabores/configs"
	"sabores/controllers"
	"sabores/middlewares"
	"sabores/pkg/logger"
	"sabores/repository"
	"sabores/services"
	"sabores/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, l *logger.Logger) {
	utils.RegisterValidators()

	r.Use(middlewares.RequestLogger(l))
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins))
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	pmRepo := repository.NewPaymentMethodRepository(db)
	supportRepo := repository.NewSupportRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	menuSvc := services.NewMenuService(db, menuRepo, cartRepo)
	cartSvc := services.NewCartService(db, cartRepo, menuRepo)
	orderSvc := services.NewOrderService(db, orderRepo, menuRepo, cartRepo, l)
	orderAdminSvc := services.NewOrderAdminService(orderRepo, l)
	dashSvc := services.NewDashboardService(orderRepo)
	pmSvc := services.NewPaymentMethodService(db, pmRepo)
	supportSvc := services.NewSupportService(supportRepo, orderRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	adminCtrl := controllers.NewAdminController(authSvc)
	menuCtrl := controllers.NewMenuController(menuSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	adminOrderCtrl := controllers.NewAdminOrderController(orderAdminSvc, dashSvc)
	pmCtrl := controllers.NewPaymentMethodController(pmSvc)
	supportCtrl := controllers.NewSupportController(supportSvc)

	auth := middlewares.AuthMiddleware(cfg.JWTSecret)
	staff := middlewares.Require(access.Policy.CanManageOrders)
	catalog := middlewares.Require(access.Policy.CanMutateCatalog)
	users := middlewares.Require(access.Policy.CanManageUsers)

	api := r.Group("/api")

	// Auth (public)
	a := api.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.POST("/admin/login", authCtrl.AdminLogin)
	}
	// Auth (protected)
	aAuth := a.Group("", auth)
	{
		aAuth.GET("/me", authCtrl.Me)
		aAuth.PATCH("/me", authCtrl.UpdateMe)
	}

	// Menu (public)
	menu := api.Group("/menu")
	{
		menu.GET("/categories", menuCtrl.Categories)
		menu.GET("/items", menuCtrl.Items)
		menu.GET("/items/:id", menuCtrl.Item)
		menu.GET("/featured", menuCtrl.Featured)
	}
	// Menu (staff/admin)
	menuAdmin := menu.Group("/admin", auth, catalog)
	{
		menuAdmin.GET("/categories", menuCtrl.AdminCategories)
		menuAdmin.POST("/categories", menuCtrl.CreateCategory)
		menuAdmin.GET("/categories/:id", menuCtrl.GetCategory)
		menuAdmin.PUT("/categories/:id", menuCtrl.UpdateCategory)
		menuAdmin.DELETE("/categories/:id", menuCtrl.DeleteCategory)

		menuAdmin.GET("/items", menuCtrl.AdminItems)
		menuAdmin.POST("/items", menuCtrl.CreateItem)
		menuAdmin.POST("/items/bulk-update", menuCtrl.BulkUpdate)
		menuAdmin.GET("/items/:id", menuCtrl.Item)
		menuAdmin.PUT("/items/:id", menuCtrl.UpdateItem)
		menuAdmin.DELETE("/items/:id", menuCtrl.DeleteItem)
	}

	// Orders & cart (user)
	orders := api.Group("/orders", auth)
	{
		orders.GET("/cart", cartCtrl.Get)
		orders.DELETE("/cart", cartCtrl.Clear)
		orders.POST("/cart/add", cartCtrl.Add)
		orders.PUT("/cart/items/:id", cartCtrl.UpdateItem)
		orders.DELETE("/cart/items/:id", cartCtrl.RemoveItem)

		orders.GET("", orderCtrl.List)
		orders.POST("/create", orderCtrl.Create)
		orders.POST("/checkout", orderCtrl.Checkout)
		orders.GET("/:code", orderCtrl.Detail)
		orders.GET("/:code/status", orderCtrl.Status)
		orders.GET("/:code/qrcode", orderCtrl.QRCode)
	}
	// Orders (staff/admin)
	ordersAdmin := orders.Group("/admin", staff)
	{
		ordersAdmin.GET("", adminOrderCtrl.List)
		ordersAdmin.GET("/dashboard_stats", adminOrderCtrl.DashboardStats)
		ordersAdmin.GET("/:id", adminOrderCtrl.Detail)
		ordersAdmin.PATCH("/:id/update_status", adminOrderCtrl.UpdateStatus)
	}

	// Payment methods (user)
	pm := api.Group("/payment-methods", auth)
	{
		pm.GET("", pmCtrl.List)
		pm.POST("", pmCtrl.Create)
		pm.GET("/:id", pmCtrl.Get)
		pm.PUT("/:id", pmCtrl.Update)
		pm.DELETE("/:id", pmCtrl.Delete)
	}

	// Support
	support := api.Group("/support", auth)
	{
		support.GET("/tickets", supportCtrl.List)
		support.POST("/tickets", supportCtrl.Create)
		support.GET("/tickets/:id", supportCtrl.Detail)
		support.PATCH("/tickets/:id", supportCtrl.Update)
		support.GET("/tickets/:id/messages", supportCtrl.Messages)
		support.POST("/tickets/:id/messages", supportCtrl.PostMessage)
	}

	// Admin (admin only)
	admin := api.Group("/admin", auth, users)
	{
		admin.GET("/users", adminCtrl.ListUsers)
		admin.PATCH("/users/:id/role", adminCtrl.ChangeRole)
	}
}
