package router

import (
	"github.com/gin-gonic/gin"
	"github.com/ikkim/shop-backend/config"
	"github.com/ikkim/shop-backend/internal/app/controller"
	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/internal/middleware"
)

type Router struct {
	authController                 *controller.AuthController
	userController                 *controller.UserController
	unregisteredCustomerController *controller.UnregisteredCustomerController
	deliveryTypeController         *controller.DeliveryTypeController
	productTypeController          *controller.ProductTypeController
	productController              *controller.ProductController
	orderController                *controller.OrderController
	authMiddleware                 *middleware.AuthMiddleware
	config                         *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	userController *controller.UserController,
	unregisteredCustomerController *controller.UnregisteredCustomerController,
	deliveryTypeController *controller.DeliveryTypeController,
	productTypeController *controller.ProductTypeController,
	productController *controller.ProductController,
	orderController *controller.OrderController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:                 authController,
		userController:                 userController,
		unregisteredCustomerController: unregisteredCustomerController,
		deliveryTypeController:         deliveryTypeController,
		productTypeController:          productTypeController,
		productController:              productController,
		orderController:                orderController,
		authMiddleware:                 authMiddleware,
		config:                         cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORS(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "shop API is running",
		})
	})

	staff := r.authMiddleware.RequireAccess(model.AccessManager, model.AccessAdministrator)
	admin := r.authMiddleware.RequireAccess(model.AccessAdministrator)
	authenticated := r.authMiddleware.Authenticate()
	optional := r.authMiddleware.OptionalAuthenticate()

	v2 := router.Group("/api/v2")
	{
		v2.POST("/login", r.authController.Login)
		v2.POST("/ping/:userId", r.authController.Ping)
		if r.config.Redis.Enabled() {
			v2.POST("/logout", authenticated, r.authController.Logout)
		}

		deliveryTypes := v2.Group("/delivery_types")
		{
			deliveryTypes.GET("", r.deliveryTypeController.GetAll)
			deliveryTypes.GET("/:id", r.deliveryTypeController.GetByID)
			deliveryTypes.POST("", authenticated, staff, r.deliveryTypeController.Create)
			deliveryTypes.PATCH("/:id", authenticated, staff, r.deliveryTypeController.Update)
			deliveryTypes.DELETE("/:id", authenticated, staff, r.deliveryTypeController.Delete)
		}

		productTypes := v2.Group("/product_types")
		{
			productTypes.GET("", r.productTypeController.GetAll)
			productTypes.GET("/:id", r.productTypeController.GetByID)
			productTypes.POST("", authenticated, staff, r.productTypeController.Create)
			productTypes.PATCH("/:id", authenticated, staff, r.productTypeController.Update)
			productTypes.DELETE("/:id", authenticated, staff, r.productTypeController.Delete)
		}

		products := v2.Group("/products")
		{
			products.GET("", r.productController.GetAll)
			products.GET("/:id", r.productController.GetByID)
			products.POST("", authenticated, staff, r.productController.Create)
			products.PATCH("/:id", authenticated, staff, r.productController.Update)
			products.DELETE("/:id", authenticated, staff, r.productController.Delete)
			if r.productController.ImagesEnabled() {
				products.POST("/:id/image", authenticated, staff, r.productController.UploadImage)
			}
		}

		users := v2.Group("/users")
		{
			users.GET("", authenticated, admin, r.userController.GetAll)
			users.GET("/:id", authenticated, r.userController.GetByID)
			users.GET("/:id/orders", authenticated, r.userController.GetOrders)
			users.POST("", optional, r.userController.Create)
			users.PATCH("/:id", authenticated, r.userController.Update)
			users.DELETE("/:id", authenticated, admin, r.userController.Delete)
		}

		customers := v2.Group("/unregistered_customers")
		{
			customers.GET("", authenticated, staff, r.unregisteredCustomerController.GetAll)
			customers.GET("/:id", authenticated, staff, r.unregisteredCustomerController.GetByID)
			customers.GET("/:id/orders", authenticated, staff, r.unregisteredCustomerController.GetOrders)
			customers.POST("", r.unregisteredCustomerController.Create)
			customers.PATCH("/:id", authenticated, staff, r.unregisteredCustomerController.Update)
			customers.DELETE("/:id", authenticated, staff, r.unregisteredCustomerController.Delete)
		}

		orders := v2.Group("/orders")
		{
			orders.GET("", authenticated, staff, r.orderController.GetAll)
			orders.GET("/:id", authenticated, staff, r.orderController.GetByID)
			orders.POST("", optional, r.orderController.Create)
			orders.PATCH("/:id", authenticated, staff, r.orderController.Update)
			orders.PATCH("/:id/status", authenticated, staff, r.orderController.ChangeStatus)
			orders.DELETE("/:id", authenticated, staff, r.orderController.Delete)
		}
	}

	return router
}
