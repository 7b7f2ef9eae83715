package router

import (
	"github.com/gin-gonic/gin"
	"github.com/ndemidova/ringshop-backend/config"
	"github.com/ndemidova/ringshop-backend/internal/app/controller"
	"github.com/ndemidova/ringshop-backend/internal/middleware"
)

type Router struct {
	webController     *controller.WebController
	productController *controller.ProductController
	orderController   *controller.OrderController
	authController    *controller.AuthController
	authMiddleware    *middleware.AuthMiddleware
	config            *config.Config
}

func NewRouter(
	webController *controller.WebController,
	productController *controller.ProductController,
	orderController *controller.OrderController,
	authController *controller.AuthController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		webController:     webController,
		productController: productController,
		orderController:   orderController,
		authController:    authController,
		authMiddleware:    authMiddleware,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	if r.config.Server.TemplatesGlob != "" {
		router.LoadHTMLGlob(r.config.Server.TemplatesGlob)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "Ring shop API is running",
		})
	})

	// Customer-facing pages
	router.GET("/", r.webController.Index)
	router.GET("/product/:id", r.webController.ProductDetail)
	router.POST("/product/:id", r.webController.SubmitOrder)
	router.GET("/order/success/:id", r.webController.OrderSuccess)
	router.GET("/orders/", r.webController.OrdersList)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", r.authController.Login)
		}

		products := api.Group("/products")
		{
			products.GET("/", r.productController.GetProducts)
			products.GET("/:id", r.productController.GetProduct)
		}

		orders := api.Group("/orders")
		{
			orders.POST("/", r.orderController.CreateOrder)
		}

		admin := api.Group("/admin", r.authMiddleware.Authenticate())
		{
			admin.POST("/products", r.productController.CreateProduct)
			admin.PUT("/products/:id", r.productController.UpdateProduct)
			admin.DELETE("/products/:id", r.productController.DeleteProduct)
			admin.POST("/products/:id/image", r.productController.UploadImage)

			admin.GET("/orders", r.orderController.GetOrders)
			admin.GET("/orders/:id", r.orderController.GetOrder)
			admin.PATCH("/orders/:id/status", r.orderController.UpdateOrderStatus)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
