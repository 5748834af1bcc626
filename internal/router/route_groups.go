package router

import (
	"cafe_backend/internal/handlers"
	"cafe_backend/internal/middleware"
	"cafe_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupUserRoutes registers registration, login, profile and user admin routes.
func SetupUserRoutes(api *gin.RouterGroup, requireAuth gin.HandlerFunc, authHandler *handlers.AuthHandler, userHandler *handlers.UserHandler) {
	userRoutes := api.Group("/users")
	{
		userRoutes.POST("/register", authHandler.Register)
		userRoutes.POST("/login", authHandler.Login)

		authed := userRoutes.Group("")
		authed.Use(requireAuth)
		{
			authed.GET("/profile", userHandler.GetProfile)
			authed.PUT("/profile", userHandler.UpdateProfile)
			authed.DELETE("/profile", userHandler.DeleteProfile)

			authed.GET("/all", middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff), userHandler.GetUsers)

			adminOnly := middleware.RoleAuthMiddleware(models.RoleAdmin)
			authed.PUT("/:id", adminOnly, userHandler.AdminUpdateUser)
			authed.DELETE("/:id", adminOnly, userHandler.AdminDeleteUser)
		}
	}
}

// SetupOrderRoutes registers order and order item routes. Item routes come
// before the /:id routes so the static prefix wins.
func SetupOrderRoutes(api *gin.RouterGroup, requireAuth gin.HandlerFunc, orderHandler *handlers.OrderHandler) {
	orderRoutes := api.Group("/orders")
	orderRoutes.Use(requireAuth)
	{
		orderRoutes.POST("/items", orderHandler.AddOrderItem)
		orderRoutes.GET("/items/:id", orderHandler.GetOrderItems)
		orderRoutes.PUT("/items/:id", orderHandler.UpdateOrderItem)
		orderRoutes.DELETE("/items/:id", orderHandler.DeleteOrderItem)

		orderRoutes.POST("", orderHandler.CreateOrder)
		orderRoutes.GET("", orderHandler.GetOrders)
		orderRoutes.GET("/:id", orderHandler.GetOrderByID)
		orderRoutes.PUT("/:id", orderHandler.UpdateOrder)
		orderRoutes.DELETE("/:id", orderHandler.DeleteOrder)
	}
}

// SetupPaymentRoutes registers payment and invoice routes.
func SetupPaymentRoutes(api *gin.RouterGroup, requireAuth gin.HandlerFunc, billingHandler *handlers.BillingHandler) {
	paymentRoutes := api.Group("/payments")
	paymentRoutes.Use(requireAuth)
	{
		paymentRoutes.POST("/invoices", billingHandler.CreateInvoice)
		paymentRoutes.GET("/invoices", billingHandler.GetInvoices)
		paymentRoutes.GET("/invoices/:id", billingHandler.GetInvoiceByID)
		paymentRoutes.PUT("/invoices/:id", billingHandler.UpdateInvoice)
		paymentRoutes.DELETE("/invoices/:id", billingHandler.DeleteInvoice)

		paymentRoutes.POST("", billingHandler.CreatePayment)
		paymentRoutes.GET("", billingHandler.GetPayments)
		paymentRoutes.GET("/:id", billingHandler.GetPaymentByID)
		paymentRoutes.PUT("/:id", billingHandler.UpdatePayment)
		paymentRoutes.DELETE("/:id", billingHandler.DeletePayment)
	}
}

// SetupMenuRoutes registers menu item and stock routes. Menu reads are
// public; writes and all stock operations require an authenticated caller.
func SetupMenuRoutes(api *gin.RouterGroup, requireAuth gin.HandlerFunc, menuHandler *handlers.MenuHandler, stockHandler *handlers.StockHandler) {
	menuRoutes := api.Group("/menu")
	{
		menuRoutes.GET("/items", menuHandler.GetMenuItems)
		menuRoutes.GET("/items/:id", menuHandler.GetMenuItemByID)

		menuRoutes.POST("/items", requireAuth, menuHandler.CreateMenuItem)
		menuRoutes.PUT("/items/:id", requireAuth, menuHandler.UpdateMenuItem)
		menuRoutes.DELETE("/items/:id", requireAuth, menuHandler.DeleteMenuItem)

		stockRoutes := menuRoutes.Group("/stock")
		stockRoutes.Use(requireAuth)
		{
			stockRoutes.GET("/alerts", stockHandler.GetLowStockAlerts)

			stockRoutes.POST("", stockHandler.CreateStockItem)
			stockRoutes.GET("", stockHandler.GetStockItems)
			stockRoutes.GET("/:id", stockHandler.GetStockItemByID)
			stockRoutes.PUT("/:id", stockHandler.UpdateStockItem)
			stockRoutes.DELETE("/:id", stockHandler.DeleteStockItem)
		}
	}
}

// SetupTableRoutes registers table and reservation routes. Reads are public;
// writes require an authenticated caller.
func SetupTableRoutes(api *gin.RouterGroup, requireAuth gin.HandlerFunc, tableHandler *handlers.TableHandler, reservationHandler *handlers.ReservationHandler) {
	tableGroup := api.Group("/tables")
	{
		tableRoutes := tableGroup.Group("/tables")
		{
			tableRoutes.GET("", tableHandler.GetTables)
			tableRoutes.GET("/:id", tableHandler.GetTableByID)

			tableRoutes.POST("", requireAuth, tableHandler.CreateTable)
			tableRoutes.PUT("/:id", requireAuth, tableHandler.UpdateTable)
			tableRoutes.DELETE("/:id", requireAuth, tableHandler.DeleteTable)
		}

		reservationRoutes := tableGroup.Group("/reservations")
		{
			reservationRoutes.GET("", reservationHandler.GetReservations)
			reservationRoutes.GET("/:id", reservationHandler.GetReservationByID)

			reservationRoutes.POST("", requireAuth, reservationHandler.CreateReservation)
			reservationRoutes.PUT("/:id", requireAuth, reservationHandler.UpdateReservation)
			reservationRoutes.DELETE("/:id", requireAuth, reservationHandler.DeleteReservation)
		}
	}
}
