package router

import (
	"database/sql"

	"cafe_backend/internal/handlers"
	"cafe_backend/internal/middleware"
	"cafe_backend/internal/repositories"
	"cafe_backend/internal/services"
	"cafe_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Setup wires repositories, services and handlers and registers all routes
// under /api.
func Setup(engine *gin.Engine, db *sql.DB, tokenManager *utils.TokenManager, uploadDir string) {
	// Initialize Repositories
	userRepo := repositories.NewUserRepository(db)
	menuRepo := repositories.NewMenuRepository(db)
	stockRepo := repositories.NewStockRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	invoiceRepo := repositories.NewInvoiceRepository(db)
	tableRepo := repositories.NewTableRepository(db)
	reservationRepo := repositories.NewReservationRepository(db)

	// Initialize Services
	authService := services.NewAuthService(userRepo, db, tokenManager)
	userService := services.NewUserService(userRepo, db)
	menuService := services.NewMenuService(menuRepo, db)
	stockService := services.NewStockService(stockRepo, db)
	orderService := services.NewOrderService(orderRepo, db)
	billingService := services.NewBillingService(paymentRepo, invoiceRepo, db)
	tableService := services.NewTableService(tableRepo, reservationRepo, db)
	reservationService := services.NewReservationService(reservationRepo, tableRepo, db)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	menuHandler := handlers.NewMenuHandler(menuService, uploadDir)
	stockHandler := handlers.NewStockHandler(stockService)
	orderHandler := handlers.NewOrderHandler(orderService)
	billingHandler := handlers.NewBillingHandler(billingService)
	tableHandler := handlers.NewTableHandler(tableService)
	reservationHandler := handlers.NewReservationHandler(reservationService)

	api := engine.Group("/api")
	requireAuth := middleware.AuthMiddleware(tokenManager)

	SetupUserRoutes(api, requireAuth, authHandler, userHandler)
	SetupOrderRoutes(api, requireAuth, orderHandler)
	SetupPaymentRoutes(api, requireAuth, billingHandler)
	SetupMenuRoutes(api, requireAuth, menuHandler, stockHandler)
	SetupTableRoutes(api, requireAuth, tableHandler, reservationHandler)
}
