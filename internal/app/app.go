package app

import (
	"context"
	"errors"
	"fmt"

	"websewa_backend/database"
	"websewa_backend/internal/auth"
	"websewa_backend/internal/config"
	"websewa_backend/internal/handlers"
	"websewa_backend/internal/logger"
	"websewa_backend/internal/middleware"
	"websewa_backend/internal/models"
	"websewa_backend/internal/repositories"
	"websewa_backend/internal/routes"
	"websewa_backend/internal/services"
	"websewa_backend/internal/services/payment"
	"websewa_backend/internal/validator"
	"websewa_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}
	if err := seedEsewaGateway(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed eSewa gateway", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	workers.NewMembershipWorker(repositories.NewUserRepository(gormDB)).Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	serviceContainer := initializeServices(gormDB)
	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter()
	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(gormDB *gorm.DB) *services.ServiceContainer {
	orderRepo := repositories.NewOrderRepository(gormDB)
	catalogRepo := repositories.NewCatalogRepository(gormDB)
	creditRepo := repositories.NewCreditRepository(gormDB)
	gatewayRepo := repositories.NewGatewayRepository(gormDB)

	esewaService := payment.NewEsewaService()
	fulfillmentService := services.NewFulfillmentService()

	return &services.ServiceContainer{
		CheckoutService: services.NewCheckoutService(gormDB, catalogRepo),
		PaymentService:  services.NewPaymentService(gormDB, esewaService, gatewayRepo, fulfillmentService),
		OrderService:    services.NewOrderService(gormDB, orderRepo, fulfillmentService),
		CreditService:   services.NewCreditService(creditRepo),
		CatalogService:  services.NewCatalogService(catalogRepo),
	}
}

func initializeHandlers(serviceContainer *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	return handlers.NewAppHandlers(customValidator, serviceContainer)
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	return router
}

// seedFirstAdmin creates the bootstrap admin account on first start.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.Admin.Email
	adminPassword := cfg.Admin.Password

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("Admin email or password not configured. Skipping admin seeding.")
		return nil
	}

	var adminUser models.User
	result := db.Where("email = ?", adminEmail).First(&adminUser)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found. Creating first admin...", "email", adminEmail)

	if err := auth.ValidatePassword(adminPassword); err != nil {
		return fmt.Errorf("admin password rejected: %w", err)
	}
	hashedPassword, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:        adminEmail,
		PasswordHash: hashedPassword,
		Role:         models.UserRoleAdmin,
	}
	if err := db.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("Created first admin user", "email", adminEmail)
	return nil
}

// seedEsewaGateway inserts the gateway credentials row if missing, so the
// callback verifier has a secret to verify against.
func seedEsewaGateway(db *gorm.DB, cfg *config.Config) error {
	if cfg.Esewa.SecretKey == "" {
		logger.Warn("eSewa secret key not configured. Skipping gateway seeding.")
		return nil
	}
	return repositories.NewGatewayRepository(db).Seed(&models.PaymentGateway{
		Code:        payment.GatewayCode,
		SecretKey:   cfg.Esewa.SecretKey,
		ProductCode: cfg.Esewa.ProductCode,
		IsActive:    true,
	})
}
