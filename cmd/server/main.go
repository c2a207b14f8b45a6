package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	catalogapp "github.com/isms/backend/internal/application/catalog"
	financeapp "github.com/isms/backend/internal/application/finance"
	identityapp "github.com/isms/backend/internal/application/identity"
	inventoryapp "github.com/isms/backend/internal/application/inventory"
	purchasingapp "github.com/isms/backend/internal/application/purchasing"
	reportapp "github.com/isms/backend/internal/application/report"
	returnsapp "github.com/isms/backend/internal/application/returns"
	salesapp "github.com/isms/backend/internal/application/sales"
	settingsapp "github.com/isms/backend/internal/application/settings"
	"github.com/isms/backend/internal/domain/shared"
	"github.com/isms/backend/internal/infrastructure/auth"
	"github.com/isms/backend/internal/infrastructure/cache"
	"github.com/isms/backend/internal/infrastructure/config"
	"github.com/isms/backend/internal/infrastructure/logger"
	"github.com/isms/backend/internal/infrastructure/persistence"
	"github.com/isms/backend/internal/interfaces/http/handler"
	"github.com/isms/backend/internal/interfaces/http/middleware"
	"github.com/isms/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Redis is optional. Without it permission and settings lookups
	// just skip the cache.
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, running without cache", zap.Error(err))
		redisClient = nil
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	paymentRepo := persistence.NewGormInstallmentPaymentRepository(db.DB)
	returnRepo := persistence.NewGormReturnRepository(db.DB)
	orderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	countRepo := persistence.NewGormStockCountRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	permissionRepo := persistence.NewGormPermissionRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)

	// Infrastructure services
	jwtService := auth.NewJWTService(cfg.JWT)
	hasher := auth.NewPasswordHasher()
	permissionCache := cache.NewRedisPermissionCache(redisClient, log)
	settingsCache := cache.NewRedisSettingsCache(redisClient, log)

	// Application services
	productService := catalogapp.NewProductService(productRepo, movementRepo, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo, log)
	supplierService := catalogapp.NewSupplierService(supplierRepo, log)
	saleService := salesapp.NewSaleService(persistence.NewGormSalesTransactionScope(db.DB), saleRepo, paymentRepo, log)
	returnService := returnsapp.NewReturnService(persistence.NewGormReturnsTransactionScope(db.DB), returnRepo, log)
	orderService := purchasingapp.NewPurchaseOrderService(persistence.NewGormPurchasingTransactionScope(db.DB), orderRepo, log)
	inventoryScope := persistence.NewGormInventoryTransactionScope(db.DB)
	inventoryService := inventoryapp.NewInventoryService(inventoryScope, movementRepo, log)
	countService := inventoryapp.NewStockCountService(inventoryScope, countRepo, log)
	expenseService := financeapp.NewExpenseService(expenseRepo, log)
	reportService := reportapp.NewReportService(saleRepo, returnRepo, orderRepo, expenseRepo, productRepo, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, hasher, log)
	userService := identityapp.NewUserService(userRepo, hasher, log)
	permissionService := identityapp.NewPermissionService(permissionRepo, permissionCache, log)
	settingsService := settingsapp.NewSettingsService(settingsRepo, settingsCache, log)

	seed(userRepo, userService, permissionService, log)

	handlers := router.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		Product:       handler.NewProductHandler(productService),
		Category:      handler.NewCategoryHandler(categoryService),
		Supplier:      handler.NewSupplierHandler(supplierService),
		Sale:          handler.NewSaleHandler(saleService),
		Return:        handler.NewReturnHandler(returnService),
		PurchaseOrder: handler.NewPurchaseOrderHandler(orderService),
		Inventory:     handler.NewInventoryHandler(inventoryService),
		StockCount:    handler.NewStockCountHandler(countService),
		Expense:       handler.NewExpenseHandler(expenseService),
		Report:        handler.NewReportHandler(reportService),
		User:          handler.NewUserHandler(userService),
		Permission:    handler.NewPermissionHandler(permissionService),
		Settings:      handler.NewSettingsHandler(settingsService),
	}

	middleware.SetupValidator()
	engine := router.New(handlers, jwtService, permissionService, log).Engine()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// seed populates the permission matrix and a first admin account on an
// empty database so the shop can log in after installation.
func seed(userRepo interface {
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}, userService *identityapp.UserService, permissionService *identityapp.PermissionService, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := permissionService.SeedDefaults(ctx); err != nil {
		log.Error("Failed to seed permission matrix", zap.Error(err))
	}

	count, err := userRepo.Count(ctx, shared.Filter{})
	if err != nil {
		log.Error("Failed to count users", zap.Error(err))
		return
	}
	if count > 0 {
		return
	}

	password := os.Getenv("ISMS_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
		log.Warn("ISMS_ADMIN_PASSWORD not set, seeding admin with default password")
	}

	if _, err := userService.Create(ctx, identityapp.CreateUserRequest{
		Email:    "admin@localhost",
		Name:     "Administrator",
		Password: password,
		Role:     "ADMIN",
	}); err != nil {
		log.Error("Failed to seed admin user", zap.Error(err))
		return
	}
	log.Info("Seeded initial admin user", zap.String("email", "admin@localhost"))
}
