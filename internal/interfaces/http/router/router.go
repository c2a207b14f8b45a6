package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	identityapp "github.com/isms/backend/internal/application/identity"
	"github.com/isms/backend/internal/domain/identity"
	"github.com/isms/backend/internal/infrastructure/auth"
	"github.com/isms/backend/internal/infrastructure/logger"
	"github.com/isms/backend/internal/interfaces/http/handler"
	"github.com/isms/backend/internal/interfaces/http/middleware"
)

// Handlers groups every HTTP handler the router wires up
type Handlers struct {
	Auth          *handler.AuthHandler
	Product       *handler.ProductHandler
	Category      *handler.CategoryHandler
	Supplier      *handler.SupplierHandler
	Sale          *handler.SaleHandler
	Return        *handler.ReturnHandler
	PurchaseOrder *handler.PurchaseOrderHandler
	Inventory     *handler.InventoryHandler
	StockCount    *handler.StockCountHandler
	Expense       *handler.ExpenseHandler
	Report        *handler.ReportHandler
	User          *handler.UserHandler
	Permission    *handler.PermissionHandler
	Settings      *handler.SettingsHandler
}

// Router wires handlers, authentication and the permission matrix into
// a gin engine.
type Router struct {
	handlers    Handlers
	jwtService  *auth.JWTService
	permissions *identityapp.PermissionService
	log         *zap.Logger
}

// New creates a Router
func New(handlers Handlers, jwtService *auth.JWTService, permissions *identityapp.PermissionService, log *zap.Logger) *Router {
	return &Router{
		handlers:    handlers,
		jwtService:  jwtService,
		permissions: permissions,
		log:         log,
	}
}

// Engine builds the configured gin engine
func (r *Router) Engine() *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(r.log))
	engine.Use(logger.Recovery(r.log))
	engine.Use(middleware.CORS())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api/v1")

	api.POST("/auth/login", r.handlers.Auth.Login)

	authed := api.Group("")
	authed.Use(middleware.JWTAuth(r.jwtService))

	authed.GET("/auth/me", r.handlers.Auth.Me)

	r.registerCatalog(authed)
	r.registerSales(authed)
	r.registerReturns(authed)
	r.registerPurchasing(authed)
	r.registerInventory(authed)
	r.registerFinance(authed)
	r.registerReports(authed)
	r.registerAdmin(authed)

	return engine
}

func (r *Router) guard(module identity.Module) gin.HandlerFunc {
	return middleware.RequireModule(r.permissions, module, r.log)
}

func (r *Router) registerCatalog(rg *gin.RouterGroup) {
	products := rg.Group("/products", r.guard(identity.ModuleInventory))
	products.POST("", r.handlers.Product.Create)
	products.GET("", r.handlers.Product.List)
	products.GET("/search", r.handlers.Product.Search)
	products.GET("/returnable", r.handlers.Product.Returnable)
	products.GET("/:id", r.handlers.Product.Get)
	products.PUT("/:id", r.handlers.Product.Update)
	products.DELETE("/:id", r.handlers.Product.Delete)

	categories := rg.Group("/categories", r.guard(identity.ModuleInventory))
	categories.POST("", r.handlers.Category.Create)
	categories.GET("", r.handlers.Category.List)
	categories.PUT("/:id", r.handlers.Category.Update)
	categories.DELETE("/:id", r.handlers.Category.Delete)

	suppliers := rg.Group("/suppliers", r.guard(identity.ModuleSuppliers))
	suppliers.POST("", r.handlers.Supplier.Create)
	suppliers.GET("", r.handlers.Supplier.List)
	suppliers.GET("/:id", r.handlers.Supplier.Get)
	suppliers.PUT("/:id", r.handlers.Supplier.Update)
	suppliers.DELETE("/:id", r.handlers.Supplier.Delete)
}

func (r *Router) registerSales(rg *gin.RouterGroup) {
	sales := rg.Group("/sales", r.guard(identity.ModulePOS))
	sales.POST("", r.handlers.Sale.Create)
	sales.GET("", r.handlers.Sale.List)
	sales.GET("/receipt/:number", r.handlers.Sale.GetByReceipt)
	sales.GET("/:id", r.handlers.Sale.Get)

	installments := rg.Group("/installments", r.guard(identity.ModuleInstallments))
	installments.GET("", r.handlers.Sale.ListInstallments)
	installments.GET("/:id/payments", r.handlers.Sale.PaymentHistory)
	installments.POST("/:id/payments", r.handlers.Sale.RecordPayment)
}

func (r *Router) registerReturns(rg *gin.RouterGroup) {
	returns := rg.Group("/returns", r.guard(identity.ModuleReturns))
	returns.POST("", r.handlers.Return.Create)
	returns.GET("", r.handlers.Return.List)
	returns.GET("/:id", r.handlers.Return.Get)
	returns.PATCH("/items/:id", r.handlers.Return.AmendItemStatus)
	returns.DELETE("/:id", r.handlers.Return.Delete)
}

func (r *Router) registerPurchasing(rg *gin.RouterGroup) {
	orders := rg.Group("/purchase-orders", r.guard(identity.ModulePurchaseOrders))
	orders.POST("", r.handlers.PurchaseOrder.Create)
	orders.GET("", r.handlers.PurchaseOrder.List)
	orders.GET("/:id", r.handlers.PurchaseOrder.Get)
	orders.PATCH("/:id/status", r.handlers.PurchaseOrder.Transition)
	orders.DELETE("/:id", r.handlers.PurchaseOrder.Delete)
}

func (r *Router) registerInventory(rg *gin.RouterGroup) {
	inventory := rg.Group("/inventory", r.guard(identity.ModuleInventory))
	inventory.GET("/movements", r.handlers.Inventory.ListMovements)
	inventory.POST("/adjustments", r.handlers.Inventory.AdjustStock)

	counts := rg.Group("/stock-counts", r.guard(identity.ModuleStockCount))
	counts.POST("", r.handlers.StockCount.Create)
	counts.GET("", r.handlers.StockCount.List)
	counts.GET("/:id", r.handlers.StockCount.Get)
	counts.PUT("/:id/counts", r.handlers.StockCount.RecordCounts)
	counts.POST("/:id/complete", r.handlers.StockCount.Complete)
	counts.POST("/:id/cancel", r.handlers.StockCount.Cancel)
}

func (r *Router) registerFinance(rg *gin.RouterGroup) {
	expenses := rg.Group("/expenses", r.guard(identity.ModuleExpenses))
	expenses.POST("", r.handlers.Expense.Create)
	expenses.GET("", r.handlers.Expense.List)
	expenses.GET("/:id", r.handlers.Expense.Get)
	expenses.PUT("/:id", r.handlers.Expense.Update)
	expenses.DELETE("/:id", r.handlers.Expense.Delete)
}

func (r *Router) registerReports(rg *gin.RouterGroup) {
	rg.GET("/dashboard", r.guard(identity.ModuleDashboard), r.handlers.Report.Dashboard)
	rg.GET("/profit-loss", r.guard(identity.ModuleProfitLoss), r.handlers.Report.ProfitLoss)

	reports := rg.Group("/reports", r.guard(identity.ModuleReports))
	reports.GET("/sales", r.handlers.Report.Sales)
	reports.GET("/returns", r.handlers.Report.Returns)
	reports.GET("/inventory", r.handlers.Report.Inventory)
}

func (r *Router) registerAdmin(rg *gin.RouterGroup) {
	users := rg.Group("/users", r.guard(identity.ModuleUsers))
	users.POST("", r.handlers.User.Create)
	users.GET("", r.handlers.User.List)
	users.GET("/:id", r.handlers.User.Get)
	users.PUT("/:id", r.handlers.User.Update)
	users.DELETE("/:id", r.handlers.User.Delete)

	permissions := rg.Group("/permissions", r.guard(identity.ModuleUsers))
	permissions.GET("", r.handlers.Permission.ListAll)
	permissions.GET("/:role", r.handlers.Permission.ListByRole)
	permissions.PUT("/:role", r.handlers.Permission.UpdateForRole)
	permissions.POST("/reset", r.handlers.Permission.Reset)

	settings := rg.Group("/settings", r.guard(identity.ModuleSettings))
	settings.GET("", r.handlers.Settings.Get)
	settings.PUT("", r.handlers.Settings.Update)
}
