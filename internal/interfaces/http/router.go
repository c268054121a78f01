package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/usecase"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	StoreUC     *usecase.StoreUseCase
	UserUC      *usecase.UserUseCase
	ProductUC   *usecase.ProductUseCase
	SaleUC      *usecase.SaleUseCase
	PurchaseUC  *usecase.PurchaseUseCase
	ExpenseUC   *usecase.ExpenseUseCase
	ReportUC    *usecase.ReportUseCase
	DashboardUC *usecase.DashboardUseCase

	StoreRepo  repository.StoreRepository
	RoleLookup RoleLookup
	PDFGen     ReceiptGenerator

	LoginLimiter  LoginLimiter
	SessionSecret string
	SessionTTL    time.Duration
	SecureCookies bool
	Log           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", LoadSession(deps.SessionSecret))

	// Auth (público; login con rate limit por IP)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.LoginLimiter, deps.SessionTTL, deps.SecureCookies)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", LoginRateLimit(deps.LoginLimiter, deps.Log), authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/session", authHandler.GetSession)

	// Rutas protegidas (requieren sesión con tienda y usuario)
	protected := api.Group("/", RequireSession())

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Sales (protegido)
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.StoreRepo, deps.PDFGen)
	sales.Post("/", saleHandler.Record)
	sales.Get("/recent", saleHandler.Recent)
	sales.Get("/receipt", saleHandler.Receipt)

	// Purchases (protegido)
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Post("/", purchaseHandler.Record)
	purchases.Get("/recent", purchaseHandler.Recent)

	// Expenses (protegido)
	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/recent", expenseHandler.Recent)

	// Reports y dashboard (protegido)
	reportHandler := NewReportHandler(deps.ReportUC, deps.DashboardUC)
	protected.Get("/reports", reportHandler.GetReport)
	protected.Get("/dashboard", reportHandler.GetDashboard)

	// Administración (requiere rol admin, verificado contra la BD)
	admin := protected.Group("/", RequireAdmin(deps.RoleLookup))

	// Stores (admin)
	stores := admin.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC)
	stores.Post("/", storeHandler.Create)
	stores.Get("/", storeHandler.List)
	stores.Get("/:id", storeHandler.GetByID)
	stores.Patch("/:id", storeHandler.Update)
	stores.Delete("/:id", storeHandler.Delete)

	// Users (admin)
	users := admin.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id", userHandler.Update)
	users.Put("/:id/stores", userHandler.UpdateStores)
	users.Delete("/:id", userHandler.Delete)
}
