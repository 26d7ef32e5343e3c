package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/resto-backoffice/internal/application/analytics"
	"github.com/tu-usuario/resto-backoffice/internal/application/audit"
	"github.com/tu-usuario/resto-backoffice/internal/application/auth"
	"github.com/tu-usuario/resto-backoffice/internal/application/branch"
	"github.com/tu-usuario/resto-backoffice/internal/application/ingredient"
	"github.com/tu-usuario/resto-backoffice/internal/application/ledger"
	"github.com/tu-usuario/resto-backoffice/internal/application/order"
	"github.com/tu-usuario/resto-backoffice/internal/application/receipt"
	"github.com/tu-usuario/resto-backoffice/internal/application/supplier"
	"github.com/tu-usuario/resto-backoffice/internal/application/transfer"
	"github.com/tu-usuario/resto-backoffice/internal/application/waste"
	"github.com/tu-usuario/resto-backoffice/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Stock        *ledger.StockLedger
	TransferUC   *transfer.TransferUseCase
	ReceiptUC    *receipt.ReceiptUseCase
	AuditUC      *audit.AuditUseCase
	WasteUC      *waste.WasteUseCase
	OrderUC      *order.OrderHookUseCase
	IngredientUC *ingredient.IngredientUseCase
	BranchUC     *branch.BranchUseCase
	SupplierUC   *supplier.SupplierUseCase
	AnalyticsUC  *analytics.AnalyticsUseCase
	AuthUC       *auth.AuthUseCase
	SupplierRepo repository.SupplierRepository
	ReceiptPDF   ReceiptPDFGenerator
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Stock: lectura pública (guest solo-lectura); sin token se navega como
	// invitado, con token inválido se corta.
	stockHandler := NewStockHandler(deps.Stock)
	stockRead := api.Group("/stock", OptionalAuth(deps.JWTSecret))
	stockRead.Get("/:location", stockHandler.List)
	stockRead.Get("/:location/:ingredient_id", stockHandler.Get)
	stockRead.Get("/:location/:ingredient_id/history", stockHandler.History)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Umbrales de alerta (protegido)
	protected.Put("/stock/:ingredient_id/threshold", stockHandler.SetThreshold)

	// Transfers (protegido, solo admin valida el caso de uso)
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", transferHandler.Transfer)

	// Import receipts (protegido)
	receipts := protected.Group("/receipts")
	receiptHandler := NewReceiptHandler(deps.ReceiptUC, deps.SupplierRepo, deps.ReceiptPDF)
	receipts.Post("/", receiptHandler.Create)
	receipts.Get("/", receiptHandler.List)
	receipts.Get("/:id", receiptHandler.Get)
	receipts.Get("/:id/pdf", receiptHandler.PDF)
	receipts.Post("/:id/complete", receiptHandler.Complete)
	receipts.Post("/:id/cancel", receiptHandler.Cancel)

	// Auditorías de cierre (protegido)
	audits := protected.Group("/audits")
	auditHandler := NewAuditHandler(deps.AuditUC)
	audits.Post("/", auditHandler.Submit)

	// Mermas (protegido)
	wasteGroup := protected.Group("/waste")
	wasteHandler := NewWasteHandler(deps.WasteUC)
	wasteGroup.Post("/", wasteHandler.Report)

	// Hooks de pedidos (protegido)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/deduct", orderHandler.Deduct)
	orders.Post("/restock", orderHandler.Restock)

	// Ingredients (protegido; escritura solo admin)
	ingredients := protected.Group("/ingredients")
	ingredientHandler := NewIngredientHandler(deps.IngredientUC)
	ingredients.Post("/", ingredientHandler.Create)
	ingredients.Get("/", ingredientHandler.List)
	ingredients.Get("/:id", ingredientHandler.Get)
	ingredients.Put("/:id", ingredientHandler.Update)
	ingredients.Delete("/:id", ingredientHandler.Delete)

	// Branches (protegido)
	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.BranchUC)
	branches.Post("/", branchHandler.Create)
	branches.Get("/", branchHandler.List)
	branches.Get("/:id", branchHandler.Get)
	branches.Put("/:id", branchHandler.Update)
	branches.Delete("/:id", branchHandler.Deactivate)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.Get)

	// Analytics (protegido)
	analyticsGroup := protected.Group("/analytics")
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	analyticsGroup.Get("/waste", analyticsHandler.WasteSummary)
	analyticsGroup.Get("/low-stock", analyticsHandler.LowStock)
}
