package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

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
	"github.com/tu-usuario/resto-backoffice/internal/infrastructure/memory"
	infrapdf "github.com/tu-usuario/resto-backoffice/internal/infrastructure/pdf"
	"github.com/tu-usuario/resto-backoffice/internal/infrastructure/postgres"
	infraredis "github.com/tu-usuario/resto-backoffice/internal/infrastructure/redis"
	httpRouter "github.com/tu-usuario/resto-backoffice/internal/interfaces/http"
	"github.com/tu-usuario/resto-backoffice/pkg/config"
	"github.com/tu-usuario/resto-backoffice/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		txRunner       ledger.TxRunner
		stockRepo      repository.StockRepository
		txnRepo        repository.StockTransactionRepository
		ingredientRepo repository.IngredientRepository
		receiptRepo    repository.ImportReceiptRepository
		branchRepo     repository.BranchRepository
		supplierRepo   repository.SupplierRepository
		userRepo       repository.UserRepository
	)

	switch cfg.App.StoreDriver {
	case "memory":
		// Store en memoria para demos y entornos sin PostgreSQL.
		store := memory.NewStore()
		txRunner = memory.NewTxRunner(store)
		stockRepo = memory.NewStockRepository(store)
		txnRepo = memory.NewStockTransactionRepository(store)
		ingredientRepo = memory.NewIngredientRepository(store)
		receiptRepo = memory.NewImportReceiptRepository(store)
		branchRepo = memory.NewBranchRepository(store)
		supplierRepo = memory.NewSupplierRepository(store)
		userRepo = memory.NewUserRepository(store)
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		txRunner = postgres.NewTxRunner(pool)
		stockRepo = postgres.NewStockRepository(pool)
		txnRepo = postgres.NewStockTransactionRepository(pool)
		ingredientRepo = postgres.NewIngredientRepository(pool)
		receiptRepo = postgres.NewImportReceiptRepository(pool)
		branchRepo = postgres.NewBranchRepository(pool)
		supplierRepo = postgres.NewSupplierRepository(pool)
		userRepo = postgres.NewUserRepository(pool)
	}

	// Notificaciones best-effort vía redis; sin REDIS_ADDR se descartan.
	var notifier ledger.Notifier = ledger.NopNotifier{}
	if cfg.Redis.Addr != "" {
		redisNotifier, err := infraredis.NewNotifier(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a redis")
		}
		defer redisNotifier.Close()
		notifier = redisNotifier
	}

	stockLedger := ledger.NewStockLedger(txRunner, stockRepo, txnRepo, ingredientRepo, notifier, log)
	transferUC := transfer.NewTransferUseCase(txRunner, stockLedger, log)
	receiptUC := receipt.NewReceiptUseCase(txRunner, receiptRepo, supplierRepo, ingredientRepo, stockLedger, log)
	auditUC := audit.NewAuditUseCase(txRunner, stockLedger, log)
	wasteUC := waste.NewWasteUseCase(stockLedger, log)
	orderUC := order.NewOrderHookUseCase(txRunner, stockLedger, log)
	ingredientUC := ingredient.NewIngredientUseCase(ingredientRepo, log)
	branchUC := branch.NewBranchUseCase(branchRepo, log)
	supplierUC := supplier.NewSupplierUseCase(supplierRepo, log)
	analyticsUC := analytics.NewAnalyticsUseCase(txnRepo, stockRepo, ingredientRepo, branchRepo, log)
	authUC := auth.NewAuthUseCase(userRepo, cfg.JWT, log)

	// PDF: comprobante imprimible de la recepción
	pdfGenerator := infrapdf.NewReceiptPDFGenerator(cfg.App.Name)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Resto Backoffice API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Stock:        stockLedger,
		TransferUC:   transferUC,
		ReceiptUC:    receiptUC,
		AuditUC:      auditUC,
		WasteUC:      wasteUC,
		OrderUC:      orderUC,
		IngredientUC: ingredientUC,
		BranchUC:     branchUC,
		SupplierUC:   supplierUC,
		AnalyticsUC:  analyticsUC,
		AuthUC:       authUC,
		SupplierRepo: supplierRepo,
		ReceiptPDF:   pdfGenerator,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
