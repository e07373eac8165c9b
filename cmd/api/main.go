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

	"github.com/jhoicas/Mantenix-api/internal/application/auth"
	appcosts "github.com/jhoicas/Mantenix-api/internal/application/costs"
	appinv "github.com/jhoicas/Mantenix-api/internal/application/inventory"
	"github.com/jhoicas/Mantenix-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/Mantenix-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Mantenix-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Mantenix-api/internal/interfaces/http"
	"github.com/jhoicas/Mantenix-api/pkg/config"
	"github.com/jhoicas/Mantenix-api/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	equipmentRepo := postgres.NewEquipmentRepository(pool)
	workOrderRepo := postgres.NewWorkOrderRepository(pool)
	itemRepo := postgres.NewInventoryItemRepository(pool)
	adjustmentRepo := postgres.NewStockAdjustmentRepository(pool)
	costRepo := postgres.NewCostItemRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Ajustes de stock: toda mutación de cantidades pasa por aquí (manuales,
	// consumos hacia órdenes y devoluciones compensatorias).
	adjustStockUC := appinv.NewAdjustStockUseCase(txRunner)

	// Libro de costos: borrador → diff → commit secuencial con devoluciones.
	commitUC := appcosts.NewCommitUseCase(costRepo, adjustStockUC)
	ledgerSvc := appcosts.NewLedgerService(costRepo, workOrderRepo, companyRepo, commitUC)
	addFromInvUC := appcosts.NewAddFromInventoryUseCase(costRepo, itemRepo, workOrderRepo, adjustStockUC)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	equipmentUC := usecase.NewEquipmentUseCase(equipmentRepo, itemRepo)
	workOrderUC := usecase.NewWorkOrderUseCase(workOrderRepo, equipmentRepo)
	inventoryUC := usecase.NewInventoryItemUseCase(itemRepo, adjustmentRepo)
	moduleSvc := usecase.NewModuleService(companyRepo)

	// PDF: reporte imprimible del libro de costos de una orden
	pdfGenerator := infrapdf.NewCostReportGenerator()

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Mantenix API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:   companyUC,
		UserUC:      userUC,
		EquipmentUC: equipmentUC,
		WorkOrderUC: workOrderUC,
		InventoryUC: inventoryUC,
		AdjustStock: adjustStockUC,
		Ledger:      ledgerSvc,
		AddFromInv:  addFromInvUC,
		PDFGen:      pdfGenerator,
		AuthUC:      authUC,
		Modules:     moduleSvc,
		JWTSecret:   cfg.JWT.Secret,
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
