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
	"github.com/tu-usuario/budget-comisiones/internal/application/usecase"
	"github.com/tu-usuario/budget-comisiones/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/budget-comisiones/internal/interfaces/http"
	"github.com/tu-usuario/budget-comisiones/pkg/config"
	"github.com/tu-usuario/budget-comisiones/pkg/logger"
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

	agentRepo := postgres.NewAgentRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	periodRepo := postgres.NewPeriodRepository(pool)
	budgetRepo := postgres.NewBudgetRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	scheduleRepo := postgres.NewScheduleRepository(pool)
	kpiRepo := postgres.NewKPIRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	agentUC := usecase.NewAgentUseCase(agentRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	periodUC := usecase.NewPeriodUseCase(periodRepo)
	scheduleUC := usecase.NewScheduleUseCase(scheduleRepo)
	dashboardUC := usecase.NewDashboardUseCase(budgetRepo, saleRepo, agentRepo, productRepo, scheduleRepo, log)
	importUC := usecase.NewImportUseCase(txRunner, kpiRepo, log)
	authUC := usecase.NewAuthUseCase(userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // exports CSV de meses grandes
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Budget Comisiones API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		AgentUC:     agentUC,
		ProductUC:   productUC,
		ScheduleUC:  scheduleUC,
		PeriodUC:    periodUC,
		DashboardUC: dashboardUC,
		ImportUC:    importUC,
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
