package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/budget-comisiones/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *usecase.AuthUseCase
	AgentUC     *usecase.AgentUseCase
	ProductUC   *usecase.ProductUseCase
	ScheduleUC  *usecase.ScheduleUseCase
	PeriodUC    *usecase.PeriodUseCase
	DashboardUC *usecase.DashboardUseCase
	ImportUC    *usecase.ImportUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Agents (protegido)
	agents := protected.Group("/agents")
	agentHandler := NewAgentHandler(deps.AgentUC)
	agents.Post("/", agentHandler.Create)
	agents.Get("/", agentHandler.List)
	agents.Get("/:id", agentHandler.GetByID)
	agents.Put("/:id", agentHandler.Update)
	agents.Delete("/:id", agentHandler.Delete)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Commission schedules (protegido)
	schedules := protected.Group("/schedules")
	scheduleHandler := NewScheduleHandler(deps.ScheduleUC)
	schedules.Post("/", scheduleHandler.Create)
	schedules.Get("/", scheduleHandler.List)
	schedules.Get("/:id", scheduleHandler.GetByID)
	schedules.Delete("/:id", scheduleHandler.Delete)

	// Dashboard y export (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.PeriodUC)
	dashboard := protected.Group("/dashboard")
	dashboard.Get("/", dashboardHandler.Summary)
	dashboard.Get("/detail", dashboardHandler.Detail)
	dashboard.Get("/export", dashboardHandler.Export)
	protected.Get("/months", dashboardHandler.Months)

	// Importaciones (protegido)
	imports := protected.Group("/import")
	importHandler := NewImportHandler(deps.ImportUC)
	imports.Post("/budget", importHandler.Budget)
	imports.Post("/sales", importHandler.Sales)
	imports.Post("/kpi", importHandler.KPI)
}
