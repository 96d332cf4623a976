package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-ti/internal/application/analytics"
	"github.com/jhoicas/estoque-ti/internal/application/auth"
	"github.com/jhoicas/estoque-ti/internal/application/inventory"
	"github.com/jhoicas/estoque-ti/internal/application/usecase"
	"github.com/jhoicas/estoque-ti/internal/application/view"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	ShipmentUC       *inventory.ShipmentUseCase
	ReportUC         *analytics.ReportUseCase
	Renderer         *view.Renderer
	Refresher        inventory.Refresher
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	dashboardHandler := NewDashboardHandler(deps.Renderer, deps.Refresher)
	protected.Get("/state", dashboardHandler.State)
	protected.Post("/state/reload", dashboardHandler.Reload)
	protected.Get("/dashboard", dashboardHandler.Dashboard)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Renderer)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.RegisterMovement, deps.Renderer)
	movements.Get("/", movementHandler.Recent)
	movements.Get("/history", movementHandler.History)
	movements.Post("/", movementHandler.Register)
	protected.Get("/forms/movement", movementHandler.Form)

	branches := protected.Group("/branches")
	branchHandler := NewBranchHandler(deps.ShipmentUC, deps.RegisterMovement)
	branches.Get("/", branchHandler.List)
	branches.Get("/:id/shipments", branchHandler.ListShipments)
	branches.Post("/:id/shipments", branchHandler.RegisterShipment)

	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/:type", reportHandler.Build)
	reports.Get("/:type/export", reportHandler.Export)
}
