package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/nubestock/nubestock-api/internal/application/auth"
	"github.com/nubestock/nubestock-api/internal/application/usecase"
	"github.com/nubestock/nubestock-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	MaterialUC *usecase.MaterialUseCase
	ClientUC   *usecase.ClientUseCase
	AlertUC    *usecase.AlertUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
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

	// La producción administra productos y materias primas; ventas administra
	// clientes. Admin puede todo. Las lecturas quedan abiertas a cualquier
	// usuario autenticado.
	produccion := RequireRole(entity.RoleAdmin, entity.RoleProduccion)
	ventas := RequireRole(entity.RoleAdmin, entity.RoleVentas)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/bulk", produccion, productHandler.Bulk)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Post("/", produccion, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", produccion, productHandler.Update)
	products.Delete("/:id", produccion, productHandler.Delete)

	// Raw materials (protegido)
	materials := protected.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Post("/bulk", produccion, materialHandler.Bulk)
	materials.Get("/low-stock", materialHandler.ListLowStock)
	materials.Post("/", produccion, materialHandler.Create)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id", produccion, materialHandler.Update)
	materials.Delete("/:id", produccion, materialHandler.Delete)

	// Clients (protegido)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/bulk", ventas, clientHandler.Bulk)
	clients.Post("/", ventas, clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", ventas, clientHandler.Update)
	clients.Delete("/:id", ventas, clientHandler.Delete)

	// Alerts (protegido)
	alertsGroup := protected.Group("/alerts")
	alertHandler := NewAlertHandler(deps.AlertUC)
	alertsGroup.Get("/", alertHandler.ListActive)
	alertsGroup.Post("/:id/resolve", produccion, alertHandler.Resolve)
}
