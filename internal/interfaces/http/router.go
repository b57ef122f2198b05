package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/negocify-api/internal/application/auth"
	"github.com/jhoicas/negocify-api/internal/application/sales"
	"github.com/jhoicas/negocify-api/internal/application/usecase"
	"github.com/jhoicas/negocify-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Gate        *auth.Authenticator
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	WarehouseUC *usecase.WarehouseUseCase
	ProductUC   *usecase.ProductUseCase
	SaleTypeUC  *usecase.SaleTypeUseCase
	SaleUC      *sales.UseCase
	Metrics     *metrics.Metrics
	Log         zerolog.Logger
	ServiceName string
}

// Router registra middlewares transversales y las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(RequestLogger(deps.Log))
	if deps.Metrics != nil {
		app.Use(MetricsMiddleware(deps.Metrics))
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api")
	api.Get("/status", Status)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	requireAuth := AuthMiddleware(deps.Gate, deps.Metrics)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	users := api.Group("/users", requireAuth)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	products := api.Group("/products", requireAuth)
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/tipo_producto", productHandler.ListTypes)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	saleTypes := api.Group("/tipos-venta", requireAuth)
	saleTypeHandler := NewSaleTypeHandler(deps.SaleTypeUC)
	saleTypes.Get("/", saleTypeHandler.List)
	saleTypes.Post("/", saleTypeHandler.Create)
	saleTypes.Get("/:id", saleTypeHandler.GetByID)
	saleTypes.Put("/:id", saleTypeHandler.Update)
	saleTypes.Delete("/:id", saleTypeHandler.Delete)

	// Los reportes y /almacen van antes de /:id.
	ventas := api.Group("/ventas", requireAuth)
	saleHandler := NewSaleHandler(deps.SaleUC)
	ventas.Get("/reportes/grafico", saleHandler.Chart)
	ventas.Get("/reportes/estadisticas", saleHandler.Stats)
	ventas.Get("/reportes/metodos-pago", saleHandler.PaymentMethods)
	ventas.Get("/almacen/:almacenId", saleHandler.ListByWarehouse)
	ventas.Post("/", saleHandler.Create)
	ventas.Get("/:id", saleHandler.GetByID)
	ventas.Put("/:id", saleHandler.Update)
	ventas.Delete("/:id", saleHandler.Delete)

	almacenes := api.Group("/almacenes", requireAuth)
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	almacenes.Get("/", warehouseHandler.List)
	almacenes.Post("/", warehouseHandler.Create)
}
