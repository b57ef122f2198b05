package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/negocify-api/internal/application/auth"
	"github.com/jhoicas/negocify-api/internal/application/authz"
	"github.com/jhoicas/negocify-api/internal/application/sales"
	"github.com/jhoicas/negocify-api/internal/application/usecase"
	"github.com/jhoicas/negocify-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/negocify-api/internal/interfaces/http"
	"github.com/jhoicas/negocify-api/pkg/config"
	"github.com/jhoicas/negocify-api/pkg/jwt"
	"github.com/jhoicas/negocify-api/pkg/logger"
	"github.com/jhoicas/negocify-api/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		panic("configuración inválida: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
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

	txRunner := postgres.NewTxRunner(pool)
	if err := postgres.Migrate(ctx, txRunner); err != nil {
		log.Fatal().Err(err).Msg("migración del esquema")
	}

	signer, err := jwt.NewSigner(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración JWT")
	}

	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	accessRepo := postgres.NewAccessRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	productTypeRepo := postgres.NewProductTypeRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	saleTypeRepo := postgres.NewSaleTypeRepository(pool)

	resolver := authz.NewResolver(accessRepo, warehouseRepo, log.Component("authz.resolver"))
	adminGuard := authz.NewAdminGuard(accessRepo, roleRepo, log.Component("authz.admin_guard"))
	gate := auth.NewAuthenticator(signer, userRepo, resolver, log.Component("auth.gate"))

	authUC := auth.NewAuthUseCase(userRepo, signer)
	userUC := usecase.NewUserUseCase(txRunner, userRepo, roleRepo, warehouseRepo, accessRepo, adminGuard)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	productUC := usecase.NewProductUseCase(productRepo, productTypeRepo, warehouseRepo)
	saleTypeUC := usecase.NewSaleTypeUseCase(saleTypeRepo, adminGuard)
	saleUC := sales.NewUseCase(txRunner, saleRepo, saleTypeRepo, cfg.Sales.IVARate, log.Component("sales"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigin,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Swagger UI en local: http://localhost:<port>/docs (generado con swag init)
	const swaggerFile = "./docs/swagger.json"
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Negocify API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("documentación swagger no encontrada, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Gate:        gate,
		AuthUC:      authUC,
		UserUC:      userUC,
		WarehouseUC: warehouseUC,
		ProductUC:   productUC,
		SaleTypeUC:  saleTypeUC,
		SaleUC:      saleUC,
		Metrics:     metrics.New(nil),
		Log:         log.Component("http"),
		ServiceName: cfg.App.Name,
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
