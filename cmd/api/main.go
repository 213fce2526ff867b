package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/nubestock/nubestock-api/internal/application/alerts"
	"github.com/nubestock/nubestock-api/internal/application/auth"
	"github.com/nubestock/nubestock-api/internal/application/usecase"
	"github.com/nubestock/nubestock-api/internal/application/validation"
	"github.com/nubestock/nubestock-api/internal/infrastructure/postgres"
	httpRouter "github.com/nubestock/nubestock-api/internal/interfaces/http"
	"github.com/nubestock/nubestock-api/pkg/config"
	"github.com/nubestock/nubestock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	if cfg.DB.MigrationsPath != "" {
		if err := postgres.RunMigrations(cfg.DB.ConnectionString(), cfg.DB.MigrationsPath, log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	productRepo := postgres.NewProductRepository(pool)
	materialRepo := postgres.NewMaterialRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	validate := validation.New()
	dedup := alerts.NewDeduplicator(alertRepo, log)

	// Los updates concurrentes del motor de lotes se acotan al tamaño del pool
	// para no agotar conexiones bajo carga.
	updateLimit := cfg.DB.MaxConns

	productUC := usecase.NewProductUseCase(productRepo, validate, dedup, updateLimit)
	materialUC := usecase.NewMaterialUseCase(materialRepo, validate, dedup, updateLimit)
	clientUC := usecase.NewClientUseCase(clientRepo, validate, updateLimit)
	alertUC := usecase.NewAlertUseCase(alertRepo)
	authUC := auth.NewAuthUseCase(userRepo, validate, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:  productUC,
		MaterialUC: materialUC,
		ClientUC:   clientUC,
		AlertUC:    alertUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
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
