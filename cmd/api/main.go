package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"

	"github.com/jhoicas/biocat-api/internal/bootstrap"
	httpRouter "github.com/jhoicas/biocat-api/internal/interfaces/http"
	"github.com/jhoicas/biocat-api/pkg/config"
	"github.com/jhoicas/biocat-api/pkg/logger"
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
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		// Sin secreto configurado los tokens solo valen para este proceso.
		cfg.JWT.Secret = uuid.NewString()
		log.Warn().Msg("JWT_SECRET vacío, se usa un secreto efímero")
	}

	ctx := context.Background()
	engine, err := bootstrap.New(ctx, cfg, log, bootstrap.Options{})
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar motor")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    20 * 1024 * 1024, // respaldos grandes
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      engine.Auth,
		ProductUC:   engine.Products,
		ClientUC:    engine.Clients,
		OrderUC:     engine.Orders,
		ReceiptUC:   engine.Receipts,
		SettingsUC:  engine.Settings,
		BackupUC:    engine.Backup,
		DashboardUC: engine.Dashboard,
		JWTSecret:   cfg.JWT.Secret,
		AppName:     cfg.App.Name,
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
	if err := engine.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("guardar cambios pendientes")
	}

	log.Info().Msg("aplicación detenida")
}
