package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/looplan/looplan"
	fiberadapter "github.com/looplan/looplan/adapters/fiber"
	pgxadapter "github.com/looplan/looplan/adapters/pgx"
	"github.com/looplan/looplan/pkg/logging"
)

const shutdownGrace = 10 * time.Second

func main() {
	log := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	ctx := context.Background()

	cfg, err := LoadConfig(os.Args[1:], os.Getenv)
	if err != nil {
		log.Error(ctx, "invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *Config, log logging.Logger) error {
	if err := pgxadapter.RunMigrations(ctx, cfg.DatabaseDSN); err != nil {
		return err
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	store := pgxadapter.New(pool, pgxadapter.WithCallTimeout(cfg.StoreCallTimeout))

	lp, err := looplan.New(looplan.Config{Storage: store})
	if err != nil {
		return err
	}

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.CORSOrigin},
		AllowMethods: []string{fiber.MethodGet, fiber.MethodPost},
		AllowHeaders: []string{fiber.HeaderContentType, fiber.HeaderAuthorization},
	}))

	app.Get("/health", func(c fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(map[string]string{"status": "ok"})
	})

	fiberadapter.New(app, lp, log).RegisterRoutes()

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting server", "addr", cfg.Addr)
		errCh <- app.Listen(cfg.Addr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info(ctx, "shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownGrace)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	}
}
