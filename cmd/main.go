package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	fiberRecover "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/sebastianmoiras/movie-FE/internal/catalog"
	"github.com/sebastianmoiras/movie-FE/internal/config"
	"github.com/sebastianmoiras/movie-FE/internal/database"
	"github.com/sebastianmoiras/movie-FE/internal/handler"
	"github.com/sebastianmoiras/movie-FE/internal/middleware"
	"github.com/sebastianmoiras/movie-FE/internal/repository"
	"github.com/sebastianmoiras/movie-FE/internal/service"
	"github.com/sebastianmoiras/movie-FE/internal/views"
)

const purgeInterval = 10 * time.Minute

type purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Redis is optional unless it backs the session store
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = database.NewRedis(cfg.Redis)
		if err != nil {
			slog.Error("failed to connect to Redis", "error", err)
			os.Exit(1)
		}
	}

	var (
		db    *sql.DB
		repo  repository.SessionRepository
		purge purger
	)
	switch cfg.Session.Store {
	case config.StoreRedis:
		repo = repository.NewRedisSessionRepository(rdb, repository.DefaultRedisKeyPrefix)
	case config.StorePostgres:
		db, err = database.NewPostgres(cfg.DB)
		if err != nil {
			slog.Error("failed to connect to PostgreSQL", "error", err)
			os.Exit(1)
		}
		pg := repository.NewPostgresSessionRepository(db)
		repo, purge = pg, pg
	default:
		mem := repository.NewMemorySessionRepository()
		repo, purge = mem, mem
	}
	slog.Info("session store selected", "store", cfg.Session.Store)

	renderer, err := views.New()
	if err != nil {
		slog.Error("failed to load templates", "error", err)
		os.Exit(1)
	}

	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout)
	navSvc := service.NewNavigatorService(catalogClient, repo, cfg.Session.TTL)
	webHandler := handler.NewWebHandler(navSvc, renderer)

	// Load swagger document
	swaggerYAML, err := os.ReadFile("docs/swagger.yaml")
	if err != nil {
		slog.Warn("swagger document not found, swagger UI will be unavailable", "error", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "movie-fe",
		ServerHeader: "movie-fe",
	})

	app.Use(fiberRecover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", handler.Health)
	if swaggerYAML != nil {
		handler.RegisterSwagger(app, swaggerYAML)
	}

	if rdb != nil {
		rateLimiter := middleware.NewRateLimiter(rdb, cfg.RateLimitMax, cfg.RateLimitWindowSeconds)
		app.Use("/actions", rateLimiter.Handler())
	} else {
		slog.Info("rate limiting disabled, REDIS_ADDR not set")
	}

	app.Use(middleware.SessionCookie(cfg.Session.TTL, cfg.Session.CookieSecure))
	webHandler.Register(app)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if purge != nil {
		go purgeLoop(ctx, purge)
	}

	go func() {
		slog.Info("movie-fe starting", "port", cfg.Port, "catalog", cfg.Catalog.BaseURL)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server error", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down movie-fe...")

	// Shutdown HTTP server first (stop accepting new requests)
	if err := app.Shutdown(); err != nil {
		slog.Error("error shutting down HTTP server", "error", err)
	}
	slog.Info("HTTP server stopped")

	if db != nil {
		if err := db.Close(); err != nil {
			slog.Error("error closing PostgreSQL connection", "error", err)
		} else {
			slog.Info("PostgreSQL connection closed")
		}
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			slog.Error("error closing Redis connection", "error", err)
		} else {
			slog.Info("Redis connection closed")
		}
	}

	slog.Info("movie-fe shutdown complete")
}

// purgeLoop drops expired sessions from stores without native TTLs.
func purgeLoop(ctx context.Context, p purger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.PurgeExpired(ctx)
			if err != nil {
				slog.Warn("failed to purge expired sessions", "error", err)
				continue
			}
			if n > 0 {
				slog.Debug("purged expired sessions", "count", n)
			}
		}
	}
}
