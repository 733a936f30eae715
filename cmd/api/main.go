package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aidosmk/food-delivery-backend/api/routes"
	banner "github.com/aidosmk/food-delivery-backend/internal/banners"
	"github.com/aidosmk/food-delivery-backend/internal/catalog"
	"github.com/aidosmk/food-delivery-backend/internal/chat"
	discount "github.com/aidosmk/food-delivery-backend/internal/discounts"
	"github.com/aidosmk/food-delivery-backend/internal/feedback"
	order "github.com/aidosmk/food-delivery-backend/internal/orders"
	user "github.com/aidosmk/food-delivery-backend/internal/users"
	"github.com/aidosmk/food-delivery-backend/pkg/auth/session"
	"github.com/aidosmk/food-delivery-backend/pkg/config"
	"github.com/aidosmk/food-delivery-backend/pkg/db"
	"github.com/aidosmk/food-delivery-backend/pkg/logger"
	"github.com/aidosmk/food-delivery-backend/pkg/metrics"
	"github.com/aidosmk/food-delivery-backend/pkg/migrate"
	"github.com/aidosmk/food-delivery-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	discountMetrics := metrics.NewDiscountMetrics(registry)

	userService, err := user.NewService(
		user.NewRepository(dbClient.DB()),
		dbClient,
		sessionManager,
		cfg.JWT,
		cfg.Password,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()), dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	discountService, err := discount.NewService(
		discount.NewRepository(dbClient.DB()),
		dbClient,
		catalogService,
		catalogService,
		logg,
		discount.Options{
			Cache:    redisClient,
			CacheTTL: cfg.Discounts.ActiveCacheTTL,
			Metrics:  discountMetrics,
		},
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create discount service", err)
		os.Exit(1)
	}

	orderService, err := order.NewService(
		order.NewRepository(dbClient.DB()),
		dbClient,
		catalogService,
		userService,
		discountService,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	bannerService, err := banner.NewService(banner.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create banner service", err)
		os.Exit(1)
	}

	feedbackService, err := feedback.NewService(feedback.NewRepository(dbClient.DB()), catalogService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create feedback service", err)
		os.Exit(1)
	}

	chatService, err := chat.NewService(chat.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create chat service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, httpMetrics, registry, dbClient, redisClient, sessionManager, routes.Services{
			Users:     userService,
			Catalog:   catalogService,
			Orders:    orderService,
			Discounts: discountService,
			Banners:   bannerService,
			Feedback:  feedbackService,
			Chat:      chatService,
		}),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	}()

	<-shutdown
	logg.Info(ctx, "shutting down api server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(ctx, "graceful shutdown failed", err)
	}
}
