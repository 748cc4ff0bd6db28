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
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/carmodifyx/modifyx-backend/api/routes"
	"github.com/carmodifyx/modifyx-backend/internal/builder"
	"github.com/carmodifyx/modifyx-backend/internal/cart"
	"github.com/carmodifyx/modifyx-backend/internal/checkout"
	"github.com/carmodifyx/modifyx-backend/internal/orders"
	"github.com/carmodifyx/modifyx-backend/internal/pricing"
	product "github.com/carmodifyx/modifyx-backend/internal/products"
	"github.com/carmodifyx/modifyx-backend/pkg/config"
	"github.com/carmodifyx/modifyx-backend/pkg/db"
	"github.com/carmodifyx/modifyx-backend/pkg/imagegen"
	"github.com/carmodifyx/modifyx-backend/pkg/logger"
	"github.com/carmodifyx/modifyx-backend/pkg/metrics"
	"github.com/carmodifyx/modifyx-backend/pkg/migrate"
	"github.com/carmodifyx/modifyx-backend/pkg/pubsub"
	"github.com/carmodifyx/modifyx-backend/pkg/redis"
	"github.com/carmodifyx/modifyx-backend/pkg/stripe"
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}

	stripeClient, err := stripe.NewClient(ctx, cfg.Stripe, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap stripe", err)
		os.Exit(1)
	}

	imageClient, err := imagegen.NewClient(cfg.ImageGen.APIKey,
		imagegen.WithModel(cfg.ImageGen.Model),
		imagegen.WithSize(cfg.ImageGen.Size),
		imagegen.WithHTTPClient(&http.Client{Timeout: cfg.ImageGen.Timeout}),
	)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap image generation", err)
		os.Exit(1)
	}

	// Pub/Sub is optional: without a project the order events are skipped.
	var orderPublisher checkout.EventPublisher
	var pubsubClient *pubsub.Client
	if cfg.GCP.ProjectID != "" {
		pubsubClient, err = pubsub.NewClient(ctx, cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		orderPublisher = checkout.NewPubSubPublisher(pubsubClient.OrdersPublisher())
	}

	policy, err := pricing.PolicyFromConfig(cfg.Pricing)
	if err != nil {
		logg.Error(ctx, "failed to parse pricing config", err)
		os.Exit(1)
	}

	colorPrice, err := decimal.NewFromString(cfg.Builder.ColorOptionPrice)
	if err != nil {
		logg.Error(ctx, "failed to parse builder color price", err)
		os.Exit(1)
	}

	productRepo := product.NewRepository(dbClient.DB())
	productService := product.NewService(productRepo)

	cartRepo := cart.NewRepository(dbClient.DB())
	cartService := cart.NewService(cartRepo, productRepo, policy, logg)

	sessionStore := builder.NewRedisSessionStore(redisClient, cfg.Builder.SessionTTL)
	builderService := builder.NewService(sessionStore, productRepo, cartService, imageClient, colorPrice, logg)

	ordersRepo := orders.NewRepository(dbClient)
	checkoutService := checkout.NewService(cartRepo, ordersRepo, policy, stripeClient, orderPublisher, logg)

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	router := routes.NewRouter(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		DB:          dbClient,
		Redis:       redisClient,
		HTTPMetrics: httpMetrics,
		Products:    productService,
		Cart:        cartService,
		Builder:     builderService,
		Checkout:    checkoutService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	startCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(startCtx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(startCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(startCtx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(startCtx, "graceful shutdown failed", err)
		}
	}

	var closeErr error
	if pubsubClient != nil {
		closeErr = multierr.Append(closeErr, pubsubClient.Close())
	}
	closeErr = multierr.Append(closeErr, redisClient.Close())
	closeErr = multierr.Append(closeErr, dbClient.Close())
	if closeErr != nil {
		logg.Error(startCtx, "error closing resources", closeErr)
	}
}
