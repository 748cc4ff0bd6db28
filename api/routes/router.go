package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/carmodifyx/modifyx-backend/api/controllers"
	"github.com/carmodifyx/modifyx-backend/api/middleware"
	buildersvc "github.com/carmodifyx/modifyx-backend/internal/builder"
	cartsvc "github.com/carmodifyx/modifyx-backend/internal/cart"
	checkoutsvc "github.com/carmodifyx/modifyx-backend/internal/checkout"
	productsvc "github.com/carmodifyx/modifyx-backend/internal/products"
	"github.com/carmodifyx/modifyx-backend/pkg/config"
	"github.com/carmodifyx/modifyx-backend/pkg/logger"
	"github.com/carmodifyx/modifyx-backend/pkg/metrics"
	"github.com/carmodifyx/modifyx-backend/pkg/redis"
)

// Deps carries everything the router needs wired in.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          controllers.Pinger
	Redis       *redis.Client
	HTTPMetrics *metrics.HTTPMetrics

	Products productsvc.Service
	Cart     cartsvc.Service
	Builder  buildersvc.Service
	Checkout checkoutsvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	// A typed nil inside the interface would defeat the middleware nil
	// checks, so only assign when the client exists.
	var idemStore redis.IdempotencyStore
	var limiter interface {
		FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
	}
	if deps.Redis != nil {
		idemStore = deps.Redis
		limiter = deps.Redis
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	readyDeps := map[string]controllers.Pinger{"postgres": deps.DB}
	if deps.Redis != nil {
		readyDeps["redis"] = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readyDeps))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Catalog browsing is public.
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(deps.Products, logg))
		r.Get("/{productId}", controllers.GetProduct(deps.Products, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/getItems", controllers.GetCartItems(deps.Cart, logg))
			r.Post("/add", controllers.AddCartItem(deps.Cart, logg))
			r.Patch("/quantity", controllers.UpdateCartQuantity(deps.Cart, logg))
			r.Delete("/remove/{itemId}", controllers.RemoveCartItem(deps.Cart, logg))
			r.Delete("/clear", controllers.ClearCart(deps.Cart, logg))
		})

		r.Route("/builder", func(r chi.Router) {
			r.Get("/catalog", controllers.BuilderCatalog())
			r.Get("/brands/{brandId}/models", controllers.BuilderModels(logg))
			r.Get("/session", controllers.GetBuilderSession(deps.Builder, logg))
			r.Post("/brand", controllers.SelectBuilderBrand(deps.Builder, logg))
			r.Post("/model", controllers.SelectBuilderModel(deps.Builder, logg))
			r.Post("/year", controllers.SelectBuilderYear(deps.Builder, logg))
			r.Post("/options", controllers.AddBuilderOption(deps.Builder, logg))
			r.Delete("/options/{optionId}", controllers.RemoveBuilderOption(deps.Builder, logg))
			r.Post("/cart", controllers.BuilderAddToCart(deps.Builder, logg))
			r.Delete("/session", controllers.ResetBuilderSession(deps.Builder, logg))
		})

		r.With(middleware.RateLimit(limiter, "imagegen", 10, time.Minute, logg)).
			Post("/image/generate-ai", controllers.GenerateBuildImage(deps.Builder, logg))

		r.Route("/orders", func(r chi.Router) {
			r.With(middleware.Idempotency(idemStore, logg)).
				Post("/payment", controllers.PlaceOrder(deps.Checkout, logg))
			r.Get("/track/{orderNumber}", controllers.TrackOrder(deps.Checkout, logg))
		})
	})

	return r
}
