package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	buildersvc "github.com/carmodifyx/modifyx-backend/internal/builder"
	cartsvc "github.com/carmodifyx/modifyx-backend/internal/cart"
	checkoutsvc "github.com/carmodifyx/modifyx-backend/internal/checkout"
	"github.com/carmodifyx/modifyx-backend/internal/orders"
	productsvc "github.com/carmodifyx/modifyx-backend/internal/products"
	pkgAuth "github.com/carmodifyx/modifyx-backend/pkg/auth"
	"github.com/carmodifyx/modifyx-backend/pkg/config"
	"github.com/carmodifyx/modifyx-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubProductService struct{}

func (stubProductService) ListProducts(context.Context, productsvc.ListFilter) ([]productsvc.ProductDTO, error) {
	return []productsvc.ProductDTO{}, nil
}

func (stubProductService) GetProduct(context.Context, uuid.UUID) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{}, nil
}

type stubCartService struct{}

func (stubCartService) GetCart(context.Context, string) (*cartsvc.CartDTO, error) {
	return &cartsvc.CartDTO{Items: []cartsvc.LineItemDTO{}}, nil
}

func (stubCartService) AddItem(context.Context, string, cartsvc.AddItemInput) (*cartsvc.CartDTO, error) {
	return &cartsvc.CartDTO{}, nil
}

func (stubCartService) SetQuantity(context.Context, string, uuid.UUID, int) (*cartsvc.CartDTO, error) {
	return &cartsvc.CartDTO{}, nil
}

func (stubCartService) RemoveItem(context.Context, string, uuid.UUID) (*cartsvc.CartDTO, error) {
	return &cartsvc.CartDTO{}, nil
}

func (stubCartService) Clear(context.Context, string) error {
	return nil
}

type stubBuilderService struct{}

func (stubBuilderService) GetSession(context.Context, string) (*buildersvc.SessionDTO, error) {
	return &buildersvc.SessionDTO{}, nil
}

func (stubBuilderService) SelectBrand(context.Context, string, string) (*buildersvc.SessionDTO, error) {
	return &buildersvc.SessionDTO{}, nil
}

func (stubBuilderService) SelectModel(context.Context, string, string) (*buildersvc.SessionDTO, error) {
	return &buildersvc.SessionDTO{}, nil
}

func (stubBuilderService) SelectYear(context.Context, string, string) (*buildersvc.SessionDTO, error) {
	return &buildersvc.SessionDTO{}, nil
}

func (stubBuilderService) AddOption(context.Context, string, buildersvc.OptionInput) (*buildersvc.SessionDTO, error) {
	return &buildersvc.SessionDTO{}, nil
}

func (stubBuilderService) RemoveOption(context.Context, string, string) (*buildersvc.SessionDTO, error) {
	return &buildersvc.SessionDTO{}, nil
}

func (stubBuilderService) GeneratePreview(context.Context, string) (*buildersvc.SessionDTO, error) {
	return &buildersvc.SessionDTO{}, nil
}

func (stubBuilderService) AddToCart(context.Context, string) (*cartsvc.CartDTO, error) {
	return &cartsvc.CartDTO{}, nil
}

func (stubBuilderService) Reset(context.Context, string) error {
	return nil
}

type stubCheckoutService struct{}

func (stubCheckoutService) PlaceOrder(context.Context, string, checkoutsvc.PlaceOrderInput) (*orders.OrderDTO, error) {
	return &orders.OrderDTO{OrderNumber: "ORD-1"}, nil
}

func (stubCheckoutService) TrackOrder(context.Context, string, string) (*orders.OrderDTO, error) {
	return &orders.OrderDTO{OrderNumber: "ORD-1"}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080"},
		JWT: config.JWTConfig{Secret: "secret", Issuer: "modifyx", ExpirationMinutes: 60},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(Deps{
		Config:   testConfig(),
		Logger:   logger.New(logger.Options{ServiceName: "test"}),
		DB:       stubPinger{},
		Products: stubProductService{},
		Cart:     stubCartService{},
		Builder:  stubBuilderService{},
		Checkout: stubCheckoutService{},
	})
}

func authHeader(t *testing.T) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(testConfig().JWT, time.Now(), pkgAuth.AccessTokenPayload{UserID: "user-1"})
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}
	return "Bearer " + token
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, resp.Code)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestProductsAreBrowsableWithoutAuth(t *testing.T) {
	router := newTestRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var body struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestCartRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/cart/getItems", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestCartWithValidToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/cart/getItems", nil)
	req.Header.Set("Authorization", authHeader(t))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestCartAddAcceptsStorefrontPayload(t *testing.T) {
	router := newTestRouter(t)

	body := `{"customData":{"name":"BMW X5","price":"152000","details":[{"label":"Color","value":"Deep Sapphire Blue","price":"150000"}]},"itemType":"custom","quantity":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart/add", strings.NewReader(body))
	req.Header.Set("Authorization", authHeader(t))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("custom add: expected 201 got %d: %s", resp.Code, resp.Body.String())
	}

	body = `{"productId":"` + uuid.NewString() + `","itemType":"standard","quantity":2}`
	req = httptest.NewRequest(http.MethodPost, "/api/cart/add", strings.NewReader(body))
	req.Header.Set("Authorization", authHeader(t))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("standard add: expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestBuilderCatalogRoutes(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/builder/catalog", nil)
	req.Header.Set("Authorization", authHeader(t))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("catalog: expected 200 got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/builder/brands/bmw/models", nil)
	req.Header.Set("Authorization", authHeader(t))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("models: expected 200 got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/builder/brands/lada/models", nil)
	req.Header.Set("Authorization", authHeader(t))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("unknown brand: expected 404 got %d", resp.Code)
	}
}

func TestTrackOrderRoute(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/track/ORD-1", nil)
	req.Header.Set("Authorization", authHeader(t))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
