package builder

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/carmodifyx/modifyx-backend/internal/cart"
	"github.com/carmodifyx/modifyx-backend/pkg/db/models"
	pkgerrors "github.com/carmodifyx/modifyx-backend/pkg/errors"
)

type memorySessionStore struct {
	sessions map[string]*Session
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: map[string]*Session{}}
}

func (m *memorySessionStore) Load(_ context.Context, userID string) (*Session, error) {
	if session, ok := m.sessions[userID]; ok {
		copied := *session
		copied.Options = append([]OptionSelection{}, session.Options...)
		return &copied, nil
	}
	return NewSession(userID), nil
}

func (m *memorySessionStore) Save(_ context.Context, session *Session) error {
	copied := *session
	copied.Options = append([]OptionSelection{}, session.Options...)
	m.sessions[session.UserID] = &copied
	return nil
}

func (m *memorySessionStore) Delete(_ context.Context, userID string) error {
	delete(m.sessions, userID)
	return nil
}

type stubOptionLoader struct {
	products map[uuid.UUID]*models.Product
}

func (s *stubOptionLoader) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if product, ok := s.products[id]; ok {
		return product, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubGenerator struct {
	url      string
	err      error
	onInvoke func()
	prompts  []string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.onInvoke != nil {
		s.onInvoke()
	}
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

type stubCartService struct {
	added []cart.AddItemInput
	err   error
}

func (s *stubCartService) GetCart(context.Context, string) (*cart.CartDTO, error) {
	return &cart.CartDTO{}, nil
}

func (s *stubCartService) AddItem(_ context.Context, _ string, input cart.AddItemInput) (*cart.CartDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.added = append(s.added, input)
	return &cart.CartDTO{}, nil
}

func (s *stubCartService) SetQuantity(context.Context, string, uuid.UUID, int) (*cart.CartDTO, error) {
	return &cart.CartDTO{}, nil
}

func (s *stubCartService) RemoveItem(context.Context, string, uuid.UUID) (*cart.CartDTO, error) {
	return &cart.CartDTO{}, nil
}

func (s *stubCartService) Clear(context.Context, string) error { return nil }

type builderFixture struct {
	svc       Service
	store     *memorySessionStore
	generator *stubGenerator
	cart      *stubCartService
	splitter  *models.Product
	sedan     *models.Product
}

func newBuilderFixture(t *testing.T) *builderFixture {
	t.Helper()
	splitter := &models.Product{
		ID:       uuid.New(),
		Name:     "Carbon Splitter",
		Brand:    "BMW",
		Category: "exterior",
		Price:    decimal.NewFromInt(2000),
		IsActive: true,
	}
	sedan := &models.Product{
		ID:       uuid.New(),
		Name:     "C63 AMG",
		Brand:    "Mercedes",
		Category: "sedan",
		Price:    decimal.NewFromInt(92000),
		IsActive: true,
	}

	store := newMemorySessionStore()
	generator := &stubGenerator{url: "https://img.test/render.png"}
	cartSvc := &stubCartService{}
	loader := &stubOptionLoader{products: map[uuid.UUID]*models.Product{
		splitter.ID: splitter,
		sedan.ID:    sedan,
	}}

	svc := NewService(store, loader, cartSvc, generator, decimal.NewFromInt(150000), nil)
	return &builderFixture{
		svc:       svc,
		store:     store,
		generator: generator,
		cart:      cartSvc,
		splitter:  splitter,
		sedan:     sedan,
	}
}

func advanceToOptions(t *testing.T, svc Service, userID string) {
	t.Helper()
	ctx := context.Background()
	if _, err := svc.SelectBrand(ctx, userID, "bmw"); err != nil {
		t.Fatalf("select brand: %v", err)
	}
	if _, err := svc.SelectModel(ctx, userID, "x5"); err != nil {
		t.Fatalf("select model: %v", err)
	}
	if _, err := svc.SelectYear(ctx, userID, "2024"); err != nil {
		t.Fatalf("select year: %v", err)
	}
}

func TestAddOptionFromCatalog(t *testing.T) {
	t.Parallel()
	f := newBuilderFixture(t)
	ctx := context.Background()
	advanceToOptions(t, f.svc, "user-1")

	dto, err := f.svc.AddOption(ctx, "user-1", OptionInput{ProductID: &f.splitter.ID})
	if err != nil {
		t.Fatalf("add option: %v", err)
	}
	if len(dto.Options) != 1 || dto.Options[0].Name != "Carbon Splitter" {
		t.Fatalf("unexpected options %+v", dto.Options)
	}
	if !dto.RunningTotal.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("running total = %s", dto.RunningTotal)
	}

	unknown := uuid.New()
	_, err = f.svc.AddOption(ctx, "user-1", OptionInput{ProductID: &unknown})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown product, got %v", err)
	}

	// A car listing is not a customization option.
	_, err = f.svc.AddOption(ctx, "user-1", OptionInput{ProductID: &f.sedan.ID})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for non-option product, got %v", err)
	}
}

func TestAddColorOption(t *testing.T) {
	t.Parallel()
	f := newBuilderFixture(t)
	ctx := context.Background()
	advanceToOptions(t, f.svc, "user-1")

	hex := "#ff0000"
	dto, err := f.svc.AddOption(ctx, "user-1", OptionInput{ColorHex: &hex})
	if err != nil {
		t.Fatalf("add color: %v", err)
	}
	if len(dto.Options) != 1 {
		t.Fatalf("expected 1 option, got %d", len(dto.Options))
	}
	color := dto.Options[0]
	if color.Name != "Vibrant Red Metallic" || color.Hex != "#FF0000" {
		t.Fatalf("unexpected color %+v", color)
	}
	if !color.Price.Equal(decimal.NewFromInt(150000)) {
		t.Fatalf("color price = %s", color.Price)
	}

	bad := "red"
	_, err = f.svc.AddOption(ctx, "user-1", OptionInput{ColorHex: &bad})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for bad hex, got %v", err)
	}
	_, err = f.svc.AddOption(ctx, "user-1", OptionInput{})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for empty input, got %v", err)
	}
}

func TestGeneratePreviewSetsImage(t *testing.T) {
	t.Parallel()
	f := newBuilderFixture(t)
	ctx := context.Background()
	advanceToOptions(t, f.svc, "user-1")

	dto, err := f.svc.GeneratePreview(ctx, "user-1")
	if err != nil {
		t.Fatalf("generate preview: %v", err)
	}
	if dto.ImageURL == nil || *dto.ImageURL != "https://img.test/render.png" {
		t.Fatalf("expected image url on session, got %+v", dto.ImageURL)
	}
	if len(f.generator.prompts) != 1 {
		t.Fatalf("expected one generation call")
	}
}

func TestGeneratePreviewDiscardsStaleImage(t *testing.T) {
	t.Parallel()
	f := newBuilderFixture(t)
	ctx := context.Background()
	advanceToOptions(t, f.svc, "user-1")

	// The build changes while the image render is in flight.
	f.generator.onInvoke = func() {
		if _, err := f.svc.SelectYear(ctx, "user-1", "2020"); err != nil {
			t.Errorf("concurrent year change: %v", err)
		}
	}

	dto, err := f.svc.GeneratePreview(ctx, "user-1")
	if err != nil {
		t.Fatalf("generate preview: %v", err)
	}
	if dto.ImageURL != nil {
		t.Fatalf("stale image must be discarded, got %q", *dto.ImageURL)
	}
	if dto.Year != "2020" {
		t.Fatalf("newer session state must win, year %q", dto.Year)
	}
}

func TestGeneratePreviewRequiresModelAndYear(t *testing.T) {
	t.Parallel()
	f := newBuilderFixture(t)

	_, err := f.svc.GeneratePreview(context.Background(), "user-1")
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddToCartMaterializesAndResets(t *testing.T) {
	t.Parallel()
	f := newBuilderFixture(t)
	ctx := context.Background()
	advanceToOptions(t, f.svc, "user-1")

	hex := "#000000"
	if _, err := f.svc.AddOption(ctx, "user-1", OptionInput{ColorHex: &hex}); err != nil {
		t.Fatalf("add color: %v", err)
	}
	if _, err := f.svc.AddOption(ctx, "user-1", OptionInput{ProductID: &f.splitter.ID}); err != nil {
		t.Fatalf("add option: %v", err)
	}

	if _, err := f.svc.AddToCart(ctx, "user-1"); err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	if len(f.cart.added) != 1 {
		t.Fatalf("expected one cart add, got %d", len(f.cart.added))
	}
	added := f.cart.added[0]
	if added.Custom == nil || added.Custom.Name != "BMW X5" {
		t.Fatalf("unexpected cart input %+v", added)
	}
	if !added.Custom.Price.Equal(decimal.NewFromInt(152000)) {
		t.Fatalf("unexpected price %s", added.Custom.Price)
	}
	if added.Quantity != 1 {
		t.Fatalf("unexpected quantity %d", added.Quantity)
	}

	// The session resets after a successful add.
	dto, err := f.svc.GetSession(ctx, "user-1")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if dto.BrandID != "" || dto.ModelID != "" || len(dto.Options) != 0 {
		t.Fatalf("session must reset after add to cart: %+v", dto.Session)
	}
}
