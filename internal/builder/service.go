package builder

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/carmodifyx/modifyx-backend/internal/cart"
	"github.com/carmodifyx/modifyx-backend/pkg/db"
	"github.com/carmodifyx/modifyx-backend/pkg/enums"
	pkgerrors "github.com/carmodifyx/modifyx-backend/pkg/errors"
	"github.com/carmodifyx/modifyx-backend/pkg/logger"
)

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ImageGenerator renders a car preview for a prompt.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// OptionInput picks one customization: a catalog product (exterior or
// interior) or a paint color by hex.
type OptionInput struct {
	ProductID *uuid.UUID
	ColorHex  *string
}

// SessionDTO is the session plus its derived running total.
type SessionDTO struct {
	*Session
	RunningTotal decimal.Decimal `json:"runningTotal"`
}

// Service drives the step-by-step custom build flow.
type Service interface {
	GetSession(ctx context.Context, userID string) (*SessionDTO, error)
	SelectBrand(ctx context.Context, userID, brandID string) (*SessionDTO, error)
	SelectModel(ctx context.Context, userID, modelID string) (*SessionDTO, error)
	SelectYear(ctx context.Context, userID, year string) (*SessionDTO, error)
	AddOption(ctx context.Context, userID string, input OptionInput) (*SessionDTO, error)
	RemoveOption(ctx context.Context, userID, optionID string) (*SessionDTO, error)
	GeneratePreview(ctx context.Context, userID string) (*SessionDTO, error)
	AddToCart(ctx context.Context, userID string) (*cart.CartDTO, error)
	Reset(ctx context.Context, userID string) error
}

type service struct {
	store      SessionStore
	products   cart.ProductLoader
	cartSvc    cart.Service
	generator  ImageGenerator
	colorPrice decimal.Decimal
	logg       *logger.Logger
}

// NewService builds the custom build service.
func NewService(store SessionStore, products cart.ProductLoader, cartSvc cart.Service, generator ImageGenerator, colorPrice decimal.Decimal, logg *logger.Logger) Service {
	return &service{
		store:      store,
		products:   products,
		cartSvc:    cartSvc,
		generator:  generator,
		colorPrice: colorPrice,
		logg:       logg,
	}
}

func (s *service) GetSession(ctx context.Context, userID string) (*SessionDTO, error) {
	session, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toSessionDTO(session), nil
}

func (s *service) SelectBrand(ctx context.Context, userID, brandID string) (*SessionDTO, error) {
	return s.mutate(ctx, userID, func(session *Session) error {
		return session.SelectBrand(brandID)
	})
}

func (s *service) SelectModel(ctx context.Context, userID, modelID string) (*SessionDTO, error) {
	return s.mutate(ctx, userID, func(session *Session) error {
		return session.SelectModel(modelID)
	})
}

func (s *service) SelectYear(ctx context.Context, userID, year string) (*SessionDTO, error) {
	return s.mutate(ctx, userID, func(session *Session) error {
		return session.SelectYear(year)
	})
}

func (s *service) AddOption(ctx context.Context, userID string, input OptionInput) (*SessionDTO, error) {
	selection, err := s.resolveSelection(ctx, input)
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, userID, func(session *Session) error {
		return session.AddOption(*selection)
	})
}

func (s *service) RemoveOption(ctx context.Context, userID, optionID string) (*SessionDTO, error) {
	return s.mutate(ctx, userID, func(session *Session) error {
		session.RemoveOption(optionID)
		return nil
	})
}

// GeneratePreview renders the AI image for the current build. The
// session's mutation sequence is captured before the slow generation
// call; if the build changed in the meantime the stale image is
// discarded instead of overwriting the newer state.
func (s *service) GeneratePreview(ctx context.Context, userID string) (*SessionDTO, error) {
	session, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	prompt, err := BuildPrompt(session)
	if err != nil {
		return nil, err
	}
	seq := session.ImageSeq

	url, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "generating preview image")
	}

	latest, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if latest.ImageSeq != seq {
		if s.logg != nil {
			s.logg.Warn(ctx, "discarding stale preview image")
		}
		return toSessionDTO(latest), nil
	}

	latest.ImageURL = &url
	if err := s.store.Save(ctx, latest); err != nil {
		return nil, err
	}
	return toSessionDTO(latest), nil
}

// AddToCart materializes the build into a custom cart line and resets the
// session so the next build starts clean.
func (s *service) AddToCart(ctx context.Context, userID string) (*cart.CartDTO, error) {
	session, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := session.Materialize()
	if err != nil {
		return nil, err
	}

	dto, err := s.cartSvc.AddItem(ctx, userID, cart.AddItemInput{Custom: item, Quantity: 1})
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, userID); err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *service) Reset(ctx context.Context, userID string) error {
	return s.store.Delete(ctx, userID)
}

// mutate loads, applies and saves a session change, bumping the mutation
// sequence used to invalidate in-flight preview generations.
func (s *service) mutate(ctx context.Context, userID string, fn func(*Session) error) (*SessionDTO, error) {
	session, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	session.ImageSeq++
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return toSessionDTO(session), nil
}

func (s *service) resolveSelection(ctx context.Context, input OptionInput) (*OptionSelection, error) {
	hasProduct := input.ProductID != nil
	hasColor := input.ColorHex != nil
	if hasProduct == hasColor {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "exactly one of productId or colorHex is required")
	}

	if hasColor {
		hex := strings.TrimSpace(*input.ColorHex)
		if !hexColorRe.MatchString(hex) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid color hex %q", hex))
		}
		return &OptionSelection{
			ID:       "color-" + strings.ToUpper(hex),
			Name:     DescriptiveColorName(hex),
			Category: enums.OptionCategoryColor,
			Hex:      strings.ToUpper(hex),
			Price:    s.colorPrice,
		}, nil
	}

	product, err := s.products.FindByID(ctx, *input.ProductID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "option product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading option product")
	}
	category, err := enums.ParseOptionCategory(product.Category)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("product %q is not a customization option", product.Name))
	}

	return &OptionSelection{
		ID:       product.ID.String(),
		Name:     product.Name,
		Category: category,
		Price:    product.Price,
	}, nil
}

func toSessionDTO(session *Session) *SessionDTO {
	return &SessionDTO{Session: session, RunningTotal: session.RunningTotal()}
}
