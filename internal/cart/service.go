package cart

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/carmodifyx/modifyx-backend/internal/pricing"
	"github.com/carmodifyx/modifyx-backend/pkg/db"
	"github.com/carmodifyx/modifyx-backend/pkg/db/models"
	"github.com/carmodifyx/modifyx-backend/pkg/enums"
	pkgerrors "github.com/carmodifyx/modifyx-backend/pkg/errors"
	"github.com/carmodifyx/modifyx-backend/pkg/logger"
)

// ProductLoader is the slice of the catalog the cart needs when
// snapshotting a standard item.
type ProductLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes the cart operations used by the API layer.
type Service interface {
	GetCart(ctx context.Context, userID string) (*CartDTO, error)
	AddItem(ctx context.Context, userID string, input AddItemInput) (*CartDTO, error)
	SetQuantity(ctx context.Context, userID string, itemID uuid.UUID, quantity int) (*CartDTO, error)
	RemoveItem(ctx context.Context, userID string, itemID uuid.UUID) (*CartDTO, error)
	Clear(ctx context.Context, userID string) error
}

type service struct {
	repo     CartRepository
	products ProductLoader
	policy   pricing.Policy
	logg     *logger.Logger
}

// NewService builds the cart service.
func NewService(repo CartRepository, products ProductLoader, policy pricing.Policy, logg *logger.Logger) Service {
	return &service{
		repo:     repo,
		products: products,
		policy:   policy,
		logg:     logg,
	}
}

func (s *service) GetCart(ctx context.Context, userID string) (*CartDTO, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart")
	}
	return s.assemble(items), nil
}

func (s *service) AddItem(ctx context.Context, userID string, input AddItemInput) (*CartDTO, error) {
	if err := validateAddInput(input); err != nil {
		return nil, err
	}

	quantity := input.Quantity
	if quantity < 1 {
		quantity = 1
	}

	if input.ProductID != nil {
		if err := s.addStandardItem(ctx, userID, *input.ProductID, quantity); err != nil {
			return nil, err
		}
	} else {
		if err := s.addCustomItem(ctx, userID, *input.Custom, quantity); err != nil {
			return nil, err
		}
	}

	return s.GetCart(ctx, userID)
}

// addStandardItem snapshots the product into a cart line. Adding the same
// product again bumps the existing line's quantity instead of duplicating it.
func (s *service) addStandardItem(ctx context.Context, userID string, productID uuid.UUID, quantity int) error {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	if !product.IsActive {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	existing, err := s.repo.FindStandardByProduct(ctx, userID, productID)
	if err == nil {
		if err := s.repo.UpdateQuantity(ctx, existing.ID, existing.Quantity+quantity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating cart quantity")
		}
		return nil
	}
	if !db.IsNotFound(err) {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "checking existing cart line")
	}

	item := &models.CartItem{
		UserID:    userID,
		Kind:      enums.ItemKindStandard,
		ProductID: &product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Image:     product.Image,
		Quantity:  quantity,
	}
	if err := s.repo.Insert(ctx, item); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "inserting cart line")
	}
	return nil
}

// addCustomItem always appends: every finished build is its own line.
func (s *service) addCustomItem(ctx context.Context, userID string, custom CustomItemInput, quantity int) error {
	item := &models.CartItem{
		UserID:        userID,
		Kind:          enums.ItemKindCustom,
		Name:          custom.Name,
		UnitPrice:     custom.Price,
		Image:         custom.Image,
		CustomDetails: custom.Details,
		Quantity:      quantity,
	}
	if err := s.repo.Insert(ctx, item); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "inserting custom cart line")
	}
	return nil
}

// SetQuantity updates one line's quantity. Requests below 1 are a silent
// no-op so spinner underflow in clients cannot zero out a line.
func (s *service) SetQuantity(ctx context.Context, userID string, itemID uuid.UUID, quantity int) (*CartDTO, error) {
	if quantity < 1 {
		return s.GetCart(ctx, userID)
	}

	item, err := s.repo.FindByID(ctx, userID, itemID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart item")
	}

	if item.Quantity != quantity {
		if err := s.repo.UpdateQuantity(ctx, item.ID, quantity); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating cart quantity")
		}
	}

	return s.GetCart(ctx, userID)
}

// RemoveItem deletes the line. The quantity index is derived from the
// lines themselves, so the entry disappears with the row.
func (s *service) RemoveItem(ctx context.Context, userID string, itemID uuid.UUID) (*CartDTO, error) {
	if _, err := s.repo.FindByID(ctx, userID, itemID); err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading cart item")
	}

	if err := s.repo.Delete(ctx, userID, itemID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "removing cart item")
	}

	return s.GetCart(ctx, userID)
}

func (s *service) Clear(ctx context.Context, userID string) error {
	if err := s.repo.DeleteByUser(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clearing cart")
	}
	return nil
}

func (s *service) assemble(items []models.CartItem) *CartDTO {
	dto := &CartDTO{
		Items:      make([]LineItemDTO, 0, len(items)),
		Quantities: make(map[uuid.UUID]int, len(items)),
	}
	lines := make([]pricing.Line, 0, len(items))
	for i := range items {
		line := toLineDTO(&items[i])
		dto.Items = append(dto.Items, line)
		dto.Quantities[line.ID] = line.Quantity
		lines = append(lines, pricing.Line{UnitPrice: line.UnitPrice, Quantity: line.Quantity})
	}

	summary := s.policy.Summarize(lines)
	dto.Subtotal = summary.Subtotal
	dto.Shipping = summary.Shipping
	dto.Tax = summary.Tax
	dto.Total = summary.Total
	return dto
}

func validateAddInput(input AddItemInput) error {
	hasProduct := input.ProductID != nil
	hasCustom := input.Custom != nil
	if hasProduct == hasCustom {
		return pkgerrors.New(pkgerrors.CodeValidation, "exactly one of productId or customData is required")
	}
	if hasCustom {
		if strings.TrimSpace(input.Custom.Name) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "custom item name is required")
		}
		if input.Custom.Price.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "custom item price cannot be negative")
		}
	}
	return nil
}
