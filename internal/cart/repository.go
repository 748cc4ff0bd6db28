package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/carmodifyx/modifyx-backend/pkg/db/models"
	"github.com/carmodifyx/modifyx-backend/pkg/enums"
)

// CartRepository defines the persistence surface the cart service needs.
type CartRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.CartItem, error)
	FindByID(ctx context.Context, userID string, itemID uuid.UUID) (*models.CartItem, error)
	FindStandardByProduct(ctx context.Context, userID string, productID uuid.UUID) (*models.CartItem, error)
	Insert(ctx context.Context, item *models.CartItem) error
	UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	Delete(ctx context.Context, userID string, itemID uuid.UUID) error
	DeleteByUser(ctx context.Context, userID string) error
}

// Repository wires cart persistence to GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListByUser returns the user's cart lines, oldest first so the cart
// renders in insertion order.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID loads one cart line scoped to the owning user.
func (r *Repository) FindByID(ctx context.Context, userID string, itemID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		First(&item, "id = ? AND user_id = ?", itemID, userID).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindStandardByProduct returns the user's existing standard line for the
// product, or gorm.ErrRecordNotFound.
func (r *Repository) FindStandardByProduct(ctx context.Context, userID string, productID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		First(&item, "user_id = ? AND kind = ? AND product_id = ?", userID, enums.ItemKindStandard, productID).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Insert persists a new cart line.
func (r *Repository) Insert(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// UpdateQuantity sets the quantity on one cart line.
func (r *Repository) UpdateQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity).Error
}

// Delete removes one cart line scoped to the owning user.
func (r *Repository) Delete(ctx context.Context, userID string, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.CartItem{}).Error
}

// DeleteByUser drops the user's whole cart.
func (r *Repository) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}
