package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/carmodifyx/modifyx-backend/pkg/db"
	"github.com/carmodifyx/modifyx-backend/pkg/db/models"
)

// Repository wires order persistence to GORM.
type Repository struct {
	client *db.Client
}

// NewRepository builds a repository on the shared DB client.
func NewRepository(client *db.Client) *Repository {
	return &Repository{client: client}
}

// CreateWithCartClear persists the order with its line items and clears
// the user's cart in the same transaction. Either both happen or neither.
func (r *Repository) CreateWithCartClear(ctx context.Context, order *models.Order, userID string) error {
	return r.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
}

// FindByOrderNumber loads one order with its lines, scoped to the user.
func (r *Repository) FindByOrderNumber(ctx context.Context, userID, orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.client.DB().WithContext(ctx).
		Preload("Items").
		First(&order, "order_number = ? AND user_id = ?", orderNumber, userID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByUser returns the user's orders, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.client.DB().WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
