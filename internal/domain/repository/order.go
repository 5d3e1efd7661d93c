package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	GetByReference(ctx context.Context, reference string) (*model.Order, error)
	FindForTracking(ctx context.Context, reference, email string) (*model.Order, error)
	// AppendStatus sets the status, appends entry and applies the non-nil fields
	// of details in one atomic write, provided the current status is one of allowedFrom.
	AppendStatus(ctx context.Context, id string, entry model.StatusEntry, allowedFrom []model.OrderStatus, details model.OrderUpdate) (*model.Order, error)
	UpdateDetails(ctx context.Context, id string, update model.OrderUpdate) (*model.Order, error)
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	Stats(ctx context.Context) (*model.OrderStats, error)
}
