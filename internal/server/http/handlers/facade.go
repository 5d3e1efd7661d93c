package handlers

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/usecase"
)

// OrderFacade covers the public checkout and tracking endpoints.
type OrderFacade interface {
	CreateOrder(ctx context.Context, req usecase.OrderRequest) (*model.Order, error)
	TrackOrder(ctx context.Context, reference, email string) (*model.PublicOrderView, error)
}

// AdminFacade covers the operator back office.
type AdminFacade interface {
	Order(ctx context.Context, id string) (*model.Order, error)
	UpdateOrder(ctx context.Context, id string, upd usecase.AdminUpdate) (*model.Order, error)
	ReplyToOrder(ctx context.Context, id string, req usecase.ReplyRequest) error
	Orders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	Stats(ctx context.Context) (*model.OrderStats, error)
}

// HealthFacade reports whether the backing store is reachable.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// StorefrontFacade aggregates the full set of operations used across handlers.
type StorefrontFacade interface {
	OrderFacade
	AdminFacade
	HealthFacade
}
