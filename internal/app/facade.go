package app

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/usecase"
)

// HealthChecker reports store connectivity.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// StorefrontFacade exposes use cases to the transport layer.
type StorefrontFacade struct {
	intake   *usecase.IntakeUseCase
	tracking *usecase.TrackingUseCase
	admin    *usecase.AdminUseCase
	health   HealthChecker
}

func NewStorefrontFacade(intake *usecase.IntakeUseCase, tracking *usecase.TrackingUseCase, admin *usecase.AdminUseCase, health HealthChecker) *StorefrontFacade {
	return &StorefrontFacade{intake: intake, tracking: tracking, admin: admin, health: health}
}

func (f *StorefrontFacade) CreateOrder(ctx context.Context, req usecase.OrderRequest) (*model.Order, error) {
	return f.intake.Create(ctx, req)
}

func (f *StorefrontFacade) TrackOrder(ctx context.Context, reference, email string) (*model.PublicOrderView, error) {
	return f.tracking.Track(ctx, reference, email)
}

func (f *StorefrontFacade) Order(ctx context.Context, id string) (*model.Order, error) {
	return f.admin.Get(ctx, id)
}

func (f *StorefrontFacade) UpdateOrder(ctx context.Context, id string, upd usecase.AdminUpdate) (*model.Order, error) {
	return f.admin.Update(ctx, id, upd)
}

func (f *StorefrontFacade) ReplyToOrder(ctx context.Context, id string, req usecase.ReplyRequest) error {
	return f.admin.Reply(ctx, id, req)
}

func (f *StorefrontFacade) Orders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	return f.admin.List(ctx, filter)
}

func (f *StorefrontFacade) Stats(ctx context.Context) (*model.OrderStats, error) {
	stats, err := f.admin.Stats(ctx)
	if err != nil {
		return nil, err
	}
	if stats.ByStatus == nil {
		stats.ByStatus = map[model.OrderStatus]int64{}
	}
	return stats, nil
}

func (f *StorefrontFacade) Health(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}
