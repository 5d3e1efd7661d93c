package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// TrackingUseCase serves the public reference+email lookup.
type TrackingUseCase struct {
	orders repository.OrderRepository
}

// NewTrackingUseCase constructs TrackingUseCase.
func NewTrackingUseCase(orders repository.OrderRepository) *TrackingUseCase {
	return &TrackingUseCase{orders: orders}
}

// Track returns the public projection of the order matching both reference and email.
// Any mismatch yields ErrNotFound so callers cannot tell which half was wrong.
func (u *TrackingUseCase) Track(ctx context.Context, reference, email string) (*model.PublicOrderView, error) {
	reference = NormalizeReference(reference)
	email = strings.TrimSpace(email)
	if reference == "" || email == "" {
		return nil, domainErrors.NewValidationError("", "order reference and email are required")
	}
	if !ValidReference(reference) {
		return nil, domainErrors.ErrNotFound
	}

	order, err := u.orders.FindForTracking(ctx, reference, email)
	if err != nil {
		return nil, err
	}
	return order.PublicView(), nil
}
