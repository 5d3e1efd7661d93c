package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// StatusEngine applies status transitions together with their history entries.
type StatusEngine struct {
	orders repository.OrderRepository
	logger *slog.Logger
	now    func() time.Time
}

// NewStatusEngine constructs StatusEngine.
func NewStatusEngine(orders repository.OrderRepository, logger *slog.Logger) *StatusEngine {
	return &StatusEngine{orders: orders, logger: logger, now: time.Now}
}

// Transition moves order id to status and appends a history entry in the same store write.
// An empty note is replaced with "Status updated to {status}".
func (e *StatusEngine) Transition(ctx context.Context, id string, status model.OrderStatus, note, triggeredBy string) (*model.Order, error) {
	return e.transition(ctx, id, status, note, triggeredBy, model.OrderUpdate{})
}

// transition also writes the non-nil fields of details in the same statement as the status.
func (e *StatusEngine) transition(ctx context.Context, id string, status model.OrderStatus, note, triggeredBy string, details model.OrderUpdate) (*model.Order, error) {
	if !status.Valid() {
		return nil, domainErrors.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
	}
	if !validOrderID(id) {
		return nil, domainErrors.ErrNotFound
	}

	note = strings.TrimSpace(note)
	if note == "" {
		note = fmt.Sprintf("Status updated to %s", status)
	}
	if triggeredBy == "" {
		triggeredBy = model.TriggeredByAdmin
	}

	entry := model.StatusEntry{
		Status:      status,
		Timestamp:   e.now().UTC(),
		Note:        note,
		TriggeredBy: triggeredBy,
	}

	order, err := e.orders.AppendStatus(ctx, id, entry, model.SourcesFor(status), details)
	if err != nil {
		return nil, err
	}

	e.logger.Info("order status changed",
		slog.String("order_id", id),
		slog.String("reference", order.Reference),
		slog.String("status", string(status)),
		slog.String("triggered_by", triggeredBy),
	)
	return order, nil
}

func validOrderID(id string) bool {
	return uuid.Validate(id) == nil
}
