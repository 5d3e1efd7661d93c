package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

const maxAllocationAttempts = 5

// IntakeUseCase validates and persists new orders, then queues their notifications.
type IntakeUseCase struct {
	orders    repository.OrderRepository
	allocator *ReferenceAllocator
	validator *RequestValidator
	composer  MessageComposer
	notifier  Notifier
	logger    *slog.Logger
	now       func() time.Time
}

// NewIntakeUseCase constructs IntakeUseCase.
func NewIntakeUseCase(
	orders repository.OrderRepository,
	allocator *ReferenceAllocator,
	validator *RequestValidator,
	composer MessageComposer,
	notifier Notifier,
	logger *slog.Logger,
) *IntakeUseCase {
	return &IntakeUseCase{
		orders:    orders,
		allocator: allocator,
		validator: validator,
		composer:  composer,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

// Create validates req and stores it as a new order. Notification problems are logged
// and never fail the call once the order is stored.
func (u *IntakeUseCase) Create(ctx context.Context, req OrderRequest) (*model.Order, error) {
	if err := u.validator.ValidateOrder(&req); err != nil {
		return nil, err
	}

	order := buildOrder(req, u.now().UTC())

	var (
		created *model.Order
		err     error
	)
	for attempt := 1; ; attempt++ {
		order.Reference, err = u.allocator.Allocate(ctx)
		if err != nil {
			return nil, err
		}

		created, err = u.orders.Create(ctx, order)
		if err == nil {
			break
		}
		if !errors.Is(err, domainErrors.ErrConflict) || attempt >= maxAllocationAttempts {
			return nil, err
		}
		u.logger.Warn("order reference taken, allocating another",
			slog.String("reference", order.Reference),
			slog.Int("attempt", attempt),
		)
	}

	u.logger.Info("order created",
		slog.String("order_id", created.ID),
		slog.String("reference", created.Reference),
		slog.Int("items", len(created.Items)),
	)

	u.notifyCreated(created)
	return created, nil
}

func (u *IntakeUseCase) notifyCreated(order *model.Order) {
	composers := []func(*model.Order) (model.Message, error){
		u.composer.Confirmation,
		u.composer.AdminAlert,
	}
	for _, compose := range composers {
		msg, err := compose(order)
		if err != nil {
			u.logger.Error("compose order notification",
				slog.String("reference", order.Reference),
				slog.String("error", err.Error()),
			)
			continue
		}
		if err := u.notifier.Enqueue(msg); err != nil {
			u.logger.Error("enqueue order notification",
				slog.String("reference", order.Reference),
				slog.String("kind", string(msg.Kind)),
				slog.String("error", err.Error()),
			)
		}
	}
}

func buildOrder(req OrderRequest, now time.Time) *model.Order {
	items := make([]model.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, model.LineItem{
			ProductID:  item.ProductID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   item.Quantity,
			Attributes: item.Attributes,
		})
	}

	return &model.Order{
		Items: items,
		Customer: model.Customer{
			Name:  req.Customer.Name,
			Email: req.Customer.Email,
			Phone: req.Customer.Phone,
		},
		Shipping: model.Shipping{
			Address:         req.Shipping.Address,
			City:            req.Shipping.City,
			State:           req.Shipping.State,
			ZipCode:         req.Shipping.ZipCode,
			Country:         req.Shipping.Country,
			PreferredMethod: req.Shipping.PreferredMethod,
		},
		Payment: model.Payment{
			PreferredMethod: req.Payment.PreferredMethod,
			CustomMethod:    req.Payment.CustomMethod,
			Status:          model.PaymentStatusPending,
			TotalAmount:     req.Payment.TotalAmount,
		},
		Status: model.OrderStatusNew,
		StatusHistory: []model.StatusEntry{{
			Status:      model.OrderStatusNew,
			Timestamp:   now,
			Note:        "Order created",
			TriggeredBy: model.TriggeredBySystem,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
