package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/config"
	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	testhelpers "github.com/polkiloo/storefront/internal/test"
	"github.com/polkiloo/storefront/internal/usecase"
)

type healthStub struct {
	err error
}

func (h healthStub) HealthCheck(context.Context) error { return h.err }

func newFacade(health HealthChecker) (*StorefrontFacade, *testhelpers.OrderRepositoryStub, *testhelpers.NotifierStub) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	orders := testhelpers.NewOrderRepositoryStub()
	notifier := &testhelpers.NotifierStub{}
	composer := testhelpers.ComposerStub{}

	allocator := usecase.NewReferenceAllocator(&testhelpers.SequenceRepositoryStub{})
	intake := usecase.NewIntakeUseCase(orders, allocator, usecase.NewRequestValidator(), composer, notifier, logger)
	tracking := usecase.NewTrackingUseCase(orders)
	engine := usecase.NewStatusEngine(orders, logger)
	admin := usecase.NewAdminUseCase(orders, engine, composer, notifier, &config.Config{MaxAttachmentBytes: 1024}, logger)

	return NewStorefrontFacade(intake, tracking, admin, health), orders, notifier
}

func orderRequest() usecase.OrderRequest {
	return usecase.OrderRequest{
		Items: []usecase.ItemRequest{
			{ProductID: "p1", Name: "Lily", Price: decimal.NewFromInt(50), Quantity: 1},
			{ProductID: "p2", Name: "Rose", Price: decimal.NewFromInt(30), Quantity: 2},
		},
		Customer: usecase.CustomerRequest{Name: "Jane Doe", Email: "jane@example.com"},
		Shipping: usecase.ShippingRequest{Address: "1 Main St", City: "Austin", ZipCode: "73301", Country: "US"},
		Payment:  usecase.PaymentRequest{PreferredMethod: "zelle", TotalAmount: decimal.NewFromInt(110)},
	}
}

func TestStorefrontFacadeOrderLifecycle(t *testing.T) {
	facade, orders, notifier := newFacade(healthStub{})
	ctx := context.Background()

	order, err := facade.CreateOrder(ctx, orderRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if orders.Len() != 1 || len(notifier.Messages()) != 2 {
		t.Fatalf("expected one stored order and two notifications, got %d/%d", orders.Len(), len(notifier.Messages()))
	}

	view, err := facade.TrackOrder(ctx, order.Reference, "JANE@example.com")
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	if view.Status != model.OrderStatusNew || len(view.Items) != 2 || view.Items[1].Quantity != 2 {
		t.Fatalf("unexpected view %+v", view)
	}
	if _, err := facade.TrackOrder(ctx, order.Reference, "someone@example.com"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found for wrong email, got %v", err)
	}

	status := model.OrderStatusShipped
	note := "Left warehouse"
	updated, err := facade.UpdateOrder(ctx, order.ID, usecase.AdminUpdate{Status: &status, Notes: &note})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	last, _ := updated.LastStatus()
	if updated.Status != model.OrderStatusShipped || last.Note != "Left warehouse" || len(updated.StatusHistory) != 2 {
		t.Fatalf("unexpected order after transition %+v", updated)
	}

	if err := facade.ReplyToOrder(ctx, order.ID, usecase.ReplyRequest{Subject: "Payment", Message: "Details"}); err != nil {
		t.Fatalf("reply: %v", err)
	}
	fetched, err := facade.Order(ctx, order.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.Status != model.OrderStatusShipped || len(fetched.StatusHistory) != 2 {
		t.Fatal("reply must not touch status or history")
	}
	if len(notifier.Messages()) != 3 {
		t.Fatalf("expected reply to be queued, got %d messages", len(notifier.Messages()))
	}

	list, err := facade.Orders(ctx, model.OrderFilter{})
	if err != nil || len(list) != 1 {
		t.Fatalf("unexpected list %v (%v)", list, err)
	}
}

func TestStorefrontFacadeStats(t *testing.T) {
	facade, orders, _ := newFacade(healthStub{})
	orders.StatsFn = func(context.Context) (*model.OrderStats, error) {
		return &model.OrderStats{Total: 1}, nil
	}

	stats, err := facade.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 1 || stats.ByStatus == nil {
		t.Fatalf("expected non-nil status counters, got %+v", stats)
	}

	orders.StatsFn = func(context.Context) (*model.OrderStats, error) {
		return nil, domainErrors.ErrStoreUnavailable
	}
	if _, err := facade.Stats(context.Background()); !errors.Is(err, domainErrors.ErrStoreUnavailable) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestStorefrontFacadeHealth(t *testing.T) {
	facade, _, _ := newFacade(healthStub{})
	if err := facade.Health(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	down := errors.New("connection refused")
	facade, _, _ = newFacade(healthStub{err: down})
	if err := facade.Health(context.Background()); !errors.Is(err, down) {
		t.Fatalf("expected health error, got %v", err)
	}
}
