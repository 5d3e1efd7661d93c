package usecase

import (
	"io"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/test"
)

var fixedNow = time.Date(2024, 5, 17, 14, 30, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func fixedClock() time.Time { return fixedNow }

func validRequest() OrderRequest {
	return OrderRequest{
		Items: []ItemRequest{
			{ProductID: "p-1", Name: "Lily", Price: decimal.NewFromInt(50), Quantity: 1},
			{ProductID: "p-2", Name: "Rose", Price: decimal.NewFromInt(30), Quantity: 2},
		},
		Customer: CustomerRequest{Name: "Jane Doe", Email: "Jane.Doe@Example.com"},
		Shipping: ShippingRequest{Address: "1 Main St", City: "Springfield", ZipCode: "62701", Country: "US"},
		Payment:  PaymentRequest{PreferredMethod: "bank_transfer", TotalAmount: decimal.NewFromInt(110)},
	}
}

type harness struct {
	orders    *test.OrderRepositoryStub
	sequences *test.SequenceRepositoryStub
	notifier  *test.NotifierStub
	allocator *ReferenceAllocator
	engine    *StatusEngine
	intake    *IntakeUseCase
	tracking  *TrackingUseCase
	admin     *AdminUseCase
}

func newHarness() *harness {
	h := &harness{
		orders:    test.NewOrderRepositoryStub(),
		sequences: &test.SequenceRepositoryStub{},
		notifier:  &test.NotifierStub{},
	}
	logger := discardLogger()

	h.allocator = NewReferenceAllocator(h.sequences)
	h.allocator.now = fixedClock

	h.engine = NewStatusEngine(h.orders, logger)
	h.engine.now = func() time.Time { return fixedNow.Add(time.Hour) }

	h.intake = NewIntakeUseCase(h.orders, h.allocator, NewRequestValidator(), test.ComposerStub{}, h.notifier, logger)
	h.intake.now = fixedClock

	h.tracking = NewTrackingUseCase(h.orders)
	h.admin = NewAdminUseCase(h.orders, h.engine, test.ComposerStub{}, h.notifier, &config.Config{MaxAttachmentBytes: 64}, logger)
	return h
}
