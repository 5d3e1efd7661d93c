package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestOrderStatusValues(t *testing.T) {
	cases := []struct {
		got   OrderStatus
		value string
	}{
		{OrderStatusNew, "new"},
		{OrderStatusPending, "pending"},
		{OrderStatusConfirmed, "confirmed"},
		{OrderStatusAwaitingDeposit, "awaiting_deposit"},
		{OrderStatusPaid, "paid"},
		{OrderStatusInProgress, "in_progress"},
		{OrderStatusShipped, "shipped"},
		{OrderStatusCompleted, "completed"},
		{OrderStatusCancelled, "cancelled"},
	}

	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
			if !tc.got.Valid() {
				t.Fatalf("expected %s to be valid", tc.got)
			}
		})
	}

	if OrderStatus("lost").Valid() {
		t.Fatal("unexpected valid status")
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderStatusNew, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusNew, true},
		{OrderStatusPaid, OrderStatusPaid, true},
		{OrderStatusShipped, OrderStatusCompleted, true},
		{OrderStatusCompleted, OrderStatusShipped, false},
		{OrderStatusCancelled, OrderStatusNew, false},
		{OrderStatusCancelled, OrderStatusCancelled, false},
		{OrderStatusNew, OrderStatus("bogus"), false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestSourcesForExcludesTerminal(t *testing.T) {
	sources := SourcesFor(OrderStatusShipped)
	if len(sources) != len(OrderStatuses)-2 {
		t.Fatalf("expected %d sources, got %d", len(OrderStatuses)-2, len(sources))
	}
	for _, s := range sources {
		if s.Terminal() {
			t.Fatalf("terminal status %s must not be a source", s)
		}
	}
}

func TestPaymentStatusValid(t *testing.T) {
	for _, s := range []PaymentStatus{PaymentStatusPending, PaymentStatusDepositReceived, PaymentStatusPaid, PaymentStatusRefunded} {
		if !s.Valid() {
			t.Fatalf("expected %s to be valid", s)
		}
	}
	if PaymentStatus("partial").Valid() {
		t.Fatal("unexpected valid payment status")
	}
}

func TestLineItemSubtotal(t *testing.T) {
	item := LineItem{Price: decimal.RequireFromString("30.50"), Quantity: 2}
	if !item.Subtotal().Equal(decimal.RequireFromString("61")) {
		t.Fatalf("unexpected subtotal %s", item.Subtotal())
	}
}

func TestPublicViewHidesPrivateFields(t *testing.T) {
	created := time.Date(2024, 5, 17, 10, 0, 0, 0, time.UTC)
	order := &Order{
		ID:        "id",
		Reference: "RB202405170007",
		Items: []LineItem{
			{ProductID: "p1", Name: "Lily", Price: decimal.NewFromInt(50), Quantity: 1},
			{ProductID: "p2", Name: "Rose", Price: decimal.NewFromInt(30), Quantity: 2},
		},
		Customer: Customer{Name: "Ann", Email: "ann@example.com"},
		Shipping: Shipping{Address: "1 Main St", City: "Austin", ZipCode: "73301", Country: "US"},
		Payment:  Payment{PreferredMethod: "zelle", TotalAmount: decimal.NewFromInt(110)},
		Status:   OrderStatusNew,
		StatusHistory: []StatusEntry{
			{Status: OrderStatusNew, Timestamp: created, Note: "Order created"},
		},
		CreatedAt: created,
	}

	view := order.PublicView()
	if view.Reference != order.Reference || view.Status != OrderStatusNew || !view.CreatedAt.Equal(created) {
		t.Fatalf("unexpected view header: %+v", view)
	}
	if view.City != "Austin" || view.Country != "US" {
		t.Fatalf("unexpected location: %s %s", view.City, view.Country)
	}
	if len(view.Items) != 2 || view.Items[1] != (PublicItem{Name: "Rose", Quantity: 2}) {
		t.Fatalf("unexpected items: %+v", view.Items)
	}
	if len(view.StatusHistory) != 1 {
		t.Fatalf("expected history to be copied, got %d", len(view.StatusHistory))
	}

	view.StatusHistory[0].Note = "mutated"
	if order.StatusHistory[0].Note != "Order created" {
		t.Fatal("view must not alias order history")
	}
}

func TestLastStatusAndEmptyUpdate(t *testing.T) {
	order := &Order{}
	if _, ok := order.LastStatus(); ok {
		t.Fatal("expected no last status on empty history")
	}
	order.StatusHistory = append(order.StatusHistory, StatusEntry{Status: OrderStatusPaid})
	if last, ok := order.LastStatus(); !ok || last.Status != OrderStatusPaid {
		t.Fatalf("unexpected last status %+v", last)
	}

	if !(OrderUpdate{}).IsEmpty() {
		t.Fatal("expected empty update")
	}
	notes := "call first"
	if (OrderUpdate{Notes: &notes}).IsEmpty() {
		t.Fatal("expected non-empty update")
	}
}
