package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
)

func TestTrackReturnsPublicProjection(t *testing.T) {
	h := newHarness()
	order := createdOrder(t, h)

	view, err := h.tracking.Track(context.Background(), " rb202405170001 ", "jane.doe@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.Reference != order.Reference || view.Status != model.OrderStatusNew {
		t.Fatalf("unexpected view: %+v", view)
	}
	want := []model.PublicItem{{Name: "Lily", Quantity: 1}, {Name: "Rose", Quantity: 2}}
	if len(view.Items) != len(want) {
		t.Fatalf("unexpected items: %+v", view.Items)
	}
	for i := range want {
		if view.Items[i] != want[i] {
			t.Fatalf("item %d: got %+v, want %+v", i, view.Items[i], want[i])
		}
	}
	if view.City != "Springfield" || view.Country != "US" {
		t.Fatalf("unexpected location %s/%s", view.City, view.Country)
	}
	if len(view.StatusHistory) != 1 {
		t.Fatalf("expected full history, got %d entries", len(view.StatusHistory))
	}
}

func TestTrackMismatchesAreIndistinguishable(t *testing.T) {
	h := newHarness()
	createdOrder(t, h)

	cases := []struct {
		name, reference, email string
	}{
		{"wrong email", "RB202405170001", "someone@example.com"},
		{"wrong reference", "RB202405170002", "jane.doe@example.com"},
		{"malformed reference", "order-1", "jane.doe@example.com"},
	}

	for _, tc := range cases {
		_, err := h.tracking.Track(context.Background(), tc.reference, tc.email)
		if !errors.Is(err, domainErrors.ErrNotFound) {
			t.Fatalf("%s: expected not found, got %v", tc.name, err)
		}
	}
}

func TestTrackRequiresBothValues(t *testing.T) {
	h := newHarness()

	for _, args := range [][2]string{{"", "jane@example.com"}, {"RB202405170001", " "}} {
		if _, err := h.tracking.Track(context.Background(), args[0], args[1]); !errors.Is(err, domainErrors.ErrValidation) {
			t.Fatalf("expected validation error for %q, got %v", args, err)
		}
	}
	if h.orders.Calls("FindForTracking") != 0 {
		t.Fatal("store must not be queried for incomplete requests")
	}
}
