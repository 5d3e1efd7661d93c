// Package httpstub holds fakes for the HTTP layer. It lives apart from
// package test because it depends on usecase request types.
package httpstub

import (
	"context"
	"sync"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/usecase"
)

// FacadeStub implements the storefront facade with overridable behaviour.
// Unset functions return zero values.
type FacadeStub struct {
	CreateFn func(context.Context, usecase.OrderRequest) (*model.Order, error)
	TrackFn  func(context.Context, string, string) (*model.PublicOrderView, error)
	OrderFn  func(context.Context, string) (*model.Order, error)
	UpdateFn func(context.Context, string, usecase.AdminUpdate) (*model.Order, error)
	ReplyFn  func(context.Context, string, usecase.ReplyRequest) error
	OrdersFn func(context.Context, model.OrderFilter) ([]model.Order, error)
	StatsFn  func(context.Context) (*model.OrderStats, error)
	HealthFn func(context.Context) error

	mu    sync.Mutex
	calls []string
}

func (f *FacadeStub) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

// Calls lists invoked methods in order.
func (f *FacadeStub) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FacadeStub) CreateOrder(ctx context.Context, req usecase.OrderRequest) (*model.Order, error) {
	f.record("CreateOrder")
	if f.CreateFn != nil {
		return f.CreateFn(ctx, req)
	}
	return &model.Order{}, nil
}

func (f *FacadeStub) TrackOrder(ctx context.Context, reference, email string) (*model.PublicOrderView, error) {
	f.record("TrackOrder")
	if f.TrackFn != nil {
		return f.TrackFn(ctx, reference, email)
	}
	return &model.PublicOrderView{}, nil
}

func (f *FacadeStub) Order(ctx context.Context, id string) (*model.Order, error) {
	f.record("Order")
	if f.OrderFn != nil {
		return f.OrderFn(ctx, id)
	}
	return &model.Order{ID: id}, nil
}

func (f *FacadeStub) UpdateOrder(ctx context.Context, id string, upd usecase.AdminUpdate) (*model.Order, error) {
	f.record("UpdateOrder")
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, id, upd)
	}
	return &model.Order{ID: id}, nil
}

func (f *FacadeStub) ReplyToOrder(ctx context.Context, id string, req usecase.ReplyRequest) error {
	f.record("ReplyToOrder")
	if f.ReplyFn != nil {
		return f.ReplyFn(ctx, id, req)
	}
	return nil
}

func (f *FacadeStub) Orders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	f.record("Orders")
	if f.OrdersFn != nil {
		return f.OrdersFn(ctx, filter)
	}
	return nil, nil
}

func (f *FacadeStub) Stats(ctx context.Context) (*model.OrderStats, error) {
	f.record("Stats")
	if f.StatsFn != nil {
		return f.StatsFn(ctx)
	}
	return &model.OrderStats{ByStatus: map[model.OrderStatus]int64{}}, nil
}

func (f *FacadeStub) Health(ctx context.Context) error {
	f.record("Health")
	if f.HealthFn != nil {
		return f.HealthFn(ctx)
	}
	return nil
}
