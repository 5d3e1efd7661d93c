package test

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// OrderRepositoryStub keeps orders in memory and enforces the same constraints as the
// PostgreSQL store: unique references and guarded status appends.
type OrderRepositoryStub struct {
	CreateFn        func(context.Context, *model.Order) (*model.Order, error)
	AppendStatusFn  func(context.Context, string, model.StatusEntry, []model.OrderStatus, model.OrderUpdate) (*model.Order, error)
	UpdateDetailsFn func(context.Context, string, model.OrderUpdate) (*model.Order, error)
	ListFn          func(context.Context, model.OrderFilter) ([]model.Order, error)
	StatsFn         func(context.Context) (*model.OrderStats, error)
	Err             error

	mu     sync.Mutex
	orders map[string]*model.Order
	refs   map[string]string
	calls  map[string]int
}

// NewOrderRepositoryStub constructs an empty in-memory store.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{
		orders: make(map[string]*model.Order),
		refs:   make(map[string]string),
		calls:  make(map[string]int),
	}
}

// Calls reports how many times method was invoked.
func (s *OrderRepositoryStub) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

// Put stores order as is, assigning an id when missing.
func (s *OrderRepositoryStub) Put(order model.Order) *model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	stored := cloneOrder(&order)
	s.orders[stored.ID] = stored
	s.refs[stored.Reference] = stored.ID
	return cloneOrder(stored)
}

// Len returns the number of stored orders.
func (s *OrderRepositoryStub) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *OrderRepositoryStub) record(method string) {
	s.mu.Lock()
	s.calls[method]++
	s.mu.Unlock()
}

// Create stores order unless its reference is already taken.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	s.record("Create")
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	if s.Err != nil {
		return nil, s.Err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.refs[order.Reference]; taken {
		return nil, domainErrors.ErrConflict
	}
	stored := cloneOrder(order)
	stored.ID = uuid.NewString()
	now := time.Now().UTC()
	stored.CreatedAt, stored.UpdatedAt = now, now
	s.orders[stored.ID] = stored
	s.refs[stored.Reference] = stored.ID
	return cloneOrder(stored), nil
}

// GetByID returns a copy of the stored order.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	s.record("GetByID")
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[id]; ok {
		return cloneOrder(o), nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByReference returns a copy of the order holding reference.
func (s *OrderRepositoryStub) GetByReference(ctx context.Context, reference string) (*model.Order, error) {
	s.record("GetByReference")
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.refs[reference]; ok {
		return cloneOrder(s.orders[id]), nil
	}
	return nil, domainErrors.ErrNotFound
}

// FindForTracking matches reference exactly and email case-insensitively.
func (s *OrderRepositoryStub) FindForTracking(ctx context.Context, reference, email string) (*model.Order, error) {
	s.record("FindForTracking")
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.refs[reference]
	if !ok || !strings.EqualFold(s.orders[id].Customer.Email, email) {
		return nil, domainErrors.ErrNotFound
	}
	return cloneOrder(s.orders[id]), nil
}

// AppendStatus sets status, appends entry and applies details atomically when the
// current status is allowed.
func (s *OrderRepositoryStub) AppendStatus(ctx context.Context, id string, entry model.StatusEntry, allowedFrom []model.OrderStatus, details model.OrderUpdate) (*model.Order, error) {
	s.record("AppendStatus")
	if s.AppendStatusFn != nil {
		return s.AppendStatusFn(ctx, id, entry, allowedFrom, details)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if !slices.Contains(allowedFrom, o.Status) {
		return nil, domainErrors.ErrInvalidTransition
	}
	o.Status = entry.Status
	o.StatusHistory = append(o.StatusHistory, entry)
	applyDetails(o, details)
	return cloneOrder(o), nil
}

// UpdateDetails applies non-nil fields of update.
func (s *OrderRepositoryStub) UpdateDetails(ctx context.Context, id string, update model.OrderUpdate) (*model.Order, error) {
	s.record("UpdateDetails")
	if s.UpdateDetailsFn != nil {
		return s.UpdateDetailsFn(ctx, id, update)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	applyDetails(o, update)
	return cloneOrder(o), nil
}

func applyDetails(o *model.Order, update model.OrderUpdate) {
	if update.Notes != nil {
		o.Notes = *update.Notes
	}
	if update.CustomNotes != nil {
		o.CustomNotes = *update.CustomNotes
	}
	if update.PaymentStatus != nil {
		o.Payment.Status = *update.PaymentStatus
	}
	if update.DepositAmount != nil {
		d := *update.DepositAmount
		o.Payment.DepositAmount = &d
	}
	o.UpdatedAt = time.Now().UTC()
}

// List returns stored orders matching the status and email filters.
func (s *OrderRepositoryStub) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	s.record("List")
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for _, o := range s.orders {
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		if filter.Email != "" && !strings.EqualFold(o.Customer.Email, filter.Email) {
			continue
		}
		result = append(result, *cloneOrder(o))
	}
	slices.SortFunc(result, func(a, b model.Order) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return result, nil
}

// Stats returns configured stats or counts stored orders.
func (s *OrderRepositoryStub) Stats(ctx context.Context) (*model.OrderStats, error) {
	s.record("Stats")
	if s.StatsFn != nil {
		return s.StatsFn(ctx)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := &model.OrderStats{ByStatus: make(map[model.OrderStatus]int64)}
	for _, o := range s.orders {
		stats.Total++
		stats.ByStatus[o.Status]++
		if o.Status != model.OrderStatusCancelled {
			stats.Revenue = stats.Revenue.Add(o.Payment.TotalAmount)
		}
	}
	return stats, nil
}

func cloneOrder(o *model.Order) *model.Order {
	c := *o
	c.Items = slices.Clone(o.Items)
	c.StatusHistory = slices.Clone(o.StatusHistory)
	return &c
}

// SequenceRepositoryStub counts per key in memory.
type SequenceRepositoryStub struct {
	NextFn func(context.Context, string) (int64, error)
	Err    error

	mu     sync.Mutex
	values map[string]int64
}

// Set forces the current value for key.
func (s *SequenceRepositoryStub) Set(key string, value int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]int64)
	}
	s.values[key] = value
}

// Next increments and returns the value for key.
func (s *SequenceRepositoryStub) Next(ctx context.Context, key string) (int64, error) {
	if s.NextFn != nil {
		return s.NextFn(ctx, key)
	}
	if s.Err != nil {
		return 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]int64)
	}
	s.values[key]++
	return s.values[key], nil
}

var (
	_ repository.OrderRepository    = (*OrderRepositoryStub)(nil)
	_ repository.SequenceRepository = (*SequenceRepositoryStub)(nil)
)
