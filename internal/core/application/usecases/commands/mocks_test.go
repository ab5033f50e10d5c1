package commands_test

import (
	"context"
	"sync"
	"testing"

	"purchasing/internal/core/application/usecases/commands"
	"purchasing/internal/core/domain/model/identity"
	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/core/domain/model/order"
	"purchasing/internal/core/ports"
	"purchasing/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) MaxSequence(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockSequenceCounter struct{ mock.Mock }

func (m *MockSequenceCounter) Next(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSequenceCounter) EnsureAtLeast(ctx context.Context, n int64) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// inMemoryOrders is a goroutine-safe OrderUoW with a versioned store, used where a
// whole flow is exercised rather than individual calls.
type inMemoryOrders struct {
	mu     sync.Mutex
	orders map[kernel.UUID]order.State
}

func newInMemoryOrders() *inMemoryOrders {
	return &inMemoryOrders{orders: make(map[kernel.UUID]order.State)}
}

func (s *inMemoryOrders) Create() commands.OrderUoW { return s }

func (s *inMemoryOrders) Begin(context.Context) error { return nil }
func (s *inMemoryOrders) Commit(context.Context) error { return nil }
func (s *inMemoryOrders) Rollback(context.Context) error { return nil }

func (s *inMemoryOrders) OrderRepository() ports.OrderRepository { return s }

func stateOf(o *order.Order, version int64) order.State {
	return order.State{
		ID:            o.ID(),
		Number:        o.Number(),
		Supplier:      o.Supplier(),
		Items:         o.Items(),
		TotalAmount:   o.TotalAmount(),
		DeliveryDate:  o.DeliveryDate(),
		Status:        o.Status(),
		CreatedBy:     o.CreatedBy(),
		CreatedAt:     o.CreatedAt(),
		ApprovedBy:    o.ApprovedBy(),
		ApprovedAt:    o.ApprovedAt(),
		RejectedBy:    o.RejectedBy(),
		RejectedAt:    o.RejectedAt(),
		ReceivedItems: o.ReceivedItems(),
		DeliveredAt:   o.DeliveredAt(),
		Version:       version,
	}
}

func (s *inMemoryOrders) Add(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.orders {
		if existing.Number.IsEqual(o.Number()) {
			return errs.NewStorageConflictError("insert purchase order", nil)
		}
	}
	s.orders[o.ID()] = stateOf(o, 1)
	return nil
}

func (s *inMemoryOrders) Update(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.orders[o.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("purchaseOrder", o.ID().String())
	}
	if existing.Version != o.Version() {
		return errs.NewVersionIsInvalidError("purchaseOrder")
	}
	s.orders[o.ID()] = stateOf(o, o.Version()+1)
	return nil
}

func (s *inMemoryOrders) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("purchaseOrder", id.String())
	}
	return order.RestoreOrder(state)
}

func (s *inMemoryOrders) Delete(_ context.Context, id kernel.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return errs.NewObjectNotFoundError("purchaseOrder", id.String())
	}
	delete(s.orders, id)
	return nil
}

func (s *inMemoryOrders) MaxSequence(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var maxSeq int64
	for _, state := range s.orders {
		maxSeq = max(maxSeq, state.Number.Sequence())
	}
	return maxSeq, nil
}

func newActor(t *testing.T, role identity.Role) identity.Identity {
	t.Helper()
	actor, err := identity.NewIdentity(kernel.NewUUID(), role, "tester")
	require.NoError(t, err)
	return actor
}

func ptr[T any](v T) *T { return &v }

func validCreateInput() commands.CreateOrderInput {
	return commands.CreateOrderInput{
		SupplierName:        "Acme Supplies",
		SupplierContactInfo: "sales@acme.test",
		Items: []commands.LineItemInput{{
			SKU:         "CBL-1",
			ProductName: "Cable",
			Description: "USB-C cable 1m",
			Quantity:    ptr(3),
			Price:       ptr(decimal.RequireFromString("4.50")),
		}},
		TotalAmount:  ptr(decimal.RequireFromString("13.50")),
		DeliveryDate: "2024-07-01",
	}
}

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(newActor(t, identity.Normal), validCreateInput())
	require.NoError(t, err)
	number, err := order.NewNumber(7)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), number, cmd.Supplier(), cmd.Items(), cmd.TotalAmount(),
		cmd.DeliveryDate(), cmd.Actor().ID(), cmd.DeliveryDate())
	require.NoError(t, err)
	return o
}
