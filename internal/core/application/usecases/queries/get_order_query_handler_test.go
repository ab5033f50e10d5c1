package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"purchasing/internal/core/application/usecases/queries"
	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/core/domain/model/order"
	"purchasing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct {
	mock.Mock
}

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) DisplayNames(ctx context.Context, ids ...kernel.UUID) (map[kernel.UUID]string, error) {
	args := m.Called(ctx, ids)
	if names, ok := args.Get(0).(map[kernel.UUID]string); ok {
		return names, args.Error(1)
	}
	return nil, args.Error(1)
}

func reviewedOrder(t *testing.T, creator, reviewer kernel.UUID) *order.Order {
	t.Helper()
	number, err := order.NewNumber(7)
	require.NoError(t, err)
	supplier, err := order.NewSupplier("Acme", "")
	require.NoError(t, err)
	price, err := kernel.ParseMoney("price", "3")
	require.NoError(t, err)
	item, err := order.NewLineItem("items[0]", "S-1", "Pen", "Pens", 2, price)
	require.NoError(t, err)
	total, err := kernel.ParseMoney("totalAmount", "6")
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), number, supplier, []order.LineItem{item}, total,
		time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), creator, time.Now())
	require.NoError(t, err)
	require.NoError(t, o.Review(order.Rejected, reviewer, time.Now()))
	return o
}

func TestGetOrderQueryHandler_Handle(t *testing.T) {
	t.Run("should resolve creator and reviewer names", func(t *testing.T) {
		ctx := t.Context()
		creator, reviewer := kernel.NewUUID(), kernel.NewUUID()
		o := reviewedOrder(t, creator, reviewer)

		orders := new(MockOrderReader)
		orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		users := new(MockUserDirectory)
		users.On("DisplayNames", ctx, []kernel.UUID{creator, reviewer}).
			Return(map[kernel.UUID]string{creator: "Nora", reviewer: "Max"}, nil).Once()

		q, err := queries.NewGetOrderQuery(o.ID().String())
		require.NoError(t, err)
		view, err := queries.NewGetOrderQueryHandler(orders, users).Handle(ctx, q)

		require.NoError(t, err)
		assert.Equal(t, "PO-000007", view.OrderNumber)
		assert.Equal(t, "Nora", view.CreatedBy.Name)
		require.NotNil(t, view.RejectedBy)
		assert.Equal(t, "Max", view.RejectedBy.Name)
		assert.Nil(t, view.ApprovedBy)
		assert.Equal(t, "rejected", view.Status)
		require.Len(t, view.Items, 1)
		assert.Equal(t, "Pens", view.Items[0].Description)
		assert.Empty(t, view.ReceivedItems)
		orders.AssertExpectations(t)
		users.AssertExpectations(t)
	})

	t.Run("should leave unknown names empty", func(t *testing.T) {
		ctx := t.Context()
		creator := kernel.NewUUID()
		o := reviewedOrder(t, creator, creator)

		orders := new(MockOrderReader)
		orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		users := new(MockUserDirectory)
		users.On("DisplayNames", ctx, []kernel.UUID{creator}).Return(map[kernel.UUID]string{}, nil).Once()

		q, _ := queries.NewGetOrderQuery(o.ID().String())
		view, err := queries.NewGetOrderQueryHandler(orders, users).Handle(ctx, q)

		require.NoError(t, err)
		assert.Empty(t, view.CreatedBy.Name)
		assert.True(t, view.CreatedBy.ID.IsEqual(creator))
	})

	t.Run("should pass through not found", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		orders := new(MockOrderReader)
		orders.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("purchaseOrder", id.String())).Once()
		users := new(MockUserDirectory)

		q, _ := queries.NewGetOrderQuery(id.String())
		_, err := queries.NewGetOrderQueryHandler(orders, users).Handle(ctx, q)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		users.AssertNotCalled(t, "DisplayNames", mock.Anything, mock.Anything)
	})

	t.Run("should fail when the directory fails", func(t *testing.T) {
		ctx := t.Context()
		o := reviewedOrder(t, kernel.NewUUID(), kernel.NewUUID())
		orders := new(MockOrderReader)
		orders.On("Get", ctx, o.ID()).Return(o, nil).Once()
		users := new(MockUserDirectory)
		users.On("DisplayNames", ctx, mock.Anything).Return(nil, errs.NewStorageError("select users", errors.New("down"))).Once()

		q, _ := queries.NewGetOrderQuery(o.ID().String())
		_, err := queries.NewGetOrderQueryHandler(orders, users).Handle(ctx, q)

		require.ErrorIs(t, err, errs.ErrStorage)
	})
}

func TestGetOrderQueryHandler_Describe(t *testing.T) {
	t.Run("should prefer directory names and fill gaps from known", func(t *testing.T) {
		ctx := t.Context()
		creator, reviewer := kernel.NewUUID(), kernel.NewUUID()
		o := reviewedOrder(t, creator, reviewer)

		users := new(MockUserDirectory)
		users.On("DisplayNames", ctx, []kernel.UUID{creator, reviewer}).
			Return(map[kernel.UUID]string{creator: "Nora"}, nil).Once()

		view, err := queries.NewGetOrderQueryHandler(nil, users).
			Describe(ctx, o, map[kernel.UUID]string{creator: "stale", reviewer: "Max"})

		require.NoError(t, err)
		assert.Equal(t, "Nora", view.CreatedBy.Name)
		require.NotNil(t, view.RejectedBy)
		assert.Equal(t, "Max", view.RejectedBy.Name)
		users.AssertExpectations(t)
	})
}

func TestNewGetOrderQuery(t *testing.T) {
	_, err := queries.NewGetOrderQuery("PO-000001")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, []string{"id"}, errs.Fields(err))

	var zero queries.GetOrderQuery
	require.ErrorIs(t, zero.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
}
