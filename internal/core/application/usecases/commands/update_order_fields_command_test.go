package commands_test

import (
	"encoding/json"
	"errors"
	"testing"

	"purchasing/internal/core/application/usecases/commands"
	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func raw(fields map[string]string) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(fields))
	for k, v := range fields {
		out[k] = json.RawMessage(v)
	}
	return out
}

func TestNewUpdateOrderFieldsCommand(t *testing.T) {
	id := kernel.NewUUID().String()

	t.Run("should decode whitelisted fields", func(t *testing.T) {
		cmd, err := commands.NewUpdateOrderFieldsCommand(id, raw(map[string]string{
			"supplier":     `{"name":"Globex"}`,
			"items":        `[{"description":"Bolts","quantity":10,"price":"0.25"}]`,
			"totalAmount":  `2.5`,
			"deliveryDate": `"2024-09-30"`,
		}))

		require.NoError(t, err)
		p := cmd.Patch()
		require.NotNil(t, p.Supplier)
		assert.Equal(t, "Globex", *p.Supplier.Name)
		assert.Nil(t, p.Supplier.ContactInfo)
		require.Len(t, p.Items, 1)
		assert.Equal(t, 10, p.Items[0].Quantity())
		assert.Equal(t, "2.50", p.TotalAmount.String())
		assert.Equal(t, 30, p.DeliveryDate.Day())
	})

	t.Run("should reject empty patch", func(t *testing.T) {
		_, err := commands.NewUpdateOrderFieldsCommand(id, map[string]json.RawMessage{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, []string{"patch"}, errs.Fields(err))
	})

	t.Run("should reject unknown and immutable keys", func(t *testing.T) {
		_, err := commands.NewUpdateOrderFieldsCommand(id, raw(map[string]string{
			"orderNumber": `"PO-999999"`,
			"status":      `"approved"`,
			"colour":      `"red"`,
			"supplier":    `{"name":"ok"}`,
		}))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, []string{"colour", "orderNumber", "status"}, errs.Fields(err))
	})

	t.Run("should reject unknown nested supplier keys", func(t *testing.T) {
		_, err := commands.NewUpdateOrderFieldsCommand(id, raw(map[string]string{
			"supplier": `{"nmae":"typo"}`,
		}))

		assert.Equal(t, []string{"supplier"}, errs.Fields(err))
	})

	t.Run("should validate field values", func(t *testing.T) {
		_, err := commands.NewUpdateOrderFieldsCommand(id, raw(map[string]string{
			"items":        `[]`,
			"totalAmount":  `-1`,
			"deliveryDate": `null`,
		}))

		assert.ElementsMatch(t, []string{"items", "totalAmount", "deliveryDate"}, errs.Fields(err))
	})

	t.Run("should reject malformed id", func(t *testing.T) {
		_, err := commands.NewUpdateOrderFieldsCommand("42", raw(map[string]string{"totalAmount": `1`}))

		assert.Equal(t, []string{"id"}, errs.Fields(err))
	})
}

func TestUpdateOrderFieldsCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	current := pendingOrder(t)
	cmd, err := commands.NewUpdateOrderFieldsCommand(current.ID().String(), raw(map[string]string{
		"supplier": `{"name":"Globex"}`,
	}))
	require.NoError(t, err)

	reloaded := pendingOrder(t)
	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, current.ID()).Return(current, nil).Once(),
		repo.On("Update", ctx, current).Return(nil).Once(),
		repo.On("Get", ctx, current.ID()).Return(reloaded, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderFieldsCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Same(t, reloaded, updated)
	assert.Equal(t, "Globex", current.Supplier().Name())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateOrderFieldsCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewUpdateOrderFieldsCommand(id.String(), raw(map[string]string{"totalAmount": `1`}))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("purchaseOrder", id.String())).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderFieldsCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateOrderFieldsCommandHandler_Handle_VersionConflict(t *testing.T) {
	ctx := t.Context()
	current := pendingOrder(t)
	cmd, err := commands.NewUpdateOrderFieldsCommand(current.ID().String(), raw(map[string]string{"totalAmount": `1`}))
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, current.ID()).Return(current, nil).Once()
	repo.On("Update", ctx, current).Return(errs.NewVersionIsInvalidErrorWithCause("purchaseOrder", errors.New("changed"))).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateOrderFieldsCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
