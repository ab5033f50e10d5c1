package commands

import (
	"context"

	"purchasing/internal/core/domain/model/order"
)

// UpdateOrderFieldsCommandHandler applies partial updates. The write is guarded by the
// version the order was read with, so a concurrent change makes it fail instead of
// being silently overwritten.
type UpdateOrderFieldsCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewUpdateOrderFieldsCommandHandler(uowFactory OrderUoWFactory) UpdateOrderFieldsCommandHandler {
	return UpdateOrderFieldsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle loads the order, applies the patch and returns the stored result.
func (h *UpdateOrderFieldsCommandHandler) Handle(ctx context.Context, cmd UpdateOrderFieldsCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.ApplyPatch(cmd.Patch())
	})
}
