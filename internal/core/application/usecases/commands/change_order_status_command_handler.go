package commands

import (
	"context"
	"time"

	"purchasing/internal/core/domain/model/order"
	"purchasing/internal/core/domain/services"
)

// ChangeOrderStatusCommandHandler approves or rejects pending orders.
// The actor's role is checked before the order is loaded.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	workflow   services.OrderWorkflow
}

func NewChangeOrderStatusCommandHandler(uowFactory OrderUoWFactory, workflow services.OrderWorkflow) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		workflow:   workflow,
	}
}

func (h *ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.workflow.AuthorizeReview(cmd.Actor()); err != nil {
		return nil, err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return h.workflow.Review(o, cmd.Decision(), cmd.Actor(), time.Now())
	})
}
