package commands

import (
	"context"
	"time"

	"purchasing/internal/core/domain/model/order"
	"purchasing/internal/core/domain/services"
)

// ReceiveOrderCommandHandler marks orders delivered. Whether a prior approval is
// required is decided by the workflow configuration.
type ReceiveOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	workflow   services.OrderWorkflow
}

func NewReceiveOrderCommandHandler(uowFactory OrderUoWFactory, workflow services.OrderWorkflow) ReceiveOrderCommandHandler {
	return ReceiveOrderCommandHandler{
		uowFactory: uowFactory,
		workflow:   workflow,
	}
}

func (h *ReceiveOrderCommandHandler) Handle(ctx context.Context, cmd ReceiveOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return h.workflow.Receive(o, cmd.ReceivedItems(), time.Now())
	})
}
