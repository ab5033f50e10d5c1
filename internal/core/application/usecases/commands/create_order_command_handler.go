package commands

import (
	"context"
	"time"

	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/core/domain/model/order"
	"purchasing/internal/core/ports"
)

// CreateOrderCommandHandler places purchase orders. The order number is drawn from the
// sequence counter before the transaction starts; a failed insert burns that number.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, counter)
//	created, err := handler.Handle(ctx, cmd)
//	// created.Number().String() == "PO-000124"
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	counter    ports.SequenceCounter
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, counter ports.SequenceCounter) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		counter:    counter,
	}
}

// Handle issues the next order number and persists a pending order created by the
// command's actor. Counter failures are returned unchanged and nothing is stored.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	sequence, err := h.counter.Next(ctx)
	if err != nil {
		return nil, err
	}

	number, err := order.NewNumber(sequence)
	if err != nil {
		return nil, err
	}

	created, err := order.NewOrder(
		kernel.NewUUID(),
		number,
		cmd.Supplier(),
		cmd.Items(),
		cmd.TotalAmount(),
		cmd.DeliveryDate(),
		cmd.Actor().ID(),
		time.Now(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, created); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return created, nil
}
