package commands

import (
	"errors"

	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/core/domain/model/order"
	"purchasing/internal/pkg/guard"
)

var ErrReceiveOrderCommandIsNotConstructed = errors.New(
	"ReceiveOrderCommand must be created via NewReceiveOrderCommand constructor",
)

// ReceiveOrderCommand records the goods that arrived for an order.
type ReceiveOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	receivedItems []order.ReceivedItem

	guard guard.ConstructorGuard
}

// NewReceiveOrderCommand requires the receivedItems list to be present; it may be empty.
func NewReceiveOrderCommand(orderID string, receivedItems []ReceivedItemInput) (ReceiveOrderCommand, error) {
	cmd := ReceiveOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setReceivedItems(receivedItems),
	); err != nil {
		return ReceiveOrderCommand{}, err
	}

	return cmd, nil
}

func (c ReceiveOrderCommand) Validate() error {
	return c.guard.Validate(ErrReceiveOrderCommandIsNotConstructed)
}

func (c ReceiveOrderCommand) OrderID() kernel.UUID { return c.orderID }

func (c ReceiveOrderCommand) ReceivedItems() []order.ReceivedItem { return c.receivedItems }

func (c *ReceiveOrderCommand) setOrderID(s string) error {
	id, err := parseOrderID(s)
	if err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *ReceiveOrderCommand) setReceivedItems(inputs []ReceivedItemInput) error {
	items, err := buildReceivedItems(inputs)
	if err != nil {
		return err
	}
	c.receivedItems = items
	return nil
}
