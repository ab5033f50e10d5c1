package commands

import (
	"errors"
	"time"

	"purchasing/internal/core/domain/model/identity"
	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/core/domain/model/order"
	"purchasing/internal/pkg/errs"
	"purchasing/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderInput is the client payload for a new purchase order.
type CreateOrderInput struct {
	SupplierName        string
	SupplierContactInfo string
	Items               []LineItemInput
	TotalAmount         *decimal.Decimal
	DeliveryDate        string
}

// CreateOrderCommand represents a validated request to place a purchase order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(actor, CreateOrderInput{
//	    SupplierName: "Acme",
//	    Items:        []LineItemInput{{Description: "Cable", Quantity: &two, Price: &price}},
//	    TotalAmount:  &total,
//	    DeliveryDate: "2024-06-01",
//	})
//	if err != nil {
//	    return err // every invalid field is listed, see errs.Fields
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor        identity.Identity
	supplier     order.Supplier
	items        []order.LineItem
	totalAmount  kernel.Money
	deliveryDate time.Time

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the whole payload and reports every problem together.
func NewCreateOrderCommand(actor identity.Identity, in CreateOrderInput) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setSupplier(in.SupplierName, in.SupplierContactInfo),
		cmd.setItems(in.Items),
		cmd.setTotalAmount(in.TotalAmount),
		cmd.setDeliveryDate(in.DeliveryDate),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() identity.Identity { return c.actor }

func (c CreateOrderCommand) Supplier() order.Supplier { return c.supplier }

func (c CreateOrderCommand) Items() []order.LineItem { return c.items }

func (c CreateOrderCommand) TotalAmount() kernel.Money { return c.totalAmount }

func (c CreateOrderCommand) DeliveryDate() time.Time { return c.deliveryDate }

func (c *CreateOrderCommand) setActor(actor identity.Identity) error {
	if err := actor.Validate(); err != nil {
		return errs.NewUnauthenticatedErrorWithCause(false, err)
	}
	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setSupplier(name, contactInfo string) error {
	supplier, err := order.NewSupplier(name, contactInfo)
	if err != nil {
		return err
	}
	c.supplier = supplier
	return nil
}

func (c *CreateOrderCommand) setItems(inputs []LineItemInput) error {
	items, err := buildLineItems(inputs)
	if err != nil {
		return err
	}
	c.items = items
	return nil
}

func (c *CreateOrderCommand) setTotalAmount(amount *decimal.Decimal) error {
	total, err := parseTotalAmount(amount)
	if err != nil {
		return err
	}
	c.totalAmount = total
	return nil
}

func (c *CreateOrderCommand) setDeliveryDate(s string) error {
	date, err := parseDeliveryDate(s)
	if err != nil {
		return err
	}
	c.deliveryDate = date
	return nil
}
