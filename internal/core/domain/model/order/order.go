package order

import (
	"errors"
	"fmt"
	"time"

	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the purchase order aggregate root. It owns its line items and received items
// and guards the status lifecycle.
//
// Invariants:
//   - id and number are assigned at creation and never change
//   - at least one line item, each with a description, positive quantity and a price
//   - total amount is non-negative; it is caller supplied and not recomputed
//   - status only moves forward (see Status)
//   - reviewer fields are set exactly when the order was approved or rejected
type Order struct {
	id            kernel.UUID
	number        Number
	supplier      Supplier
	items         []LineItem
	totalAmount   kernel.Money
	deliveryDate  time.Time
	status        Status
	createdBy     kernel.UUID
	createdAt     time.Time
	approvedBy    *kernel.UUID
	approvedAt    *time.Time
	rejectedBy    *kernel.UUID
	rejectedAt    *time.Time
	receivedItems []ReceivedItem
	deliveredAt   *time.Time
	version       int64

	isConstructed bool
}

// NewOrder creates a pending order. All argument problems are reported together.
//
// Parameters:
//   - id: identifier for the new order
//   - number: order number issued from the sequence counter
//   - supplier, items, totalAmount, deliveryDate: validated order content
//   - createdBy: the actor placing the order
//   - now: creation timestamp
//
// Example:
//
//	number, _ := order.NewNumber(seq)
//	o, err := order.NewOrder(kernel.NewUUID(), number, supplier, items, total, due, actor.ID(), time.Now())
func NewOrder(
	id kernel.UUID,
	number Number,
	supplier Supplier,
	items []LineItem,
	totalAmount kernel.Money,
	deliveryDate time.Time,
	createdBy kernel.UUID,
	now time.Time,
) (*Order, error) {
	order := &Order{
		status:        Pending,
		createdAt:     normalizeTimestamp(now),
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setNumber(number),
		order.setSupplier(supplier),
		order.setItems(items),
		order.setTotalAmount(totalAmount),
		order.setDeliveryDate(deliveryDate),
		order.setCreatedBy(createdBy),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// State is the full persisted form of an order, used by repositories to rebuild it.
type State struct {
	ID            kernel.UUID
	Number        Number
	Supplier      Supplier
	Items         []LineItem
	TotalAmount   kernel.Money
	DeliveryDate  time.Time
	Status        Status
	CreatedBy     kernel.UUID
	CreatedAt     time.Time
	ApprovedBy    *kernel.UUID
	ApprovedAt    *time.Time
	RejectedBy    *kernel.UUID
	RejectedAt    *time.Time
	ReceivedItems []ReceivedItem
	DeliveredAt   *time.Time
	Version       int64
}

// RestoreOrder rebuilds an order loaded from storage. Only structural problems that
// would make the aggregate unusable are rejected.
func RestoreOrder(state State) (*Order, error) {
	if err := errors.Join(
		state.ID.Validate(),
		state.Number.Validate(),
		state.Supplier.Validate(),
		state.TotalAmount.Validate(),
		state.Status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:            state.ID,
		number:        state.Number,
		supplier:      state.Supplier,
		items:         append([]LineItem(nil), state.Items...),
		totalAmount:   state.TotalAmount,
		deliveryDate:  state.DeliveryDate,
		status:        state.Status,
		createdBy:     state.CreatedBy,
		createdAt:     state.CreatedAt,
		approvedBy:    state.ApprovedBy,
		approvedAt:    state.ApprovedAt,
		rejectedBy:    state.RejectedBy,
		rejectedAt:    state.RejectedAt,
		receivedItems: append([]ReceivedItem(nil), state.ReceivedItems...),
		deliveredAt:   state.DeliveredAt,
		version:       state.Version,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }

func (o *Order) Number() Number { return o.number }

func (o *Order) Supplier() Supplier { return o.supplier }

// Items returns a copy of the line items.
func (o *Order) Items() []LineItem { return append([]LineItem(nil), o.items...) }

func (o *Order) TotalAmount() kernel.Money { return o.totalAmount }

func (o *Order) DeliveryDate() time.Time { return o.deliveryDate }

func (o *Order) Status() Status { return o.status }

func (o *Order) CreatedBy() kernel.UUID { return o.createdBy }

func (o *Order) CreatedAt() time.Time { return o.createdAt }

func (o *Order) ApprovedBy() *kernel.UUID { return o.approvedBy }

func (o *Order) ApprovedAt() *time.Time { return o.approvedAt }

func (o *Order) RejectedBy() *kernel.UUID { return o.rejectedBy }

func (o *Order) RejectedAt() *time.Time { return o.rejectedAt }

// ReceivedItems returns a copy of the received items; empty until the order is delivered.
func (o *Order) ReceivedItems() []ReceivedItem {
	return append([]ReceivedItem(nil), o.receivedItems...)
}

func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// Version is the optimistic concurrency token of the stored row this order was loaded from.
func (o *Order) Version() int64 { return o.version }

// ApplyPatch overwrites the mutable fields named in p. Either every field is applied
// or none is: all problems are collected before anything changes. Supplier fields are
// merged into the current supplier, items replace the list. Status is never touched.
func (o *Order) ApplyPatch(p Patch) error {
	if p.IsEmpty() {
		return errs.NewValueIsRequiredErrorWithCause("patch", errors.New("at least one mutable field must be provided"))
	}

	var problems []error

	supplier := o.supplier
	if p.Supplier != nil {
		name, contact := o.supplier.Name(), o.supplier.ContactInfo()
		if p.Supplier.Name != nil {
			name = *p.Supplier.Name
		}
		if p.Supplier.ContactInfo != nil {
			contact = *p.Supplier.ContactInfo
		}
		merged, err := NewSupplier(name, contact)
		if err != nil {
			problems = append(problems, err)
		}
		supplier = merged
	}

	if p.Items != nil {
		problems = append(problems, validateItems(p.Items))
	}
	if p.TotalAmount != nil {
		problems = append(problems, validateTotalAmount(*p.TotalAmount))
	}
	if p.DeliveryDate != nil {
		problems = append(problems, validateDeliveryDate(*p.DeliveryDate))
	}

	if err := errors.Join(problems...); err != nil {
		return err
	}

	o.supplier = supplier
	if p.Items != nil {
		o.items = append([]LineItem(nil), p.Items...)
	}
	if p.TotalAmount != nil {
		o.totalAmount = *p.TotalAmount
	}
	if p.DeliveryDate != nil {
		o.deliveryDate = normalizeDate(*p.DeliveryDate)
	}
	return nil
}

// Review approves or rejects a pending order on behalf of reviewer and records who
// decided and when.
//
// Returns:
//   - ValueIsInvalidError if decision is neither Approved nor Rejected
//   - InvalidTransitionError if the order is not pending
func (o *Order) Review(decision Status, reviewer kernel.UUID, at time.Time) error {
	if err := reviewer.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("reviewer", err)
	}

	newStatus, err := o.status.Review(decision)
	if err != nil {
		return err
	}

	at = normalizeTimestamp(at)
	o.status = newStatus
	switch newStatus {
	case Approved:
		o.approvedBy, o.approvedAt = &reviewer, &at
	case Rejected:
		o.rejectedBy, o.rejectedAt = &reviewer, &at
	case Unknown, Pending, Delivered:
		return fmt.Errorf("unexpected review outcome %s", newStatus)
	}
	return nil
}

// Receive marks the order delivered and stores items verbatim. When requireApproval is
// set only approved orders can be received. A repeated receive in lenient mode replaces
// the previously recorded items.
func (o *Order) Receive(items []ReceivedItem, at time.Time, requireApproval bool) error {
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("receivedItems[%d]", i), err)
		}
	}

	newStatus, err := o.status.Deliver(requireApproval)
	if err != nil {
		return err
	}

	at = normalizeTimestamp(at)
	o.status = newStatus
	o.receivedItems = append([]ReceivedItem(nil), items...)
	o.deliveredAt = &at
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number Number) error {
	if err := number.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderNumber", err)
	}
	o.number = number
	return nil
}

func (o *Order) setSupplier(supplier Supplier) error {
	if err := supplier.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("supplier.name", err)
	}
	o.supplier = supplier
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if err := validateItems(items); err != nil {
		return err
	}
	o.items = append([]LineItem(nil), items...)
	return nil
}

func (o *Order) setTotalAmount(amount kernel.Money) error {
	if err := validateTotalAmount(amount); err != nil {
		return err
	}
	o.totalAmount = amount
	return nil
}

func (o *Order) setDeliveryDate(date time.Time) error {
	if err := validateDeliveryDate(date); err != nil {
		return err
	}
	o.deliveryDate = normalizeDate(date)
	return nil
}

func (o *Order) setCreatedBy(actor kernel.UUID) error {
	if err := actor.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("createdBy", err)
	}
	o.createdBy = actor
	return nil
}

func validateItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("items", errors.New("at least one item is required"))
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i), err)
		}
	}
	return nil
}

func validateTotalAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("totalAmount", err)
	}
	return nil
}

func validateDeliveryDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("deliveryDate")
	}
	return nil
}

// normalizeDate keeps the calendar date only, in UTC.
func normalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// normalizeTimestamp matches the microsecond precision of the store.
func normalizeTimestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
