package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/core/domain/model/order"
	"purchasing/internal/pkg/errs"
	"purchasing/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrUpdateOrderFieldsCommandIsNotConstructed = errors.New(
	"UpdateOrderFieldsCommand must be created via NewUpdateOrderFieldsCommand constructor",
)

// patchDecoders is the whitelist of fields a generic update may change, each with its
// own decoder and validator.
var patchDecoders = map[string]func(raw json.RawMessage, p *order.Patch) error{
	"supplier":     decodeSupplierPatch,
	"items":        decodeItemsPatch,
	"totalAmount":  decodeTotalAmountPatch,
	"deliveryDate": decodeDeliveryDatePatch,
}

// immutableFields are known order fields that are never changed through a generic update.
var immutableFields = map[string]struct{}{
	"id": {}, "_id": {}, "orderNumber": {}, "status": {}, "createdBy": {}, "createdAt": {},
	"approvedBy": {}, "approvedAt": {}, "rejectedBy": {}, "rejectedAt": {},
	"receivedItems": {}, "deliveredAt": {}, "version": {},
}

// UpdateOrderFieldsCommand is a partial update of an order's mutable fields.
//
// Example:
//
//	cmd, err := NewUpdateOrderFieldsCommand(id, map[string]json.RawMessage{
//	    "supplier": json.RawMessage(`{"name":"Globex"}`),
//	})
type UpdateOrderFieldsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	patch   order.Patch

	guard guard.ConstructorGuard
}

// NewUpdateOrderFieldsCommand decodes fields against the whitelist. Unknown or immutable
// keys and an empty object are validation errors; all problems are reported together.
func NewUpdateOrderFieldsCommand(orderID string, fields map[string]json.RawMessage) (UpdateOrderFieldsCommand, error) {
	cmd := UpdateOrderFieldsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPatch(fields),
	); err != nil {
		return UpdateOrderFieldsCommand{}, err
	}

	return cmd, nil
}

func (c UpdateOrderFieldsCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderFieldsCommandIsNotConstructed)
}

func (c UpdateOrderFieldsCommand) OrderID() kernel.UUID { return c.orderID }

func (c UpdateOrderFieldsCommand) Patch() order.Patch { return c.patch }

func (c *UpdateOrderFieldsCommand) setOrderID(s string) error {
	id, err := parseOrderID(s)
	if err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *UpdateOrderFieldsCommand) setPatch(fields map[string]json.RawMessage) error {
	if len(fields) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("patch", errors.New("at least one mutable field must be provided"))
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var (
		patch    order.Patch
		problems []error
	)
	for _, key := range keys {
		decode, ok := patchDecoders[key]
		if !ok {
			cause := errors.New("unknown field")
			if _, immutable := immutableFields[key]; immutable {
				cause = errors.New("field cannot be changed")
			}
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(key, cause))
			continue
		}
		problems = append(problems, decode(fields[key], &patch))
	}

	if err := errors.Join(problems...); err != nil {
		return err
	}
	c.patch = patch
	return nil
}

func strictUnmarshal(raw json.RawMessage, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null"
}

func decodeSupplierPatch(raw json.RawMessage, p *order.Patch) error {
	if isNull(raw) {
		return errs.NewValueIsRequiredError("supplier")
	}
	var in struct {
		Name        *string `json:"name"`
		ContactInfo *string `json:"contactInfo"`
	}
	if err := strictUnmarshal(raw, &in); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("supplier", err)
	}
	p.Supplier = &order.SupplierPatch{Name: in.Name, ContactInfo: in.ContactInfo}
	return nil
}

func decodeItemsPatch(raw json.RawMessage, p *order.Patch) error {
	if isNull(raw) {
		return errs.NewValueIsRequiredError("items")
	}
	var in []LineItemInput
	if err := strictUnmarshal(raw, &in); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("items", err)
	}
	items, err := buildLineItems(in)
	if err != nil {
		return err
	}
	p.Items = items
	return nil
}

func decodeTotalAmountPatch(raw json.RawMessage, p *order.Patch) error {
	if isNull(raw) {
		return errs.NewValueIsRequiredError("totalAmount")
	}
	var amount decimal.Decimal
	if err := json.Unmarshal(raw, &amount); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("totalAmount", err)
	}
	total, err := kernel.NewMoney("totalAmount", amount)
	if err != nil {
		return err
	}
	p.TotalAmount = &total
	return nil
}

func decodeDeliveryDatePatch(raw json.RawMessage, p *order.Patch) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil && !isNull(raw) {
		return errs.NewValueIsInvalidErrorWithCause("deliveryDate", fmt.Errorf("expected a date string: %w", err))
	}
	date, err := parseDeliveryDate(s)
	if err != nil {
		return err
	}
	p.DeliveryDate = &date
	return nil
}
