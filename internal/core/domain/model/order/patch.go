package order

import (
	"time"

	"purchasing/internal/core/domain/model/kernel"
)

// SupplierPatch carries the supplier fields to overwrite. Nil fields keep their value.
type SupplierPatch struct {
	Name        *string
	ContactInfo *string
}

// Patch is the set of mutable fields of an order. A nil field is left untouched;
// a non-nil Items replaces the whole list.
type Patch struct {
	Supplier     *SupplierPatch
	Items        []LineItem
	TotalAmount  *kernel.Money
	DeliveryDate *time.Time
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return (p.Supplier == nil || (p.Supplier.Name == nil && p.Supplier.ContactInfo == nil)) &&
		p.Items == nil &&
		p.TotalAmount == nil &&
		p.DeliveryDate == nil
}
