package order

import (
	"errors"
	"strings"

	"purchasing/internal/pkg/errs"
	"purchasing/internal/pkg/guard"
)

var ErrSupplierIsNotConstructed = errors.New("Supplier must be created via NewSupplier")

// Supplier is the vendor a purchase order is placed with.
type Supplier struct {
	name        string
	contactInfo string
	guard       guard.ConstructorGuard
}

// NewSupplier trims both fields. The name must not be blank, contact info is optional.
func NewSupplier(name, contactInfo string) (Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Supplier{}, errs.NewValueIsRequiredError("supplier.name")
	}
	return Supplier{
		name:        name,
		contactInfo: strings.TrimSpace(contactInfo),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (s Supplier) Name() string { return s.name }
func (s Supplier) ContactInfo() string { return s.contactInfo }

func (s Supplier) Validate() error {
	return s.guard.Validate(ErrSupplierIsNotConstructed)
}
