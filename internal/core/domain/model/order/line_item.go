package order

import (
	"errors"
	"strings"

	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/pkg/errs"
	"purchasing/internal/pkg/guard"
)

var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem")

// LineItem is one ordered product line.
type LineItem struct {
	id          kernel.UUID
	sku         string
	productName string
	description string
	quantity    int
	price       kernel.Money
	guard       guard.ConstructorGuard
}

// NewLineItem validates a line and assigns it a fresh id. field is the path used in
// validation errors, e.g. "items[2]", so every failing field of every line can be
// reported in one response.
func NewLineItem(field, sku, productName, description string, quantity int, price kernel.Money) (LineItem, error) {
	var problems []error

	description = strings.TrimSpace(description)
	if description == "" {
		problems = append(problems, errs.NewValueIsRequiredError(field+".description"))
	}
	if quantity <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError(field+".quantity", quantity, 1, "+inf"))
	}
	if price.Validate() != nil {
		problems = append(problems, errs.NewValueIsRequiredError(field+".price"))
	}
	if err := errors.Join(problems...); err != nil {
		return LineItem{}, err
	}

	return LineItem{
		id:          kernel.NewUUID(),
		sku:         strings.TrimSpace(sku),
		productName: strings.TrimSpace(productName),
		description: description,
		quantity:    quantity,
		price:       price,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreLineItem rebuilds a persisted line without re-validating it.
func RestoreLineItem(id kernel.UUID, sku, productName, description string, quantity int, price kernel.Money) LineItem {
	return LineItem{
		id:          id,
		sku:         sku,
		productName: productName,
		description: description,
		quantity:    quantity,
		price:       price,
		guard:       guard.NewConstructorGuard(),
	}
}

func (l LineItem) ID() kernel.UUID { return l.id }
func (l LineItem) SKU() string { return l.sku }
func (l LineItem) ProductName() string { return l.productName }
func (l LineItem) Description() string { return l.description }
func (l LineItem) Quantity() int { return l.quantity }
func (l LineItem) Price() kernel.Money { return l.price }
func (l LineItem) Subtotal() kernel.Money { return l.price.Mul(l.quantity) }

func (l LineItem) Validate() error {
	return l.guard.Validate(ErrLineItemIsNotConstructed)
}
