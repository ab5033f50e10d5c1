package order

import (
	"errors"

	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/pkg/errs"
	"purchasing/internal/pkg/guard"
)

var ErrReceivedItemIsNotConstructed = errors.New("ReceivedItem must be created via NewReceivedItem")

// ReceivedItem records what actually arrived for one line. It is stored as given:
// the item id is not checked against the order's lines and the quantity may differ
// from the ordered one (short or over delivery).
type ReceivedItem struct {
	itemID           kernel.UUID
	receivedQuantity int
	notes            string
	guard            guard.ConstructorGuard
}

// NewReceivedItem checks structure only; notes are kept exactly as given. field is the error path, e.g. "receivedItems[0]".
func NewReceivedItem(field string, itemID kernel.UUID, receivedQuantity int, notes string) (ReceivedItem, error) {
	var problems []error
	if itemID.Validate() != nil {
		problems = append(problems, errs.NewValueIsRequiredError(field+".itemId"))
	}
	if receivedQuantity < 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError(field+".receivedQuantity", receivedQuantity, 0, "+inf"))
	}
	if err := errors.Join(problems...); err != nil {
		return ReceivedItem{}, err
	}

	return ReceivedItem{
		itemID:           itemID,
		receivedQuantity: receivedQuantity,
		notes:            notes,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func RestoreReceivedItem(itemID kernel.UUID, receivedQuantity int, notes string) ReceivedItem {
	return ReceivedItem{
		itemID:           itemID,
		receivedQuantity: receivedQuantity,
		notes:            notes,
		guard:            guard.NewConstructorGuard(),
	}
}

func (r ReceivedItem) ItemID() kernel.UUID { return r.itemID }
func (r ReceivedItem) ReceivedQuantity() int { return r.receivedQuantity }
func (r ReceivedItem) Notes() string { return r.notes }

func (r ReceivedItem) Validate() error {
	return r.guard.Validate(ErrReceivedItemIsNotConstructed)
}
