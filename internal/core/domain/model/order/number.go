package order

import (
	"errors"
	"fmt"

	"purchasing/internal/pkg/errs"
	"purchasing/internal/pkg/guard"
)

// NumberPrefix is prepended to every order number.
const NumberPrefix = "PO-"

var ErrNumberIsNotConstructed = errors.New("Number must be created via NewNumber")

// Number is the human-facing order number derived from a counter value,
// for example sequence 123 renders as "PO-000123". Sequences above 999999 render wider.
type Number struct {
	sequence int64
	guard    guard.ConstructorGuard
}

// NewNumber wraps a value issued by the sequence counter. Sequences start at 1.
func NewNumber(sequence int64) (Number, error) {
	if sequence < 1 {
		return Number{}, errs.NewValueIsOutOfRangeError("sequence", sequence, 1, "+inf")
	}
	return Number{sequence: sequence, guard: guard.NewConstructorGuard()}, nil
}

func (n Number) Sequence() int64 {
	return n.sequence
}

func (n Number) String() string {
	return fmt.Sprintf("%s%06d", NumberPrefix, n.sequence)
}

func (n Number) IsEqual(other Number) bool {
	return n.sequence == other.sequence
}

func (n Number) Validate() error {
	return n.guard.Validate(ErrNumberIsNotConstructed)
}
