package ports

import "context"

// OrderNumberCounterKey identifies the counter record that backs order numbers.
const OrderNumberCounterKey = "purchase_order_number"

// SequenceCounter issues strictly increasing values. Next must be an indivisible
// increment-and-read: concurrent callers never receive the same value, also across
// processes for the shared backends. Values may be skipped (a failed create burns one).
type SequenceCounter interface {
	Next(ctx context.Context) (int64, error)

	// EnsureAtLeast raises the counter to n when it is lower. It never lowers it.
	EnsureAtLeast(ctx context.Context, n int64) error
}
