// Package ports defines the contracts between the purchasing core and its infrastructure:
// order persistence, transactions, the order number counter and the user directory.
package ports

import (
	"context"

	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for purchase order aggregates,
// including their line items and received items.
type OrderRepository interface {
	// Add persists a new order. A duplicate order number surfaces as a storage conflict.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order, guarded by the version the aggregate
	// was loaded with. Returns a VersionIsInvalidError when the row changed meanwhile
	// and an ObjectNotFoundError when it no longer exists.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with all of its children.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes an order and its children permanently.
	Delete(ctx context.Context, id kernel.UUID) error

	// MaxSequence returns the highest order number sequence stored, 0 when empty.
	MaxSequence(ctx context.Context) (int64, error)
}
