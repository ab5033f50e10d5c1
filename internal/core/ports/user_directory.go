package ports

import (
	"context"

	"purchasing/internal/core/domain/model/kernel"
)

// UserDirectory resolves actor ids to display names for read-side enrichment.
type UserDirectory interface {
	// DisplayNames returns the names of the known ids. Unknown ids are simply absent.
	DisplayNames(ctx context.Context, ids ...kernel.UUID) (map[kernel.UUID]string, error)
}
