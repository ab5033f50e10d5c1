package queries

import (
	"context"

	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/core/domain/model/order"
	"purchasing/internal/core/ports"
)

// OrderReader is the part of the order repository the read side needs.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

// GetOrderQueryHandler loads an order and resolves the names of its creator and reviewer.
type GetOrderQueryHandler struct {
	orders OrderReader
	users  ports.UserDirectory
}

func NewGetOrderQueryHandler(orders OrderReader, users ports.UserDirectory) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders, users: users}
}

// Handle returns an ObjectNotFoundError for unknown ids.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return OrderView{}, err
	}

	return h.Describe(ctx, o, nil)
}

// Describe renders an already loaded order with names from the directory. known supplies
// names for ids the directory does not hold, such as the acting user of a token.
func (h GetOrderQueryHandler) Describe(ctx context.Context, o *order.Order, known map[kernel.UUID]string) (OrderView, error) {
	names, err := h.users.DisplayNames(ctx, actorIDs(o)...)
	if err != nil {
		return OrderView{}, err
	}

	merged := make(map[kernel.UUID]string, len(names)+len(known))
	for id, name := range known {
		merged[id] = name
	}
	for id, name := range names {
		if name != "" {
			merged[id] = name
		}
	}

	return NewOrderView(o, merged), nil
}
