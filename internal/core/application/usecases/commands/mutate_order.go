package commands

import (
	"context"

	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/core/domain/model/order"
)

// mutateOrder runs the load, mutate, versioned update and reload cycle shared by
// the handlers that change an existing order, inside one transaction.
func mutateOrder(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	id kernel.UUID,
	mutate func(o *order.Order) error,
) (*order.Order, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	current, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = mutate(current); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, current); err != nil {
		return nil, err
	}

	updated, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return updated, nil
}
