package commands

import (
	"errors"
	"fmt"
	"strings"

	"purchasing/internal/core/domain/model/identity"
	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/core/domain/model/order"
	"purchasing/internal/pkg/errs"
	"purchasing/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand is a review decision on a pending order.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	decision order.Status
	actor    identity.Identity

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand accepts only "approved" and "rejected" as status.
func NewChangeOrderStatusCommand(orderID, status string, actor identity.Identity) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDecision(status),
		cmd.setActor(actor),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }

func (c ChangeOrderStatusCommand) Decision() order.Status { return c.decision }

func (c ChangeOrderStatusCommand) Actor() identity.Identity { return c.actor }

func (c *ChangeOrderStatusCommand) setOrderID(s string) error {
	id, err := parseOrderID(s)
	if err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *ChangeOrderStatusCommand) setDecision(s string) error {
	if strings.TrimSpace(s) == "" {
		return errs.NewValueIsRequiredError("status")
	}
	decision, err := order.ParseStatus(s)
	if err != nil || !decision.IsReviewDecision() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("status must be either %q or %q", order.Approved, order.Rejected),
		)
	}
	c.decision = decision
	return nil
}

func (c *ChangeOrderStatusCommand) setActor(actor identity.Identity) error {
	if err := actor.Validate(); err != nil {
		return errs.NewUnauthenticatedErrorWithCause(false, err)
	}
	c.actor = actor
	return nil
}
