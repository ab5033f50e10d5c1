package services

import (
	"time"

	"purchasing/internal/core/domain/model/identity"
	"purchasing/internal/core/domain/model/order"
	"purchasing/internal/pkg/errs"
)

// OrderWorkflow applies the deployment-specific rules around the order lifecycle that
// the aggregate itself does not know about: who may review an order and whether
// receiving requires a prior approval.
//
// Example usage:
//
//	workflow := services.NewOrderWorkflow(true, true)
//	if err := workflow.Review(o, order.Approved, actor, time.Now()); err != nil {
//	    // AccessDenied, InvalidTransition or validation error
//	}
type OrderWorkflow struct {
	requireApproverRole     bool
	receiveRequiresApproval bool
}

// NewOrderWorkflow creates a workflow.
//
// Parameters:
//   - requireApproverRole: only managers and admins may approve or reject
//   - receiveRequiresApproval: only approved orders may be received
func NewOrderWorkflow(requireApproverRole, receiveRequiresApproval bool) OrderWorkflow {
	return OrderWorkflow{
		requireApproverRole:     requireApproverRole,
		receiveRequiresApproval: receiveRequiresApproval,
	}
}

// AuthorizeReview checks the actor's capability without touching any order.
// Returns an AccessDeniedError when the role gate is on and the actor is not an approver.
func (w OrderWorkflow) AuthorizeReview(actor identity.Identity) error {
	if err := actor.Validate(); err != nil {
		return errs.NewUnauthenticatedErrorWithCause(false, err)
	}
	if w.requireApproverRole && !actor.CanApprove() {
		return errs.NewAccessDeniedError("review purchase order as " + actor.Role().String())
	}
	return nil
}

// Review authorizes the actor and then applies decision to o.
func (w OrderWorkflow) Review(o *order.Order, decision order.Status, actor identity.Identity, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := w.AuthorizeReview(actor); err != nil {
		return err
	}
	return o.Review(decision, actor.ID(), at)
}

// Receive marks o delivered with the configured approval requirement.
func (w OrderWorkflow) Receive(o *order.Order, items []order.ReceivedItem, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	return o.Receive(items, at, w.receiveRequiresApproval)
}
