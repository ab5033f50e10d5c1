package order

import (
	"fmt"

	"purchasing/internal/pkg/errs"
)

// Status is the lifecycle state of a purchase order.
//
//	Pending ──┬──> Approved ──> Delivered
//	          └──> Rejected
//
// Transitions are one-directional. Rejected and Delivered are terminal.
type Status int

const (
	// Unknown (0) catches uninitialized values.
	Unknown Status = iota
	Pending
	Approved
	Rejected
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Approved:  "approved",
		Rejected:  "rejected",
		Delivered: "delivered",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Approved:  "approved",
		Rejected:  "rejected",
		Delivered: "delivered",
	}
}

// ParseStatus converts the persisted or wire form ("pending", "approved", ...) into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lower-case wire name, "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsReviewDecision reports whether s may be requested through a review
// (the status change endpoint accepts only approved and rejected).
func (s Status) IsReviewDecision() bool {
	return s == Approved || s == Rejected
}

// Review moves a pending order to decision, which must be Approved or Rejected.
//
// Returns:
//   - (decision, nil) when the order is pending
//   - a ValueIsInvalidError when decision is not a review decision
//   - an InvalidTransitionError for any other current status
func (s Status) Review(decision Status) (Status, error) {
	if !decision.IsReviewDecision() {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a review decision, status must be either %q or %q", decision, Approved, Rejected),
		)
	}
	if s != Pending {
		return Unknown, errs.NewInvalidTransitionError(s.String(), decision.String())
	}
	return decision, nil
}

// Deliver moves the order to Delivered. With requireApproval only Approved orders
// may be delivered; without it every status is accepted, including Delivered itself.
func (s Status) Deliver(requireApproval bool) (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if requireApproval && s != Approved {
		return Unknown, errs.NewInvalidTransitionError(s.String(), Delivered.String())
	}
	return Delivered, nil
}
