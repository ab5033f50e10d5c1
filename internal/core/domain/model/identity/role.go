package identity

import (
	"fmt"
	"strings"

	"purchasing/internal/pkg/errs"
)

// Role is the access level carried in a user's token.
type Role int

const (
	UnknownRole Role = iota
	Normal
	Manager
	Admin
)

var roleNames = map[Role]string{
	Normal:  "normal",
	Manager: "manager",
	Admin:   "admin",
}

// ParseRole accepts the lower-case role names stored in the user directory and tokens.
// Matching is case-insensitive.
func ParseRole(s string) (Role, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for role, name := range roleNames {
		if name == needle {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

func (r Role) Validate() error {
	if _, ok := roleNames[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// CanApprove reports whether the role may approve or reject purchase orders.
func (r Role) CanApprove() bool {
	return r == Manager || r == Admin
}
