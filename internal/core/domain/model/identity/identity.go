package identity

import (
	"errors"
	"strings"

	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/pkg/errs"
	"purchasing/internal/pkg/guard"
)

var ErrIdentityIsNotConstructed = errors.New("Identity must be created via NewIdentity")

// Identity is the authenticated actor behind a request.
type Identity struct {
	id    kernel.UUID
	role  Role
	name  string
	guard guard.ConstructorGuard
}

// NewIdentity builds an actor from verified token claims. The display name is optional;
// queries resolve names through the user directory anyway.
func NewIdentity(id kernel.UUID, role Role, name string) (Identity, error) {
	var problems []error
	if err := id.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("user.id", err))
	}
	if err := role.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := errors.Join(problems...); err != nil {
		return Identity{}, err
	}

	return Identity{
		id:    id,
		role:  role,
		name:  strings.TrimSpace(name),
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (i Identity) ID() kernel.UUID { return i.id }

func (i Identity) Role() Role { return i.role }

func (i Identity) Name() string { return i.name }

func (i Identity) CanApprove() bool { return i.role.CanApprove() }

func (i Identity) Validate() error {
	return i.guard.Validate(ErrIdentityIsNotConstructed)
}
