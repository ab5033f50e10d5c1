package http

import (
	"errors"
	"strings"

	"purchasing/internal/core/domain/model/identity"
	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const identityContextKey = "purchasing.identity"

// TokenUser is the user block carried in access tokens.
type TokenUser struct {
	ID   string `json:"id" validate:"required,uuid"`
	Role string `json:"role" validate:"required,oneof=normal manager admin"`
	Name string `json:"name"`
}

// TokenClaims are the claims of an HS256 access token issued by the login service.
type TokenClaims struct {
	User TokenUser `json:"user"`
	jwt.RegisteredClaims
}

// Authenticator verifies bearer tokens and stores the resulting identity on the echo
// context. It never issues tokens.
type Authenticator struct {
	secret    []byte
	validator *RequestValidator
}

func NewAuthenticator(secret []byte, validator *RequestValidator) *Authenticator {
	return &Authenticator{secret: secret, validator: validator}
}

// Middleware rejects requests without a valid token with an UnauthenticatedError.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, err := a.Authenticate(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return err
			}
			c.Set(identityContextKey, actor)
			return next(c)
		}
	}
}

// bearerScheme is matched case-insensitively.
const bearerScheme = "Bearer "

// Authenticate verifies an Authorization header value of the form "Bearer <token>".
func (a *Authenticator) Authenticate(header string) (identity.Identity, error) {
	header = strings.TrimSpace(header)
	if len(header) < len(bearerScheme) || !strings.EqualFold(header[:len(bearerScheme)], bearerScheme) {
		return identity.Identity{}, errs.NewUnauthenticatedError(false)
	}
	raw := strings.TrimSpace(header[len(bearerScheme):])
	if raw == "" {
		return identity.Identity{}, errs.NewUnauthenticatedError(false)
	}

	var claims TokenClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return identity.Identity{}, errs.NewUnauthenticatedErrorWithCause(errors.Is(err, jwt.ErrTokenExpired), err)
	}

	if err = a.validator.Validate(claims); err != nil {
		return identity.Identity{}, errs.NewUnauthenticatedErrorWithCause(false, err)
	}

	return toIdentity(claims.User)
}

func toIdentity(user TokenUser) (identity.Identity, error) {
	id, err := kernel.UUIDFromString(user.ID)
	if err != nil {
		return identity.Identity{}, errs.NewUnauthenticatedErrorWithCause(false, err)
	}
	role, err := identity.ParseRole(user.Role)
	if err != nil {
		return identity.Identity{}, errs.NewUnauthenticatedErrorWithCause(false, err)
	}
	actor, err := identity.NewIdentity(id, role, user.Name)
	if err != nil {
		return identity.Identity{}, errs.NewUnauthenticatedErrorWithCause(false, err)
	}
	return actor, nil
}

// actorFrom returns the identity stored by the authentication middleware.
func actorFrom(c echo.Context) (identity.Identity, error) {
	actor, ok := c.Get(identityContextKey).(identity.Identity)
	if !ok {
		return identity.Identity{}, errs.NewUnauthenticatedError(false)
	}
	return actor, nil
}
