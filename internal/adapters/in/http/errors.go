package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"purchasing/internal/generated/servers"
	"purchasing/internal/pkg/errs"
	"purchasing/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	msgNotLoggedIn     = "You are not logged in. Please log in and try again."
	msgSessionExpired  = "Your session has expired. Please log in again."
	msgNotFound        = "Purchase order not found"
	msgVersionConflict = "Purchase order was changed by another request. Reload it and try again."
	msgDuplicate       = "Purchase order conflicts with an existing one."
	msgInternal        = "An internal error occurred. Please try again later."
)

// NewErrorHandler maps errors returned by handlers and middleware to a status code and
// a servers.Error body. Server side failures are logged, client errors are not.
func NewErrorHandler(log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError {
			logger.LogError(log, "http", c.Request().Method+" "+c.Path(), "request failed", c.Request().URL.Path, err)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.LogError(log, "http", "NewErrorHandler", "write error response", status, writeErr)
		}
	}
}

func errorResponse(err error) (int, servers.Error) {
	var (
		httpErr  *echo.HTTPError
		unauthed *errs.UnauthenticatedError
	)

	switch {
	case errs.IsValidation(err):
		fields := errs.Fields(err)
		return http.StatusBadRequest, servers.Error{Message: message(err), Fields: &fields}
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusBadRequest, servers.Error{Message: message(err)}
	case errors.As(err, &unauthed):
		if unauthed.Expired {
			return http.StatusUnauthorized, servers.Error{Message: msgSessionExpired}
		}
		return http.StatusUnauthorized, servers.Error{Message: msgNotLoggedIn}
	case errors.Is(err, errs.ErrAccessDenied):
		return http.StatusForbidden, servers.Error{Message: message(err)}
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, servers.Error{Message: msgNotFound}
	case errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict, servers.Error{Message: msgVersionConflict}
	case errors.Is(err, errs.ErrStorageConflict):
		return http.StatusConflict, servers.Error{Message: msgDuplicate}
	case errors.As(err, &httpErr):
		return httpErr.Code, servers.Error{Message: fmt.Sprint(httpErr.Message)}
	default:
		return http.StatusInternalServerError, servers.Error{Message: msgInternal}
	}
}

// message flattens joined errors onto one line.
func message(err error) string {
	return strings.ReplaceAll(err.Error(), "\n", "; ")
}
