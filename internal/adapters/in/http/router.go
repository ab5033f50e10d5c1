package http

import (
	"net/http"

	_ "purchasing/docs" // registers the swagger document
	"purchasing/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	Server        *Server
	Authenticator *Authenticator
	Validator     *RequestValidator
	Log           logrus.FieldLogger

	// ProductSearch is mounted below ProxyPrefix when set.
	ProductSearch echo.MiddlewareFunc

	// ValidateRequests enables OpenAPI request validation on the API routes.
	ValidateRequests bool
}

// NewRouter assembles the echo instance: health and documentation routes, the
// authenticated purchase order API and the product search proxy.
func NewRouter(opts RouterOptions) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = opts.Validator
	e.HTTPErrorHandler = NewErrorHandler(opts.Log)

	e.Use(middleware.RequestID())
	e.Use(RequestLogger(opts.Log))
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.JSON(http.StatusOK, doc)
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := []echo.MiddlewareFunc{opts.Authenticator.Middleware()}
	if opts.ValidateRequests {
		validate, err := OpenAPIValidator(doc)
		if err != nil {
			return nil, err
		}
		api = append(api, validate)
	}
	servers.RegisterHandlers(e, opts.Server, api...)

	if opts.ProductSearch != nil {
		e.Any(ProxyPrefix+"/*", func(echo.Context) error {
			return echo.ErrNotFound
		}, opts.ProductSearch)
	}

	return e, nil
}
