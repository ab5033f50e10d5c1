package servers

import (
	_ "embed"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List purchase orders
	// (GET /api/purchase-orders)
	ListPurchaseOrders(ctx echo.Context, params ListPurchaseOrdersParams) error
	// Create a purchase order
	// (POST /api/purchase-orders)
	CreatePurchaseOrder(ctx echo.Context) error
	// Delete a purchase order
	// (DELETE /api/purchase-orders/{id})
	DeletePurchaseOrder(ctx echo.Context, id OrderID) error
	// Get a purchase order
	// (GET /api/purchase-orders/{id})
	GetPurchaseOrder(ctx echo.Context, id OrderID) error
	// Update mutable fields of a purchase order
	// (PATCH /api/purchase-orders/{id})
	UpdatePurchaseOrder(ctx echo.Context, id OrderID) error
	// Record the delivery of a purchase order
	// (PATCH /api/purchase-orders/{id}/receive)
	ReceivePurchaseOrder(ctx echo.Context, id OrderID) error
	// Approve or reject a pending purchase order
	// (PATCH /api/purchase-orders/{id}/status)
	ChangePurchaseOrderStatus(ctx echo.Context, id OrderID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// ListPurchaseOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListPurchaseOrders(ctx echo.Context) error {
	var err error

	ctx.Set(BearerAuthScopes, []string{})

	var params ListPurchaseOrdersParams

	err = runtime.BindQueryParameter("form", true, false, "page", ctx.QueryParams(), &params.Page)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter page: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "sortBy", ctx.QueryParams(), &params.SortBy)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter sortBy: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "sortOrder", ctx.QueryParams(), &params.SortOrder)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter sortOrder: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "supplierName", ctx.QueryParams(), &params.SupplierName)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter supplierName: %s", err))
	}

	err = w.Handler.ListPurchaseOrders(ctx, params)
	return err
}

// CreatePurchaseOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreatePurchaseOrder(ctx echo.Context) error {
	var err error

	ctx.Set(BearerAuthScopes, []string{})

	err = w.Handler.CreatePurchaseOrder(ctx)
	return err
}

// DeletePurchaseOrder converts echo context to params.
func (w *ServerInterfaceWrapper) DeletePurchaseOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	err = w.Handler.DeletePurchaseOrder(ctx, id)
	return err
}

// GetPurchaseOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetPurchaseOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	err = w.Handler.GetPurchaseOrder(ctx, id)
	return err
}

// UpdatePurchaseOrder converts echo context to params.
func (w *ServerInterfaceWrapper) UpdatePurchaseOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	err = w.Handler.UpdatePurchaseOrder(ctx, id)
	return err
}

// ReceivePurchaseOrder converts echo context to params.
func (w *ServerInterfaceWrapper) ReceivePurchaseOrder(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	err = w.Handler.ReceivePurchaseOrder(ctx, id)
	return err
}

// ChangePurchaseOrderStatus converts echo context to params.
func (w *ServerInterfaceWrapper) ChangePurchaseOrderStatus(ctx echo.Context) error {
	id, err := bindOrderID(ctx)
	if err != nil {
		return err
	}

	ctx.Set(BearerAuthScopes, []string{})

	err = w.Handler.ChangePurchaseOrderStatus(ctx, id)
	return err
}

func bindOrderID(ctx echo.Context) (OrderID, error) {
	var id OrderID

	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter id: %s", err))
	}
	return id, nil
}

// EchoRouter is the subset of echo routing both *echo.Echo and *echo.Group provide.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface, m ...echo.MiddlewareFunc) {
	RegisterHandlersWithBaseURL(router, si, "", m...)
}

// RegisterHandlersWithBaseURL registers handlers, and prepends BaseURL to the paths, so that the paths
// can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string, m ...echo.MiddlewareFunc) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/api/purchase-orders", wrapper.ListPurchaseOrders, m...)
	router.POST(baseURL+"/api/purchase-orders", wrapper.CreatePurchaseOrder, m...)
	router.DELETE(baseURL+"/api/purchase-orders/:id", wrapper.DeletePurchaseOrder, m...)
	router.GET(baseURL+"/api/purchase-orders/:id", wrapper.GetPurchaseOrder, m...)
	router.PATCH(baseURL+"/api/purchase-orders/:id", wrapper.UpdatePurchaseOrder, m...)
	router.PATCH(baseURL+"/api/purchase-orders/:id/receive", wrapper.ReceivePurchaseOrder, m...)
	router.PATCH(baseURL+"/api/purchase-orders/:id/status", wrapper.ChangePurchaseOrderStatus, m...)
}

//go:embed openapi.yaml
var swaggerSpec []byte

// RawSpec returns the OpenAPI document as written.
func RawSpec() []byte {
	return swaggerSpec
}

// GetSwagger returns the Swagger specification corresponding to the generated code
// in this file. The external references of Swagger specification are resolved.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true

	swagger, err := loader.LoadFromData(swaggerSpec)
	if err != nil {
		return nil, fmt.Errorf("error loading Swagger: %w", err)
	}
	return swagger, nil
}
