package http

import (
	"context"
	"encoding/json"
	"net/http"

	"purchasing/internal/core/application/usecases/commands"
	"purchasing/internal/core/application/usecases/queries"
	"purchasing/internal/core/domain/model/identity"
	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/core/domain/model/order"
	"purchasing/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

type (
	OrderCreator interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}

	OrderFieldsUpdater interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderFieldsCommand) (*order.Order, error)
	}

	OrderStatusChanger interface {
		Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (*order.Order, error)
	}

	OrderReceiver interface {
		Handle(ctx context.Context, cmd commands.ReceiveOrderCommand) (*order.Order, error)
	}

	OrderDeleter interface {
		Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error
	}

	OrderGetter interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
	}

	OrderDescriber interface {
		Describe(ctx context.Context, o *order.Order, known map[kernel.UUID]string) (queries.OrderView, error)
	}

	OrderLister interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.ListOrdersResponse, error)
	}
)

// Handlers groups the use cases the HTTP server dispatches to.
type Handlers struct {
	CreateOrder       OrderCreator
	UpdateOrderFields OrderFieldsUpdater
	ChangeOrderStatus OrderStatusChanger
	ReceiveOrder      OrderReceiver
	DeleteOrder       OrderDeleter
	GetOrder          OrderGetter
	DescribeOrder     OrderDescriber
	ListOrders        OrderLister
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers     Handlers
	listMaxLimit int
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server. listMaxLimit caps the page size of the list endpoint.
func NewServer(handlers Handlers, listMaxLimit int) *Server {
	return &Server{
		handlers:     handlers,
		listMaxLimit: listMaxLimit,
	}
}

// ListPurchaseOrders handles GET /api/purchase-orders.
func (s *Server) ListPurchaseOrders(ctx echo.Context, params servers.ListPurchaseOrdersParams) error {
	query, err := queries.NewListOrdersQuery(queries.ListOrdersParams{
		Page:         params.Page,
		Limit:        params.Limit,
		SortBy:       string(deref(params.SortBy)),
		SortOrder:    string(deref(params.SortOrder)),
		Status:       deref(params.Status),
		SupplierName: deref(params.SupplierName),
	}, s.listMaxLimit)
	if err != nil {
		return err
	}

	page, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toPurchaseOrderPage(page))
}

// CreatePurchaseOrder handles POST /api/purchase-orders.
func (s *Server) CreatePurchaseOrder(ctx echo.Context) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	var body servers.CreatePurchaseOrderJSONRequestBody
	if err = bindBody(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(actor, toCreateOrderInput(body))
	if err != nil {
		return err
	}

	created, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return s.respond(ctx, http.StatusCreated, created, actorNames(actor))
}

// GetPurchaseOrder handles GET /api/purchase-orders/{id}.
func (s *Server) GetPurchaseOrder(ctx echo.Context, id servers.OrderID) error {
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return err
	}

	view, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toPurchaseOrder(view))
}

// UpdatePurchaseOrder handles PATCH /api/purchase-orders/{id}. The body is kept raw so
// that unknown and immutable keys can be reported by name.
func (s *Server) UpdatePurchaseOrder(ctx echo.Context, id servers.OrderID) error {
	var fields map[string]json.RawMessage
	if err := bindBody(ctx, &fields); err != nil {
		return err
	}

	cmd, err := commands.NewUpdateOrderFieldsCommand(id, fields)
	if err != nil {
		return err
	}

	updated, err := s.handlers.UpdateOrderFields.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return s.respond(ctx, http.StatusOK, updated, nil)
}

// ChangePurchaseOrderStatus handles PATCH /api/purchase-orders/{id}/status.
func (s *Server) ChangePurchaseOrderStatus(ctx echo.Context, id servers.OrderID) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	var body servers.ChangePurchaseOrderStatusJSONRequestBody
	if err = bindBody(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewChangeOrderStatusCommand(id, deref(body.Status), actor)
	if err != nil {
		return err
	}

	reviewed, err := s.handlers.ChangeOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return s.respond(ctx, http.StatusOK, reviewed, actorNames(actor))
}

// ReceivePurchaseOrder handles PATCH /api/purchase-orders/{id}/receive.
func (s *Server) ReceivePurchaseOrder(ctx echo.Context, id servers.OrderID) error {
	var body servers.ReceivePurchaseOrderJSONRequestBody
	if err := bindBody(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewReceiveOrderCommand(id, toReceivedItemInputs(body.ReceivedItems))
	if err != nil {
		return err
	}

	received, err := s.handlers.ReceiveOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return s.respond(ctx, http.StatusOK, received, nil)
}

// DeletePurchaseOrder handles DELETE /api/purchase-orders/{id}.
func (s *Server) DeletePurchaseOrder(ctx echo.Context, id servers.OrderID) error {
	cmd, err := commands.NewDeleteOrderCommand(id)
	if err != nil {
		return err
	}

	if err = s.handlers.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, servers.Message{Message: "Purchase order deleted successfully"})
}

// respond renders o the way GET does, with user names resolved.
func (s *Server) respond(ctx echo.Context, code int, o *order.Order, known map[kernel.UUID]string) error {
	view, err := s.handlers.DescribeOrder.Describe(ctx.Request().Context(), o, known)
	if err != nil {
		return err
	}
	return ctx.JSON(code, toPurchaseOrder(view))
}

// bindBody decodes the request body only; path and query parameters are bound by the
// generated wrapper.
func bindBody(ctx echo.Context, dest any) error {
	if err := (&echo.DefaultBinder{}).BindBody(ctx, dest); err != nil {
		return err
	}
	return nil
}

func actorNames(actor identity.Identity) map[kernel.UUID]string {
	if actor.Name() == "" {
		return nil
	}
	return map[kernel.UUID]string{actor.ID(): actor.Name()}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
