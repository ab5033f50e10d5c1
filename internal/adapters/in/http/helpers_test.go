package http

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"purchasing/internal/core/application/usecases/commands"
	"purchasing/internal/core/application/usecases/queries"
	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/core/domain/model/order"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

type mockCreator struct{ mock.Mock }

func (m *mockCreator) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type mockUpdater struct{ mock.Mock }

func (m *mockUpdater) Handle(ctx context.Context, cmd commands.UpdateOrderFieldsCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type mockStatusChanger struct{ mock.Mock }

func (m *mockStatusChanger) Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type mockReceiver struct{ mock.Mock }

func (m *mockReceiver) Handle(ctx context.Context, cmd commands.ReceiveOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type mockDeleter struct{ mock.Mock }

func (m *mockDeleter) Handle(ctx context.Context, cmd commands.DeleteOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type mockGetter struct{ mock.Mock }

func (m *mockGetter) Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error) {
	args := m.Called(ctx, query)
	view, _ := args.Get(0).(queries.OrderView)
	return view, args.Error(1)
}

type mockLister struct{ mock.Mock }

func (m *mockLister) Handle(ctx context.Context, query queries.ListOrdersQuery) (queries.ListOrdersResponse, error) {
	args := m.Called(ctx, query)
	page, _ := args.Get(0).(queries.ListOrdersResponse)
	return page, args.Error(1)
}

// staticDirectory is a user directory backed by a map.
type staticDirectory map[kernel.UUID]string

func (d staticDirectory) DisplayNames(_ context.Context, ids ...kernel.UUID) (map[kernel.UUID]string, error) {
	names := make(map[kernel.UUID]string, len(ids))
	for _, id := range ids {
		if name, ok := d[id]; ok {
			names[id] = name
		}
	}
	return names, nil
}

type testAPI struct {
	echo     *echo.Echo
	creator  *mockCreator
	updater  *mockUpdater
	reviewer *mockStatusChanger
	receiver *mockReceiver
	deleter  *mockDeleter
	getter   *mockGetter
	lister   *mockLister
	users    staticDirectory
}

func newTestAPI(t *testing.T, validateRequests bool) *testAPI {
	t.Helper()

	api := &testAPI{
		creator:  &mockCreator{},
		updater:  &mockUpdater{},
		reviewer: &mockStatusChanger{},
		receiver: &mockReceiver{},
		deleter:  &mockDeleter{},
		getter:   &mockGetter{},
		lister:   &mockLister{},
		users:    staticDirectory{},
	}

	server := NewServer(Handlers{
		CreateOrder:       api.creator,
		UpdateOrderFields: api.updater,
		ChangeOrderStatus: api.reviewer,
		ReceiveOrder:      api.receiver,
		DeleteOrder:       api.deleter,
		GetOrder:          api.getter,
		DescribeOrder:     queries.NewGetOrderQueryHandler(nil, api.users),
		ListOrders:        api.lister,
	}, 50)

	validator := NewRequestValidator()

	e, err := NewRouter(RouterOptions{
		Server:           server,
		Authenticator:    NewAuthenticator(testSecret, validator),
		Validator:        validator,
		Log:              discardLogger(),
		ValidateRequests: validateRequests,
	})
	require.NoError(t, err)
	api.echo = e

	t.Cleanup(func() {
		api.creator.AssertExpectations(t)
		api.updater.AssertExpectations(t)
		api.reviewer.AssertExpectations(t)
		api.receiver.AssertExpectations(t)
		api.deleter.AssertExpectations(t)
		api.getter.AssertExpectations(t)
		api.lister.AssertExpectations(t)
	})
	return api
}

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func (a *testAPI) do(method, target, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func signToken(t *testing.T, secret []byte, user TokenUser, expiresAt time.Time) string {
	t.Helper()
	claims := TokenClaims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(expiresAt.Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return signed
}

func tokenFor(t *testing.T, id kernel.UUID, role, name string) string {
	t.Helper()
	return signToken(t, testSecret, TokenUser{ID: id.String(), Role: role, Name: name}, time.Now().Add(time.Hour))
}

func testOrder(t *testing.T, createdBy kernel.UUID) *order.Order {
	t.Helper()
	number, err := order.NewNumber(42)
	require.NoError(t, err)
	supplier, err := order.NewSupplier("Acme Corp", "sales@acme.test")
	require.NoError(t, err)
	price, err := kernel.ParseMoney("price", "12.5")
	require.NoError(t, err)
	item, err := order.NewLineItem("items[0]", "SKU-1", "Cable", "USB cable", 2, price)
	require.NoError(t, err)
	total, err := kernel.ParseMoney("totalAmount", "25")
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		number,
		supplier,
		[]order.LineItem{item},
		total,
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		createdBy,
		time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return o
}

