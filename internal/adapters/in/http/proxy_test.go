package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	method  string
	path    string
	query   string
	host    string
	referer string
	auth    string
	header  string
	body    string
}

func newProxyEcho(t *testing.T, upstream *httptest.Server, timeout time.Duration) *echo.Echo {
	t.Helper()
	target, err := url.Parse(upstream.URL)
	require.NoError(t, err)

	e := echo.New()
	e.HTTPErrorHandler = NewErrorHandler(discardLogger())
	e.Any(ProxyPrefix+"/*", func(echo.Context) error {
		return echo.ErrNotFound
	}, NewProductSearchProxy(target, timeout))
	return e
}

func TestProductSearchProxy(t *testing.T) {
	captured := make(chan capturedRequest, 1)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		captured <- capturedRequest{
			method:  r.Method,
			path:    r.URL.Path,
			query:   r.URL.RawQuery,
			host:    r.Host,
			referer: r.Header.Get("Referer"),
			auth:    r.Header.Get(echo.HeaderAuthorization),
			header:  r.Header.Get(pathHeader),
			body:    string(body),
		}
		w.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"hits":[]}`))
	}))
	t.Cleanup(upstream.Close)
	target, _ := url.Parse(upstream.URL)

	t.Run("should strip the prefix and keep the query", func(t *testing.T) {
		e := newProxyEcho(t, upstream, time.Second)
		req := httptest.NewRequest(http.MethodGet, "/proxy/products/search?q=cable", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer secret")
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.JSONEq(t, `{"hits":[]}`, rec.Body.String())
		got := <-captured
		assert.Equal(t, http.MethodGet, got.method)
		assert.Equal(t, "/products/search", got.path)
		assert.Equal(t, "q=cable", got.query)
		assert.Equal(t, target.Host, got.host)
		assert.Equal(t, upstream.URL+"/", got.referer)
		assert.Empty(t, got.auth)
	})

	t.Run("should prefer the path header", func(t *testing.T) {
		e := newProxyEcho(t, upstream, time.Second)
		req := httptest.NewRequest(http.MethodPost, "/proxy/ignored", nil)
		req.Header.Set(pathHeader, "catalog/lookup?sku=SKU-1")
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTeapot, rec.Code)
		got := <-captured
		assert.Equal(t, http.MethodPost, got.method)
		assert.Equal(t, "/catalog/lookup", got.path)
		assert.Equal(t, "sku=SKU-1", got.query)
		assert.Empty(t, got.header)
	})
}

func TestProductSearchProxy_UpstreamFailure(t *testing.T) {
	t.Run("should answer 502 when upstream is too slow", func(t *testing.T) {
		release := make(chan struct{})
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		t.Cleanup(func() {
			close(release)
			upstream.Close()
		})
		e := newProxyEcho(t, upstream, 50*time.Millisecond)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/proxy/slow", nil))

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})

	t.Run("should answer 502 when upstream is unreachable", func(t *testing.T) {
		upstream := httptest.NewServer(http.NotFoundHandler())
		upstream.Close()
		e := newProxyEcho(t, upstream, time.Second)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/proxy/anything", nil))

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}
