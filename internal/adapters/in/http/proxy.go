package http

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	ProxyPrefix = "/proxy"

	// pathHeader lets clients name the upstream path explicitly instead of encoding it
	// after the proxy prefix.
	pathHeader = "path"
)

// NewProductSearchProxy forwards requests below ProxyPrefix to target. The upstream path
// is taken from the "path" header when present, otherwise from the request path with
// the prefix removed. Every forwarded request carries Referer "<target>/" and is
// cancelled after timeout.
func NewProductSearchProxy(target *url.URL, timeout time.Duration) echo.MiddlewareFunc {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = timeout

	forward := middleware.ProxyWithConfig(middleware.ProxyConfig{
		Balancer: middleware.NewRoundRobinBalancer([]*middleware.ProxyTarget{
			{Name: "product-search", URL: target},
		}),
		Transport: transport,
	})
	referer := strings.TrimRight(target.String(), "/") + "/"

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		proxied := forward(next)

		return func(c echo.Context) error {
			req := c.Request()

			upstream, err := req.URL.Parse(upstreamPath(req))
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid proxy path")
			}
			if upstream.RawQuery == "" {
				upstream.RawQuery = req.URL.RawQuery
			}

			ctx, cancel := context.WithTimeout(req.Context(), timeout)
			defer cancel()

			out := req.WithContext(ctx)
			out.URL = upstream
			out.Host = target.Host
			out.Header.Set("Referer", referer)
			out.Header.Del(echo.HeaderAuthorization)
			out.Header.Del(pathHeader)
			c.SetRequest(out)

			return proxied(c)
		}
	}
}

func upstreamPath(req *http.Request) string {
	if p := strings.TrimSpace(req.Header.Get(pathHeader)); p != "" {
		return "/" + strings.TrimLeft(p, "/")
	}
	return "/" + strings.TrimLeft(strings.TrimPrefix(req.URL.Path, ProxyPrefix), "/")
}
