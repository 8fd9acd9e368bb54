package api

import (
	"context"
	"github.com/labstack/echo/v4"
	"github.com/lithictech/go-fieldcheck/logctx"
)

// StdContext returns a standard context from an echo context,
// carrying the request's trace id and logger,
// so code that does not know about echo logs the same way the endpoint does.
// It is canceled when the request is.
func StdContext(c echo.Context) context.Context {
	cc := c.Request().Context()
	cc = context.WithValue(cc, logctx.RequestTraceIdKey, TraceId(c))
	return logctx.WithLogger(cc, Logger(c))
}
