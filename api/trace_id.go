package api

import (
	"github.com/labstack/echo/v4"
	"github.com/lithictech/go-fieldcheck/logctx"
)

const TraceIdHeader = "Trace-Id"

var candidateTraceHeaders = []string{
	TraceIdHeader,
	"X-Request-Id",
}

// TraceId returns the trace id for the request,
// taken from the first of the candidate headers that is set,
// or generated if none are. Either way it is echoed in the Trace-Id
// response header and cached in the echo context.
func TraceId(c echo.Context) string {
	traceIdKey := string(logctx.RequestTraceIdKey)
	if id, ok := c.Get(traceIdKey).(string); ok {
		return id
	}
	id := ""
	for _, header := range candidateTraceHeaders {
		if id = c.Request().Header.Get(header); id != "" {
			break
		}
	}
	if id == "" {
		id = logctx.IdProvider()
	}
	c.Set(traceIdKey, id)
	c.Response().Header().Set(TraceIdHeader, id)
	return id
}
