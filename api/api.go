/*
Package api is the HTTP surface for checking field descriptors, built on echo and slog.
It sets up /statusz and /healthz endpoints,
and sets up logging middleware that takes care of the following
interconnected tasks:

  - Extract (or add) a trace ID header to the request and response.
  - The trace ID can be retrieved through api.TraceId(echo.Context).
  - Use that trace ID as context for the request logger.
  - Handle request logging (metadata about the request and response,
    and log at the level appropriate for the status code).
  - The request logger can be retrieved with api.Logger(echo.Context).
  - Recover from panics.
  - Coerce all errors into api.Error types, and marshal them.

Field routes are added with RegisterFieldRoutes.
*/
package api

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"log/slog"
	"net/http"
)

type Config struct {
	// If not provided, create an echo.New.
	App                    *echo.Echo
	Logger                 *slog.Logger
	LoggingMiddlwareConfig LoggingMiddlwareConfig
	// Origins for echo's CORS middleware.
	// If empty, do not add the middleware.
	CorsOrigins []string
	// Return this from the status endpoint.
	StatusResponse map[string]interface{}
}

const HealthPath = "/healthz"
const StatusPath = "/statusz"

func New(cfg Config) *echo.Echo {
	if cfg.Logger == nil {
		cfg.Logger = unconfiguredLogger()
	}
	if cfg.StatusResponse == nil {
		cfg.StatusResponse = map[string]interface{}{"version": "not configured"}
	}
	e := cfg.App
	if e == nil {
		e = echo.New()
	}
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(e)
	e.Use(LoggingMiddlewareWithConfig(cfg.Logger, cfg.LoggingMiddlwareConfig))
	if len(cfg.CorsOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: cfg.CorsOrigins}))
	}
	e.GET(HealthPath, func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{"o": "k"})
	})
	e.GET(StatusPath, func(c echo.Context) error {
		return c.JSON(http.StatusOK, cfg.StatusResponse)
	})
	return e
}
