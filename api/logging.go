package api

import (
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
	"github.com/lithictech/go-fieldcheck/logctx"
	"log/slog"
	"net/http"
	"runtime"
	"strconv"
	"time"
)

func unconfiguredLogger() *slog.Logger {
	return logctx.UnconfiguredLogger()
}

func Logger(c echo.Context) *slog.Logger {
	logger, ok := c.Get(logctx.LoggerKey).(*slog.Logger)
	if !ok {
		logger = unconfiguredLogger()
		logger.Error("No logger configured for request!")
	}
	return logger
}

func SetLogger(c echo.Context, logger *slog.Logger) {
	c.Set(logctx.LoggerKey, logger)
}

type LoggingMiddlwareConfig struct {
	// If true, log request headers.
	RequestHeaders bool
	// If provided, the returned logger is stored in the context
	// which is eventually passed to the handler.
	// Use to add additional fields to the logger based on the request.
	BeforeRequest func(echo.Context, *slog.Logger) *slog.Logger
	// The function that does the actual logging.
	// By default, it will log at a certain level based on the status code of the response.
	DoLog func(echo.Context, *slog.Logger)
}

func LoggingMiddleware(outerLogger *slog.Logger) echo.MiddlewareFunc {
	return LoggingMiddlewareWithConfig(outerLogger, LoggingMiddlwareConfig{})
}

func LoggingMiddlewareWithConfig(outerLogger *slog.Logger, cfg LoggingMiddlwareConfig) echo.MiddlewareFunc {
	if cfg.DoLog == nil {
		cfg.DoLog = LoggingMiddlewareDefaultDoLog
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			logger := outerLogger.With(string(logctx.RequestTraceIdKey), TraceId(c))
			if cfg.BeforeRequest != nil {
				logger = cfg.BeforeRequest(c, logger)
			}
			SetLogger(c, logger)

			err := adaptToError(safeInvokeNext(logger, next, c))
			if err != nil {
				c.Error(err)
			}

			res := c.Response()
			logger = Logger(c).With(
				"request_method", req.Method,
				"request_path", req.URL.Path,
				"request_remote_ip", c.RealIP(),
				"request_user_agent", req.UserAgent(),
				"request_bytes_in", req.ContentLength,
				"request_status", res.Status,
				"request_latency_ms", time.Since(start).Milliseconds(),
				"request_bytes_out", strconv.FormatInt(res.Size, 10),
			)
			if cfg.RequestHeaders {
				for k, v := range req.Header {
					if len(v) > 0 && k != "Authorization" && k != "Cookie" {
						logger = logger.With("request_header."+k, v[0])
					}
				}
			}
			if err != nil {
				logger = logger.With("request_error", err)
			}
			cfg.DoLog(c, logger)
			// c.Error is already called
			return nil
		}
	}
}

func LoggingMiddlewareDefaultDoLog(c echo.Context, logger *slog.Logger) {
	req := c.Request()
	res := c.Response()
	logMethod := logger.Info
	if req.Method == http.MethodOptions {
		logMethod = logger.Debug
	} else if res.Status >= 500 {
		logMethod = logger.Error
	} else if res.Status >= 400 {
		logMethod = logger.Warn
	} else if req.URL.Path == HealthPath || req.URL.Path == StatusPath {
		logMethod = logger.Debug
	}
	logMethod("request_finished")
}

// Invoke next(c) within a function wrapped with defer,
// so that if it panics, we can recover from it and pass on a 500.
func safeInvokeNext(logger *slog.Logger, next echo.HandlerFunc, c echo.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("%v", r)
			}
			stack := make([]byte, 4<<10)
			length := runtime.Stack(stack, false)
			logger.Error("panic_recover", "error", err, "stack", string(stack[:length]))
		}
	}()
	return next(c)
}

func adaptToError(e error) error {
	if e == nil {
		return nil
	}
	var apiErr Error
	if errors.As(e, &apiErr) {
		return apiErr
	}
	var ee *echo.HTTPError
	if errors.As(e, &ee) {
		apiErr := NewError(ee.Code, "echo", ee.Internal)
		apiErr.Message = fmt.Sprintf("%v", ee.Message)
		return apiErr
	}
	return NewInternalError(e)
}

func NewHTTPErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var apiErr Error
		if ok := errors.As(err, &apiErr); !ok {
			e.DefaultHTTPErrorHandler(err, c)
			return
		}
		if c.Response().Committed {
			return
		}
		var rerr error
		if c.Request().Method == http.MethodHead {
			rerr = c.NoContent(apiErr.HTTPStatus)
		} else {
			rerr = c.JSON(apiErr.HTTPStatus, apiErr)
		}
		if rerr != nil {
			Logger(c).Error("http_error_handler_error", "error", rerr)
		}
	}
}
