package api

import (
	"github.com/labstack/echo/v4"
	"github.com/lithictech/go-fieldcheck/descriptor"
	"io"
	"net/http"
)

type FieldRoutesConfig struct {
	// Parallelism is how many descriptors of a batch are checked at once.
	// Defaults to 4.
	Parallelism int
}

// RegisterFieldRoutes adds the field-checking endpoints to g:
//
//	POST /fields/check        one descriptor in, one result out
//	POST /fields/check_batch  a list of descriptors in, {"results": [...]} out
//
// An invalid field value is a 200 with "valid": false;
// a malformed descriptor is a 400 invalid_descriptor error.
func RegisterFieldRoutes(g *echo.Group, cfg FieldRoutesConfig) {
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = 4
	}
	g.POST("/fields/check", func(c echo.Context) error {
		ds, err := decodeBody(c)
		if err != nil {
			return err
		}
		if len(ds) != 1 {
			e := NewError(http.StatusBadRequest, "invalid_body")
			e.Message = "expected a single descriptor object"
			return e
		}
		result, err := descriptor.Check(StdContext(c), ds[0])
		if err != nil {
			return NewInvalidDescriptorError(err)
		}
		return c.JSON(http.StatusOK, result)
	})
	g.POST("/fields/check_batch", func(c echo.Context) error {
		ds, err := decodeBody(c)
		if err != nil {
			return err
		}
		results, err := descriptor.CheckAll(StdContext(c), ds, cfg.Parallelism)
		if err != nil {
			return NewInvalidDescriptorError(err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"results": results,
			"valid":   descriptor.AllValid(results),
		})
	})
}

const maxBodyBytes = 1 << 20

// decodeBody decodes the request body with the same rules as descriptor files,
// including rejecting unknown keys. The body may be one descriptor or a list.
func decodeBody(c echo.Context) ([]descriptor.Descriptor, error) {
	body := http.MaxBytesReader(c.Response(), c.Request().Body, maxBodyBytes)
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, NewError(http.StatusRequestEntityTooLarge, "body_too_large", err)
	}
	ds, err := descriptor.Decode(data, descriptor.FormatJSON)
	if err != nil {
		e := NewError(http.StatusBadRequest, "invalid_body", err)
		e.Message = err.Error()
		return nil, e
	}
	return ds, nil
}
