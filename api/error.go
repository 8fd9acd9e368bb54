package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/lithictech/go-fieldcheck/validator"
	"net/http"
	"sort"
)

type Error struct {
	HTTPStatus int
	ErrorCode  string
	Message    string
	Original   error
	// Details maps a descriptor key to what is wrong with it.
	Details map[string][]string
}

func (e Error) Error() string {
	s := fmt.Sprintf("%s: [%d] %s", e.ErrorCode, e.HTTPStatus, e.Message)
	if e.Original != nil {
		s += " (Original: " + e.Original.Error() + ")"
	}
	return s
}

func (e Error) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"http_status": e.HTTPStatus,
		"error_code":  e.ErrorCode,
		"message":     e.Message,
	}
	if e.Original != nil {
		m["original"] = e.Original.Error()
	}
	if len(e.Details) > 0 {
		m["details"] = e.Details
	}
	return m
}

func (e Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.ToMap())
}

func NewError(httpStatus int, errorCode string, original ...error) Error {
	e := Error{
		ErrorCode:  errorCode,
		HTTPStatus: httpStatus,
		Message:    http.StatusText(httpStatus),
	}
	if len(original) > 0 {
		e.Original = original[0]
	}
	return e
}

func NewInternalError(original ...error) Error {
	return NewError(http.StatusInternalServerError, "internal_error", original...)
}

// NewInvalidDescriptorError is the error for a descriptor that cannot be built,
// like one with an unknown type or a bad pattern.
// If original wraps a validator.ErrorMap, its entries become Details.
func NewInvalidDescriptorError(original error) Error {
	e := NewError(http.StatusBadRequest, "invalid_descriptor", original)
	e.Message = original.Error()
	var em validator.ErrorMap
	if errors.As(original, &em) {
		e.Details = errorMapDetails(em)
	}
	return e
}

func errorMapDetails(em validator.ErrorMap) map[string][]string {
	result := make(map[string][]string, len(em))
	for key, errs := range em {
		msgs := make([]string, 0, len(errs))
		for _, err := range errs {
			msgs = append(msgs, err.Error())
		}
		sort.Strings(msgs)
		result[key] = msgs
	}
	return result
}
