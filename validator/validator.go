package validator

import (
	"fmt"
	"github.com/rgalanakis/validator"
	"sort"
	"strings"
)

// ErrorMap is a map which contains all errors from validating a struct.
type ErrorMap map[string]ErrorArray

// ErrorMap implements the Error interface so we can check error against nil.
// Keys are rendered in sorted order so messages are stable.
func (err ErrorMap) Error() string {
	keys := make([]string, 0, len(err))
	for k := range err {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(err))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", k, err[k].Error()))
	}
	return strings.Join(lines, " | ")
}

// ErrorArray is a slice of errors returned by the Validate function.
type ErrorArray []error

// ErrorArray implements the Error interface and returns all errors joined by commas.
func (err ErrorArray) Error() string {
	errs := make([]string, 0, len(err))
	for _, e := range err {
		errs = append(errs, e.Error())
	}
	return strings.Join(errs, ", ")
}

// Registry is a registry of all available validation functions.
// It must be initialized before using.
// In general, clients should use the global instance available through
// the Validate function; instances are generally only used for testing.
type Registry struct {
	validator *validator.Validator
}

// Init initializes a registry (registers all validators).
func (r *Registry) Init() {
	v := validator.NewValidator()
	mustSet(v, "enum", validateEnum)
	mustSet(v, "number", validateNumber)
	mustSet(v, "regex", validateRegex)
	r.validator = v
}

func mustSet(v *validator.Validator, name string, f validator.ValidationFunc) {
	if err := v.SetValidationFunc(name, f); err != nil {
		panic(err)
	}
}

// Validate validates using all registered validators.
func (r *Registry) Validate(v interface{}) error {
	err := r.validator.Validate(v)
	return coerceValidatorPkgError(err)
}

// NewRegistry returns a new, initialized Registry.
func NewRegistry() *Registry {
	r := new(Registry)
	r.Init()
	return r
}

var globalRegistry = NewRegistry()

// Validate validates the fields of a struct based
// on 'validate' tags and returns errors found indexed
// by the field name.
func Validate(v interface{}) error {
	return globalRegistry.Validate(v)
}

// coerceValidatorPkgError coerces a go-validator/validator error type
// (validator.ErrorArray, validator.ErrorMap, or some unknown type)
// into this package's error types (ErrorArray, ErrorMap).
// This is done so we are not exposing go-validator types directly.
func coerceValidatorPkgError(err error) error {
	switch realErr := err.(type) {
	case nil:
		return nil
	case validator.ErrorMap:
		if len(realErr) == 0 {
			return nil
		}
		return coerceValidatorPkgErrorMap(realErr)
	case validator.ErrorArray:
		return coerceValidatorPkgErrorArray(realErr)
	default:
		return realErr
	}
}

func coerceValidatorPkgErrorMap(err validator.ErrorMap) ErrorMap {
	result := make(ErrorMap, len(err))
	for k, v := range err {
		result[k] = coerceValidatorPkgErrorArray(v)
	}
	return result
}

func coerceValidatorPkgErrorArray(err validator.ErrorArray) ErrorArray {
	result := make(ErrorArray, 0, len(err))
	result = append(result, err...)
	return result
}
