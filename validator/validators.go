package validator

import (
	"errors"
	"github.com/rgalanakis/validator"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

func newError(s string) validator.TextErr {
	return validator.TextErr{Err: errors.New(s)}
}

var (
	// ErrInvalidNumber is the error returned when a string is not a finite number.
	ErrInvalidNumber = newError("not a number")
	// ErrInvalidRegex is the error returned when a string does not compile as a regular expression.
	ErrInvalidRegex = newError("not a valid regular expression")
)

const optional = "opt"

// Split the param string on |,
// and return a type of (other args, if param ends in |opt, error in the case of empty args).
// Examples:
//
//	"a|b" -> (["a", "b"], false, nil)
//	"a|opt" -> (["a"], true, nil)
//	"|opt" -> ([], false, <error>)
func splitOptionalVal(param string) ([]string, bool, error) {
	params := strings.Split(param, "|")
	optional := params[len(params)-1] == optional
	if optional {
		params = params[:len(params)-1]
	}
	if len(params) == 0 {
		return nil, false, validator.ErrBadParameter
	}
	return params, optional, nil
}

// asString extracts the string from v, which may be a string,
// a named string type, or a pointer to either.
// isNil is true for a nil pointer, which every validator here treats as valid.
// ok is false for anything else.
func asString(v interface{}) (s string, isNil bool, ok bool) {
	if v == nil {
		return "", true, true
	}
	r := reflect.ValueOf(v)
	if r.Kind() == reflect.Ptr {
		if r.IsNil() {
			return "", true, true
		}
		r = r.Elem()
	}
	if r.Kind() != reflect.String {
		return "", false, false
	}
	return r.String(), false, true
}

// validateEnum matches case-insensitively,
// like the type attribute of an input element.
func validateEnum(v interface{}, param string) error {
	choices, optional, err := splitOptionalVal(param)
	if err != nil {
		return err
	}
	s, isNil, ok := asString(v)
	if !ok {
		return validator.ErrUnsupported
	}
	if isNil {
		return nil
	}
	if s == "" {
		if optional {
			return nil
		}
		return newError("empty string")
	}
	for _, choice := range choices {
		if strings.EqualFold(choice, s) {
			return nil
		}
	}
	return newError("is not one of " + strings.Join(choices, "|"))
}

func makeStringValidator(malformed error, validate func(string) bool) validator.ValidationFunc {
	return func(v interface{}, param string) error {
		s, isNil, ok := asString(v)
		if !ok {
			return validator.ErrUnsupported
		}
		if isNil {
			return nil
		}
		if s == "" {
			if param == optional {
				return nil
			}
			return malformed
		}
		if !validate(s) {
			return malformed
		}
		return nil
	}
}

var validateNumber = makeStringValidator(ErrInvalidNumber, func(s string) bool {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
})

var validateRegex = makeStringValidator(ErrInvalidRegex, func(s string) bool {
	_, err := regexp.Compile(s)
	return err == nil
})
