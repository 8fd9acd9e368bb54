package field

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind is the closed set of validator variants.
type Kind int

const (
	KindBasic Kind = iota
	KindNumeric
	KindPattern
	KindEmail
	KindSelect
)

func (k Kind) String() string {
	switch k {
	case KindBasic:
		return "basic"
	case KindNumeric:
		return "numeric"
	case KindPattern:
		return "pattern"
	case KindEmail:
		return "email"
	case KindSelect:
		return "select"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Verdict messages.
const (
	MsgRequired     = "required field is empty"
	MsgNotANumber   = "not a number"
	MsgInvalidValue = "not a valid value"
	MsgInvalidEmail = "not a valid email address"
)

// Config holds the properties every field has.
// A nil Value means the field has no value at all,
// which is different from a value of "".
type Config struct {
	Name     string
	Value    *string
	Required bool
}

// Validator validates a single field.
// Build one with New, NewNumeric, NewPattern, NewEmail, or NewSelect.
type Validator struct {
	Name     string
	Value    *string
	Required bool

	Kind Kind
	// Type is the input type of a numeric field, like "number" or "date".
	Type    InputType
	Min     *float64
	Max     *float64
	Step    *float64
	Pattern *regexp.Regexp

	isValid *bool
	errors  []string
}

// New returns a Validator that applies only the base (required) rule.
func New(cfg Config) *Validator {
	return newValidator(KindBasic, cfg)
}

func newValidator(k Kind, cfg Config) *Validator {
	return &Validator{
		Name:     cfg.Name,
		Value:    cfg.Value,
		Required: cfg.Required,
		Kind:     k,
	}
}

// Validate runs the base rule, then the rule for the validator's Kind.
// It returns, and records, whether the field is valid.
// Errors from a previous call are discarded.
func (v *Validator) Validate() bool {
	v.errors = v.errors[:0]
	v.validateBase()
	switch v.Kind {
	case KindNumeric:
		v.validateNumeric()
	case KindPattern:
		v.validatePattern()
	case KindEmail:
		v.validateEmail()
	}
	valid := len(v.errors) == 0
	v.isValid = &valid
	return valid
}

func (v *Validator) validateBase() {
	if v.Required && IsEmpty(v.Value) {
		v.addError(MsgRequired)
	}
}

func (v *Validator) addError(msg string) {
	v.errors = append(v.errors, msg)
}

// IsValid returns the result of the last Validate call.
// ok is false if Validate has never been called.
func (v *Validator) IsValid() (valid bool, ok bool) {
	if v.isValid == nil {
		return false, false
	}
	return *v.isValid, true
}

// Errors returns a copy of the messages from the last Validate call.
func (v *Validator) Errors() []string {
	result := make([]string, len(v.errors))
	copy(result, v.errors)
	return result
}

// Err returns nil if the last Validate call found the field valid
// (or Validate has not been called), or an *Error otherwise.
func (v *Validator) Err() error {
	if len(v.errors) == 0 {
		return nil
	}
	return &Error{Name: v.Name, Messages: v.Errors()}
}

// StringValue returns the value, or "" if it is absent.
func (v *Validator) StringValue() string {
	if v.Value == nil {
		return ""
	}
	return *v.Value
}

// Error is the error form of an invalid verdict.
type Error struct {
	Name     string
	Messages []string
}

func (e *Error) Error() string {
	msg := strings.Join(e.Messages, ", ")
	if e.Name == "" {
		return msg
	}
	return e.Name + ": " + msg
}

// IsEmpty is the emptiness test used by every rule:
// absent or "" is empty, anything else (including "0") is not.
func IsEmpty(s *string) bool {
	return s == nil || *s == ""
}

// Str returns a pointer to s, for building configs.
func Str(s string) *string {
	return &s
}

// Num returns a pointer to f, for building configs.
func Num(f float64) *float64 {
	return &f
}
