package field

import (
	"math"
	"strconv"
	"strings"
)

// InputType is the HTML input type of a numeric field.
type InputType string

const (
	TypeNumber        = InputType("number")
	TypeRange         = InputType("range")
	TypeDate          = InputType("date")
	TypeDatetime      = InputType("datetime")
	TypeDatetimeLocal = InputType("datetime-local")
	TypeMonth         = InputType("month")
	TypeTime          = InputType("time")
	TypeWeek          = InputType("week")
)

// IsNumeric is true for "number" and "range".
func (t InputType) IsNumeric() bool {
	return t == TypeNumber || t == TypeRange
}

// IsDateTime is true for the date and time input types.
func (t InputType) IsDateTime() bool {
	switch t {
	case TypeDate, TypeDatetime, TypeDatetimeLocal, TypeMonth, TypeTime, TypeWeek:
		return true
	}
	return false
}

// NumericConfig configures a numeric Validator.
// A nil bound is unset; a bound of 0 is enforced.
// If Type is empty, TypeNumber is used.
type NumericConfig struct {
	Config
	Type InputType
	Min  *float64
	Max  *float64
	Step *float64
}

func NewNumeric(cfg NumericConfig) *Validator {
	v := newValidator(KindNumeric, cfg.Config)
	v.Type = cfg.Type
	if v.Type == "" {
		v.Type = TypeNumber
	}
	v.Min = cfg.Min
	v.Max = cfg.Max
	v.Step = cfg.Step
	return v
}

func (v *Validator) validateNumeric() {
	if v.Type.IsDateTime() {
		// TODO: check date/time formats and min/max ranges for these input types.
		return
	}
	if !v.Type.IsNumeric() || IsEmpty(v.Value) {
		return
	}
	n, ok := ParseNumber(*v.Value)
	if !ok {
		v.addError(MsgNotANumber)
		return
	}
	if v.Step != nil && !StepOK(n, *v.Step) {
		v.addError("not a valid step of " + FormatNumber(*v.Step))
	}
	if v.Max != nil && !MaxOK(n, *v.Max) {
		v.addError("not below maximum of " + FormatNumber(*v.Max))
	}
	if v.Min != nil && !MinOK(n, *v.Min) {
		v.addError("not above minimum of " + FormatNumber(*v.Min))
	}
}

// ParseNumber parses s as a finite float.
// Leading and trailing whitespace is ignored.
func ParseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !isFinite(f) {
		return 0, false
	}
	return f, true
}

// FormatNumber renders f the shortest way that round-trips, like "3" or "0.25".
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// stepULPs is how far, in units in the last place of the quotient,
// value/step may be from a whole number and still count as one.
// It absorbs the rounding of decimal operands like 0.3 and 0.1, and nothing more.
const stepULPs = 8

// StepOK is true if value is a whole multiple of step.
// A step that is not positive and finite is never satisfied.
func StepOK(value, step float64) bool {
	if !isFinite(value) || !isFinite(step) || step <= 0 {
		return false
	}
	q := math.Abs(value / step)
	ulp := math.Nextafter(q, math.Inf(1)) - q
	return math.Abs(q-math.Round(q)) <= stepULPs*ulp
}

// MaxOK is true if value is at most max.
func MaxOK(value, max float64) bool {
	return value <= max
}

// MinOK is true if value is at least min.
func MinOK(value, min float64) bool {
	return value >= min
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
