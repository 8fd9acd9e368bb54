// Package descriptor describes form fields as data (JSON or YAML),
// and turns those descriptions into field validators.
//
// A descriptor is checked for well-formedness (known type, numeric bounds,
// compilable pattern) before it is built; a malformed descriptor is an error,
// while a well-formed descriptor for an invalid field value is a Result with Valid false.
package descriptor

import (
	"encoding/json"
	"fmt"
	"github.com/lithictech/go-fieldcheck/field"
	"github.com/lithictech/go-fieldcheck/validator"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"regexp"
	"strings"
)

// Descriptor is the data form of a field and its constraints.
type Descriptor struct {
	Name     string   `json:"name" yaml:"name"`
	Type     string   `json:"type" yaml:"type" validate:"enum=text|search|tel|url|password|hidden|textarea|number|range|date|datetime|datetime-local|month|time|week|email|select|opt"`
	Value    *Scalar  `json:"value" yaml:"value"`
	Required bool     `json:"required" yaml:"required"`
	Min      *Scalar  `json:"min" yaml:"min"`
	Max      *Scalar  `json:"max" yaml:"max"`
	Step     *Scalar  `json:"step" yaml:"step"`
	Pattern  string   `json:"pattern" yaml:"pattern" validate:"regex=opt"`
	Options  []Option `json:"options" yaml:"options"`
}

// Option is the data form of a select option.
// A nil Value means the option has no value, and its Text is used instead.
type Option struct {
	Value    *Scalar `json:"value" yaml:"value"`
	Text     string  `json:"text" yaml:"text"`
	Selected bool    `json:"selected" yaml:"selected"`
}

// Scalar is a field value or bound.
// It decodes from a string, number, or boolean,
// keeping the literal text, so 10 and "10" are the same Scalar.
// Use a *Scalar so that null (or a missing key) is distinguishable from "".
type Scalar string

func (s *Scalar) UnmarshalJSON(data []byte) error {
	var v interface{}
	d := json.NewDecoder(strings.NewReader(string(data)))
	d.UseNumber()
	if err := d.Decode(&v); err != nil {
		return err
	}
	switch tv := v.(type) {
	case string:
		*s = Scalar(tv)
	case json.Number:
		*s = Scalar(tv.String())
	case bool:
		*s = Scalar(fmt.Sprintf("%t", tv))
	case nil:
		*s = ""
	default:
		return fmt.Errorf("expected a string, number, or boolean, got %s", string(data))
	}
	return nil
}

func (s *Scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a string, number, or boolean", node.Line)
	}
	*s = Scalar(node.Value)
	return nil
}

func (s Scalar) String() string {
	return string(s)
}

// Str returns a *Scalar for s, for building descriptors in code.
func Str(s string) *Scalar {
	sc := Scalar(s)
	return &sc
}

func (s *Scalar) stringPtr() *string {
	if s == nil {
		return nil
	}
	str := string(*s)
	return &str
}

func (s *Scalar) floatPtr() *float64 {
	if s == nil {
		return nil
	}
	f, ok := field.ParseNumber(string(*s))
	if !ok {
		return nil
	}
	return &f
}

// numericBounds are the bounds of a number or range descriptor.
// Date and time types keep bounds in their own formats, like "2020-01-01",
// so only numeric types check them.
type numericBounds struct {
	Min  *Scalar `validate:"number"`
	Max  *Scalar `validate:"number"`
	Step *Scalar `validate:"number"`
}

// Validate reports malformed descriptors.
// The returned error wraps a validator.ErrorMap keyed by struct field name.
func (d Descriptor) Validate() error {
	em := validator.ErrorMap{}
	if err := mergeErrorMap(em, validator.Validate(d)); err != nil {
		return errors.Wrapf(err, "descriptor %q", d.Name)
	}
	if field.InputType(strings.ToLower(d.Type)).IsNumeric() {
		bounds := numericBounds{Min: d.Min, Max: d.Max, Step: d.Step}
		if err := mergeErrorMap(em, validator.Validate(bounds)); err != nil {
			return errors.Wrapf(err, "descriptor %q", d.Name)
		}
	}
	if len(em) > 0 {
		return errors.Wrapf(em, "descriptor %q", d.Name)
	}
	return nil
}

// mergeErrorMap adds the entries of err to into if it is an ErrorMap,
// and returns any other non-nil error.
func mergeErrorMap(into validator.ErrorMap, err error) error {
	if err == nil {
		return nil
	}
	em, ok := err.(validator.ErrorMap)
	if !ok {
		return err
	}
	for k, v := range em {
		into[k] = append(into[k], v...)
	}
	return nil
}

// Build validates d and returns the field.Validator it describes.
//
// The type picks the kind of validator:
// "email" is email, "select" is select,
// "number", "range", and the date/time types are numeric,
// and everything else (including no type) is basic,
// or pattern if a pattern is given.
func (d Descriptor) Build() (*field.Validator, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	cfg := field.Config{Name: d.Name, Value: d.Value.stringPtr(), Required: d.Required}
	typ := field.InputType(strings.ToLower(d.Type))
	switch {
	case typ == "email":
		return field.NewEmail(cfg), nil
	case typ == "select":
		return field.NewSelect(field.SelectConfig{Config: cfg, Options: d.fieldOptions()}), nil
	case typ.IsNumeric() || typ.IsDateTime():
		return field.NewNumeric(field.NumericConfig{
			Config: cfg,
			Type:   typ,
			Min:    d.Min.floatPtr(),
			Max:    d.Max.floatPtr(),
			Step:   d.Step.floatPtr(),
		}), nil
	case d.Pattern != "":
		re, err := regexp.Compile(d.Pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "descriptor %q pattern", d.Name)
		}
		return field.NewPattern(field.PatternConfig{Config: cfg, Pattern: re}), nil
	default:
		return field.New(cfg), nil
	}
}

func (d Descriptor) fieldOptions() []field.Option {
	result := make([]field.Option, 0, len(d.Options))
	for _, o := range d.Options {
		result = append(result, field.StaticOption{
			RawValue:   o.Value.stringPtr(),
			Label:      o.Text,
			IsSelected: o.Selected,
		})
	}
	return result
}
