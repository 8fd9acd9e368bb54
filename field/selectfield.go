package field

// Option is one choice of a select field.
type Option interface {
	// Selected is true if the option is the chosen one.
	Selected() bool
	// Value returns the option's value, and false if it has none.
	Value() (string, bool)
	// Text returns the option's displayable text.
	Text() string
}

// OptionSource is something that can list its own options,
// like a parsed <select> element. See the htmlopt package.
type OptionSource interface {
	SelectOptions(selector string) []Option
}

// StaticOption is an Option held in memory.
// A nil RawValue means the option has no value attribute.
type StaticOption struct {
	RawValue   *string
	Label      string
	IsSelected bool
}

var _ Option = StaticOption{}

func (o StaticOption) Selected() bool {
	return o.IsSelected
}

func (o StaticOption) Value() (string, bool) {
	if o.RawValue == nil {
		return "", false
	}
	return *o.RawValue, true
}

func (o StaticOption) Text() string {
	return o.Label
}

// SelectConfig configures a select Validator.
// If Options is nil, they are queried from Source.
type SelectConfig struct {
	Config
	Options []Option
	Source  OptionSource
}

// NewSelect returns a Validator whose Value comes from the first selected option.
// If no option is selected, Value stays as configured.
func NewSelect(cfg SelectConfig) *Validator {
	v := newValidator(KindSelect, cfg.Config)
	options := cfg.Options
	if options == nil && cfg.Source != nil {
		options = cfg.Source.SelectOptions("option")
	}
	if s, ok := SelectedValue(options); ok {
		v.Value = &s
	}
	return v
}

// SelectedValue returns the value of the first selected option,
// falling back to its text if it has no value.
// ok is false if no option is selected.
func SelectedValue(options []Option) (value string, ok bool) {
	for _, o := range options {
		if o == nil || !o.Selected() {
			continue
		}
		if s, hasValue := o.Value(); hasValue {
			return s, true
		}
		return o.Text(), true
	}
	return "", false
}
