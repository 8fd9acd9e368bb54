package field

import (
	"regexp"
)

// PatternConfig configures a pattern Validator.
// A nil Pattern means there is nothing beyond the base rule to check.
type PatternConfig struct {
	Config
	Pattern *regexp.Regexp
}

func NewPattern(cfg PatternConfig) *Validator {
	v := newValidator(KindPattern, cfg.Config)
	v.Pattern = cfg.Pattern
	return v
}

func (v *Validator) validatePattern() {
	if v.Pattern != nil && !v.Pattern.MatchString(v.StringValue()) {
		v.addError(MsgInvalidValue)
	}
}

// EmailPattern finds an email address (dot-separated atoms, @, dot-separated domain labels)
// anywhere in a string. It is not anchored.
var EmailPattern = regexp.MustCompile(
	"(?i)[a-z0-9!#$%&'*+/=?^_`{|}~-]+(?:\\.[a-z0-9!#$%&'*+/=?^_`{|}~-]+)*" +
		"@(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\\.)+[a-z0-9](?:[a-z0-9-]*[a-z0-9])?")

// NewEmail returns a Validator that checks the value against EmailPattern
// when the field is required or has a value.
func NewEmail(cfg Config) *Validator {
	v := newValidator(KindEmail, cfg)
	v.Pattern = EmailPattern
	return v
}

func (v *Validator) validateEmail() {
	if !v.Required && IsEmpty(v.Value) {
		return
	}
	if !EmailPattern.MatchString(v.StringValue()) {
		v.addError(MsgInvalidEmail)
	}
}
