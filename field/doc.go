/*
Package field validates a single HTML5-style form field against its own constraints.

A Validator is built once from a typed configuration record, and produces
a verdict (a boolean plus ordered, human-readable messages) when Validate is called.
The supported kinds are:

	Basic
		The base rule only: a required field must have a non-empty value.
		(Usage: field.New(field.Config{Name: "nick", Required: true}))

	Numeric
		For "number" and "range" inputs, the value must parse as a finite number,
		be a multiple of Step, at most Max, and at least Min. Bounds are inclusive,
		and a bound of 0 is still a bound. Date and time inputs
		("date", "datetime", "datetime-local", "month", "time", "week")
		currently get only the base rule.
		(Usage: field.NewNumeric(field.NumericConfig{Step: field.Num(3)}))

	Pattern
		The value must contain a match of Pattern. Matching is a regexp search,
		so use ^ and $ in the pattern for full-value matches.

	Email
		The value must contain an email address, as matched by EmailPattern.
		An optional, empty email field is valid.

	Select
		The value is taken from the first selected option
		(its value, or its text if it has no value).
		Only the base rule applies.

Emptiness

A value is empty when it is absent (nil) or the empty string.
"0" is not empty.

Repeated validation

Every call to Validate starts from an empty error list,
so calling it twice on the same Validator gives the same verdict twice.
*/
package field
