/*
Package validator checks the configuration of field descriptors
before they are turned into field validators.
It is built on https://github.com/go-validator/validator,
though it does not expose it. See that package for more info
and on building custom validators.

Available validators include the go-validator built-ins
(len, max, min, nonzero, regexp) and:

	enum
		For string types, validate that the string is one of the specified choices.
		Choices should be pipe-delimited. Matching is case-insensitive.
		If "|opt" is the trailing argument, treat the value as optional
		(an empty string is valid).
		(Usage: enum=text|number|email enum=text|number|email|opt)

	number
		For string types (including named string types),
		validate that the string parses as a finite number,
		like the min, max, and step of a numeric field.
		If "opt" is specified, an empty string is accepted.
		(Usage: number number=opt)

	regex
		For string types, validate that the string compiles
		as a Go regular expression, like the pattern of a pattern field.
		If "opt" is specified, an empty string is accepted.
		(Usage: regex regex=opt)

Pointers

A nil pointer is valid for every validator here, because pointer fields
are how descriptors say a value was not given at all.
A non-nil pointer is validated like the value it points to.
Use "nonzero" if a nil pointer is not acceptable.
*/
package validator
