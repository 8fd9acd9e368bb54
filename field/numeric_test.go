package field_test

import (
	"github.com/lithictech/go-fieldcheck/field"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"math"
)

var _ = Describe("numeric validator", func() {

	numeric := func(value string, cfg field.NumericConfig) *field.Validator {
		cfg.Value = field.Str(value)
		return field.NewNumeric(cfg)
	}

	It("defaults to the number type", func() {
		Expect(field.NewNumeric(field.NumericConfig{}).Type).To(Equal(field.TypeNumber))
	})

	It("fails values that are not numbers", func() {
		v := numeric("ten", field.NumericConfig{Step: field.Num(3), Max: field.Num(1)})
		Expect(v.Validate()).To(BeFalse())
		Expect(v.Errors()).To(Equal([]string{field.MsgNotANumber}))
	})

	It("checks the step", func() {
		v := numeric("10", field.NumericConfig{Step: field.Num(3)})
		Expect(v.Validate()).To(BeFalse())
		Expect(v.Errors()).To(ContainElement("not a valid step of 3"))

		Expect(numeric("9", field.NumericConfig{Step: field.Num(3)}).Validate()).To(BeTrue())
		Expect(numeric("0.3", field.NumericConfig{Step: field.Num(0.1)}).Validate()).To(BeTrue())
		Expect(numeric("-6", field.NumericConfig{Step: field.Num(3)}).Validate()).To(BeTrue())
	})

	It("checks the maximum, inclusive", func() {
		v := numeric("5", field.NumericConfig{Max: field.Num(3)})
		Expect(v.Validate()).To(BeFalse())
		Expect(v.Errors()).To(Equal([]string{"not below maximum of 3"}))

		Expect(numeric("3", field.NumericConfig{Max: field.Num(3)}).Validate()).To(BeTrue())
	})

	It("checks the minimum, inclusive", func() {
		v := numeric("1", field.NumericConfig{Min: field.Num(3)})
		Expect(v.Validate()).To(BeFalse())
		Expect(v.Errors()).To(Equal([]string{"not above minimum of 3"}))

		Expect(numeric("3", field.NumericConfig{Min: field.Num(3)}).Validate()).To(BeTrue())
	})

	It("enforces bounds of zero", func() {
		Expect(numeric("0", field.NumericConfig{Max: field.Num(0)}).Validate()).To(BeTrue())

		v := numeric("1", field.NumericConfig{Max: field.Num(0)})
		Expect(v.Validate()).To(BeFalse())
		Expect(v.Errors()).To(Equal([]string{"not below maximum of 0"}))

		v = numeric("-1", field.NumericConfig{Min: field.Num(0)})
		Expect(v.Validate()).To(BeFalse())
		Expect(v.Errors()).To(Equal([]string{"not above minimum of 0"}))
	})

	It("reports every failed constraint in order", func() {
		v := numeric("7", field.NumericConfig{Step: field.Num(2), Max: field.Num(5), Min: field.Num(10)})
		Expect(v.Validate()).To(BeFalse())
		Expect(v.Errors()).To(Equal([]string{
			"not a valid step of 2",
			"not below maximum of 5",
			"not above minimum of 10",
		}))
	})

	It("fails rather than panicking on a zero step", func() {
		v := numeric("4", field.NumericConfig{Step: field.Num(0)})
		Expect(v.Validate()).To(BeFalse())
		Expect(v.Errors()).To(Equal([]string{"not a valid step of 0"}))
	})

	It("treats range like number", func() {
		v := numeric("11", field.NumericConfig{Type: field.TypeRange, Max: field.Num(10)})
		Expect(v.Validate()).To(BeFalse())
	})

	It("only applies the base rule to date and time types", func() {
		v := numeric("2024-01-01", field.NumericConfig{Type: field.TypeDate, Max: field.Num(1)})
		Expect(v.Validate()).To(BeTrue())
		v = numeric("", field.NumericConfig{Config: field.Config{Required: true}, Type: field.TypeWeek})
		v.Value = nil
		Expect(v.Validate()).To(BeFalse())
		Expect(v.Errors()).To(Equal([]string{field.MsgRequired}))
	})

	It("only applies the base rule to unknown types", func() {
		Expect(numeric("abc", field.NumericConfig{Type: "color"}).Validate()).To(BeTrue())
	})

	It("skips numeric checks for an optional empty value", func() {
		Expect(field.NewNumeric(field.NumericConfig{Min: field.Num(1)}).Validate()).To(BeTrue())
		Expect(numeric("", field.NumericConfig{Min: field.Num(1)}).Validate()).To(BeTrue())
	})

	It("reports the required rule before numeric checks", func() {
		v := field.NewNumeric(field.NumericConfig{Config: field.Config{Required: true}, Min: field.Num(1)})
		Expect(v.Validate()).To(BeFalse())
		Expect(v.Errors()).To(Equal([]string{field.MsgRequired}))
	})

	Describe("predicates", func() {
		It("returns true when the constraint is satisfied", func() {
			Expect(field.StepOK(9, 3)).To(BeTrue())
			Expect(field.StepOK(10, 3)).To(BeFalse())
			Expect(field.StepOK(1, -1)).To(BeFalse())
			Expect(field.StepOK(math.NaN(), 1)).To(BeFalse())
			Expect(field.StepOK(0, 0.25)).To(BeTrue())
			Expect(field.MaxOK(3, 3)).To(BeTrue())
			Expect(field.MaxOK(4, 3)).To(BeFalse())
			Expect(field.MinOK(3, 3)).To(BeTrue())
			Expect(field.MinOK(2, 3)).To(BeFalse())
		})
	})

	Describe("StepOK", func() {
		It("allows for rounding of decimal operands", func() {
			Expect(field.StepOK(0.3, 0.1)).To(BeTrue())
			Expect(field.StepOK(0.7, 0.1)).To(BeTrue())
			Expect(field.StepOK(1.1, 0.1)).To(BeTrue())
			Expect(field.StepOK(-0.9, 0.3)).To(BeTrue())
		})

		It("rejects values that are only close to a multiple", func() {
			Expect(field.StepOK(5.0000000001, 1)).To(BeFalse())
			Expect(field.StepOK(1e-10, 1)).To(BeFalse())
			Expect(field.StepOK(1e12+0.5, 1)).To(BeFalse())
			Expect(field.StepOK(0.30001, 0.1)).To(BeFalse())
		})

		It("reports a near miss as an invalid step", func() {
			v := numeric("5.0000000001", field.NumericConfig{Step: field.Num(1)})
			Expect(v.Validate()).To(BeFalse())
			Expect(v.Errors()).To(Equal([]string{"not a valid step of 1"}))
		})
	})

	Describe("ParseNumber", func() {
		It("parses finite numbers only", func() {
			n, ok := field.ParseNumber(" 2.5 ")
			Expect(ok).To(BeTrue())
			Expect(n).To(Equal(2.5))
			_, ok = field.ParseNumber("NaN")
			Expect(ok).To(BeFalse())
			_, ok = field.ParseNumber("Inf")
			Expect(ok).To(BeFalse())
			_, ok = field.ParseNumber("12px")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("FormatNumber", func() {
		It("renders the shortest form", func() {
			Expect(field.FormatNumber(3)).To(Equal("3"))
			Expect(field.FormatNumber(0.25)).To(Equal("0.25"))
			Expect(field.FormatNumber(-1e6)).To(Equal("-1000000"))
		})
	})
})
