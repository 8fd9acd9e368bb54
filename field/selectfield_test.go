package field_test

import (
	"github.com/lithictech/go-fieldcheck/field"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type recordingSource struct {
	selectors []string
	options   []field.Option
}

func (s *recordingSource) SelectOptions(selector string) []field.Option {
	s.selectors = append(s.selectors, selector)
	return s.options
}

var _ = Describe("select validator", func() {

	opt := func(value string, selected bool) field.Option {
		return field.StaticOption{RawValue: field.Str(value), IsSelected: selected}
	}

	It("takes the value of the first selected option", func() {
		v := field.NewSelect(field.SelectConfig{
			Options: []field.Option{opt("x", false), opt("y", true), opt("z", true)},
		})
		Expect(v.Value).To(HaveValue(Equal("y")))
		Expect(v.Validate()).To(BeTrue())
	})

	It("falls back to the option text when it has no value", func() {
		v := field.NewSelect(field.SelectConfig{
			Options: []field.Option{
				opt("x", false),
				field.StaticOption{Label: "Label", IsSelected: true},
			},
		})
		Expect(v.Value).To(HaveValue(Equal("Label")))
	})

	It("prefers an empty value over the text", func() {
		v := field.NewSelect(field.SelectConfig{
			Config:  field.Config{Required: true},
			Options: []field.Option{field.StaticOption{RawValue: field.Str(""), Label: "Pick one", IsSelected: true}},
		})
		Expect(v.Value).To(HaveValue(Equal("")))
		Expect(v.Validate()).To(BeFalse())
		Expect(v.Errors()).To(Equal([]string{field.MsgRequired}))
	})

	It("leaves the value unset when nothing is selected", func() {
		v := field.NewSelect(field.SelectConfig{
			Config:  field.Config{Required: true},
			Options: []field.Option{opt("x", false), opt("y", false)},
		})
		Expect(v.Value).To(BeNil())
		Expect(v.Validate()).To(BeFalse())
	})

	It("keeps a configured value when nothing is selected", func() {
		v := field.NewSelect(field.SelectConfig{
			Config:  field.Config{Value: field.Str("preset")},
			Options: []field.Option{opt("x", false)},
		})
		Expect(v.Value).To(HaveValue(Equal("preset")))
	})

	It("queries the source when no options are given", func() {
		src := &recordingSource{options: []field.Option{opt("a", false), opt("b", true)}}
		v := field.NewSelect(field.SelectConfig{Source: src})
		Expect(src.selectors).To(Equal([]string{"option"}))
		Expect(v.Value).To(HaveValue(Equal("b")))
	})

	It("does not query the source when options are given", func() {
		src := &recordingSource{}
		field.NewSelect(field.SelectConfig{Source: src, Options: []field.Option{}})
		Expect(src.selectors).To(BeEmpty())
	})

	It("skips nil options", func() {
		s, ok := field.SelectedValue([]field.Option{nil, opt("q", true)})
		Expect(ok).To(BeTrue())
		Expect(s).To(Equal("q"))
	})

	It("only applies the base rule", func() {
		v := field.NewSelect(field.SelectConfig{Options: []field.Option{opt("anything at all", true)}})
		Expect(v.Validate()).To(BeTrue())
		Expect(v.Kind).To(Equal(field.KindSelect))
	})
})
