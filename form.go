package toss

import (
	"errors"
)

var (
	ErrNilProvider = errors.New("element provider cannot be nil")
)

// Form is a validation scope: the fields a Provider exposes, the options that
// apply to them and the rules attached to them.
//
// A Form is single-threaded. Passes run to completion synchronously and must
// not overlap with each other or with AddRule.
type Form struct {
	provider Provider
	optFns   []Option
	rules    map[string][]Rule
}

// NewForm creates a scope over provider. opts override the process defaults
// for every call on the form.
func NewForm(provider Provider, opts ...Option) (*Form, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}

	return &Form{
		provider: provider,
		optFns:   opts,
		rules:    make(map[string][]Rule),
	}, nil
}

func (form *Form) Provider() Provider {
	return form.provider
}

// Options returns the effective options for a call made with opts.
func (form *Form) Options(opts ...Option) Options {
	return form.options(opts)
}

// options resolves process defaults, then form options, then call options.
func (form *Form) options(call []Option) Options {
	fns := make([]Option, 0, len(form.optFns)+len(call))
	fns = append(fns, form.optFns...)
	fns = append(fns, call...)
	return DefaultOptions().apply(fns)
}

// Elements returns the bound elements of field, in document order.
func (form *Form) Elements(field string, opts ...Option) []Element {
	return form.elements(form.options(opts), field)
}

func (form *Form) elements(opts Options, field string) []Element {
	var found []Element
	for _, el := range form.provider.Fields(opts.Attrs.FieldName) {
		if attr(el, opts.Attrs.FieldName) == field {
			found = append(found, el)
		}
	}
	return found
}

// Peek reads the converted value of field without validating it, merged the
// same way Collect merges it. It is meant for rules that compare sibling
// fields.
func (form *Form) Peek(field string, opts ...Option) any {
	o := form.options(opts)

	obj := Object{}
	for _, el := range form.elements(o, field) {
		var converted any
		if name := attr(el, o.Attrs.Interpret); name != "" {
			converted = form.interpret(o, el, field, name).converted
		} else {
			_, converted = form.readElement(o, el, field)
		}
		obj.merge(field, converted, attr(el, o.Attrs.CreateArray) == attrTrue)
	}

	return obj[field]
}
