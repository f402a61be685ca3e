package toss

// Outcome is the evaluation of a single bound element.
type Outcome struct {
	Field          string
	Element        Element
	RawValue       any
	ConvertedValue any
	IsMissing      bool
	IsInvalid      bool
	// ErrorMessage replaces the generic missing/invalid message when set.
	ErrorMessage string
}

// Failed reports whether the outcome is missing or invalid.
func (o Outcome) Failed() bool {
	return o.IsMissing || o.IsInvalid
}

// Evaluate reads, converts and validates a single element.
func (form *Form) Evaluate(el Element, opts ...Option) Outcome {
	return form.evaluate(form.options(opts), el)
}

func (form *Form) evaluate(opts Options, el Element) Outcome {
	attrs := opts.Attrs
	field := attr(el, attrs.FieldName)
	compulsory := attr(el, attrs.Compulsory) == attrTrue

	out := Outcome{Field: field, Element: el}

	if name := attr(el, attrs.Interpret); name != "" {
		interp := form.interpret(opts, el, field, name)
		out.RawValue, out.ConvertedValue = interp.raw, interp.converted

		if interp.kind == ResolvedInterpretation {
			out.IsMissing = interp.missing && compulsory
			out.IsInvalid = interp.invalid
			out.ErrorMessage = interp.message
			form.checkRules(opts, &out)
			trace("field %q resolved by interpreter %q: missing=%t invalid=%t", field, name, out.IsMissing, out.IsInvalid)
			return out
		}
	} else {
		out.RawValue, out.ConvertedValue = form.readElement(opts, el, field)
	}

	if compulsory {
		out.IsMissing = form.isMissing(opts, el, out.RawValue)
	}

	form.checkFormat(opts, el, &out)
	form.checkRules(opts, &out)

	out.IsMissing = out.IsMissing && compulsory

	trace("field %q: raw=%v converted=%v missing=%t invalid=%t", field, out.RawValue, out.ConvertedValue, out.IsMissing, out.IsInvalid)
	return out
}

// isMissing applies the compulsory check. Named checkbox and radio groups are
// missing when no member of the group is checked.
func (form *Form) isMissing(opts Options, el Element, raw any) bool {
	kind := el.Kind()
	if group := attr(el, opts.Attrs.GroupName); kind.IsCheckable() && group != "" {
		for _, other := range form.provider.Group(kind, group) {
			if other.Checked() {
				return false
			}
		}
		return true
	}

	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return v == ""
	default:
		return false
	}
}

// checkFormat runs the declared validator, or infers invalidity from a
// converter that changed the value's string form.
func (form *Form) checkFormat(opts Options, el Element, out *Outcome) {
	if name := attr(el, opts.Attrs.Validate); name != "" {
		out.IsInvalid = !form.runValidator(opts, el, out.Field, name, out.ConvertedValue)
		return
	}

	if attr(el, opts.Attrs.Convert) == "" {
		return
	}

	if _, isBool := out.ConvertedValue.(bool); isBool {
		switch el.Kind() {
		case KindSelect, KindCheckbox, KindRadio:
			out.IsInvalid = false
			return
		}
	}

	if stringForm(out.ConvertedValue) != stringForm(out.RawValue) {
		out.IsInvalid = true
	}
}

// runValidator reports whether converted is valid. Unknown or failing
// validators make the value invalid.
func (form *Form) runValidator(opts Options, el Element, field, name string, converted any) bool {
	fn, ok := opts.Registry.Validator(name)
	if !ok {
		opts.Sink.Log(&CallbackError{
			Kind: ValidatorCallback, Name: name, Field: field,
			Err: ErrUnknownCallback,
		})
		return false
	}

	var valid bool
	err := guard(func() error {
		var err error
		valid, err = fn(converted)
		return err
	})
	if err != nil {
		opts.Sink.Log(&CallbackError{
			Kind: ValidatorCallback, Name: name, Field: field, Err: err,
		}, el)
		return false
	}

	return valid
}
