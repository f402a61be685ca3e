package toss

// Message returns the user facing message for an outcome, or "" when it
// passed. A rule message wins, a missing field reports only the compulsory
// message, and an invalid field reports the element's own invalid-format
// message or the default one.
func (form *Form) Message(out Outcome, opts ...Option) string {
	return message(form.options(opts), out)
}

func message(o Options, out Outcome) string {
	switch {
	case out.ErrorMessage != "":
		return out.ErrorMessage
	case out.IsMissing:
		return o.CompulsoryMessage
	case out.IsInvalid:
		if custom := attr(out.Element, o.Attrs.InvalidFormatMessage); custom != "" {
			return custom
		}
		return o.InvalidFormatMessage
	default:
		return ""
	}
}

// ValidateField evaluates el and renders its message, hiding the message
// element when the field passed.
func (form *Form) ValidateField(el Element, opts ...Option) Outcome {
	o := form.options(opts)
	return form.validateField(o, el)
}

func (form *Form) validateField(o Options, el Element) Outcome {
	out := form.evaluate(o, el)
	form.provider.RenderMessage(o.Attrs.ValidatorOf, out.Field, message(o, out), out.Failed())
	return out
}

// Validate evaluates and renders every bound element, including dont-save
// ones, and returns the outcomes in document order.
func (form *Form) Validate(opts ...Option) []Outcome {
	o := form.options(opts)
	return form.validateAll(o, form.provider.Fields(o.Attrs.FieldName))
}

func (form *Form) validateAll(o Options, elements []Element) []Outcome {
	outcomes := make([]Outcome, 0, len(elements))
	for _, el := range elements {
		outcomes = append(outcomes, form.validateField(o, el))
	}
	return outcomes
}

// Watch revalidates the whole form whenever a bound element changes, and on
// keyup for text-like elements when keyup validation is enabled. Every
// notification revalidates every field, since rules may read siblings.
//
// The returned func removes the subscriptions.
func (form *Form) Watch(opts ...Option) (stop func()) {
	o := form.options(opts)
	elements := form.provider.Fields(o.Attrs.FieldName)

	revalidate := func() {
		form.validateAll(o, elements)
	}

	var cancels []func()
	for _, el := range elements {
		cancels = append(cancels, form.provider.Subscribe(el, EventChange, revalidate))
		if el.Kind() == KindText && o.AutoValidateOnKeyup {
			cancels = append(cancels, form.provider.Subscribe(el, EventKeyup, revalidate))
		}
	}

	return func() {
		for _, cancel := range cancels {
			if cancel != nil {
				cancel()
			}
		}
		cancels = nil
	}
}
