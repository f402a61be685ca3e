package toss

// InterpretationKind tags what a custom interpreter produced.
type InterpretationKind int

const (
	// PlainInterpretation is a single value used as both raw and converted.
	PlainInterpretation InterpretationKind = iota
	// RawInterpretation carries only a raw value, mirrored into converted.
	RawInterpretation
	// ConvertedInterpretation carries only a converted value, mirrored into raw.
	ConvertedInterpretation
	// PairInterpretation carries both values.
	PairInterpretation
	// ResolvedInterpretation also decides missing and invalid. The engine
	// skips its own compulsory and format checks and only applies rules.
	ResolvedInterpretation
)

// Interpretation is the result of an Interpreter. Build it with Value,
// RawOnly, ConvertedOnly, Pair or Resolved.
type Interpretation struct {
	kind      InterpretationKind
	raw       any
	converted any
	missing   bool
	invalid   bool
	message   string
}

// Value resolves to v as both the raw and the converted value.
func Value(v any) Interpretation {
	return Interpretation{kind: PlainInterpretation, raw: v, converted: v}
}

// RawOnly resolves to raw, mirrored into the converted value.
func RawOnly(raw any) Interpretation {
	return Interpretation{kind: RawInterpretation, raw: raw, converted: raw}
}

// ConvertedOnly resolves to converted, mirrored into the raw value.
func ConvertedOnly(converted any) Interpretation {
	return Interpretation{kind: ConvertedInterpretation, raw: converted, converted: converted}
}

// Pair resolves to distinct raw and converted values.
func Pair(raw, converted any) Interpretation {
	return Interpretation{kind: PairInterpretation, raw: raw, converted: converted}
}

// Resolved hands the whole decision to the interpreter. missing is still
// ignored for fields that are not compulsory.
func Resolved(raw, converted any, missing, invalid bool) Interpretation {
	return Interpretation{
		kind:      ResolvedInterpretation,
		raw:       raw,
		converted: converted,
		missing:   missing,
		invalid:   invalid,
	}
}

// WithMessage attaches an error message to a resolved interpretation.
func (i Interpretation) WithMessage(msg string) Interpretation {
	i.message = msg
	return i
}

// Kind reports which values the interpretation carries.
func (i Interpretation) Kind() InterpretationKind {
	return i.kind
}

// Raw returns the raw value, if any.
func (i Interpretation) Raw() any {
	return i.raw
}

// Converted returns the converted value, if any.
func (i Interpretation) Converted() any {
	return i.converted
}

// interpret runs the named interpreter. Any failure degrades to an absent
// plain value.
func (form *Form) interpret(opts Options, el Element, field, name string) Interpretation {
	fn, ok := opts.Registry.Interpreter(name)
	if !ok {
		opts.Sink.Log(&CallbackError{
			Kind: InterpreterCallback, Name: name, Field: field,
			Err: ErrUnknownCallback,
		})
		return Value(nil)
	}

	var result Interpretation
	err := guard(func() error {
		var err error
		result, err = fn(el, form)
		return err
	})
	if err != nil {
		opts.Sink.Log(&CallbackError{
			Kind: InterpreterCallback, Name: name, Field: field, Err: err,
		}, el)
		return Value(nil)
	}

	return result
}

// readElement is the default value reader.
//
// Checkboxes and radios without a special value read as their checked state.
// With one they read as that value when checked and nil otherwise. Other
// controls read their value with "" meaning nil, and everything else reads
// its content.
func (form *Form) readElement(opts Options, el Element, field string) (raw any, converted any) {
	kind := el.Kind()

	switch {
	case kind.IsCheckable():
		valueAttr := attr(el, opts.Attrs.Value)
		if valueAttr == "" || (opts.AspNetMvcCompatible && valueAttr == attrTrue && hasAttr(el, opts.Attrs.MvcMarker)) {
			raw = el.Checked()
		} else if el.Checked() {
			raw = valueAttr
		}
	case kind.IsValueBearing():
		if v := el.Value(); v != "" {
			raw = v
		}
	default:
		raw = el.Value()
	}

	converted = form.convert(opts, el, field, raw, attr(el, opts.Attrs.Convert))
	return raw, converted
}

func hasAttr(el Element, name string) bool {
	if name == "" {
		return false
	}
	_, ok := el.Attr(name)
	return ok
}
