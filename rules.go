package toss

import (
	"errors"
	"fmt"
)

var (
	ErrNilRule        = errors.New("validation rule must be a non-nil function")
	ErrEmptyFieldName = errors.New("field name cannot be empty")
)

// Verdict is the result of a Rule. The zero Verdict passes.
type Verdict struct {
	failed  bool
	message string
}

// Pass is the verdict of a satisfied rule.
func Pass() Verdict {
	return Verdict{}
}

// Fail fails with the generic invalid message.
func Fail() Verdict {
	return Verdict{failed: true}
}

// FailWith fails with msg replacing the generic message.
func FailWith(msg string) Verdict {
	return Verdict{failed: true, message: msg}
}

// Check passes when ok is true and fails with msg otherwise.
func Check(ok bool, msg string) Verdict {
	if ok {
		return Pass()
	}
	return FailWith(msg)
}

// Failed reports whether the rule rejected the field.
func (v Verdict) Failed() bool {
	return v.failed
}

// Message returns the failure message, or "" for the default one.
func (v Verdict) Message() string {
	return v.message
}

// FieldContext is what a Rule sees: the field's outcome so far and the
// enclosing form, so rules can read sibling fields.
type FieldContext struct {
	Form    *Form
	Outcome Outcome
}

func (fc FieldContext) Field() string {
	return fc.Outcome.Field
}

func (fc FieldContext) Element() Element {
	return fc.Outcome.Element
}

// Value returns the converted value of the field under validation.
func (fc FieldContext) Value() any {
	return fc.Outcome.ConvertedValue
}

// Rule is a dynamic validation rule attached to a field.
type Rule func(fc FieldContext) Verdict

// AddRule appends rule to the rules of field. Rules run in insertion order
// and the first failing one wins.
//
// Rules must not be added while a pass over the form is in flight.
func (form *Form) AddRule(field string, rule Rule) error {
	if rule == nil {
		return fmt.Errorf("%w: %s", ErrNilRule, field)
	}
	if field == "" {
		return ErrEmptyFieldName
	}

	form.rules[field] = append(form.rules[field], rule)
	return nil
}

// ClearRules removes every rule attached to field.
func (form *Form) ClearRules(field string) {
	delete(form.rules, field)
}

// ClearAllRules removes every rule in the form.
func (form *Form) ClearAllRules() {
	form.rules = make(map[string][]Rule)
}

// Rules returns a copy of the rules attached to field.
func (form *Form) Rules(field string) []Rule {
	return append([]Rule(nil), form.rules[field]...)
}

// checkRules applies the field's rules, stopping at the first failure.
// A panicking rule counts as a failure with the generic message.
func (form *Form) checkRules(opts Options, out *Outcome) {
	for i, rule := range form.rules[out.Field] {
		var verdict Verdict
		err := guard(func() error {
			verdict = rule(FieldContext{Form: form, Outcome: *out})
			return nil
		})
		if err != nil {
			opts.Sink.Log(&CallbackError{
				Kind: RuleCallback, Name: fmt.Sprintf("#%d", i), Field: out.Field, Err: err,
			}, out.Element)
			out.IsInvalid = true
			return
		}

		if !verdict.failed {
			continue
		}

		out.IsInvalid = true
		if verdict.message != "" {
			out.ErrorMessage = verdict.message
		}
		return
	}
}
