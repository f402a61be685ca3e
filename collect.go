package toss

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Object maps field names to converted values. Array fields map to []any.
type Object map[string]any

// merge folds one element's converted value into obj.
//
// Array fields collect only non-nil values, in element order, and always
// exist once an element was seen. Other fields are overwritten unless an
// earlier non-nil value would be replaced by nil.
func (obj Object) merge(key string, value any, array bool) {
	if array {
		list, _ := obj[key].([]any)
		if list == nil {
			list = []any{}
		}
		if value != nil {
			list = append(list, value)
		}
		obj[key] = list
		return
	}

	if prev, exists := obj[key]; !exists || prev == nil || value != nil {
		obj[key] = value
	}
}

// Result is the outcome of one Collect pass.
type Result struct {
	Obj           Object
	MissingFields []string
	InvalidFields []string
	// OnlyOneError is true when exactly one field was missing or invalid.
	OnlyOneError bool
	// FieldToFocus is the first element, in evaluation order, that was
	// missing or invalid. FocusField is its field name.
	FieldToFocus Element
	FocusField   string

	provider Provider
}

// IsOkay reports whether no field was missing or invalid.
func (r *Result) IsOkay() bool {
	return len(r.MissingFields) == 0 && len(r.InvalidFields) == 0
}

// FocusInvalidField moves focus to FieldToFocus, if there is one.
func (r *Result) FocusInvalidField() {
	if r.FieldToFocus != nil && r.provider != nil {
		r.provider.Focus(r.FieldToFocus)
	}
}

// Err returns nil when the result is okay and a *FormError otherwise.
func (r *Result) Err() error {
	if r.IsOkay() {
		return nil
	}
	return &FormError{
		MissingFields: append([]string(nil), r.MissingFields...),
		InvalidFields: append([]string(nil), r.InvalidFields...),
	}
}

func (r *Result) record(list *[]string, out Outcome) {
	*list = append(*list, out.Field)
	if r.FieldToFocus == nil {
		r.FieldToFocus = out.Element
		r.FocusField = out.Field
		r.OnlyOneError = true
	} else {
		r.OnlyOneError = false
	}
}

// MarshalJSON renders the result as
// {obj, missingFields, invalidFields, isOkay, onlyOneError, fieldToFocus}
// where fieldToFocus is the focused field's name or null.
func (r *Result) MarshalJSON() ([]byte, error) {
	var focus *string
	if r.FieldToFocus != nil {
		name := r.FocusField
		focus = &name
	}

	return json.Marshal(struct {
		Obj           Object   `json:"obj"`
		MissingFields []string `json:"missingFields"`
		InvalidFields []string `json:"invalidFields"`
		IsOkay        bool     `json:"isOkay"`
		OnlyOneError  bool     `json:"onlyOneError"`
		FieldToFocus  *string  `json:"fieldToFocus"`
	}{
		Obj:           r.Obj,
		MissingFields: r.MissingFields,
		InvalidFields: r.InvalidFields,
		IsOkay:        r.IsOkay(),
		OnlyOneError:  r.OnlyOneError,
		FieldToFocus:  focus,
	})
}

// FormError describes a result that is not okay.
type FormError struct {
	MissingFields []string
	InvalidFields []string
}

func (fe *FormError) Error() string {
	var parts []string
	if len(fe.MissingFields) > 0 {
		parts = append(parts, fmt.Sprintf("missing fields: %s", strings.Join(fe.MissingFields, ", ")))
	}
	if len(fe.InvalidFields) > 0 {
		parts = append(parts, fmt.Sprintf("invalid fields: %s", strings.Join(fe.InvalidFields, ", ")))
	}
	return "form is not valid: " + strings.Join(parts, "; ")
}

// Collect evaluates every bound element of the form, in document order, and
// folds the outcomes into a Result. Elements marked dont-save are skipped.
//
// A named checkbox or radio group that is missing is reported once, however
// many of its elements are compulsory.
func (form *Form) Collect(opts ...Option) *Result {
	o := form.options(opts)
	attrs := o.Attrs

	result := &Result{
		Obj:           Object{},
		MissingFields: []string{},
		InvalidFields: []string{},
		provider:      form.provider,
	}
	missingGroups := make(map[string]bool)

	for _, el := range form.provider.Fields(attrs.FieldName) {
		if attr(el, attrs.DontSave) != "" {
			continue
		}

		out := form.evaluate(o, el)

		switch {
		case out.IsMissing:
			if group := attr(el, attrs.GroupName); el.Kind().IsCheckable() && group != "" {
				key := out.Field + "\x00" + group
				if missingGroups[key] {
					break
				}
				missingGroups[key] = true
			}
			result.record(&result.MissingFields, out)
		case out.IsInvalid:
			result.record(&result.InvalidFields, out)
		}

		result.Obj.merge(out.Field, out.ConvertedValue, attr(el, attrs.CreateArray) == attrTrue)
	}

	if o.AutoFocusErroredField {
		result.FocusInvalidField()
	}

	trace("collected %d fields: missing=%v invalid=%v", len(result.Obj), result.MissingFields, result.InvalidFields)
	return result
}
