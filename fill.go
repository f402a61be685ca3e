package toss

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/tidwall/gjson"
)

var (
	ErrFillInterpretedField = errors.New("cannot fill a field that has a custom interpreter")
	ErrInvalidJSON          = errors.New("invalid JSON document")
	ErrJSONNotObject        = errors.New("JSON document is not an object")
)

// Fill writes obj into the bound elements of the form, key by key in sorted
// order. Keys without bound elements are ignored.
//
// Booleans set the checked state of checkboxes and radios, lists check the
// members whose value they contain, anything else checks the element whose
// value matches. Value-bearing controls and content elements receive the
// value's string form, or the first item of a list. Every written element
// emits a change notification.
//
// Fields with a custom fill callback are handed to it instead. Fields with
// a custom interpreter cannot be reverse-mapped and are skipped.
func (form *Form) Fill(obj Object, opts ...Option) {
	o := form.options(opts)

	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		form.fillField(o, key, obj[key])
	}
}

// FillJSON fills the form from a JSON object, key by key in document order.
func (form *Form) FillJSON(data []byte, opts ...Option) error {
	doc, err := parseJSONObject(data)
	if err != nil {
		return err
	}

	o := form.options(opts)
	doc.ForEach(func(key, value gjson.Result) bool {
		form.fillField(o, key.String(), value.Value())
		return true
	})
	return nil
}

// ObjectFromJSON decodes a JSON object into an Object. Numbers decode as
// float64, arrays as []any.
func ObjectFromJSON(data []byte) (Object, error) {
	doc, err := parseJSONObject(data)
	if err != nil {
		return nil, err
	}

	obj := Object{}
	doc.ForEach(func(key, value gjson.Result) bool {
		obj[key.String()] = value.Value()
		return true
	})
	return obj, nil
}

func parseJSONObject(data []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, ErrInvalidJSON
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return gjson.Result{}, fmt.Errorf("%w: %s", ErrJSONNotObject, doc.Type)
	}
	return doc, nil
}

func (form *Form) fillField(o Options, key string, value any) {
	for _, el := range form.elements(o, key) {
		if form.fillElement(o, el, key, value) {
			form.provider.Notify(el, EventChange)
		}
	}
}

// fillElement writes value into el and reports whether el was written.
func (form *Form) fillElement(o Options, el Element, key string, value any) bool {
	if name := attr(el, o.Attrs.CustomFill); name != "" {
		fn, ok := o.Registry.Fill(name)
		if ok {
			err := guard(func() error { return fn(el, value) })
			if err != nil {
				o.Sink.Log(&CallbackError{Kind: FillCallback, Name: name, Field: key, Err: err}, el)
			}
			return true
		}
		o.Sink.Log(&CallbackError{Kind: FillCallback, Name: name, Field: key, Err: ErrUnknownCallback}, el)
	}

	if name := attr(el, o.Attrs.Interpret); name != "" {
		o.Sink.Log(&CallbackError{Kind: InterpreterCallback, Name: name, Field: key, Err: ErrFillInterpretedField}, el)
		return false
	}

	if el.Kind().IsCheckable() {
		valueAttr := attr(el, o.Attrs.Value)
		switch v := value.(type) {
		case nil:
			el.SetChecked(false)
		case bool:
			el.SetChecked(v)
		default:
			if list, ok := asList(value); ok {
				el.SetChecked(containsForm(list, valueAttr))
			} else {
				el.SetChecked(stringForm(v) == valueAttr)
			}
		}
		return true
	}

	el.SetValue(fillText(value))
	return true
}

// fillText is what a value-bearing or content element receives.
func fillText(value any) string {
	if list, ok := asList(value); ok {
		if len(list) == 0 {
			return ""
		}
		value = list[0]
	}
	if value == nil {
		return ""
	}
	return stringForm(value)
}

// asList unpacks any slice except []byte.
func asList(value any) ([]any, bool) {
	if list, ok := value.([]any); ok {
		return list, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice || rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	list := make([]any, rv.Len())
	for i := range list {
		list[i] = rv.Index(i).Interface()
	}
	return list, true
}

func containsForm(list []any, want string) bool {
	for _, item := range list {
		if item != nil && stringForm(item) == want {
			return true
		}
	}
	return false
}
