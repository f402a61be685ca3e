package htmlform

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/tidwall/gjson"

	toss "github.com/SimonDaKappa/go-toss"
)

const (
	ContentTypeApplicationJSON = "application/json"
	ContentTypeDelimiter       = ";"
)

// submitted is what a request carries for one control name. flag is set when
// a JSON body sent a boolean, which checks or unchecks checkables directly.
type submitted struct {
	values []string
	flag   *bool
}

// requestData reads the request body at most once. Form-encoded bodies and
// query strings go through net/http; JSON bodies are looked up with gjson.
type requestData struct {
	request *http.Request

	once   sync.Once
	isJSON bool
	json   map[string]gjson.Result
	form   url.Values
	err    error
}

func (rd *requestData) load() error {
	rd.once.Do(func() {
		contentType := rd.request.Header.Get("Content-Type")
		mediaType := strings.TrimSpace(strings.Split(contentType, ContentTypeDelimiter)[0])

		if strings.EqualFold(mediaType, ContentTypeApplicationJSON) {
			rd.isJSON = true
			rd.json = make(map[string]gjson.Result)
			if rd.request.Body == nil {
				return
			}

			body, err := io.ReadAll(rd.request.Body)
			if err != nil {
				rd.err = fmt.Errorf("failed to read request body: %w", err)
				return
			}
			if len(body) == 0 {
				return
			}
			if !gjson.ValidBytes(body) {
				rd.err = toss.ErrInvalidJSON
				return
			}
			doc := gjson.ParseBytes(body)
			if !doc.IsObject() {
				rd.err = fmt.Errorf("%w: %s", toss.ErrJSONNotObject, doc.Type)
				return
			}
			// keys are matched literally, names may contain path syntax
			doc.ForEach(func(key, value gjson.Result) bool {
				rd.json[key.String()] = value
				return true
			})
			return
		}

		if err := rd.request.ParseForm(); err != nil {
			rd.err = fmt.Errorf("failed to parse request form: %w", err)
			return
		}
		rd.form = rd.request.Form
	})
	return rd.err
}

func (rd *requestData) get(name string) (submitted, bool) {
	if !rd.isJSON {
		values, ok := rd.form[name]
		return submitted{values: values}, ok
	}

	result, ok := rd.json[name]
	if !ok {
		return submitted{}, false
	}

	switch {
	case result.IsArray():
		var values []string
		for _, item := range result.Array() {
			values = append(values, item.String())
		}
		return submitted{values: values}, true
	case result.IsBool():
		flag := result.Bool()
		return submitted{values: []string{result.String()}, flag: &flag}, true
	case result.Type == gjson.Null:
		return submitted{}, true
	default:
		return submitted{values: []string{result.String()}}, true
	}
}

// ApplyRequest writes the values submitted in r into the named controls of
// scope, the way a browser would have left them before submitting.
//
// Checkboxes and radios are checked when their value was submitted under
// their name, or when a JSON body sent true. A checkable whose name is absent
// is unchecked, since browsers leave unchecked boxes out. The n-th other
// control with a given name receives the n-th submitted value; controls with
// no submitted value keep theirs. Hidden inputs and buttons never change.
func ApplyRequest(scope *Scope, r *http.Request) error {
	if r == nil {
		return fmt.Errorf("cannot apply a nil request")
	}

	rd := &requestData{request: r}
	if err := rd.load(); err != nil {
		return err
	}

	seen := make(map[string]int)
	for _, el := range scope.Elements() {
		name, ok := el.Attr("name")
		if !ok || name == "" || !isSubmittable(el) {
			continue
		}

		sub, present := rd.get(name)

		if el.Kind().IsCheckable() {
			switch {
			case sub.flag != nil:
				el.SetChecked(*sub.flag)
			case present:
				el.SetChecked(contains(sub.values, el.Value()))
			default:
				el.SetChecked(false)
			}
			continue
		}

		idx := seen[name]
		seen[name]++
		if idx < len(sub.values) {
			el.SetValue(sub.values[idx])
		}
	}

	return nil
}

func isSubmittable(el *Element) bool {
	switch el.Kind() {
	case toss.KindContent:
		return false
	case toss.KindInput:
		switch el.inputType() {
		case "hidden", "submit", "button", "reset", "image", "file":
			return false
		}
	}
	_, disabled := el.Attr("disabled")
	return !disabled
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
