// Package htmlform runs toss forms over HTML documents parsed with
// golang.org/x/net/html.
//
// A [Document] holds the parsed tree and its state: values, checked and
// selected attributes, focus and change listeners. A [Scope] is a subtree of
// it and is the toss.Provider a form is built on:
//
//	doc, _ := htmlform.ParseString(page)
//	scope, _ := doc.Scope("signup")
//	form, _ := toss.NewForm(scope)
//	result := form.Collect()
//
// [ApplyRequest] replays a submitted request (form-encoded, query string or
// JSON) onto a scope before collecting, and [Document.Render] writes the
// filled or validated document back out.
package htmlform
