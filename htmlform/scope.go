package htmlform

import (
	"golang.org/x/net/html"

	toss "github.com/SimonDaKappa/go-toss"
)

var _ toss.Provider = (*Scope)(nil)

// Scope is the part of a Document below one node. It implements
// toss.Provider, so a form built on it only sees elements inside it.
type Scope struct {
	doc  *Document
	node *html.Node
}

func (s *Scope) Document() *Document {
	return s.doc
}

// Elements returns every element below the scope node in document order.
func (s *Scope) Elements() []*Element {
	var found []*Element
	walk(s.node, func(n *html.Node) bool {
		if n != s.node && n.Type == html.ElementNode {
			found = append(found, s.doc.element(n))
		}
		return true
	})
	return found
}

// ElementByID returns the element in scope with the given id attribute.
func (s *Scope) ElementByID(id string) (*Element, bool) {
	for _, el := range s.Elements() {
		if v, ok := el.Attr("id"); ok && v == id {
			return el, true
		}
	}
	return nil, false
}

func (s *Scope) Fields(attr string) []toss.Element {
	var fields []toss.Element
	for _, el := range s.Elements() {
		if _, ok := el.Attr(attr); ok {
			fields = append(fields, el)
		}
	}
	return fields
}

func (s *Scope) Group(kind toss.ElementKind, name string) []toss.Element {
	var group []toss.Element
	for _, el := range s.doc.group(s.node, kind, name) {
		group = append(group, el)
	}
	return group
}

func (s *Scope) Focus(el toss.Element) {
	if e, err := s.doc.own(el); err == nil {
		s.doc.focused = e
	}
}

// RenderMessage sets the text of the message elements for field and toggles
// their display style.
func (s *Scope) RenderMessage(attr, field, message string, visible bool) {
	for _, el := range s.Elements() {
		if v, ok := el.Attr(attr); !ok || v != field {
			continue
		}
		setText(el.node, message)
		if visible {
			el.SetAttr("style", "display:block")
		} else {
			el.SetAttr("style", "display:none")
		}
	}
}

func (s *Scope) Subscribe(el toss.Element, event toss.Event, fn func()) func() {
	e, err := s.doc.own(el)
	if err != nil || fn == nil {
		return func() {}
	}
	return s.doc.subscribe(e, event, fn)
}

func (s *Scope) Notify(el toss.Element, event toss.Event) {
	if e, err := s.doc.own(el); err == nil {
		s.doc.Dispatch(e, event)
	}
}
