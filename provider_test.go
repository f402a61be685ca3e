package toss

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeElement is an in-memory element.
type fakeElement struct {
	kind    ElementKind
	attrs   map[string]string
	value   string
	checked bool
}

func (e *fakeElement) Kind() ElementKind { return e.kind }

func (e *fakeElement) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

func (e *fakeElement) Value() string {
	if e.kind.IsCheckable() {
		if v, ok := e.attrs[ValueAttr]; ok {
			return v
		}
		return "on"
	}
	return e.value
}

func (e *fakeElement) SetValue(value string) {
	if e.kind.IsCheckable() {
		e.attrs[ValueAttr] = value
		return
	}
	e.value = value
}

func (e *fakeElement) Checked() bool      { return e.checked }
func (e *fakeElement) SetChecked(on bool) { e.checked = on }

type renderedMessage struct {
	text    string
	visible bool
}

type fakeListener struct {
	el    Element
	event Event
	fn    func()
}

// fakeProvider keeps elements in insertion order and records focus,
// rendered messages and notifications.
type fakeProvider struct {
	elements  []*fakeElement
	focused   Element
	messages  map[string]renderedMessage
	notified  []Element
	listeners []*fakeListener
}

func newFakeProvider(elements ...*fakeElement) *fakeProvider {
	return &fakeProvider{elements: elements, messages: make(map[string]renderedMessage)}
}

func (p *fakeProvider) Fields(attr string) []Element {
	var found []Element
	for _, el := range p.elements {
		if _, ok := el.attrs[attr]; ok {
			found = append(found, el)
		}
	}
	return found
}

func (p *fakeProvider) Group(kind ElementKind, name string) []Element {
	var found []Element
	for _, el := range p.elements {
		if el.kind == kind && el.attrs[GroupNameAttr] == name {
			found = append(found, el)
		}
	}
	return found
}

func (p *fakeProvider) Focus(el Element) { p.focused = el }

func (p *fakeProvider) RenderMessage(attr, field, message string, visible bool) {
	p.messages[field] = renderedMessage{text: message, visible: visible}
}

func (p *fakeProvider) Subscribe(el Element, event Event, fn func()) func() {
	l := &fakeListener{el: el, event: event, fn: fn}
	p.listeners = append(p.listeners, l)
	return func() {
		for i, other := range p.listeners {
			if other == l {
				p.listeners = append(p.listeners[:i], p.listeners[i+1:]...)
				return
			}
		}
	}
}

func (p *fakeProvider) Notify(el Element, event Event) {
	p.notified = append(p.notified, el)
	for _, l := range append([]*fakeListener(nil), p.listeners...) {
		if l.el == el && l.event == event {
			l.fn()
		}
	}
}

// element builders

func field(kind ElementKind, name string, attrs ...string) *fakeElement {
	el := &fakeElement{kind: kind, attrs: map[string]string{FieldNameAttr: name}}
	for i := 0; i+1 < len(attrs); i += 2 {
		el.attrs[attrs[i]] = attrs[i+1]
	}
	return el
}

func text(name, value string, attrs ...string) *fakeElement {
	el := field(KindText, name, attrs...)
	el.value = value
	return el
}

func checkbox(name string, checked bool, attrs ...string) *fakeElement {
	el := field(KindCheckbox, name, attrs...)
	el.checked = checked
	return el
}

func radio(name, group, value string, checked bool, attrs ...string) *fakeElement {
	el := field(KindRadio, name, append([]string{GroupNameAttr, group, ValueAttr, value}, attrs...)...)
	el.checked = checked
	return el
}

// recordingSink collects diagnostics.
type recordingSink struct {
	mu   sync.Mutex
	errs []error
}

func (s *recordingSink) Log(err error, _ ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = append(s.errs, err)
}

func (s *recordingSink) Errors() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]error(nil), s.errs...)
}

// newTestForm builds a form with a private registry and a recording sink.
func newTestForm(t *testing.T, elements ...*fakeElement) (*Form, *fakeProvider, *Registry, *recordingSink) {
	t.Helper()

	provider := newFakeProvider(elements...)
	reg := NewRegistry(RegistryOpts{})
	sink := &recordingSink{}

	form, err := NewForm(provider, WithRegistry(reg), WithSink(sink))
	require.NoError(t, err)
	return form, provider, reg, sink
}
