package htmlform

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"

	toss "github.com/SimonDaKappa/go-toss"
)

var (
	ErrScopeNotFound  = errors.New("no element with the requested id")
	ErrForeignElement = errors.New("element does not belong to this document")
)

type listener struct {
	fn func()
}

// Document is a parsed HTML document acting as the element store for one or
// more toss forms. Elements are wrapped lazily and the wrappers are stable,
// so the same node always yields the same *Element.
//
// A Document is not safe for concurrent mutation; the listener table alone
// is guarded so cancel funcs may run from any goroutine.
type Document struct {
	root     *html.Node
	elements map[*html.Node]*Element
	focused  *Element

	mu        sync.Mutex
	listeners map[*Element]map[toss.Event][]*listener
}

// Parse reads an HTML document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	return &Document{
		root:      root,
		elements:  make(map[*html.Node]*Element),
		listeners: make(map[*Element]map[toss.Event][]*listener),
	}, nil
}

func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Root returns a scope spanning the whole document.
func (d *Document) Root() *Scope {
	return &Scope{doc: d, node: d.root}
}

// Scope returns a scope over the descendants of the element with the given
// id attribute.
func (d *Document) Scope(id string) (*Scope, error) {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if v, ok := getAttr(n, "id"); ok && v == id {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return nil, fmt.Errorf("%w: %q", ErrScopeNotFound, id)
	}
	return &Scope{doc: d, node: found}, nil
}

// Render writes the current state of the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

func (d *Document) String() string {
	var sb strings.Builder
	if err := d.Render(&sb); err != nil {
		return ""
	}
	return sb.String()
}

// Focused returns the element last focused through a scope, or nil.
func (d *Document) Focused() *Element {
	return d.focused
}

// Dispatch emits event on el, running its listeners in subscription order.
// It is what an input source calls after changing an element.
func (d *Document) Dispatch(el *Element, event toss.Event) {
	d.mu.Lock()
	ls := append([]*listener(nil), d.listeners[el][event]...)
	d.mu.Unlock()

	for _, l := range ls {
		l.fn()
	}
}

func (d *Document) element(n *html.Node) *Element {
	if el, ok := d.elements[n]; ok {
		return el
	}
	el := &Element{doc: d, node: n}
	d.elements[n] = el
	return el
}

func (d *Document) own(el toss.Element) (*Element, error) {
	e, ok := el.(*Element)
	if !ok || e.doc != d {
		return nil, fmt.Errorf("%w: %T", ErrForeignElement, el)
	}
	return e, nil
}

func (d *Document) subscribe(el *Element, event toss.Event, fn func()) func() {
	l := &listener{fn: fn}

	d.mu.Lock()
	byEvent, ok := d.listeners[el]
	if !ok {
		byEvent = make(map[toss.Event][]*listener)
		d.listeners[el] = byEvent
	}
	byEvent[event] = append(byEvent[event], l)
	d.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			ls := d.listeners[el][event]
			for i, other := range ls {
				if other == l {
					d.listeners[el][event] = append(ls[:i:i], ls[i+1:]...)
					break
				}
			}
		})
	}
}

// group returns the checkable elements of kind named name below root, or in
// the whole document when root is nil.
func (d *Document) group(root *html.Node, kind toss.ElementKind, name string) []*Element {
	if root == nil {
		root = d.root
	}

	var found []*Element
	walk(root, func(n *html.Node) bool {
		if n == root || n.Type != html.ElementNode {
			return true
		}
		if v, ok := getAttr(n, "name"); !ok || v != name {
			return true
		}
		if el := d.element(n); el.Kind() == kind {
			found = append(found, el)
		}
		return true
	})
	return found
}

// walk visits n and its descendants in document order until visit returns
// false.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if !visit(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, visit) {
			return false
		}
	}
	return true
}
