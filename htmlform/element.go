package htmlform

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	toss "github.com/SimonDaKappa/go-toss"
)

var _ toss.Element = (*Element)(nil)

// Element is a node of a parsed Document. Values live in the DOM itself:
// the value attribute of inputs, the selected attribute of options, the
// checked attribute of checkboxes and radios, and the children of anything
// else.
type Element struct {
	doc  *Document
	node *html.Node
	id   string

	// unselected is set once a select was given a value none of its options
	// carry. It reads as "" until an option is selected again.
	unselected bool
}

// ID returns the element's id attribute, or a generated identifier stable
// for the lifetime of the Document.
func (e *Element) ID() string {
	if id, ok := e.Attr("id"); ok && id != "" {
		return id
	}
	if e.id == "" {
		e.id = uuid.NewString()
	}
	return e.id
}

// Node returns the underlying DOM node.
func (e *Element) Node() *html.Node {
	return e.node
}

func (e *Element) inputType() string {
	t, _ := e.Attr("type")
	return strings.ToLower(strings.TrimSpace(t))
}

func (e *Element) Kind() toss.ElementKind {
	switch e.node.DataAtom {
	case atom.Input:
		switch e.inputType() {
		case "checkbox":
			return toss.KindCheckbox
		case "radio":
			return toss.KindRadio
		case "", "text", "password":
			return toss.KindText
		default:
			return toss.KindInput
		}
	case atom.Textarea:
		return toss.KindText
	case atom.Select:
		return toss.KindSelect
	default:
		return toss.KindContent
	}
}

// Attr looks an attribute up. HTML attribute names are case-insensitive.
func (e *Element) Attr(name string) (string, bool) {
	return getAttr(e.node, name)
}

func (e *Element) SetAttr(name, value string) {
	setAttr(e.node, name, value)
}

func (e *Element) RemoveAttr(name string) {
	removeAttr(e.node, name)
}

func (e *Element) Value() string {
	switch e.node.DataAtom {
	case atom.Input:
		v, ok := e.Attr("value")
		if !ok && e.Kind().IsCheckable() {
			return "on"
		}
		return v
	case atom.Textarea:
		return textContent(e.node)
	case atom.Select:
		if e.unselected {
			return ""
		}
		if opt := selectedOption(e.node); opt != nil {
			return optionValue(opt)
		}
		return ""
	default:
		return innerHTML(e.node)
	}
}

func (e *Element) SetValue(value string) {
	switch e.node.DataAtom {
	case atom.Input:
		e.SetAttr("value", value)
	case atom.Textarea:
		setText(e.node, value)
	case atom.Select:
		matched := false
		for _, opt := range options(e.node) {
			if !matched && optionValue(opt) == value {
				setAttr(opt, "selected", "")
				matched = true
			} else {
				removeAttr(opt, "selected")
			}
		}
		e.unselected = !matched
	default:
		setInnerHTML(e.node, value)
	}
}

func (e *Element) Checked() bool {
	_, ok := e.Attr("checked")
	return ok
}

// SetChecked sets the checked state. Checking a radio unchecks the other
// radios of its group within the same form.
func (e *Element) SetChecked(checked bool) {
	if !checked {
		e.RemoveAttr("checked")
		return
	}

	if e.Kind() == toss.KindRadio {
		if name, ok := e.Attr("name"); ok && name != "" {
			for _, other := range e.doc.group(formOf(e.node), toss.KindRadio, name) {
				if other != e {
					other.RemoveAttr("checked")
				}
			}
		}
	}
	e.SetAttr("checked", "")
}

///////////////////////////////////////////////////////////////////////////////
// DOM helpers
///////////////////////////////////////////////////////////////////////////////

func getAttr(n *html.Node, name string) (string, bool) {
	name = strings.ToLower(name)
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, name, value string) {
	name = strings.ToLower(name)
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

func removeAttr(n *html.Node, name string) {
	name = strings.ToLower(name)
	kept := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child)
	}
	return sb.String()
}

func removeChildren(n *html.Node) {
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
}

func setText(n *html.Node, text string) {
	removeChildren(n)
	if text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
}

func innerHTML(n *html.Node) string {
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if err := html.Render(&sb, child); err != nil {
			return textContent(n)
		}
	}
	return sb.String()
}

// setInnerHTML replaces the children of n with markup parsed in its
// context, falling back to plain text when the markup does not parse.
func setInnerHTML(n *html.Node, markup string) {
	nodes, err := html.ParseFragment(strings.NewReader(markup), n)
	if err != nil {
		setText(n, markup)
		return
	}
	removeChildren(n)
	for _, child := range nodes {
		n.AppendChild(child)
	}
}

func options(sel *html.Node) []*html.Node {
	var opts []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == atom.Option {
				opts = append(opts, c)
				continue
			}
			walk(c)
		}
	}
	walk(sel)
	return opts
}

// selectedOption is the first option marked selected, else the first option,
// which is what a freshly parsed single select shows.
func selectedOption(sel *html.Node) *html.Node {
	opts := options(sel)
	for _, opt := range opts {
		if _, ok := getAttr(opt, "selected"); ok {
			return opt
		}
	}
	if len(opts) > 0 {
		return opts[0]
	}
	return nil
}

func optionValue(opt *html.Node) string {
	if v, ok := getAttr(opt, "value"); ok {
		return v
	}
	return strings.Join(strings.Fields(textContent(opt)), " ")
}

// formOf returns the nearest enclosing form element, or nil.
func formOf(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.DataAtom == atom.Form {
			return p
		}
	}
	return nil
}
