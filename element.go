package toss

// ElementKind classifies an element by how its value is represented.
type ElementKind int

const (
	// KindContent is any non-input element. Its value is its content.
	KindContent ElementKind = iota
	// KindText is a text-like control (text and password inputs, textareas).
	// Only these receive keyup revalidation.
	KindText
	// KindInput is any other value-bearing input (hidden, number, email, ...).
	KindInput
	// KindSelect is a select box.
	KindSelect
	// KindCheckbox is a checkbox input.
	KindCheckbox
	// KindRadio is a radio button input.
	KindRadio
)

func (k ElementKind) String() string {
	switch k {
	case KindContent:
		return "content"
	case KindText:
		return "text"
	case KindInput:
		return "input"
	case KindSelect:
		return "select"
	case KindCheckbox:
		return "checkbox"
	case KindRadio:
		return "radio"
	default:
		return "unknown"
	}
}

// IsCheckable reports whether the kind carries a checked state.
func (k ElementKind) IsCheckable() bool {
	return k == KindCheckbox || k == KindRadio
}

// IsValueBearing reports whether the kind is a form control with a value.
func (k ElementKind) IsValueBearing() bool {
	return k == KindText || k == KindInput || k == KindSelect
}

// Event is a notification an element can emit.
type Event int

const (
	EventChange Event = iota
	EventKeyup
)

func (e Event) String() string {
	switch e {
	case EventChange:
		return "change"
	case EventKeyup:
		return "keyup"
	default:
		return "unknown"
	}
}

// Element is a single bound UI element, owned by a Provider.
//
// Value returns the current value for value-bearing kinds and the content for
// KindContent. For checkboxes and radios Value returns the value attribute
// (the browser default "on" if none is declared); use Checked for the state.
type Element interface {
	Kind() ElementKind
	Attr(name string) (string, bool)
	Value() string
	SetValue(value string)
	Checked() bool
	SetChecked(checked bool)
}

// Provider is the element capability the engine drives. It represents one
// scope, for example a form or a container within a document.
type Provider interface {
	// Fields returns every element in scope carrying attr, in document order.
	Fields(attr string) []Element
	// Group returns the elements in scope of the given checkable kind whose
	// group name attribute equals name.
	Group(kind ElementKind, name string) []Element
	// Focus moves input focus to el.
	Focus(el Element)
	// RenderMessage writes message into the elements in scope whose attr
	// equals field, showing them when visible and hiding them otherwise.
	RenderMessage(attr, field, message string, visible bool)
	// Subscribe registers fn for event on el. The returned func removes it.
	Subscribe(el Element, event Event, fn func()) (cancel func())
	// Notify emits event on el.
	Notify(el Element, event Event)
}

// attr returns the attribute value, or "" when it is not declared.
func attr(el Element, name string) string {
	if name == "" {
		return ""
	}
	v, _ := el.Attr(name)
	return v
}
