package toss

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWatch(t *testing.T) {
	name := text("name", "", CompulsoryAttr, "true")
	plan := field(KindSelect, "plan", CompulsoryAttr, "true")
	form, provider, _, _ := newTestForm(t, name, plan)

	stop := form.Watch()
	assert.Len(t, provider.listeners, 3)

	provider.Notify(name, EventKeyup)
	assert.Equal(t, renderedMessage{text: DefaultCompulsoryMessage, visible: true}, provider.messages["name"])
	assert.Equal(t, renderedMessage{text: DefaultCompulsoryMessage, visible: true}, provider.messages["plan"])

	name.value = "Ann"
	provider.Notify(name, EventChange)
	assert.False(t, provider.messages["name"].visible)

	stop()
	assert.Empty(t, provider.listeners)

	name.value = ""
	provider.Notify(name, EventChange)
	assert.False(t, provider.messages["name"].visible)
}

func TestWatchWithoutKeyup(t *testing.T) {
	name := text("name", "", CompulsoryAttr, "true")
	form, provider, _, _ := newTestForm(t, name)

	stop := form.Watch(WithKeyupValidation(false))
	defer stop()

	provider.Notify(name, EventKeyup)
	assert.Empty(t, provider.messages)

	provider.Notify(name, EventChange)
	assert.True(t, provider.messages["name"].visible)
}

func TestFocusInvalidField(t *testing.T) {
	first := text("first", "x", ConvertAttr, IntCallbackName)
	form, provider, _, _ := newTestForm(t, text("ok", "1"), first)

	result := form.Collect()
	assert.Equal(t, []string{"first"}, result.InvalidFields)
	assert.Nil(t, provider.focused)

	result.FocusInvalidField()
	assert.Same(t, first, provider.focused)
}
