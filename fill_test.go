package toss

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillRoundTrip(t *testing.T) {
	form, _, _, _ := newTestForm(t, text("name", ""), checkbox("active", false))

	form.Fill(Object{"name": "Ann", "active": true})
	result := form.Collect()

	assert.Equal(t, "Ann", result.Obj["name"])
	assert.Equal(t, true, result.Obj["active"])
}

func TestFillCheckables(t *testing.T) {
	red := checkbox("colors", false, ValueAttr, "red")
	green := checkbox("colors", true, ValueAttr, "green")
	blue := checkbox("colors", false, ValueAttr, "blue")
	small := radio("size", "size", "s", true)
	large := radio("size", "size", "l", false)
	count := radio("count", "count", "2", false)
	form, _, _, _ := newTestForm(t, red, green, blue, small, large, count)

	form.Fill(Object{
		"colors": []string{"red", "blue"},
		"size":   "l",
		"count":  2,
	})

	assert.True(t, red.checked)
	assert.False(t, green.checked)
	assert.True(t, blue.checked)
	assert.False(t, small.checked)
	assert.True(t, large.checked)
	assert.True(t, count.checked)

	form.Fill(Object{"colors": nil})
	assert.False(t, red.checked)
	assert.False(t, blue.checked)
}

func TestFillValueBearing(t *testing.T) {
	name := text("name", "")
	tags := text("tags", "")
	age := text("age", "")
	note := field(KindContent, "note")
	form, _, _, _ := newTestForm(t, name, tags, age, note)

	form.Fill(Object{
		"name": "Ann",
		"tags": []any{"first", "second"},
		"age":  41.0,
		"note": "<b>x</b>",
	})

	assert.Equal(t, "Ann", name.value)
	assert.Equal(t, "first", tags.value)
	assert.Equal(t, "41", age.value)
	assert.Equal(t, "<b>x</b>", note.value)
}

func TestFillNotifiesAndIgnoresUnknownKeys(t *testing.T) {
	name := text("name", "")
	form, provider, _, _ := newTestForm(t, name)

	form.Fill(Object{"name": "Ann", "unbound": "x"})

	assert.Equal(t, []Element{name}, provider.notified)
}

func TestFillCustomAndInterpreted(t *testing.T) {
	custom := text("custom", "", CustomFillValueAttr, "upper")
	failing := text("failing", "", CustomFillValueAttr, "fails")
	unknown := text("unknown", "", CustomFillValueAttr, "nope")
	interpreted := text("interpreted", "", InterpretValueAttr, "any")
	form, provider, reg, sink := newTestForm(t, custom, failing, unknown, interpreted)

	require.NoError(t, reg.RegisterFill("upper", func(el Element, value any) error {
		el.SetValue("UP:" + value.(string))
		return nil
	}))
	require.NoError(t, reg.RegisterFill("fails", func(Element, any) error {
		return errors.New("bad")
	}))

	form.Fill(Object{"custom": "a", "failing": "b", "unknown": "c", "interpreted": "d"})

	assert.Equal(t, "UP:a", custom.value)
	assert.Equal(t, "", failing.value)
	assert.Equal(t, "c", unknown.value)
	assert.Equal(t, "", interpreted.value)
	assert.Equal(t, []Element{custom, failing, unknown}, provider.notified)

	errs := sink.Errors()
	require.Len(t, errs, 3)
	assert.ErrorIs(t, errs[1], ErrFillInterpretedField)
	assert.ErrorIs(t, errs[2], ErrUnknownCallback)
}

func TestFillJSON(t *testing.T) {
	name := text("name", "")
	active := checkbox("active", false)
	tags := []*fakeElement{
		checkbox("tags", false, ValueAttr, "a"),
		checkbox("tags", false, ValueAttr, "b"),
	}
	form, provider, _, _ := newTestForm(t, name, active, tags[0], tags[1])

	require.NoError(t, form.FillJSON([]byte(`{"name": "Ann", "active": true, "tags": ["b"]}`)))

	assert.Equal(t, "Ann", name.value)
	assert.True(t, active.checked)
	assert.False(t, tags[0].checked)
	assert.True(t, tags[1].checked)
	assert.Equal(t, []Element{name, active, tags[0], tags[1]}, provider.notified)

	assert.ErrorIs(t, form.FillJSON([]byte(`{"name":`)), ErrInvalidJSON)
	assert.ErrorIs(t, form.FillJSON([]byte(`["a"]`)), ErrJSONNotObject)
}

func TestObjectFromJSON(t *testing.T) {
	obj, err := ObjectFromJSON([]byte(`{"a": 1, "b": "x", "c": [true, null], "d": null}`))
	require.NoError(t, err)

	assert.Equal(t, Object{
		"a": 1.0,
		"b": "x",
		"c": []any{true, nil},
		"d": nil,
	}, obj)

	_, err = ObjectFromJSON([]byte(`1`))
	assert.ErrorIs(t, err, ErrJSONNotObject)
}
