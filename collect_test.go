package toss

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectSingleRequiredEmpty(t *testing.T) {
	field1 := text("field1", "", CompulsoryAttr, "true")
	form, _, _, _ := newTestForm(t, field1)

	result := form.Collect()

	assert.Equal(t, []string{"field1"}, result.MissingFields)
	assert.Empty(t, result.InvalidFields)
	assert.False(t, result.IsOkay())
	assert.True(t, result.OnlyOneError)
	assert.Same(t, field1, result.FieldToFocus)
	assert.Equal(t, "field1", result.FocusField)
	assert.Contains(t, result.Obj, "field1")
	assert.Nil(t, result.Obj["field1"])
}

func TestCollectTwoRequiredEmpty(t *testing.T) {
	first := text("first", "", CompulsoryAttr, "true")
	second := text("second", "", CompulsoryAttr, "true")
	form, provider, _, _ := newTestForm(t, first, second)

	result := form.Collect()

	assert.Equal(t, []string{"first", "second"}, result.MissingFields)
	assert.False(t, result.OnlyOneError)
	assert.Same(t, first, result.FieldToFocus)
	assert.Nil(t, provider.focused)

	form.Collect(WithAutoFocus(true))
	assert.Same(t, first, provider.focused)
}

func TestCollectCheckboxGroupMissingOnce(t *testing.T) {
	form, _, _, _ := newTestForm(t,
		checkbox("color", false, GroupNameAttr, "color", ValueAttr, "red", CompulsoryAttr, "true"),
		checkbox("color", false, GroupNameAttr, "color", ValueAttr, "blue", CompulsoryAttr, "true"),
	)

	result := form.Collect()

	assert.Equal(t, []string{"color"}, result.MissingFields)
	assert.True(t, result.OnlyOneError)
}

func TestCollectCheckboxGroupSatisfiedByAnyMember(t *testing.T) {
	form, _, _, _ := newTestForm(t,
		checkbox("color", false, GroupNameAttr, "color", ValueAttr, "red", CompulsoryAttr, "true"),
		checkbox("color", true, GroupNameAttr, "color", ValueAttr, "blue", CompulsoryAttr, "true"),
	)

	result := form.Collect()

	assert.True(t, result.IsOkay())
	assert.Equal(t, "blue", result.Obj["color"])
}

func TestCollectArrayField(t *testing.T) {
	form, _, _, _ := newTestForm(t,
		text("tags", "", CreateArrayAttr, "true"),
		text("tags", "x", CreateArrayAttr, "true"),
		text("tags", "y", CreateArrayAttr, "true"),
	)

	result := form.Collect()

	assert.Equal(t, []any{"x", "y"}, result.Obj["tags"])
}

func TestCollectArrayFieldAlwaysPresent(t *testing.T) {
	form, _, _, _ := newTestForm(t, text("tags", "", CreateArrayAttr, "true"))

	result := form.Collect()

	assert.Equal(t, []any{}, result.Obj["tags"])
}

func TestCollectSkipsDontSave(t *testing.T) {
	form, _, _, _ := newTestForm(t,
		text("confirm", "", CompulsoryAttr, "true", DontSaveAttr, "true"),
		text("name", "Ann"),
	)

	result := form.Collect()

	assert.True(t, result.IsOkay())
	assert.NotContains(t, result.Obj, "confirm")
	assert.Equal(t, "Ann", result.Obj["name"])
}

func TestCollectNoElements(t *testing.T) {
	form, _, _, _ := newTestForm(t)

	result := form.Collect()

	assert.True(t, result.IsOkay())
	assert.Empty(t, result.Obj)
	assert.Nil(t, result.FieldToFocus)
	assert.NoError(t, result.Err())
}

func TestCollectIsIdempotent(t *testing.T) {
	form, _, _, _ := newTestForm(t,
		text("name", "", CompulsoryAttr, "true"),
		text("age", "x", ConvertAttr, IntCallbackName),
		checkbox("active", true),
	)

	first := form.Collect()
	second := form.Collect()

	assert.Equal(t, first, second)
}

func TestObjectMerge(t *testing.T) {
	tests := []struct {
		name   string
		values []any
		want   any
	}{
		{"single", []any{"a"}, "a"},
		{"later value overwrites", []any{"a", "b"}, "b"},
		{"nil does not clear", []any{"a", nil}, "a"},
		{"value after nil", []any{nil, "b"}, "b"},
		{"false overwrites", []any{true, false}, false},
		{"all nil", []any{nil, nil}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := Object{}
			for _, v := range tt.values {
				obj.merge("k", v, false)
			}
			assert.Contains(t, obj, "k")
			assert.Equal(t, tt.want, obj["k"])
		})
	}
}

func TestResultErr(t *testing.T) {
	form, _, _, _ := newTestForm(t,
		text("name", "", CompulsoryAttr, "true"),
		text("age", "x", ConvertAttr, IntCallbackName),
	)

	err := form.Collect().Err()

	var fe *FormError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, []string{"name"}, fe.MissingFields)
	assert.Equal(t, []string{"age"}, fe.InvalidFields)
	assert.Equal(t, "form is not valid: missing fields: name; invalid fields: age", fe.Error())
}

func TestResultMarshalJSON(t *testing.T) {
	form, _, _, _ := newTestForm(t,
		text("name", "", CompulsoryAttr, "true"),
		text("age", "30", ConvertAttr, IntCallbackName),
	)

	data, err := json.Marshal(form.Collect())
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"obj": {"name": null, "age": 30},
		"missingFields": ["name"],
		"invalidFields": [],
		"isOkay": false,
		"onlyOneError": true,
		"fieldToFocus": "name"
	}`, string(data))
}

func TestPeekMatchesCollect(t *testing.T) {
	form, _, _, _ := newTestForm(t,
		text("name", "Ann"),
		text("name", ""),
		text("tags", "a", CreateArrayAttr, "true"),
		text("tags", "b", CreateArrayAttr, "true"),
	)

	assert.Equal(t, "Ann", form.Peek("name"))
	assert.Equal(t, []any{"a", "b"}, form.Peek("tags"))
	assert.Nil(t, form.Peek("missing"))
}
