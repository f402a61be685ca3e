package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	toss "github.com/SimonDaKappa/go-toss"
)

const page = `<html><body>
<div id="profile">
	<input data-fieldname="name" data-compulsory="true">
	<span data-validated-fieldname="name"></span>
	<input data-fieldname="age" data-convert="int" value="30">
	<input type="checkbox" data-fieldname="active">
</div>
</body></html>`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunCollect(t *testing.T) {
	dir := t.TempDir()
	p := &params{
		formPath: writeFile(t, dir, "page.html", page),
		scopeID:  "profile",
	}

	var out bytes.Buffer
	require.NoError(t, runCollect(p, &out))

	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, false, got["isOkay"])
	assert.Equal(t, []any{"name"}, got["missingFields"])
	assert.Equal(t, "name", got["fieldToFocus"])
	assert.Equal(t, float64(30), got["obj"].(map[string]any)["age"])
}

func TestRunCollectWithDataAndConfig(t *testing.T) {
	dir := t.TempDir()
	p := &params{
		formPath:   writeFile(t, dir, "page.html", page),
		dataPath:   writeFile(t, dir, "data.json", `{"name": "Ann", "active": true}`),
		configPath: writeFile(t, dir, "toss.yaml", "compulsoryMessage: Required\n"),
	}

	var out bytes.Buffer
	require.NoError(t, runCollect(p, &out))

	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, true, got["isOkay"])
	assert.Nil(t, got["fieldToFocus"])
	obj := got["obj"].(map[string]any)
	assert.Equal(t, "Ann", obj["name"])
	assert.Equal(t, true, obj["active"])
}

func TestRunValidate(t *testing.T) {
	dir := t.TempDir()
	p := &params{
		formPath:   writeFile(t, dir, "page.html", page),
		configPath: writeFile(t, dir, "toss.yaml", "compulsoryMessage: Required\n"),
		outPath:    filepath.Join(dir, "out.html"),
	}

	err := runValidate(p, nil)

	var fe *toss.FormError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{"name"}, fe.MissingFields)

	rendered, err := os.ReadFile(p.outPath)
	require.NoError(t, err)
	assert.Contains(t, string(rendered), "Required")
	assert.Contains(t, string(rendered), "display:block")
}

func TestRunFill(t *testing.T) {
	dir := t.TempDir()
	p := &params{
		formPath: writeFile(t, dir, "page.html", page),
		dataPath: writeFile(t, dir, "data.json", `{"name": "Ann", "age": 41}`),
	}

	var out bytes.Buffer
	require.NoError(t, runFill(p, &out))
	assert.Contains(t, out.String(), `value="Ann"`)
	assert.Contains(t, out.String(), `value="41"`)

	assert.Error(t, runFill(&params{formPath: p.formPath}, &out))
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()
	form := writeFile(t, dir, "page.html", page)

	_, err := (&params{formPath: "-", dataPath: "-"}).open()
	assert.Error(t, err)

	_, err = (&params{formPath: form, scopeID: "nope"}).open()
	assert.Error(t, err)

	_, err = (&params{formPath: form, dataPath: writeFile(t, dir, "bad.json", `[1]`)}).open()
	assert.ErrorIs(t, err, toss.ErrJSONNotObject)

	_, err = (&params{formPath: filepath.Join(dir, "missing.html")}).open()
	assert.Error(t, err)
}
