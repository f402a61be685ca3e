// Package toss collects the values of labeled form fields into an object,
// validates every field on the way, and fills fields back from an object.
//
// Fields are elements that carry a field name attribute (data-fieldname by
// default). The elements themselves live behind a [Provider], so the engine
// works the same over an HTML document, a terminal form or a test fake. The
// htmlform package provides one over golang.org/x/net/html.
//
// For every bound element the engine decides:
//   - its raw value: the checked state or special value of checkboxes and
//     radios, the value of other controls ("" meaning absent), or the
//     content of anything else. A named [Interpreter] may replace this.
//   - its converted value: the raw value passed through a named [Converter].
//   - whether it is missing: a compulsory field with no value, or a
//     compulsory checkbox/radio group where nothing is checked.
//   - whether it is invalid: a named [ValidatorFunc] rejected it, a
//     converter changed its string form, or a [Rule] failed.
//
// [Form.Collect] folds these per-field outcomes into a [Result]: the
// collected [Object], the missing and invalid field names and the first
// field to focus.
//
// Elements never contain code. Attributes such as data-convert="int" name a
// callback registered in a [Registry]. The global registry ships with
// converters and validators for int, uint, float, bool, uuid and time, plus
// a string converter and a notblank validator:
//
//	<input data-fieldname="age" data-convert="int" data-compulsory="true">
//	<input data-fieldname="id" data-validate="uuid">
//
// Attribute names, messages and behavior flags come from [Options]. The
// process default can be replaced at startup with [SetDefaultOptions] or
// loaded from YAML with [LoadOptions]; forms and single calls override it
// with functional [Option]s.
//
// Failures inside callbacks never reach the caller. They are recovered,
// reported to the [Sink] (goutils/logger by default) and degrade to an
// absent value, or to an invalid field for validators and rules.
package toss
