package toss

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedRawValue = errors.New("unsupported raw value type")
)

// isPresent reports whether a raw value counts as data for conversion.
// nil, false and the empty string do not.
func isPresent(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	default:
		return true
	}
}

// convert applies the named converter to raw. It returns raw unchanged when
// raw is not present or name is empty. A missing or failing converter yields
// nil and a diagnostic.
func (form *Form) convert(opts Options, el Element, field string, raw any, name string) any {
	if name == "" || !isPresent(raw) {
		return raw
	}

	fn, ok := opts.Registry.Converter(name)
	if !ok {
		opts.Sink.Log(&CallbackError{
			Kind: ConverterCallback, Name: name, Field: field,
			Err: ErrUnknownCallback,
		})
		return nil
	}

	var converted any
	err := guard(func() error {
		var err error
		converted, err = fn(raw)
		return err
	})
	if err != nil {
		opts.Sink.Log(&CallbackError{
			Kind: ConverterCallback, Name: name, Field: field, Err: err,
		}, el)
		return nil
	}

	return converted
}

// stringForm renders a value the way it is compared and written back into
// elements: nil is "null", numbers use their shortest exact form.
func stringForm(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.FormatInt(int64(t), 10)
	case int8:
		return strconv.FormatInt(int64(t), 10)
	case int16:
		return strconv.FormatInt(int64(t), 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint8:
		return strconv.FormatUint(uint64(t), 10)
	case uint16:
		return strconv.FormatUint(uint64(t), 10)
	case uint32:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return t.Format(time.RFC3339)
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			if e != nil {
				parts[i] = stringForm(e)
			}
		}
		return strings.Join(parts, ",")
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}

// rawText extracts the text a builtin converter works on.
func rawText(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return stringForm(v), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedRawValue, raw)
	}
}

///////////////////////////////////////////////////////////////////////////////
// Builtin converters
///////////////////////////////////////////////////////////////////////////////

var _builtinConverters = map[string]Converter{
	StringCallbackName: convertString,
	IntCallbackName:    convertInt,
	UintCallbackName:   convertUint,
	FloatCallbackName:  convertFloat,
	BoolCallbackName:   convertBool,
	UUIDCallbackName:   convertUUID,
	TimeCallbackName:   convertTime,
}

func convertString(raw any) (any, error) {
	return stringForm(raw), nil
}

func convertInt(raw any) (any, error) {
	text, err := rawText(raw)
	if err != nil {
		return nil, err
	}
	intValue, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("error converting value to int: %w", err)
	}
	return intValue, nil
}

func convertUint(raw any) (any, error) {
	text, err := rawText(raw)
	if err != nil {
		return nil, err
	}
	uintValue, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("error converting value to uint: %w", err)
	}
	return uintValue, nil
}

func convertFloat(raw any) (any, error) {
	text, err := rawText(raw)
	if err != nil {
		return nil, err
	}
	floatValue, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("error converting value to float: %w", err)
	}
	return floatValue, nil
}

// convertBool accepts booleans and the common spellings:
//   - "true", "1", "yes", "on" (case insensitive)
//   - "false", "0", "no", "off" (case insensitive)
func convertBool(raw any) (any, error) {
	if b, ok := raw.(bool); ok {
		return b, nil
	}
	text, err := rawText(raw)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(text) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	}
	boolValue, err := strconv.ParseBool(text)
	if err != nil {
		return nil, fmt.Errorf("error converting value to bool: %w", err)
	}
	return boolValue, nil
}

func convertUUID(raw any) (any, error) {
	if id, ok := raw.(uuid.UUID); ok {
		return id, nil
	}
	text, err := rawText(raw)
	if err != nil {
		return nil, err
	}
	uuidValue, err := uuid.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("error converting value to UUID: %w", err)
	}
	return uuidValue, nil
}

var _timeFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"15:04:05",
	"15:04",
}

func convertTime(raw any) (any, error) {
	if t, ok := raw.(time.Time); ok {
		return t, nil
	}
	text, err := rawText(raw)
	if err != nil {
		return nil, err
	}
	for _, format := range _timeFormats {
		timeValue, perr := time.Parse(format, text)
		if perr == nil {
			return timeValue, nil
		}
		err = perr
	}
	return nil, fmt.Errorf("error converting value to time.Time: %w", err)
}

///////////////////////////////////////////////////////////////////////////////
// Builtin validators
///////////////////////////////////////////////////////////////////////////////

var _builtinValidators = map[string]ValidatorFunc{
	IntCallbackName:      validateWith(convertInt, reflect.Int64),
	UintCallbackName:     validateWith(convertUint, reflect.Uint64),
	FloatCallbackName:    validateWith(convertFloat, reflect.Float64),
	BoolCallbackName:     validateWith(convertBool, reflect.Bool),
	UUIDCallbackName:     validateTyped(convertUUID, UUIDType),
	TimeCallbackName:     validateTyped(convertTime, TimeType),
	NotBlankCallbackName: validateNotBlank,
}

// validateWith accepts values of the given kind, or anything the converter
// can parse. Absent values are left to the compulsory check.
func validateWith(conv Converter, kind reflect.Kind) ValidatorFunc {
	return func(converted any) (bool, error) {
		if converted == nil {
			return true, nil
		}
		if reflect.TypeOf(converted).Kind() == kind {
			return true, nil
		}
		_, err := conv(converted)
		return err == nil, nil
	}
}

func validateTyped(conv Converter, typ reflect.Type) ValidatorFunc {
	return func(converted any) (bool, error) {
		if converted == nil {
			return true, nil
		}
		if reflect.TypeOf(converted) == typ {
			return true, nil
		}
		_, err := conv(converted)
		return err == nil, nil
	}
}

func validateNotBlank(converted any) (bool, error) {
	if converted == nil {
		return false, nil
	}
	return strings.TrimSpace(stringForm(converted)) != "", nil
}
