package toss

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

var (
	ErrUnsupportedFieldType = errors.New("unsupported destination field type")
)

// assignValue stores a collected value into a struct field.
//
// Lists fill slice fields element by element; a non-slice field receives the
// first item. Values assignable to the field are set directly; anything else
// goes through its string form and setFieldText.
func assignValue(field reflect.Value, value any) error {
	if list, ok := asList(value); ok {
		if field.Kind() == reflect.Slice && field.Type().Elem().Kind() != reflect.Uint8 {
			slice := reflect.MakeSlice(field.Type(), len(list), len(list))
			for i, item := range list {
				if item == nil {
					continue
				}
				if err := assignValue(slice.Index(i), item); err != nil {
					return fmt.Errorf("item %d: %w", i, err)
				}
			}
			field.Set(slice)
			return nil
		}
		if len(list) == 0 {
			return nil
		}
		value = list[0]
	}

	if value == nil {
		field.SetZero()
		return nil
	}

	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(field.Type()) {
		field.Set(rv)
		return nil
	}

	if field.Kind() == reflect.Ptr {
		elem := reflect.New(field.Type().Elem())
		if err := assignValue(elem.Elem(), value); err != nil {
			return err
		}
		field.Set(elem)
		return nil
	}

	return setFieldText(field, stringForm(value))
}

// setFieldText parses text into field. uuid, time and bool fields accept
// exactly what the builtin converters accept; other TextUnmarshalers parse
// themselves.
func setFieldText(field reflect.Value, text string) error {
	switch field.Type() {
	case UUIDType:
		return setConverted(field, convertUUID, text)
	case TimeType:
		return setConverted(field, convertTime, text)
	}

	if field.CanAddr() {
		if unmarshaler, ok := field.Addr().Interface().(encoding.TextUnmarshaler); ok {
			return unmarshaler.UnmarshalText([]byte(text))
		}
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(text)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		intValue, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return fmt.Errorf("error converting value to int: %w", err)
		}
		if field.OverflowInt(intValue) {
			return fmt.Errorf("value %d overflows %s", intValue, field.Type())
		}
		field.SetInt(intValue)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		uintValue, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return fmt.Errorf("error converting value to uint: %w", err)
		}
		if field.OverflowUint(uintValue) {
			return fmt.Errorf("value %d overflows %s", uintValue, field.Type())
		}
		field.SetUint(uintValue)
	case reflect.Float32, reflect.Float64:
		floatValue, err := strconv.ParseFloat(text, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("error converting value to float: %w", err)
		}
		if field.OverflowFloat(floatValue) {
			return fmt.Errorf("value %f overflows %s", floatValue, field.Type())
		}
		field.SetFloat(floatValue)
	case reflect.Bool:
		return setConverted(field, convertBool, text)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.Uint8 {
			return fmt.Errorf("%w: %s", ErrUnsupportedFieldType, field.Type())
		}
		field.SetBytes([]byte(text))
	case reflect.Interface:
		if field.NumMethod() != 0 {
			return fmt.Errorf("%w: %s", ErrUnsupportedFieldType, field.Type())
		}
		field.Set(reflect.ValueOf(text))
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFieldType, field.Type())
	}

	return nil
}

func setConverted(field reflect.Value, conv Converter, text string) error {
	value, err := conv(text)
	if err != nil {
		return err
	}
	field.Set(reflect.ValueOf(value).Convert(field.Type()))
	return nil
}

// zeroStructFields recursively sets all fields of a struct to
// their default values.
func zeroStructFields(value reflect.Value) {
	if value.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		if !field.CanSet() {
			continue
		}
		if field.Kind() == reflect.Struct && !isSpecialStructType(field.Type()) {
			zeroStructFields(field)
		} else {
			field.SetZero()
		}
	}
}

// isSpecialStructType reports struct types treated as scalar values.
func isSpecialStructType(t reflect.Type) bool {
	return t == TimeType || t == UUIDType
}
