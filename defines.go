package toss

import (
	"reflect"
	"time"

	"github.com/google/uuid"
)

// constants for the default user facing messages
const (
	DefaultCompulsoryMessage    = "Field is required"
	DefaultInvalidFormatMessage = "Invalid field"
)

// constants for the default attribute bindings
const (
	FieldNameAttr            = "data-fieldname"
	ConvertAttr              = "data-convert"
	CompulsoryAttr           = "data-compulsory"
	ValidatorOfAttr          = "data-validated-fieldname"
	CreateArrayAttr          = "data-createarray"
	InterpretValueAttr       = "data-interpret"
	CustomFillValueAttr      = "data-customfill"
	ValidateValueAttr        = "data-validate"
	InvalidFormatMessageAttr = "data-invalidformatmessage"
	DontSaveAttr             = "data-dontsave"
	MvcMarkerAttr            = "data-val"
	ValueAttr                = "value"
	GroupNameAttr            = "name"
)

// Builtin callback names registered with the global registry.
const (
	StringCallbackName   = "string"
	IntCallbackName      = "int"
	UintCallbackName     = "uint"
	FloatCallbackName    = "float"
	BoolCallbackName     = "bool"
	UUIDCallbackName     = "uuid"
	TimeCallbackName     = "time"
	NotBlankCallbackName = "notblank"
)

// Struct tag used by Bind and ObjectFrom.
const (
	TossTag            = "toss"
	OmitEmptyTagOption = "omitempty"
)

const attrTrue = "true"

// reflect.TypeOf constants for type checks
var (
	UUIDType = reflect.TypeOf(uuid.UUID{})
	TimeType = reflect.TypeOf(time.Time{})
)
