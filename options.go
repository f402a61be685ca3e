package toss

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Attrs names the attributes the engine reads from each element.
type Attrs struct {
	FieldName            string `yaml:"fieldName"`
	Convert              string `yaml:"convert"`
	Compulsory           string `yaml:"compulsory"`
	ValidatorOf          string `yaml:"validatorOf"`
	CreateArray          string `yaml:"createArray"`
	Interpret            string `yaml:"interpret"`
	CustomFill           string `yaml:"customFill"`
	Validate             string `yaml:"validate"`
	InvalidFormatMessage string `yaml:"invalidFormatMessage"`
	DontSave             string `yaml:"dontSave"`
	MvcMarker            string `yaml:"mvcMarker"`
	Value                string `yaml:"value"`
	GroupName            string `yaml:"groupName"`
}

// Options configures a Form. The zero value is not usable, start from
// DefaultOptions.
type Options struct {
	CompulsoryMessage     string `yaml:"compulsoryMessage"`
	InvalidFormatMessage  string `yaml:"invalidFormatMessage"`
	AutoFocusErroredField bool   `yaml:"autoFocusErroredField"`
	AutoValidateOnKeyup   bool   `yaml:"autoValidationOnKeyup"`
	// AspNetMvcCompatible reads checkboxes with value="true" that also carry
	// the MVC marker attribute as plain checked-state booleans, the way
	// ASP.NET MVC's CheckBoxFor helper renders them.
	AspNetMvcCompatible bool  `yaml:"aspNetMvcCompatible"`
	Attrs               Attrs `yaml:"attrs"`

	Sink     Sink      `yaml:"-"`
	Registry *Registry `yaml:"-"`
}

// Option overrides a single setting for a form or a single call.
type Option func(*Options)

func WithCompulsoryMessage(msg string) Option {
	return func(o *Options) { o.CompulsoryMessage = msg }
}

func WithInvalidFormatMessage(msg string) Option {
	return func(o *Options) { o.InvalidFormatMessage = msg }
}

func WithAutoFocus(enabled bool) Option {
	return func(o *Options) { o.AutoFocusErroredField = enabled }
}

func WithKeyupValidation(enabled bool) Option {
	return func(o *Options) { o.AutoValidateOnKeyup = enabled }
}

func WithAspNetMvcCompatible(enabled bool) Option {
	return func(o *Options) { o.AspNetMvcCompatible = enabled }
}

func WithAttrs(attrs Attrs) Option {
	return func(o *Options) { o.Attrs = attrs }
}

func WithSink(sink Sink) Option {
	return func(o *Options) { o.Sink = sink }
}

func WithRegistry(reg *Registry) Option {
	return func(o *Options) { o.Registry = reg }
}

// WithOptions replaces every setting with opts.
func WithOptions(opts Options) Option {
	return func(o *Options) { *o = opts }
}

func (o Options) apply(opts []Option) Options {
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.Sink == nil {
		o.Sink = NopSink{}
	}
	if o.Registry == nil {
		o.Registry = _gRegistry
	}
	return o
}

///////////////////////////////////////////////////////////////////////////////
// Process-wide defaults
///////////////////////////////////////////////////////////////////////////////

var (
	_defaultOptions   Options
	_defaultOptionsMu sync.RWMutex
)

func builtinOptions() Options {
	return Options{
		CompulsoryMessage:     DefaultCompulsoryMessage,
		InvalidFormatMessage:  DefaultInvalidFormatMessage,
		AutoFocusErroredField: false,
		AutoValidateOnKeyup:   true,
		AspNetMvcCompatible:   true,
		Attrs: Attrs{
			FieldName:            FieldNameAttr,
			Convert:              ConvertAttr,
			Compulsory:           CompulsoryAttr,
			ValidatorOf:          ValidatorOfAttr,
			CreateArray:          CreateArrayAttr,
			Interpret:            InterpretValueAttr,
			CustomFill:           CustomFillValueAttr,
			Validate:             ValidateValueAttr,
			InvalidFormatMessage: InvalidFormatMessageAttr,
			DontSave:             DontSaveAttr,
			MvcMarker:            MvcMarkerAttr,
			Value:                ValueAttr,
			GroupName:            GroupNameAttr,
		},
		Sink: LoggerSink{},
	}
}

// DefaultOptions returns a copy of the process-wide default options.
func DefaultOptions() Options {
	_defaultOptionsMu.RLock()
	defer _defaultOptionsMu.RUnlock()
	return _defaultOptions
}

// SetDefaultOptions replaces the process-wide defaults. Call it at startup,
// never while a pass is in flight.
func SetDefaultOptions(opts Options) {
	_defaultOptionsMu.Lock()
	defer _defaultOptionsMu.Unlock()
	_defaultOptions = opts
}

// ResetDefaultOptions restores the builtin defaults.
func ResetDefaultOptions() {
	SetDefaultOptions(builtinOptions())
}

///////////////////////////////////////////////////////////////////////////////
// YAML
///////////////////////////////////////////////////////////////////////////////

// LoadOptions decodes YAML over base. Keys absent from data keep the value
// they have in base.
func LoadOptions(data []byte, base Options) (Options, error) {
	opts := base
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return base, fmt.Errorf("error decoding options: %w", err)
	}
	return opts, nil
}

// LoadOptionsFile reads a YAML options file over the process defaults.
func LoadOptionsFile(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("error reading options file: %w", err)
	}
	return LoadOptions(data, DefaultOptions())
}

func init() {
	_defaultOptions = builtinOptions()
}
