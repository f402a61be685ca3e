package toss

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrNilCallback               = errors.New("callback cannot be nil")
	ErrEmptyCallbackName         = errors.New("callback name cannot be empty")
	ErrCallbackAlreadyRegistered = errors.New("a callback with this name is already registered")
	ErrUnknownCallback           = errors.New("no callback registered with this name")
)

// Interpreter fully replaces the default value reader for an element.
// form is the enclosing scope, so interpreters may read sibling fields.
type Interpreter func(el Element, form *Form) (Interpretation, error)

// Converter turns a present raw value into its typed form.
type Converter func(raw any) (any, error)

// ValidatorFunc reports whether a converted value has a valid format.
type ValidatorFunc func(converted any) (bool, error)

// FillFunc writes value into el, replacing the default fill logic.
type FillFunc func(el Element, value any) error

// Registry maps the names declared in element attributes to callbacks.
//
// Elements never carry executable code, only a name. The registry is safe for
// concurrent registration and lookup.
type Registry struct {
	mu           sync.RWMutex
	interpreters map[string]Interpreter
	converters   map[string]Converter
	validators   map[string]ValidatorFunc
	fills        map[string]FillFunc
}

type RegistryOpts struct {
	ExcludeBuiltins bool
}

func NewRegistry(opts RegistryOpts) *Registry {
	reg := &Registry{
		interpreters: make(map[string]Interpreter),
		converters:   make(map[string]Converter),
		validators:   make(map[string]ValidatorFunc),
		fills:        make(map[string]FillFunc),
	}

	if !opts.ExcludeBuiltins {
		for name, fn := range _builtinConverters {
			reg.converters[name] = fn
		}
		for name, fn := range _builtinValidators {
			reg.validators[name] = fn
		}
	}

	return reg
}

func register[F any](reg *Registry, m map[string]F, name string, fn F, isNil bool) error {
	if name == "" {
		return ErrEmptyCallbackName
	}
	if isNil {
		return fmt.Errorf("%w: %s", ErrNilCallback, name)
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, exists := m[name]; exists {
		return fmt.Errorf("%w: %s", ErrCallbackAlreadyRegistered, name)
	}
	m[name] = fn
	return nil
}

func lookup[F any](reg *Registry, m map[string]F, name string) (F, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	fn, ok := m[name]
	return fn, ok
}

func (reg *Registry) RegisterInterpreter(name string, fn Interpreter) error {
	return register(reg, reg.interpreters, name, fn, fn == nil)
}

func (reg *Registry) RegisterConverter(name string, fn Converter) error {
	return register(reg, reg.converters, name, fn, fn == nil)
}

func (reg *Registry) RegisterValidator(name string, fn ValidatorFunc) error {
	return register(reg, reg.validators, name, fn, fn == nil)
}

func (reg *Registry) RegisterFill(name string, fn FillFunc) error {
	return register(reg, reg.fills, name, fn, fn == nil)
}

func (reg *Registry) Interpreter(name string) (Interpreter, bool) {
	return lookup(reg, reg.interpreters, name)
}

func (reg *Registry) Converter(name string) (Converter, bool) {
	return lookup(reg, reg.converters, name)
}

func (reg *Registry) Validator(name string) (ValidatorFunc, bool) {
	return lookup(reg, reg.validators, name)
}

func (reg *Registry) Fill(name string) (FillFunc, bool) {
	return lookup(reg, reg.fills, name)
}

// Unregister removes name from every callback table.
func (reg *Registry) Unregister(name string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.interpreters, name)
	delete(reg.converters, name)
	delete(reg.validators, name)
	delete(reg.fills, name)
}

// Names lists the registered names per callback kind, sorted.
func (reg *Registry) Names() map[CallbackKind][]string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	return map[CallbackKind][]string{
		InterpreterCallback: sortedKeys(reg.interpreters),
		ConverterCallback:   sortedKeys(reg.converters),
		ValidatorCallback:   sortedKeys(reg.validators),
		FillCallback:        sortedKeys(reg.fills),
	}
}

func sortedKeys[F any](m map[string]F) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

///////////////////////////////////////////////////////////////////////////////
// Global Singleton and Package Functions
///////////////////////////////////////////////////////////////////////////////

var _gRegistry *Registry = nil

func init() {
	_gRegistry = NewRegistry(RegistryOpts{ExcludeBuiltins: false})
}

// Package-level functions that delegate to the global Registry instance

func GlobalRegistry() *Registry {
	return _gRegistry
}

func RegisterInterpreter(name string, fn Interpreter) error {
	return _gRegistry.RegisterInterpreter(name, fn)
}

func RegisterConverter(name string, fn Converter) error {
	return _gRegistry.RegisterConverter(name, fn)
}

func RegisterValidator(name string, fn ValidatorFunc) error {
	return _gRegistry.RegisterValidator(name, fn)
}

func RegisterFill(name string, fn FillFunc) error {
	return _gRegistry.RegisterFill(name, fn)
}
