package toss

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

var (
	ErrNotStructPointer = errors.New("destination must be a non-nil pointer to a struct")
	ErrNotStruct        = errors.New("source must be a struct or a pointer to a struct")
	ErrValidationFailed = errors.New("validation failed after binding")
)

// Validatable is implemented by destinations that check themselves once
// Toss has bound the collected values into them.
type Validatable interface {
	// Validate checks the fields of the struct and returns an error
	// if any of the fields are invalid.
	//
	// # It is expected to be called after the struct has been populated
	Validate() error
}

// bindStep maps one tagged struct field to a form field name.
type bindStep struct {
	FieldIndex int
	FieldName  string
	Key        string
	OmitEmpty  bool
}

// bindPlan is the ordered list of steps for one struct type.
type bindPlan struct {
	StructType reflect.Type
	Steps      []bindStep
}

// planManager caches bind plans keyed by struct type. It is safe for
// concurrent use.
type planManager struct {
	plans map[reflect.Type]*bindPlan
	mu    sync.RWMutex
}

var _gPlanManager = &planManager{plans: make(map[reflect.Type]*bindPlan)}

func (pm *planManager) get(typ reflect.Type) *bindPlan {
	pm.mu.RLock()
	plan, exists := pm.plans[typ]
	pm.mu.RUnlock()

	if exists {
		return plan
	}

	plan = newBindPlan(typ)

	pm.mu.Lock()
	pm.plans[typ] = plan
	pm.mu.Unlock()

	return plan
}

// newBindPlan reads the `toss` tags of typ. Untagged, unexported and "-"
// fields are skipped.
func newBindPlan(typ reflect.Type) *bindPlan {
	plan := &bindPlan{StructType: typ}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		tag, ok := field.Tag.Lookup(TossTag)
		if !ok || tag == "-" {
			continue
		}

		parts := strings.Split(tag, ",")
		step := bindStep{
			FieldIndex: i,
			FieldName:  field.Name,
			Key:        strings.TrimSpace(parts[0]),
		}
		if step.Key == "" {
			step.Key = field.Name
		}
		for _, part := range parts[1:] {
			if strings.TrimSpace(part) == OmitEmptyTagOption {
				step.OmitEmpty = true
			}
		}

		plan.Steps = append(plan.Steps, step)
	}

	return plan
}

// Bind copies Obj into dest, a pointer to a struct whose fields carry
// `toss:"fieldname"` tags. Absent and nil values leave the field untouched.
func (r *Result) Bind(dest any) error {
	return bindObject(r.Obj, dest)
}

func bindObject(obj Object, dest any) error {
	value := reflect.ValueOf(dest)
	if dest == nil || value.Kind() != reflect.Ptr || value.IsNil() || value.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w, got %T", ErrNotStructPointer, dest)
	}

	elem := value.Elem()
	plan := _gPlanManager.get(elem.Type())

	for _, step := range plan.Steps {
		v, ok := obj[step.Key]
		if !ok || v == nil {
			continue
		}

		field := elem.Field(step.FieldIndex)
		if !field.CanSet() {
			continue
		}

		if err := assignValue(field, v); err != nil {
			return fmt.Errorf("failed to bind field %s from %q: %w", step.FieldName, step.Key, err)
		}
	}

	return nil
}

// ObjectFrom builds a fill object from a struct (or pointer to one) using
// its `toss` tags. Zero values of omitempty fields are left out.
func ObjectFrom(src any) (Object, error) {
	value := reflect.ValueOf(src)
	if value.Kind() == reflect.Ptr {
		if value.IsNil() {
			return nil, fmt.Errorf("%w, got nil %T", ErrNotStruct, src)
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w, got %T", ErrNotStruct, src)
	}

	plan := _gPlanManager.get(value.Type())
	obj := Object{}
	for _, step := range plan.Steps {
		field := value.Field(step.FieldIndex)
		if step.OmitEmpty && field.IsZero() {
			continue
		}
		obj[step.Key] = field.Interface()
	}

	return obj, nil
}

// Invalidate clears a partially or fully bound dest by setting each field to
// its zero value.
func Invalidate(dest any) error {
	value := reflect.ValueOf(dest)
	if dest == nil || value.Kind() != reflect.Ptr || value.IsNil() {
		return fmt.Errorf("cannot invalidate a non ptr or nil value")
	}

	zeroStructFields(value.Elem())
	return nil
}

// invalidated zeroes dest and returns err, joined with the zeroing failure
// if there is one.
func invalidated(dest any, err error) error {
	if ierr := Invalidate(dest); ierr != nil {
		return errors.Join(err, ierr)
	}
	return err
}

// Toss collects the form and binds the result into dest.
//
// It fails with a *FormError when a field is missing or invalid. When dest
// implements Validatable its Validate method runs after binding. A failed
// bind or Validate zeroes dest. The result is returned in every case.
func (form *Form) Toss(dest any, opts ...Option) (*Result, error) {
	result := form.Collect(opts...)
	if err := result.Err(); err != nil {
		return result, err
	}

	if err := result.Bind(dest); err != nil {
		return result, invalidated(dest, err)
	}

	if v, ok := dest.(Validatable); ok {
		if err := v.Validate(); err != nil {
			return result, invalidated(dest, fmt.Errorf("%w: %w", ErrValidationFailed, err))
		}
	}

	return result, nil
}

// FillFrom fills the form from a tagged struct.
func (form *Form) FillFrom(src any, opts ...Option) error {
	obj, err := ObjectFrom(src)
	if err != nil {
		return err
	}
	form.Fill(obj, opts...)
	return nil
}
