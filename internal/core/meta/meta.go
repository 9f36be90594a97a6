// Package meta is the property enumeration contract used to populate objects
// from parsed documents: an ordered list of named setters per class.
package meta

import (
	"errors"
	"fmt"
)

var (
	ErrMissing     = errors.New("property missing")
	ErrInvalidType = errors.New("invalid property type")
)

// Kind describes the value shape a setter expects.
type Kind uint8

const (
	KindFloat Kind = iota + 1
	KindVec3
	KindString
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindVec3:
		return "vec3"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Field is one enumerated property. Set receives the value already coerced
// to the Go type matching Kind: float64, [3]float64, string or bool.
type Field struct {
	Name string
	Kind Kind
	Set  func(value any) error
}

// Class is the ordered property list of one concrete type.
type Class struct {
	Name   string
	Fields []Field
}

// Enumerator is implemented by types that expose their properties.
type Enumerator interface {
	Meta() Class
}

// FieldError reports a property that could not be read.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("property %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Populate walks the fields of class in order and feeds each one the matching
// member of doc. It never stops early; every failure is returned so the caller
// can report all of them while keeping the values that did apply.
func Populate(doc map[string]any, class Class) []error {
	var errs []error
	for _, f := range class.Fields {
		raw, ok := doc[f.Name]
		if !ok {
			errs = append(errs, &FieldError{Field: f.Name, Err: ErrMissing})
			continue
		}
		value, err := Coerce(f.Kind, raw)
		if err != nil {
			errs = append(errs, &FieldError{Field: f.Name, Err: err})
			continue
		}
		if err = f.Set(value); err != nil {
			errs = append(errs, &FieldError{Field: f.Name, Err: err})
		}
	}
	return errs
}

// Coerce converts a decoded JSON/YAML value into the Go type for kind.
func Coerce(kind Kind, raw any) (any, error) {
	switch kind {
	case KindFloat:
		if f, ok := toFloat(raw); ok {
			return f, nil
		}
	case KindVec3:
		list, ok := raw.([]any)
		if !ok || len(list) != 3 {
			break
		}
		var v [3]float64
		for i, item := range list {
			f, ok := toFloat(item)
			if !ok {
				return nil, fmt.Errorf("%w: want %s, component %d is %T", ErrInvalidType, kind, i, item)
			}
			v[i] = f
		}
		return v, nil
	case KindString:
		if s, ok := raw.(string); ok {
			return s, nil
		}
	case KindBool:
		if b, ok := raw.(bool); ok {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%w: want %s, got %T", ErrInvalidType, kind, raw)
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}
