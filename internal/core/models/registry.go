package models

import (
	"fmt"
	"reflect"
	"sort"
)

// TypeInfo describes one registered component type.
type TypeInfo struct {
	ID   ComponentID
	Name string
	Type reflect.Type
	New  func() Component
}

// TypeRegistry is the bijective map between concrete component types and
// their tags. Register everything at startup; lookups are read only.
type TypeRegistry struct {
	byID   map[ComponentID]*TypeInfo
	byName map[string]*TypeInfo
	byType map[reflect.Type]*TypeInfo
}

func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		byID:   make(map[ComponentID]*TypeInfo),
		byName: make(map[string]*TypeInfo),
		byType: make(map[reflect.Type]*TypeInfo),
	}
}

// Register adds a component type. The factory is called once to learn the
// concrete type, which must report id as its tag.
func (r *TypeRegistry) Register(id ComponentID, name string, factory func() Component) error {
	sample := factory()
	if sample == nil {
		return fmt.Errorf("%w: factory for %q returned nil", ErrNilComponent, name)
	}
	if sample.Type() != id {
		return fmt.Errorf("register %q: instance reports tag %d, want %d", name, sample.Type(), id)
	}
	typ := reflect.TypeOf(sample)
	if prev, ok := r.byID[id]; ok {
		return fmt.Errorf("%w: tag %d is %q", ErrTypeRegistered, id, prev.Name)
	}
	if _, ok := r.byName[name]; ok {
		return fmt.Errorf("%w: %q", ErrTypeRegistered, name)
	}
	if prev, ok := r.byType[typ]; ok {
		return fmt.Errorf("%w: %s is %q", ErrTypeRegistered, typ, prev.Name)
	}

	info := &TypeInfo{ID: id, Name: name, Type: typ, New: factory}
	r.byID[id] = info
	r.byName[name] = info
	r.byType[typ] = info
	return nil
}

func (r *TypeRegistry) Lookup(id ComponentID) (TypeInfo, bool) {
	info, ok := r.byID[id]
	if !ok {
		return TypeInfo{}, false
	}
	return *info, true
}

func (r *TypeRegistry) ByName(name string) (TypeInfo, bool) {
	info, ok := r.byName[name]
	if !ok {
		return TypeInfo{}, false
	}
	return *info, true
}

// TagFor returns the tag of a concrete component type.
func (r *TypeRegistry) TagFor(t reflect.Type) (ComponentID, bool) {
	info, ok := r.byType[t]
	if !ok {
		return 0, false
	}
	return info.ID, true
}

// New builds a fresh component by registered name.
func (r *TypeRegistry) New(name string) (Component, error) {
	info, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponentType, name)
	}
	return info.New(), nil
}

// Types lists every registration ordered by tag.
func (r *TypeRegistry) Types() []TypeInfo {
	out := make([]TypeInfo, 0, len(r.byID))
	for _, info := range r.byID {
		out = append(out, *info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// TagOf returns the tag registered for T.
func TagOf[T Component](r *TypeRegistry) (ComponentID, bool) {
	return r.TagFor(reflect.TypeFor[T]())
}
