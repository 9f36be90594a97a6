package models

import "reflect"

// SlotRef is the type-erased view of a Slot, used by tooling to list the
// cross references a component declares.
type SlotRef interface {
	Name() string
	Target() reflect.Type
	Valid() bool

	resolve(e *Entity)
	clear()
}

// Slot is a non-owning reference from a component to the sibling of type T
// on the same entity. It is resolved when its owner is attached and cleared
// when the owner is detached.
type Slot[T Component] struct {
	name   string
	target T
	found  bool
}

// NewSlot declares a slot on owner. Call it from the owner's constructor.
func NewSlot[T Component](owner Component, name string) *Slot[T] {
	s := &Slot[T]{name: name}
	b := owner.component()
	b.slots = append(b.slots, s)
	return s
}

func (s *Slot[T]) Name() string         { return s.name }
func (s *Slot[T]) Target() reflect.Type { return reflect.TypeFor[T]() }

// Valid reports whether the slot resolved to a sibling.
func (s *Slot[T]) Valid() bool { return s.found }

// Get returns the resolved sibling. Calling Get on an absent slot panics.
func (s *Slot[T]) Get() T {
	if !s.found {
		violation("slot %q (%s) is not resolved", s.name, s.Target())
	}
	return s.target
}

func (s *Slot[T]) resolve(e *Entity) {
	s.clear()
	tag, ok := TagOf[T](e.Types())
	if !ok {
		violation("slot %q: %s is not a registered component type", s.name, s.Target())
	}
	c, ok := e.Component(tag)
	if !ok {
		return
	}
	t, ok := c.(T)
	if !ok {
		violation("slot %q: tag %d holds %T, not %s", s.name, tag, c, s.Target())
	}
	s.target, s.found = t, true
}

func (s *Slot[T]) clear() {
	var zero T
	s.target, s.found = zero, false
}
