package models

import "time"

// ComponentID is the stable type tag of a concrete component type.
type ComponentID uint32

// Component is a unit of entity behaviour. Concrete types embed Base, which
// provides the bookkeeping and no-op lifecycle hooks, and implement Clone.
//
// The hooks run in this order: Init when the owner is assigned, Activate
// once Slots are resolved, Deactivate before Slots are cleared, Terminate
// right before the owner is dropped.
type Component interface {
	Type() ComponentID
	Name() string
	SetName(string)
	Priority() int
	SetPriority(int)

	// Entity returns the owner. Calling it on a detached component panics.
	Entity() *Entity
	Attached() bool
	Slots() []SlotRef

	Init()
	Activate()
	Deactivate()
	Terminate()

	// Clone returns a new detached component of the same type carrying the
	// same configuration. It must build the copy through the type's
	// constructor so the copy owns fresh Slots.
	Clone() Component

	component() *Base
}

// Updater is implemented by components that run every tick.
type Updater interface {
	Update(dt time.Duration)
}

// Base is embedded by every component.
type Base struct {
	typ      ComponentID
	name     string
	priority int
	entity   *Entity
	slots    []SlotRef
}

func NewBase(typ ComponentID, name string) Base {
	return Base{typ: typ, name: name}
}

func (b *Base) Type() ComponentID   { return b.typ }
func (b *Base) Name() string        { return b.name }
func (b *Base) SetName(name string) { b.name = name }
func (b *Base) Priority() int       { return b.priority }
func (b *Base) SetPriority(p int)   { b.priority = p }
func (b *Base) Attached() bool      { return b.entity != nil }
func (b *Base) component() *Base    { return b }

func (b *Base) Entity() *Entity {
	if b.entity == nil {
		violation("component %q is not attached", b.name)
	}
	return b.entity
}

func (b *Base) Slots() []SlotRef {
	out := make([]SlotRef, len(b.slots))
	copy(out, b.slots)
	return out
}

func (b *Base) Init()       {}
func (b *Base) Activate()   {}
func (b *Base) Deactivate() {}
func (b *Base) Terminate()  {}

// Attach binds c to e and runs Init, Slot resolution and Activate.
func Attach(c Component, e *Entity) {
	if c == nil {
		violation("attach of nil component")
	}
	b := c.component()
	if b.entity != nil {
		violation("component %q is already attached", b.name)
	}
	if e == nil {
		violation("component %q attached to nil entity", b.name)
	}
	b.entity = e
	c.Init()
	for _, s := range b.slots {
		s.resolve(e)
	}
	c.Activate()
}

// Detach runs Deactivate, clears Slots, runs Terminate and drops the owner.
func Detach(c Component) {
	b := c.component()
	if b.entity == nil {
		violation("detach of unattached component %q", b.name)
	}
	c.Deactivate()
	for _, s := range b.slots {
		s.clear()
	}
	c.Terminate()
	b.entity = nil
}

// Duplicate clones c and carries over its name and priority. The result is
// always detached.
func Duplicate(c Component) Component {
	b := c.component()
	d := c.Clone()
	if d == nil {
		violation("%T.Clone returned nil", c)
	}
	db := d.component()
	if db == b || db.entity != nil {
		violation("%T.Clone must return a fresh detached component", c)
	}
	db.name = b.name
	db.priority = b.priority
	return d
}
