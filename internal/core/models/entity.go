package models

import (
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
)

type EntityState uint8

const (
	StateNew EntityState = iota
	StateRunning
	StateTerminated
)

func (s EntityState) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Hooks are entity level callbacks. Any of them may be nil.
type Hooks struct {
	OnWelcome func(e *Entity)
	OnUpdate  func(e *Entity, dt time.Duration)
	OnGoodbye func(e *Entity)
}

// Entity owns an ordered set of components, at most one per type tag, and
// drives their lifecycle as a group.
type Entity struct {
	id       string
	class    string
	core     Core
	world    World
	position Vec2
	size     Vec2
	bbox     BoundingBox
	hooks    Hooks

	components []Component
	byType     map[ComponentID]Component
	state      EntityState
}

type EntityOption func(*Entity)

func WithID(id string) EntityOption {
	return func(e *Entity) { e.id = id }
}

func WithClass(class string) EntityOption {
	return func(e *Entity) { e.class = class }
}

func WithPosition(p Vec2) EntityOption {
	return func(e *Entity) { e.position = p }
}

// WithSize sets the extent used for the bounding box.
func WithSize(size Vec2) EntityOption {
	return func(e *Entity) { e.size = size }
}

func WithHooks(h Hooks) EntityOption {
	return func(e *Entity) { e.hooks = h }
}

func WithWorld(w World) EntityOption {
	return func(e *Entity) { e.world = w }
}

func NewEntity(core Core, opts ...EntityOption) *Entity {
	if core == nil {
		violation("entity created without core")
	}
	e := &Entity{
		core:   core,
		class:  "entity",
		byType: make(map[ComponentID]Component),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.id == "" {
		e.id = uuid.NewString()
	}
	e.Init()
	return e
}

func (e *Entity) ID() string               { return e.id }
func (e *Entity) ClassName() string        { return e.class }
func (e *Entity) Core() Core               { return e.core }
func (e *Entity) Types() *TypeRegistry     { return e.core.Types() }
func (e *Entity) World() World             { return e.world }
func (e *Entity) State() EntityState       { return e.state }
func (e *Entity) IsLive() bool             { return e.state == StateRunning }
func (e *Entity) Position() Vec2           { return e.position }
func (e *Entity) Size() Vec2               { return e.size }
func (e *Entity) BoundingBox() BoundingBox { return e.bbox }

// SetWorld is called by the world that takes the entity in.
func (e *Entity) SetWorld(w World) { e.world = w }

// SetPosition moves the entity. Call Init to refresh the bounding box.
func (e *Entity) SetPosition(p Vec2) { e.position = p }

// Init recomputes derived geometry.
func (e *Entity) Init() {
	e.bbox = BoxAround(e.position, e.size)
}

// AddComponent registers c. Components can only be added before Welcome.
func (e *Entity) AddComponent(c Component) error {
	if v := reflect.ValueOf(c); c == nil || (v.Kind() == reflect.Pointer && v.IsNil()) {
		return ErrNilComponent
	}
	if e.state != StateNew {
		return fmt.Errorf("%w: %s", ErrEntityWelcomed, e.id)
	}
	if c.Attached() {
		return ErrComponentAttached
	}
	info, ok := e.Types().Lookup(c.Type())
	if !ok || info.Type != reflect.TypeOf(c) {
		return fmt.Errorf("%w: %T with tag %d", ErrUnknownComponentType, c, c.Type())
	}
	if _, ok := e.byType[c.Type()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateComponent, info.Name)
	}
	e.components = append(e.components, c)
	e.byType[c.Type()] = c
	return nil
}

// Component returns the component holding tag.
func (e *Entity) Component(tag ComponentID) (Component, bool) {
	c, ok := e.byType[tag]
	return c, ok
}

// Components returns the components in registration order.
func (e *Entity) Components() []Component {
	out := make([]Component, len(e.components))
	copy(out, e.components)
	return out
}

// Welcome attaches every component in registration order, then runs the
// welcome hook.
func (e *Entity) Welcome() {
	if e.state != StateNew {
		violation("welcome of %s entity %s", e.state, e.id)
	}
	for _, c := range e.components {
		Attach(c, e)
	}
	e.state = StateRunning
	if e.hooks.OnWelcome != nil {
		e.hooks.OnWelcome(e)
	}
}

// Update ticks every Updater component in registration order, then the
// update hook.
func (e *Entity) Update(dt time.Duration) {
	if e.state != StateRunning {
		violation("update of %s entity %s", e.state, e.id)
	}
	for _, c := range e.components {
		if u, ok := c.(Updater); ok {
			u.Update(dt)
		}
	}
	if e.hooks.OnUpdate != nil {
		e.hooks.OnUpdate(e, dt)
	}
}

// Goodbye runs the goodbye hook, then detaches every component in
// registration order.
func (e *Entity) Goodbye() {
	if e.state != StateRunning {
		violation("goodbye of %s entity %s", e.state, e.id)
	}
	if e.hooks.OnGoodbye != nil {
		e.hooks.OnGoodbye(e)
	}
	for _, c := range e.components {
		Detach(c)
	}
	e.state = StateTerminated
}

// Duplicate builds a new entity with a fresh id, the same class, geometry
// and hooks, and a duplicate of every component. The copy is not welcomed.
func (e *Entity) Duplicate() (*Entity, error) {
	d := NewEntity(e.core,
		WithClass(e.class),
		WithPosition(e.position),
		WithSize(e.size),
		WithHooks(e.hooks),
		WithWorld(e.world),
	)
	for _, c := range e.components {
		if err := d.AddComponent(Duplicate(c)); err != nil {
			return nil, err
		}
	}
	return d, nil
}
