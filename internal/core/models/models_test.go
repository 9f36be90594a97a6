package models

import (
	"fmt"
	"reflect"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majo33/atom/internal/core/observability/log"
	"github.com/majo33/atom/internal/core/resources"
)

const (
	tagAlpha ComponentID = iota + 1
	tagBeta
	tagGamma
)

type testCore struct {
	types *TypeRegistry
	res   *resources.Service
}

func (c *testCore) Types() *TypeRegistry          { return c.types }
func (c *testCore) Resources() *resources.Service { return c.res }
func (c *testCore) Log() log.Log                  { return log.NewNop() }

func newTestCore(t *testing.T) *testCore {
	t.Helper()
	types := NewTypeRegistry()
	require.NoError(t, types.Register(tagAlpha, "alpha", func() Component { return newAlpha(nil) }))
	require.NoError(t, types.Register(tagBeta, "beta", func() Component { return newBeta(nil) }))
	return &testCore{types: types, res: resources.NewService(resources.WithFS(fstest.MapFS{}))}
}

type journal struct{ lines []string }

func (j *journal) add(format string, args ...any) {
	if j != nil {
		j.lines = append(j.lines, fmt.Sprintf(format, args...))
	}
}

type alpha struct {
	Base
	j    *journal
	beta *Slot[*beta]
}

func newAlpha(j *journal) *alpha {
	a := &alpha{Base: NewBase(tagAlpha, "alpha"), j: j}
	a.beta = NewSlot[*beta](a, "beta")
	return a
}

func (a *alpha) Init()                { a.j.add("alpha.init") }
func (a *alpha) Activate()            { a.j.add("alpha.activate beta=%t", a.beta.Valid()) }
func (a *alpha) Deactivate()          { a.j.add("alpha.deactivate") }
func (a *alpha) Terminate()           { a.j.add("alpha.terminate") }
func (a *alpha) Update(time.Duration) { a.j.add("alpha.update") }
func (a *alpha) Clone() Component     { return newAlpha(a.j) }

type beta struct {
	Base
	j *journal
}

func newBeta(j *journal) *beta {
	return &beta{Base: NewBase(tagBeta, "beta"), j: j}
}

func (b *beta) Init()                { b.j.add("beta.init") }
func (b *beta) Activate()            { b.j.add("beta.activate") }
func (b *beta) Deactivate()          { b.j.add("beta.deactivate") }
func (b *beta) Terminate()           { b.j.add("beta.terminate") }
func (b *beta) Update(time.Duration) { b.j.add("beta.update") }
func (b *beta) Clone() Component     { return newBeta(b.j) }

// gamma is never registered.
type gamma struct{ Base }

func (g *gamma) Clone() Component { return &gamma{Base: NewBase(tagGamma, "gamma")} }

func assertContract(t *testing.T, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a contract panic")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v", r)
		assert.ErrorIs(t, err, ErrContract)
	}()
	f()
}

func entityWithHooks(t *testing.T, j *journal) *Entity {
	return NewEntity(newTestCore(t), WithClass("crate"), WithHooks(Hooks{
		OnWelcome: func(*Entity) { j.add("entity.welcome") },
		OnUpdate:  func(*Entity, time.Duration) { j.add("entity.update") },
		OnGoodbye: func(*Entity) { j.add("entity.goodbye") },
	}))
}

func TestEntityLifecycleOrder(t *testing.T) {
	j := &journal{}
	e := entityWithHooks(t, j)
	a, b := newAlpha(j), newBeta(j)
	require.NoError(t, e.AddComponent(a))
	require.NoError(t, e.AddComponent(b))

	e.Welcome()
	assert.Equal(t, []string{
		"alpha.init",
		"alpha.activate beta=true",
		"beta.init",
		"beta.activate",
		"entity.welcome",
	}, j.lines)
	assert.True(t, e.IsLive())
	assert.Same(t, e, a.Entity())
	assert.Same(t, b, a.beta.Get())

	j.lines = nil
	e.Update(time.Millisecond)
	assert.Equal(t, []string{"alpha.update", "beta.update", "entity.update"}, j.lines)

	j.lines = nil
	e.Goodbye()
	assert.Equal(t, []string{
		"entity.goodbye",
		"alpha.deactivate",
		"alpha.terminate",
		"beta.deactivate",
		"beta.terminate",
	}, j.lines)
	assert.Equal(t, StateTerminated, e.State())
	assert.False(t, a.Attached())
	assert.False(t, a.beta.Valid())
	assertContract(t, func() { a.Entity() })
	assertContract(t, func() { a.beta.Get() })
}

func TestSlotAbsent(t *testing.T) {
	e := NewEntity(newTestCore(t))
	a := newAlpha(nil)
	require.NoError(t, e.AddComponent(a))
	e.Welcome()

	assert.False(t, a.beta.Valid())
	assertContract(t, func() { a.beta.Get() })
}

func TestSlotsAreRegisteredOnOwner(t *testing.T) {
	a := newAlpha(nil)
	slots := a.Slots()
	require.Len(t, slots, 1)
	assert.Equal(t, "beta", slots[0].Name())
	assert.Equal(t, reflect.TypeFor[*beta](), slots[0].Target())
	assert.False(t, slots[0].Valid())
}

func TestAddComponentErrors(t *testing.T) {
	e := NewEntity(newTestCore(t))
	require.NoError(t, e.AddComponent(newAlpha(nil)))

	assert.ErrorIs(t, e.AddComponent(newAlpha(nil)), ErrDuplicateComponent)
	assert.ErrorIs(t, e.AddComponent(nil), ErrNilComponent)
	assert.ErrorIs(t, e.AddComponent((*beta)(nil)), ErrNilComponent)
	assert.ErrorIs(t, e.AddComponent(&gamma{Base: NewBase(tagGamma, "gamma")}), ErrUnknownComponentType)
	assert.ErrorIs(t, e.AddComponent(&gamma{Base: NewBase(tagBeta, "impostor")}), ErrUnknownComponentType)

	other := NewEntity(e.Core())
	b := newBeta(nil)
	require.NoError(t, other.AddComponent(b))
	other.Welcome()
	assert.ErrorIs(t, e.AddComponent(b), ErrComponentAttached)

	e.Welcome()
	assert.ErrorIs(t, e.AddComponent(newBeta(nil)), ErrEntityWelcomed)
	assert.Len(t, e.Components(), 1)
}

func TestLifecycleViolations(t *testing.T) {
	core := newTestCore(t)
	e := NewEntity(core)
	a := newAlpha(nil)

	assertContract(t, func() { Detach(a) })
	assertContract(t, func() { Attach(a, nil) })
	assertContract(t, func() { e.Update(time.Second) })
	assertContract(t, func() { e.Goodbye() })

	Attach(a, e)
	assertContract(t, func() { Attach(a, e) })
	Detach(a)

	e.Welcome()
	assertContract(t, func() { e.Welcome() })
	assertContract(t, func() { NewEntity(nil) })
}

type sloppy struct{ Base }

func (s *sloppy) Clone() Component { return s }

func TestDuplicate(t *testing.T) {
	e := NewEntity(newTestCore(t),
		WithClass("barrel"),
		WithPosition(Vec2{X: 3, Y: 4}),
		WithSize(Vec2{X: 2, Y: 2}),
	)
	a := newAlpha(nil)
	a.SetName("lid")
	a.SetPriority(7)
	require.NoError(t, e.AddComponent(a))
	require.NoError(t, e.AddComponent(newBeta(nil)))
	e.Welcome()

	d, err := e.Duplicate()
	require.NoError(t, err)
	assert.NotEqual(t, e.ID(), d.ID())
	assert.Equal(t, "barrel", d.ClassName())
	assert.Equal(t, e.BoundingBox(), d.BoundingBox())
	assert.Equal(t, StateNew, d.State())

	comps := d.Components()
	require.Len(t, comps, 2)
	dup := comps[0].(*alpha)
	assert.NotSame(t, a, dup)
	assert.False(t, dup.Attached())
	assert.Equal(t, "lid", dup.Name())
	assert.Equal(t, 7, dup.Priority())
	assert.NotSame(t, a.beta, dup.beta)

	d.Welcome()
	assert.Same(t, comps[1], dup.beta.Get())
	assert.Same(t, e.Components()[1], a.beta.Get())

	assertContract(t, func() { Duplicate(&sloppy{}) })
}

func TestEntityGeometry(t *testing.T) {
	e := NewEntity(newTestCore(t), WithPosition(Vec2{X: 10, Y: 10}), WithSize(Vec2{X: 4, Y: 2}))
	assert.Len(t, e.ID(), 36)
	assert.Equal(t, "entity", e.ClassName())
	assert.Equal(t, BoundingBox{Min: Vec2{X: 8, Y: 9}, Max: Vec2{X: 12, Y: 11}}, e.BoundingBox())

	e.SetPosition(Vec2{})
	assert.True(t, e.BoundingBox().Contains(Vec2{X: 10, Y: 10}))
	e.Init()
	assert.False(t, e.BoundingBox().Contains(Vec2{X: 10, Y: 10}))
	assert.Equal(t, Vec2{X: 4, Y: 2}, e.BoundingBox().Size())
	assert.True(t, e.BoundingBox().Intersects(BoxAround(Vec2{X: 2}, Vec2{X: 1, Y: 1})))

	named := NewEntity(newTestCore(t), WithID("player"))
	assert.Equal(t, "player", named.ID())
}

func TestTypeRegistry(t *testing.T) {
	types := NewTypeRegistry()
	require.NoError(t, types.Register(tagAlpha, "alpha", func() Component { return newAlpha(nil) }))

	assert.ErrorIs(t, types.Register(tagAlpha, "other", func() Component { return newAlpha(nil) }), ErrTypeRegistered)
	assert.ErrorIs(t, types.Register(tagBeta, "alpha", func() Component { return newBeta(nil) }), ErrTypeRegistered)
	assert.Error(t, types.Register(tagGamma, "beta", func() Component { return newBeta(nil) }))
	require.NoError(t, types.Register(tagBeta, "beta", func() Component { return newBeta(nil) }))

	tag, ok := TagOf[*beta](types)
	require.True(t, ok)
	assert.Equal(t, tagBeta, tag)
	_, ok = TagOf[*gamma](types)
	assert.False(t, ok)

	c, err := types.New("alpha")
	require.NoError(t, err)
	assert.IsType(t, &alpha{}, c)
	_, err = types.New("delta")
	assert.ErrorIs(t, err, ErrUnknownComponentType)

	info, ok := types.ByName("beta")
	require.True(t, ok)
	assert.Equal(t, tagBeta, info.ID)

	names := []string{}
	for _, ti := range types.Types() {
		names = append(names, ti.Name)
	}
	assert.Equal(t, []string{"alpha", "beta"}, names)
}

func TestSliceIterator(t *testing.T) {
	src := []int{1, 2, 3}
	it := NewSliceIterator(src)
	src[0] = 9

	var got []int
	for it.Next() {
		got = append(got, it.Item())
	}
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Equal(t, 3, it.Count())
	assert.False(t, it.Next())
	assert.Zero(t, it.Item())
	assert.Equal(t, []int{1, 2, 3}, it.ToSlice())
}
