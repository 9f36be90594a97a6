package scripting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHost struct {
	x, y float64
}

func (h *fakeHost) ID() string                   { return "e1" }
func (h *fakeHost) ClassName() string            { return "Mover" }
func (h *fakeHost) Position() (float64, float64) { return h.x, h.y }
func (h *fakeHost) SetPosition(x, y float64)     { h.x, h.y = x, y }

const mover = `
ticks = 0
function init()
  started = 1
end
function update(dt)
  ticks = ticks + 1
  local x, y = entity.position()
  entity.set_position(x + dt, y)
end
`

func TestCompileAndRun(t *testing.T) {
	s, err := Compile("mover", []byte(mover))
	require.NoError(t, err)
	assert.Equal(t, "mover", s.Name())

	host := &fakeHost{}
	vm := NewVM(host)
	defer vm.Close()

	assert.ErrorIs(t, vm.Update(time.Second), ErrNotLoaded)
	require.NoError(t, vm.Load(s))
	require.NoError(t, vm.Init())
	require.NoError(t, vm.Update(500*time.Millisecond))
	require.NoError(t, vm.Update(500*time.Millisecond))

	assert.InDelta(t, 1.0, host.x, 1e-9)
	ticks, ok := vm.Global("ticks")
	require.True(t, ok)
	assert.Equal(t, 2.0, ticks)
	started, _ := vm.Global("started")
	assert.Equal(t, 1.0, started)
}

func TestCompileRejectsSyntaxErrors(t *testing.T) {
	_, err := Compile("broken", []byte("function ("))
	assert.Error(t, err)
}

func TestRuntimeErrorsAreReported(t *testing.T) {
	s, err := Compile("fails", []byte(`function update(dt) error("nope") end`))
	require.NoError(t, err)
	vm := NewVM(&fakeHost{})
	defer vm.Close()
	require.NoError(t, vm.Load(s))
	assert.NoError(t, vm.Init())
	assert.Error(t, vm.Update(time.Millisecond))
}

func TestReloadSwapsFunctions(t *testing.T) {
	v1, err := Compile("v", []byte(`function update(dt) value = 1 end`))
	require.NoError(t, err)
	v2, err := Compile("v", []byte(`function update(dt) value = 2 end`))
	require.NoError(t, err)

	vm := NewVM(&fakeHost{})
	defer vm.Close()
	require.NoError(t, vm.Load(v1))
	require.NoError(t, vm.Update(0))
	value, _ := vm.Global("value")
	assert.Equal(t, 1.0, value)

	require.NoError(t, vm.Load(v2))
	assert.Same(t, v2, vm.Loaded())
	require.NoError(t, vm.Update(0))
	value, _ = vm.Global("value")
	assert.Equal(t, 2.0, value)
}
