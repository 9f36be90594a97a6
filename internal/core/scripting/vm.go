package scripting

import (
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// Host is the entity surface exposed to scripts as the global "entity".
type Host interface {
	ID() string
	ClassName() string
	Position() (x, y float64)
	SetPosition(x, y float64)
}

// VM is a single Lua state bound to one host. Single-goroutine access only.
type VM struct {
	state  *lua.LState
	script *Script
}

func NewVM(host Host) *VM {
	L := lua.NewState(lua.Options{SkipOpenLibs: false})
	L.SetGlobal("API_VERSION", lua.LNumber(1))
	L.SetGlobal("entity", hostTable(L, host))
	return &VM{state: L}
}

func hostTable(L *lua.LState, host Host) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("id", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(host.ID()))
		return 1
	}))
	t.RawSetString("class", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(host.ClassName()))
		return 1
	}))
	t.RawSetString("position", L.NewFunction(func(L *lua.LState) int {
		x, y := host.Position()
		L.Push(lua.LNumber(x))
		L.Push(lua.LNumber(y))
		return 2
	}))
	t.RawSetString("set_position", L.NewFunction(func(L *lua.LState) int {
		host.SetPosition(float64(L.CheckNumber(1)), float64(L.CheckNumber(2)))
		return 0
	}))
	return t
}

// Load executes the script's top-level chunk, defining its functions.
// Loading the same script again is a no-op.
func (vm *VM) Load(script *Script) error {
	if script == nil {
		return ErrNotLoaded
	}
	if vm.script == script {
		return nil
	}
	fn := vm.state.NewFunctionFromProto(script.proto)
	vm.state.Push(fn)
	if err := vm.state.PCall(0, lua.MultRet, nil); err != nil {
		return fmt.Errorf("run %s: %w", script.name, err)
	}
	vm.state.SetTop(0)
	vm.script = script
	return nil
}

// Loaded returns the script the VM currently runs.
func (vm *VM) Loaded() *Script { return vm.script }

// Init calls the optional init() function.
func (vm *VM) Init() error {
	return vm.call("init")
}

// Update calls the optional update(dt) function with dt in seconds.
func (vm *VM) Update(dt time.Duration) error {
	return vm.call("update", lua.LNumber(dt.Seconds()))
}

// Global reads a global number, mostly useful for tests and debugging.
func (vm *VM) Global(name string) (float64, bool) {
	n, ok := vm.state.GetGlobal(name).(lua.LNumber)
	return float64(n), ok
}

func (vm *VM) call(name string, args ...lua.LValue) error {
	if vm.script == nil {
		return ErrNotLoaded
	}
	fn, ok := vm.state.GetGlobal(name).(*lua.LFunction)
	if !ok {
		return nil
	}
	if err := vm.state.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, args...); err != nil {
		return fmt.Errorf("%s.%s: %w", vm.script.name, name, err)
	}
	return nil
}

func (vm *VM) Close() {
	vm.state.Close()
}
