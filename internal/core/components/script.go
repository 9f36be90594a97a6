package components

import (
	"time"

	"github.com/majo33/atom/internal/core/meta"
	"github.com/majo33/atom/internal/core/models"
	"github.com/majo33/atom/internal/core/observability/log"
	"github.com/majo33/atom/internal/core/resources"
	"github.com/majo33/atom/internal/core/scripting"
)

// Script runs a Lua behaviour. Each instance owns its VM. When the script
// resource is reloaded the new chunk is run on the next tick.
type Script struct {
	models.Base
	ScriptName string

	script  resources.Handle[*scripting.Script]
	vm      *scripting.VM
	broken  *scripting.Script
	started bool
	logger  log.Log
}

func NewScript(name string) *Script {
	return &Script{Base: models.NewBase(TypeScript, "script"), ScriptName: name}
}

func (c *Script) Activate() {
	e := c.Entity()
	c.logger = e.Core().Log().With(log.String("entity", e.ID()), log.String("script", c.ScriptName))

	h, ok := e.Core().Resources().Script(c.ScriptName)
	if !ok {
		c.logger.Warn("script unavailable")
		return
	}
	c.script = h
	c.vm = scripting.NewVM(entityHost{e})
	if err := c.run(h.Get()); err != nil {
		c.logger.Error("can't run script", log.Error(err))
	}
}

func (c *Script) Update(dt time.Duration) {
	if c.vm == nil {
		return
	}
	current := c.script.Get()
	if current == c.broken {
		return
	}
	if c.vm.Loaded() != current {
		if err := c.run(current); err != nil {
			c.logger.Error("can't run reloaded script", log.Error(err))
			return
		}
		c.logger.Info("script reloaded")
	}
	if err := c.vm.Update(dt); err != nil {
		c.logger.Error("script update failed", log.Error(err))
	}
}

// run loads script into the VM and calls init() unless an earlier version
// already started. A script that fails either step is skipped until its
// resource changes.
func (c *Script) run(script *scripting.Script) error {
	if err := c.vm.Load(script); err != nil {
		c.broken = script
		return err
	}
	if c.started {
		return nil
	}
	if err := c.vm.Init(); err != nil {
		c.broken = script
		return err
	}
	c.started = true
	return nil
}

func (c *Script) Deactivate() {
	if c.vm != nil {
		c.vm.Close()
		c.vm = nil
	}
	c.broken = nil
	c.started = false
}

func (c *Script) Terminate() {
	c.script = resources.Handle[*scripting.Script]{}
}

// VM is nil unless the script is running.
func (c *Script) VM() *scripting.VM { return c.vm }

func (c *Script) Clone() models.Component { return NewScript(c.ScriptName) }

func (c *Script) Meta() meta.Class {
	return meta.Class{Name: "script", Fields: []meta.Field{stringField("script", &c.ScriptName)}}
}

// entityHost exposes an entity to Lua.
type entityHost struct {
	e *models.Entity
}

func (h entityHost) ID() string        { return h.e.ID() }
func (h entityHost) ClassName() string { return h.e.ClassName() }

func (h entityHost) Position() (float64, float64) {
	p := h.e.Position()
	return p.X, p.Y
}

func (h entityHost) SetPosition(x, y float64) {
	h.e.SetPosition(models.Vec2{X: x, Y: y})
	h.e.Init()
}
