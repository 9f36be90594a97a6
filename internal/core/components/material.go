package components

import (
	"github.com/majo33/atom/internal/core/meta"
	"github.com/majo33/atom/internal/core/models"
	"github.com/majo33/atom/internal/core/observability/log"
	"github.com/majo33/atom/internal/core/resources"
)

// Material binds a material resource to its entity.
type Material struct {
	models.Base
	MaterialName string

	material resources.Handle[resources.Material]
}

func NewMaterial(name string) *Material {
	return &Material{Base: models.NewBase(TypeMaterial, "material"), MaterialName: name}
}

func (c *Material) Activate() {
	e := c.Entity()
	h, ok := e.Core().Resources().Material(c.MaterialName)
	if !ok {
		e.Core().Log().Warn("material unavailable",
			log.String("entity", e.ID()), log.String("material", c.MaterialName))
		return
	}
	c.material = h
}

func (c *Material) Terminate() {
	c.material = resources.Handle[resources.Material]{}
}

// Handle is absent when the material failed to load.
func (c *Material) Handle() resources.Handle[resources.Material] { return c.material }

func (c *Material) Clone() models.Component { return NewMaterial(c.MaterialName) }

func (c *Material) Meta() meta.Class {
	return meta.Class{Name: "material", Fields: []meta.Field{stringField("material", &c.MaterialName)}}
}
