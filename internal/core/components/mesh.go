package components

import (
	"github.com/majo33/atom/internal/core/meta"
	"github.com/majo33/atom/internal/core/models"
	"github.com/majo33/atom/internal/core/observability/log"
	"github.com/majo33/atom/internal/core/resources"
	"github.com/majo33/atom/internal/core/video"
)

// Mesh binds a mesh resource to its entity.
type Mesh struct {
	models.Base
	MeshName string

	mesh resources.Handle[*video.Mesh]
}

func NewMesh(name string) *Mesh {
	return &Mesh{Base: models.NewBase(TypeMesh, "mesh"), MeshName: name}
}

func (c *Mesh) Activate() {
	e := c.Entity()
	h, ok := e.Core().Resources().Mesh(c.MeshName)
	if !ok {
		e.Core().Log().Warn("mesh unavailable",
			log.String("entity", e.ID()), log.String("mesh", c.MeshName))
		return
	}
	c.mesh = h
}

func (c *Mesh) Terminate() {
	c.mesh = resources.Handle[*video.Mesh]{}
}

func (c *Mesh) Handle() resources.Handle[*video.Mesh] { return c.mesh }

func (c *Mesh) Clone() models.Component { return NewMesh(c.MeshName) }

func (c *Mesh) Meta() meta.Class {
	return meta.Class{Name: "mesh", Fields: []meta.Field{stringField("mesh", &c.MeshName)}}
}
