package components

import (
	"github.com/majo33/atom/internal/core/meta"
	"github.com/majo33/atom/internal/core/models"
	"github.com/majo33/atom/internal/core/video"
)

// Batch is what a renderer needs to draw one entity.
type Batch struct {
	Program video.Handle
	Mesh    *video.Mesh
	Bounds  models.BoundingBox
}

// Render draws the sibling mesh with the sibling material.
type Render struct {
	models.Base
	Visible bool

	mesh     *models.Slot[*Mesh]
	material *models.Slot[*Material]
}

func NewRender() *Render {
	r := &Render{Base: models.NewBase(TypeRender, "render"), Visible: true}
	r.mesh = models.NewSlot[*Mesh](r, "mesh")
	r.material = models.NewSlot[*Material](r, "material")
	return r
}

func (r *Render) MeshSlot() *models.Slot[*Mesh]         { return r.mesh }
func (r *Render) MaterialSlot() *models.Slot[*Material] { return r.material }

// Batch reports the current draw data. Missing siblings or resources that
// failed to load make the entity skip drawing.
func (r *Render) Batch() (Batch, bool) {
	if !r.Visible || !r.mesh.Valid() || !r.material.Valid() {
		return Batch{}, false
	}
	mesh := r.mesh.Get().Handle()
	mat := r.material.Get().Handle()
	if !mesh.Valid() || !mat.Valid() {
		return Batch{}, false
	}
	tech := mat.Get().Technique()
	if !tech.Valid() {
		return Batch{}, false
	}
	return Batch{
		Program: tech.Get().Program(),
		Mesh:    mesh.Get(),
		Bounds:  r.Entity().BoundingBox(),
	}, true
}

func (r *Render) Clone() models.Component {
	c := NewRender()
	c.Visible = r.Visible
	return c
}

func (r *Render) Meta() meta.Class {
	return meta.Class{Name: "render", Fields: []meta.Field{{
		Name: "visible",
		Kind: meta.KindBool,
		Set: func(v any) error {
			r.Visible = v.(bool)
			return nil
		},
	}}}
}
