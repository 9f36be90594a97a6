package components

import (
	"github.com/majo33/atom/internal/core/models"
	"github.com/majo33/atom/internal/core/observability/log"
	"github.com/majo33/atom/internal/core/resources"
)

// BoneState is the runtime transform of one bone.
type BoneState struct {
	Name   string
	Parent int
	Offset models.Vec2
	Angle  float64
}

// Skeleton exposes the bones of the sibling mesh.
type Skeleton struct {
	models.Base

	mesh  *models.Slot[*Mesh]
	bones []BoneState
}

func NewSkeleton() *Skeleton {
	s := &Skeleton{Base: models.NewBase(TypeSkeleton, "skeleton")}
	s.mesh = models.NewSlot[*Mesh](s, "mesh")
	return s
}

func (s *Skeleton) Activate() {
	if !s.mesh.Valid() {
		return
	}
	e := s.Entity()
	raw, ok := e.Core().Resources().RawMesh(s.mesh.Get().MeshName)
	if !ok {
		e.Core().Log().Warn("skeleton has no raw mesh", log.String("entity", e.ID()))
		return
	}
	s.bones = bonesOf(raw.Get())
}

func bonesOf(raw *resources.RawMesh) []BoneState {
	bones := make([]BoneState, len(raw.Bones))
	for i, b := range raw.Bones {
		bones[i] = BoneState{Name: b.Name, Parent: b.Parent}
		if len(b.Head) >= 2 {
			bones[i].Offset = models.Vec2{X: float64(b.Head[0]), Y: float64(b.Head[1])}
		}
	}
	return bones
}

func (s *Skeleton) Terminate() { s.bones = nil }

func (s *Skeleton) Bones() []BoneState { return s.bones }

// FindBone returns the index of the named bone or -1.
func (s *Skeleton) FindBone(name string) int {
	for i, b := range s.bones {
		if b.Name == name {
			return i
		}
	}
	return -1
}

// Bone returns a pointer to the bone state so animation code can pose it.
func (s *Skeleton) Bone(i int) *BoneState {
	if i < 0 || i >= len(s.bones) {
		return nil
	}
	return &s.bones[i]
}

func (s *Skeleton) Clone() models.Component { return NewSkeleton() }
