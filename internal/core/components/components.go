// Package components holds the built-in component types.
package components

import (
	"github.com/majo33/atom/internal/core/meta"
	"github.com/majo33/atom/internal/core/models"
)

const (
	TypeMaterial models.ComponentID = iota + 1
	TypeMesh
	TypeRender
	TypeSkeleton
	TypeScript
)

// RegisterBuiltins registers every built-in component type on r.
func RegisterBuiltins(r *models.TypeRegistry) error {
	builtins := []struct {
		id      models.ComponentID
		name    string
		factory func() models.Component
	}{
		{TypeMaterial, "material", func() models.Component { return NewMaterial("") }},
		{TypeMesh, "mesh", func() models.Component { return NewMesh("") }},
		{TypeRender, "render", func() models.Component { return NewRender() }},
		{TypeSkeleton, "skeleton", func() models.Component { return NewSkeleton() }},
		{TypeScript, "script", func() models.Component { return NewScript("") }},
	}
	for _, b := range builtins {
		if err := r.Register(b.id, b.name, b.factory); err != nil {
			return err
		}
	}
	return nil
}

func stringField(name string, dst *string) meta.Field {
	return meta.Field{Name: name, Kind: meta.KindString, Set: func(v any) error {
		*dst = v.(string)
		return nil
	}}
}

var (
	_ meta.Enumerator = (*Material)(nil)
	_ meta.Enumerator = (*Mesh)(nil)
	_ meta.Enumerator = (*Render)(nil)
	_ meta.Enumerator = (*Script)(nil)
)
