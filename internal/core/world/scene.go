package world

import (
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/majo33/atom/internal/core/meta"
	"github.com/majo33/atom/internal/core/models"
	"github.com/majo33/atom/internal/core/observability/log"
)

// Scene is the YAML document describing the initial entities.
type Scene struct {
	Entities []EntityDef `yaml:"entities"`
}

type EntityDef struct {
	ID         string         `yaml:"id"`
	Class      string         `yaml:"class"`
	Position   []float64      `yaml:"position"`
	Size       []float64      `yaml:"size"`
	Components []ComponentDef `yaml:"components"`
}

type ComponentDef struct {
	Type       string         `yaml:"type"`
	Name       string         `yaml:"name"`
	Priority   int            `yaml:"priority"`
	Properties map[string]any `yaml:"properties"`
}

// LoadSceneFile reads a scene from fsys and adds its entities to w.
func (w *World) LoadSceneFile(fsys fs.FS, path string) (int, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return 0, err
	}
	return w.LoadScene(data)
}

// LoadScene adds the entities described by data and returns how many were
// added. Entities are built completely before any of them is welcomed, so
// a broken definition leaves the world untouched.
func (w *World) LoadScene(data []byte) (int, error) {
	var scene Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}

	built := make([]*models.Entity, 0, len(scene.Entities))
	seen := make(map[string]bool)
	for i, def := range scene.Entities {
		e, err := w.build(def)
		if err != nil {
			return 0, fmt.Errorf("%w: entity %d: %w", ErrInvalidScene, i, err)
		}
		if _, taken := w.byID[e.ID()]; taken || seen[e.ID()] {
			return 0, fmt.Errorf("%w: %s", ErrDuplicateEntity, e.ID())
		}
		seen[e.ID()] = true
		built = append(built, e)
	}
	for _, e := range built {
		if err := w.Add(e); err != nil {
			return 0, err
		}
	}
	return len(built), nil
}

func (w *World) build(def EntityDef) (*models.Entity, error) {
	var opts []models.EntityOption
	if def.ID != "" {
		opts = append(opts, models.WithID(def.ID))
	}
	if def.Class != "" {
		opts = append(opts, models.WithClass(def.Class))
	}
	if p, ok := vec2(def.Position); ok {
		opts = append(opts, models.WithPosition(p))
	}
	if s, ok := vec2(def.Size); ok {
		opts = append(opts, models.WithSize(s))
	}
	e := w.Spawn(opts...)

	for _, cd := range def.Components {
		c, err := w.core.Types().New(cd.Type)
		if err != nil {
			return nil, err
		}
		if cd.Name != "" {
			c.SetName(cd.Name)
		}
		c.SetPriority(cd.Priority)
		if en, ok := c.(meta.Enumerator); ok {
			w.populate(e, cd, en.Meta())
		}
		if err := e.AddComponent(c); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (w *World) populate(e *models.Entity, cd ComponentDef, class meta.Class) {
	for _, err := range meta.Populate(cd.Properties, class) {
		if errors.Is(err, meta.ErrMissing) {
			continue
		}
		w.log.Warn("can't read component property",
			log.String("entity", e.ID()), log.String("component", cd.Type), log.Error(err))
	}
}

func vec2(v []float64) (models.Vec2, bool) {
	if len(v) != 2 {
		return models.Vec2{}, false
	}
	return models.Vec2{X: v[0], Y: v[1]}, true
}
