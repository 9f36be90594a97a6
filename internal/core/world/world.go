// Package world is the entity container that drives welcome, update and
// goodbye for every entity it holds.
package world

import (
	"errors"
	"fmt"
	"time"

	"github.com/majo33/atom/internal/core/models"
	"github.com/majo33/atom/internal/core/observability/log"
)

var (
	ErrDuplicateEntity = errors.New("entity id already in world")
	ErrEntityNotFound  = errors.New("entity not found")
	ErrInvalidScene    = errors.New("invalid scene")
)

var _ models.World = (*World)(nil)

type World struct {
	core     models.Core
	log      log.Log
	entities []*models.Entity
	byID     map[string]*models.Entity
}

func New(core models.Core) *World {
	return &World{
		core: core,
		log:  core.Log().Named("world"),
		byID: make(map[string]*models.Entity),
	}
}

func (w *World) Core() models.Core { return w.core }

func (w *World) Entity(id string) (*models.Entity, bool) {
	e, ok := w.byID[id]
	return e, ok
}

func (w *World) Len() int { return len(w.entities) }

// Spawn creates an entity bound to this world. It still has to be added.
func (w *World) Spawn(opts ...models.EntityOption) *models.Entity {
	return models.NewEntity(w.core, append(opts, models.WithWorld(w))...)
}

// Add welcomes e and starts updating it.
func (w *World) Add(e *models.Entity) error {
	if _, ok := w.byID[e.ID()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateEntity, e.ID())
	}
	e.SetWorld(w)
	e.Welcome()
	w.entities = append(w.entities, e)
	w.byID[e.ID()] = e
	w.log.Debug("entity added", log.String("entity", e.ID()), log.String("class", e.ClassName()))
	return nil
}

// Remove says goodbye to the entity and drops it.
func (w *World) Remove(id string) error {
	e, ok := w.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrEntityNotFound, id)
	}
	e.Goodbye()
	delete(w.byID, id)
	for i, x := range w.entities {
		if x == e {
			w.entities = append(w.entities[:i], w.entities[i+1:]...)
			break
		}
	}
	w.log.Debug("entity removed", log.String("entity", id))
	return nil
}

// Update ticks every entity in insertion order.
func (w *World) Update(dt time.Duration) {
	for _, e := range w.entities {
		e.Update(dt)
	}
}

// Query iterates over the entities of class, or all of them when class is
// empty.
func (w *World) Query(class string) models.Iterator[*models.Entity] {
	if class == "" {
		return models.NewSliceIterator(w.entities)
	}
	var match []*models.Entity
	for _, e := range w.entities {
		if e.ClassName() == class {
			match = append(match, e)
		}
	}
	return models.NewSliceIterator(match)
}

// Clear removes every entity, newest first.
func (w *World) Clear() {
	for i := len(w.entities) - 1; i >= 0; i-- {
		e := w.entities[i]
		e.Goodbye()
		delete(w.byID, e.ID())
	}
	w.entities = nil
}
