// Package engine binds the component type registry, the resource service,
// the logger and the event bus into the models.Core every entity is
// created with.
package engine

import (
	"github.com/majo33/atom/internal/core/components"
	"github.com/majo33/atom/internal/core/events/bus"
	"github.com/majo33/atom/internal/core/models"
	"github.com/majo33/atom/internal/core/observability/log"
	"github.com/majo33/atom/internal/core/resources"
)

var _ models.Core = (*Engine)(nil)

type Engine struct {
	types     *models.TypeRegistry
	resources *resources.Service
	log       log.Log
	bus       bus.EventBus
}

// New builds an engine with every built-in component type registered.
func New(res *resources.Service, logger log.Log, b bus.EventBus) (*Engine, error) {
	types := models.NewTypeRegistry()
	if err := components.RegisterBuiltins(types); err != nil {
		return nil, err
	}
	return &Engine{types: types, resources: res, log: logger, bus: b}, nil
}

func (e *Engine) Types() *models.TypeRegistry   { return e.types }
func (e *Engine) Resources() *resources.Service { return e.resources }
func (e *Engine) Log() log.Log                  { return e.log }
func (e *Engine) Bus() bus.EventBus             { return e.bus }
