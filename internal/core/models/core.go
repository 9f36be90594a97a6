package models

import (
	"github.com/majo33/atom/internal/core/observability/log"
	"github.com/majo33/atom/internal/core/resources"
)

// Core is the engine context every entity is created with.
type Core interface {
	Types() *TypeRegistry
	Resources() *resources.Service
	Log() log.Log
}

// World is the container an entity lives in once added.
type World interface {
	Core() Core
	Entity(id string) (*Entity, bool)
}
