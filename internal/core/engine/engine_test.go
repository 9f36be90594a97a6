package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majo33/atom/internal/core/components"
	"github.com/majo33/atom/internal/core/events/bus"
	"github.com/majo33/atom/internal/core/models"
	"github.com/majo33/atom/internal/core/observability/log"
	"github.com/majo33/atom/internal/core/resources"
)

func TestNewRegistersBuiltins(t *testing.T) {
	res := resources.NewService()
	b := bus.New()
	e, err := New(res, log.NewNop(), b)
	require.NoError(t, err)

	assert.Same(t, res, e.Resources())
	assert.Equal(t, b, e.Bus())

	info, ok := e.Types().ByName("render")
	require.True(t, ok)
	assert.Equal(t, components.TypeRender, info.ID)

	ent := models.NewEntity(e, models.WithClass("crate"))
	require.NoError(t, ent.AddComponent(components.NewRender()))
	assert.Equal(t, "crate", ent.ClassName())
}
