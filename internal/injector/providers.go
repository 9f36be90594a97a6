package injector

import (
	"io/fs"
	"os"

	"github.com/google/wire"

	"github.com/majo33/atom/internal/app"
	"github.com/majo33/atom/internal/config"
	"github.com/majo33/atom/internal/core/engine"
	"github.com/majo33/atom/internal/core/events/bus"
	"github.com/majo33/atom/internal/core/filewatch"
	"github.com/majo33/atom/internal/core/observability/log"
	"github.com/majo33/atom/internal/core/resources"
	"github.com/majo33/atom/internal/core/world"
	"github.com/majo33/atom/internal/devserver"
)

// ProviderSet builds an *app.App from a *config.Config.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	bus.New,
	ProvideAssets,
	ProvideResources,
	engine.New,
	ProvideWorld,
	filewatch.NewPoller,
	ProvideDevServer,
	app.New,
)

func ProvideLogger(cfg *config.Config) (*log.Logger, func(), error) {
	l, err := log.New(log.ParseLevel(cfg.Logging.Level), log.WithEncoding(cfg.Logging.Format))
	if err != nil {
		return nil, nil, err
	}
	return l, func() { _ = l.Sync() }, nil
}

// ProvideAssets roots every resource path at the configured directory.
func ProvideAssets(cfg *config.Config) fs.FS {
	return os.DirFS(cfg.Resources.Root)
}

func ProvideResources(cfg *config.Config, fsys fs.FS, l log.Log, b bus.EventBus) *resources.Service {
	return resources.NewService(
		resources.WithFS(fsys),
		resources.WithPaths(cfg.Resources.Paths()),
		resources.WithLogger(l),
		resources.WithBus(b),
	)
}

func ProvideWorld(e *engine.Engine) *world.World {
	return world.New(e)
}

// ProvideDevServer returns nil when the dev server is disabled.
func ProvideDevServer(cfg *config.Config, b bus.EventBus, l log.Log) (*devserver.Server, func()) {
	if !cfg.DevServer.Enabled {
		return nil, func() {}
	}
	s := devserver.New(b, devserver.WithLogger(l))
	return s, s.Close
}
