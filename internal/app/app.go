// Package app runs the frame loop: world ticks, file polling and editor
// requests all execute on one goroutine, so the resource cache never needs
// locking.
package app

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/majo33/atom/internal/config"
	"github.com/majo33/atom/internal/core/engine"
	"github.com/majo33/atom/internal/core/events/bus"
	"github.com/majo33/atom/internal/core/filewatch"
	"github.com/majo33/atom/internal/core/observability/log"
	"github.com/majo33/atom/internal/core/resources"
	"github.com/majo33/atom/internal/core/world"
	"github.com/majo33/atom/internal/devserver"
)

type App struct {
	cfg    *config.Config
	log    log.Log
	bus    bus.EventBus
	res    *resources.Service
	engine *engine.Engine
	world  *world.World
	poller *filewatch.Poller
	dev    *devserver.Server
}

// New assembles an App. dev may be nil when the dev server is disabled.
func New(
	cfg *config.Config,
	l log.Log,
	b bus.EventBus,
	res *resources.Service,
	eng *engine.Engine,
	w *world.World,
	poller *filewatch.Poller,
	dev *devserver.Server,
) *App {
	return &App{
		cfg:    cfg,
		log:    l.Named("app"),
		bus:    b,
		res:    res,
		engine: eng,
		world:  w,
		poller: poller,
		dev:    dev,
	}
}

func (a *App) Config() *config.Config        { return a.cfg }
func (a *App) Resources() *resources.Service { return a.res }
func (a *App) Engine() *engine.Engine        { return a.engine }
func (a *App) World() *world.World           { return a.world }
func (a *App) DevServer() *devserver.Server  { return a.dev }

// LoadScene adds the configured scene, if any.
func (a *App) LoadScene() error {
	if a.cfg.World.Scene == "" {
		return nil
	}
	n, err := a.world.LoadSceneFile(a.res.FS(), a.cfg.World.Scene)
	if err != nil {
		return err
	}
	a.log.Info("scene loaded", log.String("scene", a.cfg.World.Scene), log.Int("entities", n))
	a.poller.Sync(a.res.Files())
	return nil
}

// Run drives the frame loop, and the dev server when enabled, until ctx is
// done or one of them fails.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	if a.dev != nil {
		g.Go(func() error {
			return a.dev.ListenAndServe(ctx, a.cfg.DevServer.Address)
		})
	}
	g.Go(func() error {
		return a.loop(ctx)
	})
	return g.Wait()
}

func (a *App) loop(ctx context.Context) error {
	tick := time.NewTicker(a.cfg.World.TickRate)
	defer tick.Stop()

	var watch <-chan time.Time
	if a.cfg.Watch.Enabled {
		t := time.NewTicker(a.cfg.Watch.Interval)
		defer t.Stop()
		watch = t.C
	}
	var requests <-chan devserver.Request
	if a.dev != nil {
		requests = a.dev.Requests()
	}

	a.poller.Sync(a.res.Files())
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			a.world.Clear()
			a.log.Info("frame loop stopped")
			return nil
		case now := <-tick.C:
			a.Tick(now.Sub(last))
			last = now
		case <-watch:
			a.PollFiles()
		case req := <-requests:
			a.Handle(req)
		}
	}
}

// Tick advances the world by dt.
func (a *App) Tick(dt time.Duration) {
	a.world.Update(dt)
}

// PollFiles reloads everything depending on files changed since the last
// poll and starts tracking files referenced by newly loaded resources.
func (a *App) PollFiles() []resources.ReloadReport {
	var reports []resources.ReloadReport
	for _, path := range a.poller.Poll() {
		reports = append(reports, a.fileChanged(path))
	}
	a.poller.Sync(a.res.Files())
	return reports
}

// Handle executes one editor request.
func (a *App) Handle(req devserver.Request) {
	switch req.Op {
	case devserver.OpFileChanged:
		a.fileChanged(req.Path)
	case devserver.OpReload:
		report, err := a.res.Reload(req.Name)
		if err != nil {
			a.log.Warn("reload request failed", log.String("resource", req.Name),
				log.String("client", req.ClientID), log.Error(err))
			return
		}
		a.logReport(req.Name, report)
	}
}

func (a *App) fileChanged(path string) resources.ReloadReport {
	report := a.res.FileChanged(path)
	a.logReport(path, report)
	return report
}

func (a *App) logReport(source string, r resources.ReloadReport) {
	if r.Empty() {
		return
	}
	a.log.Info("change propagated",
		log.String("source", source),
		log.Strings("reloaded", r.Reloaded),
		log.Strings("failed", r.Failed),
		log.Strings("skipped", r.Skipped),
	)
}
