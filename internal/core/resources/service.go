// Package resources is the dependency-tracked resource cache. Resources are
// loaded lazily by name through per-kind Loaders, shared by identity and
// reloaded in place when any of their sources change.
package resources

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/majo33/atom/internal/core/audio"
	"github.com/majo33/atom/internal/core/events/bus"
	"github.com/majo33/atom/internal/core/observability/log"
	"github.com/majo33/atom/internal/core/video"
)

// Service owns the cache. It is not safe for concurrent use; drive it from
// the frame loop and feed it change notifications over channels.
type Service struct {
	log     log.Log
	fsys    fs.FS
	paths   Paths
	video   video.Backend
	audio   audio.Backend
	bus     bus.EventBus
	loaders map[string]Loader
	cache   map[string]*Resource
	loading map[string]bool
}

type Option func(*Service)

func WithLogger(l log.Log) Option {
	return func(s *Service) { s.log = l }
}

// WithFS sets the asset root. All paths are slash separated and relative to it.
func WithFS(fsys fs.FS) Option {
	return func(s *Service) { s.fsys = fsys }
}

func WithPaths(p Paths) Option {
	return func(s *Service) { s.paths = p }
}

func WithVideo(b video.Backend) Option {
	return func(s *Service) { s.video = b }
}

func WithAudio(b audio.Backend) Option {
	return func(s *Service) { s.audio = b }
}

// WithBus publishes load and reload outcomes on b.
func WithBus(b bus.EventBus) Option {
	return func(s *Service) { s.bus = b }
}

// NewService builds a Service with every built-in loader registered.
func NewService(opts ...Option) *Service {
	s := &Service{
		log:     log.NewNop(),
		fsys:    os.DirFS("."),
		paths:   DefaultPaths(),
		video:   video.NewHeadless(),
		audio:   audio.NewHeadless(),
		loaders: make(map[string]Loader),
		cache:   make(map[string]*Resource),
		loading: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("resources")

	s.RegisterLoader(TagFile, FileLoader{})
	s.RegisterLoader(TagImage, ImageLoader{})
	s.RegisterLoader(TagTexture, TextureLoader{})
	s.RegisterLoader(TagShader, TechniqueLoader{})
	s.RegisterLoader(TagMaterial, NewMaterialLoader())
	s.RegisterLoader(TagRawMesh, RawMeshLoader{})
	s.RegisterLoader(TagMesh, MeshLoader{})
	s.RegisterLoader(TagBitmapFont, BitmapFontLoader{})
	s.RegisterLoader(TagSound, SoundLoader{})
	s.RegisterLoader(TagMusic, MusicLoader{})
	s.RegisterLoader(TagScript, ScriptLoader{})
	return s
}

// RegisterLoader binds a tag to a loader, replacing any previous binding.
func (s *Service) RegisterLoader(tag string, l Loader) {
	s.loaders[tag] = l
}

// LoaderFor returns the loader bound to tag.
func (s *Service) LoaderFor(tag string) (Loader, bool) {
	l, ok := s.loaders[tag]
	return l, ok
}

func (s *Service) FS() fs.FS            { return s.fsys }
func (s *Service) Paths() Paths         { return s.paths }
func (s *Service) Video() video.Backend { return s.video }
func (s *Service) Audio() audio.Backend { return s.audio }
func (s *Service) Log() log.Log         { return s.log }

// Get returns the cached resource or loads it. Failures are logged and
// reported as absent; they are never cached, so a later Get retries.
func (s *Service) Get(name string) (*Resource, bool) {
	if r, ok := s.cache[name]; ok {
		return r, true
	}
	r, err := s.load(name)
	if err != nil {
		s.log.Error("can't load resource", log.String("resource", name), log.Error(err))
		s.publish(EventLoadFailed, name, err)
		return nil, false
	}
	s.log.Debug("resource loaded", log.String("resource", name), log.Strings("sources", r.sources))
	s.publish(EventLoaded, name, nil)
	return r, true
}

func (s *Service) load(name string) (*Resource, error) {
	tag, base, err := SplitName(name)
	if err != nil {
		return nil, err
	}
	loader, ok := s.loaders[tag]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownTag, tag)
	}
	if s.loading[name] {
		return nil, fmt.Errorf("%w: %s", ErrDependencyCycle, name)
	}
	s.loading[name] = true
	defer delete(s.loading, name)

	r, err := loader.CreateResource(s, base)
	if err != nil {
		return nil, err
	}
	if r == nil || r.name != name {
		return nil, ErrNameMismatch
	}
	r.loader = loader
	r.published = true
	s.cache[name] = r
	return r, nil
}

// Contains reports whether name is cached without loading it.
func (s *Service) Contains(name string) bool {
	_, ok := s.cache[name]
	return ok
}

// Evict drops name from the cache. Holders keep their reference; the next
// Get builds a new resource.
func (s *Service) Evict(name string) bool {
	if _, ok := s.cache[name]; !ok {
		return false
	}
	delete(s.cache, name)
	s.log.Debug("resource evicted", log.String("resource", name))
	return true
}

func (s *Service) Len() int { return len(s.cache) }

// Names lists cached resource names in sorted order.
func (s *Service) Names() []string {
	names := make([]string, 0, len(s.cache))
	for n := range s.cache {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Files lists every file path some cached resource depends on, sorted.
func (s *Service) Files() []string {
	seen := make(map[string]bool)
	prefix := TagFile + Delimiter
	for name, r := range s.cache {
		if strings.HasPrefix(name, prefix) {
			seen[strings.TrimPrefix(name, prefix)] = true
		}
		for _, src := range r.sources {
			if strings.HasPrefix(src, prefix) {
				seen[strings.TrimPrefix(src, prefix)] = true
			}
		}
	}
	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Dependents lists cached resources that name source among their sources,
// sorted by name.
func (s *Service) Dependents(source string) []string {
	var out []string
	for name, r := range s.cache {
		if r.DependsOn(source) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// ReloadReport is the outcome of a change propagation.
type ReloadReport struct {
	Reloaded []string
	Failed   []string
	// Skipped lists dependents not rebuilt because something upstream failed.
	Skipped []string
}

func (r ReloadReport) Empty() bool {
	return len(r.Reloaded) == 0 && len(r.Failed) == 0 && len(r.Skipped) == 0
}

// Reload rebuilds a cached resource and everything depending on it. Cached
// upstream resources it was built from are refreshed first, so a source that
// disappeared fails the reload instead of being read from the cache.
func (s *Service) Reload(name string) (ReloadReport, error) {
	r, ok := s.cache[name]
	if !ok {
		return ReloadReport{}, fmt.Errorf("%w: %s", ErrNotCached, name)
	}
	roots := []string{name}
	for _, src := range r.sources {
		if _, ok := s.cache[src]; ok {
			roots = append(roots, src)
		}
	}
	report, causes := s.propagate(roots...)
	if err, ok := causes[name]; ok {
		return report, fmt.Errorf("reload %s: %w", name, err)
	}
	return report, nil
}

// FileChanged propagates a change of the file at path.
func (s *Service) FileChanged(path string) ReloadReport {
	return s.SourceChanged(MakeName(TagFile, path))
}

// SourceChanged reloads the resource named source, if cached, and every
// resource depending on it. Upstream resources are rebuilt before their
// dependents; when one fails, resources that depend on it keep their
// previous payload and are reported as skipped.
func (s *Service) SourceChanged(source string) ReloadReport {
	report, _ := s.propagate(source)
	return report
}

// propagate rebuilds the cached roots and their dependents. causes maps each
// failed or skipped resource to the error that kept it stale.
func (s *Service) propagate(roots ...string) (ReloadReport, map[string]error) {
	affected := make(map[string]*Resource)
	for _, root := range roots {
		if r, ok := s.cache[root]; ok {
			affected[root] = r
		}
		for name, r := range s.cache {
			if r.DependsOn(root) {
				affected[name] = r
			}
		}
	}

	var report ReloadReport
	causes := make(map[string]error)
	for _, r := range topoSort(affected) {
		if up, ok := brokenUpstream(r, causes); ok {
			causes[r.name] = fmt.Errorf("%w: %s: %w", ErrDependency, up, causes[up])
			report.Skipped = append(report.Skipped, r.name)
			s.log.Debug("reload skipped, upstream failed", log.String("resource", r.name), log.String("upstream", up))
			continue
		}
		if err := s.reload(r); err != nil {
			causes[r.name] = err
			report.Failed = append(report.Failed, r.name)
			continue
		}
		report.Reloaded = append(report.Reloaded, r.name)
	}
	return report, causes
}

func (s *Service) reload(r *Resource) error {
	if r.loader == nil {
		return errors.New("resource has no loader")
	}
	s.loading[r.name] = true
	defer delete(s.loading, r.name)

	if err := r.loader.ReloadResource(s, r); err != nil {
		s.log.Warn("can't reload resource, keeping previous data", log.String("resource", r.name), log.Error(err))
		s.publish(EventReloadFailed, r.name, err)
		return err
	}
	s.log.Info("resource reloaded", log.String("resource", r.name), log.Uint64("version", r.version))
	s.publish(EventReloaded, r.name, nil)
	return nil
}

// brokenUpstream returns the first source of r that failed in this pass.
func brokenUpstream(r *Resource, causes map[string]error) (string, bool) {
	for _, src := range r.sources {
		if _, ok := causes[src]; ok {
			return src, true
		}
	}
	return "", false
}

// topoSort orders the set so every resource comes after the members of the
// set it depends on. Ties break by name for stable output.
func topoSort(set map[string]*Resource) []*Resource {
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)

	order := make([]*Resource, 0, len(set))
	visited := make(map[string]bool, len(set))
	var visit func(r *Resource)
	visit = func(r *Resource) {
		if visited[r.name] {
			return
		}
		visited[r.name] = true
		for _, src := range r.sources {
			if up, ok := set[src]; ok {
				visit(up)
			}
		}
		order = append(order, r)
	}
	for _, n := range names {
		visit(set[n])
	}
	return order
}
