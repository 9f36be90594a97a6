package resources

import "fmt"

// Releaser is implemented by payloads that own backend objects. The previous
// payload is released when a reload swaps in a new one.
type Releaser interface {
	Release()
}

// Resource is a named, cached artifact. Its identity and name never change;
// reloads swap the payload in place so every handle observes the new data.
type Resource struct {
	name      string
	sources   []string
	loader    Loader
	data      any
	version   uint64
	published bool
}

// New starts building a resource. Loaders record dependencies on it before
// returning it to the Service.
func New(name string, data any) *Resource {
	return &Resource{name: name, data: data}
}

func (r *Resource) Name() string { return r.name }

// Data returns the current payload. Do not keep it across a reload boundary;
// keep the Resource or a Handle instead.
func (r *Resource) Data() any { return r.data }

// Sources lists everything that can invalidate this resource: names of
// upstream resources and "file:" names, transitively closed.
func (r *Resource) Sources() []string {
	out := make([]string, len(r.sources))
	copy(out, r.sources)
	return out
}

// DependsOn reports whether source is among the recorded sources.
func (r *Resource) DependsOn(source string) bool {
	for _, s := range r.sources {
		if s == source {
			return true
		}
	}
	return false
}

func (r *Resource) Loader() Loader { return r.loader }

// Version counts successful reloads.
func (r *Resource) Version() uint64 { return r.version }

// DependOnResource records other and everything other depends on.
func (r *Resource) DependOnResource(other *Resource) {
	r.mustBeBuilding()
	r.addSource(other.name)
	for _, s := range other.sources {
		r.addSource(s)
	}
}

// DependOnFile records a raw file path.
func (r *Resource) DependOnFile(path string) {
	r.mustBeBuilding()
	r.addSource(MakeName(TagFile, path))
}

func (r *Resource) DependOnFiles(paths ...string) {
	for _, p := range paths {
		r.DependOnFile(p)
	}
}

func (r *Resource) addSource(s string) {
	if s == r.name || r.DependsOn(s) {
		return
	}
	r.sources = append(r.sources, s)
}

func (r *Resource) mustBeBuilding() {
	if r.published {
		panic(fmt.Sprintf("resources: dependency list of %q is fixed once published", r.name))
	}
}

// adopt takes over the payload and sources of a freshly built twin.
func (r *Resource) adopt(fresh *Resource) {
	old := r.data
	r.data = fresh.data
	r.sources = fresh.sources
	r.version++
	if rel, ok := old.(Releaser); ok && old != r.data {
		rel.Release()
	}
}
