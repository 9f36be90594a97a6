package resources

import "fmt"

// Handle is a typed view of a Resource. It stays valid across reloads and
// always yields the current payload.
type Handle[T any] struct {
	res *Resource
}

// As wraps r when its payload has type T.
func As[T any](r *Resource) (Handle[T], bool) {
	if r == nil {
		return Handle[T]{}, false
	}
	if _, ok := r.data.(T); !ok {
		return Handle[T]{}, false
	}
	return Handle[T]{res: r}, true
}

// Valid reports whether the handle refers to a resource.
func (h Handle[T]) Valid() bool { return h.res != nil }

// Get returns the current payload. Calling Get on an absent handle is a
// programming error.
func (h Handle[T]) Get() T {
	if h.res == nil {
		var zero T
		panic(fmt.Sprintf("resources: Get on absent %T handle", zero))
	}
	return h.res.data.(T)
}

func (h Handle[T]) Resource() *Resource { return h.res }

func (h Handle[T]) Name() string {
	if h.res == nil {
		return ""
	}
	return h.res.name
}
