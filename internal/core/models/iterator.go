package models

// Iterator walks a snapshot of items. The snapshot is taken when the
// iterator is created, so the source may change while iterating.
type Iterator[T any] interface {
	Next() bool
	Item() T
	Count() int
	ToSlice() []T
}

type sliceIterator[T any] struct {
	items []T
	pos   int
}

// NewSliceIterator iterates over a copy of items.
func NewSliceIterator[T any](items []T) Iterator[T] {
	cp := make([]T, len(items))
	copy(cp, items)
	return &sliceIterator[T]{items: cp, pos: -1}
}

func (it *sliceIterator[T]) Next() bool {
	if it.pos+1 >= len(it.items) {
		it.pos = len(it.items)
		return false
	}
	it.pos++
	return true
}

func (it *sliceIterator[T]) Item() T {
	if it.pos < 0 || it.pos >= len(it.items) {
		var zero T
		return zero
	}
	return it.items[it.pos]
}

func (it *sliceIterator[T]) Count() int { return len(it.items) }

func (it *sliceIterator[T]) ToSlice() []T {
	out := make([]T, len(it.items))
	copy(out, it.items)
	return out
}
