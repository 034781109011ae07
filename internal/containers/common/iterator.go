package common

import (
	"iter"
)

// SnapshotIterator iterates over a private copy of the elements a container had when the iterator
// was created; mutating the container during the iteration has no effect on it.
type SnapshotIterator[T any] struct {
	index    int
	elements []T
}

// NewSnapshotIterator creates an iterator over elements, the caller should not retain the slice.
func NewSnapshotIterator[T any](elements []T) *SnapshotIterator[T] {
	return &SnapshotIterator[T]{
		index:    -1,
		elements: elements,
	}
}

func (it *SnapshotIterator[T]) HasNext() bool {
	return it.index < len(it.elements)-1
}

func (it *SnapshotIterator[T]) Next() bool {
	if !it.HasNext() {
		return false
	}
	it.index++
	return true
}

func (it *SnapshotIterator[T]) Value() T {
	return it.elements[it.index]
}

func (it *SnapshotIterator[T]) Index() int {
	return it.index
}

// Reset moves the iterator back before the first element.
func (it *SnapshotIterator[T]) Reset() {
	it.index = -1
}

// SnapshotSeq returns a sequence that calls snapshot each time an iteration starts and yields the copied
// elements. The sequence can be iterated over any number of times.
func SnapshotSeq[T any](snapshot func() []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, e := range snapshot() {
			if !yield(e) {
				return
			}
		}
	}
}

// IndexedSnapshotSeq is like SnapshotSeq but also yields the position of each element.
func IndexedSnapshotSeq[T any](snapshot func() []T) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, e := range snapshot() {
			if !yield(i, e) {
				return
			}
		}
	}
}
