// Package seqcoll implements Sequence, an ordered container whose structural mutations are announced to
// before callbacks that can cancel them and to after callbacks once committed.
package seqcoll

import (
	"iter"

	"github.com/inoxlang/obscoll/internal/containers/common"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"
)

// A Sequence is an index-addressable container that preserves insertion order. Every insertion,
// removal and replacement goes through a two-phase pipeline: the before callbacks are called with a
// mutable request, then if no callback cancelled it the change is applied and the after callbacks
// are called.
//
// Sequence is not thread safe and should only be used by one goroutine. Callbacks are called in-line
// and are allowed to mutate the sequence.
type Sequence[T comparable] struct {
	elements []T
	pipeline *common.Pipeline[T]
}

type SequenceConfig struct {
	common.Config

	// Capacity is the initial capacity of the backing store, it should not be negative.
	Capacity int
}

func New[T comparable]() *Sequence[T] {
	return &Sequence[T]{
		pipeline: common.NewPipeline[T](common.DefaultConfig()),
	}
}

func NewWithCapacity[T comparable](capacity int) (*Sequence[T], error) {
	return NewWithConfig[T](SequenceConfig{
		Config:   common.DefaultConfig(),
		Capacity: capacity,
	})
}

func NewWithConfig[T comparable](config SequenceConfig) (*Sequence[T], error) {
	if config.Capacity < 0 {
		return nil, common.FmtInvalidArgument("capacity", "negative value")
	}

	return &Sequence[T]{
		elements: make([]T, 0, config.Capacity),
		pipeline: common.NewPipeline[T](config.Config),
	}, nil
}

func (s *Sequence[T]) Logger() zerolog.Logger {
	return s.pipeline.Logger()
}

func (s *Sequence[T]) Len() int {
	return len(s.elements)
}

func (s *Sequence[T]) Capacity() int {
	return cap(s.elements)
}

// SetCapacity reallocates the backing store so that it can hold capacity elements without growing.
// A capacity lower than the length is an invalid argument.
func (s *Sequence[T]) SetCapacity(capacity int) error {
	if capacity < len(s.elements) {
		return common.FmtInvalidArgument("capacity", "lower than the length")
	}
	if capacity == cap(s.elements) {
		return nil
	}
	elements := make([]T, len(s.elements), capacity)
	copy(elements, s.elements)
	s.elements = elements
	return nil
}

// TrimExcess sets the capacity to the length.
func (s *Sequence[T]) TrimExcess() {
	s.elements = slices.Clip(s.elements)
}

func (s *Sequence[T]) At(index int) (T, error) {
	if index < 0 || index >= len(s.elements) {
		var zero T
		return zero, common.FmtIndexOutOfRange(index, len(s.elements))
	}
	return s.elements[index], nil
}

// Set replaces the element at index, see Replace.
func (s *Sequence[T]) Set(index int, item T) error {
	_, err := s.Replace(index, item)
	return err
}

func (s *Sequence[T]) IndexOf(item T) int {
	return slices.Index(s.elements, item)
}

func (s *Sequence[T]) Contains(item T) bool {
	return s.IndexOf(item) >= 0
}

// ToSlice returns a copy of the elements.
func (s *Sequence[T]) ToSlice() []T {
	return slices.Clone(s.elements)
}

// CopyTo copies the elements to dst, starting at dst[index]. It returns the number of copied elements.
func (s *Sequence[T]) CopyTo(dst []T, index int) (int, error) {
	if index < 0 || index > len(dst) {
		return 0, common.FmtIndexOutOfRange(index, len(dst))
	}
	if len(dst)-index < len(s.elements) {
		return 0, common.FmtInvalidArgument("dst", "not enough space")
	}
	return copy(dst[index:], s.elements), nil
}

// All returns a sequence of the positions and elements; each iteration works on the elements the
// Sequence has when the iteration starts.
func (s *Sequence[T]) All() iter.Seq2[int, T] {
	return common.IndexedSnapshotSeq(s.ToSlice)
}

func (s *Sequence[T]) Values() iter.Seq[T] {
	return common.SnapshotSeq(s.ToSlice)
}

func (s *Sequence[T]) Iterator() *common.SnapshotIterator[T] {
	return common.NewSnapshotIterator(s.ToSlice())
}

func (s *Sequence[T]) OnBeforeAdd(fn common.BeforeCallback[T]) common.CallbackHandle {
	return s.pipeline.AddBeforeCallback(common.InsertElem, fn)
}

func (s *Sequence[T]) OnAfterAdd(fn common.AfterCallback[T]) common.CallbackHandle {
	return s.pipeline.AddAfterCallback(common.InsertElem, fn)
}

// OnBeforeRemove registers a callback called before every removal, including the removals performed by
// Clear and RemoveAll.
func (s *Sequence[T]) OnBeforeRemove(fn common.BeforeCallback[T]) common.CallbackHandle {
	return s.pipeline.AddBeforeCallback(common.RemoveElem, fn)
}

func (s *Sequence[T]) OnAfterRemove(fn common.AfterCallback[T]) common.CallbackHandle {
	return s.pipeline.AddAfterCallback(common.RemoveElem, fn)
}

func (s *Sequence[T]) OnBeforeReplace(fn common.BeforeCallback[T]) common.CallbackHandle {
	return s.pipeline.AddBeforeCallback(common.ReplaceElem, fn)
}

func (s *Sequence[T]) OnAfterReplace(fn common.AfterCallback[T]) common.CallbackHandle {
	return s.pipeline.AddAfterCallback(common.ReplaceElem, fn)
}

func (s *Sequence[T]) RemoveCallback(handle common.CallbackHandle) bool {
	return s.pipeline.RemoveCallback(handle)
}

func (s *Sequence[T]) RemoveCallbacks() {
	s.pipeline.RemoveCallbacks()
}
