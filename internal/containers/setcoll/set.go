package setcoll

import (
	"iter"

	"github.com/emirpasic/gods/sets/linkedhashset"
	"github.com/inoxlang/obscoll/internal/containers/common"
	"github.com/rs/zerolog"
)

// A Set is an unordered container of unique elements whose additions and removals are announced to
// before callbacks that can cancel them and to after callbacks once committed. Elements have no
// position: the indexes of requests and results are always common.UNSPECIFIED_INDEX.
//
// Enumeration follows insertion order but callers should not rely on it.
//
// Set is not thread safe and should only be used by one goroutine. Callbacks are called in-line and are
// allowed to mutate the set.
type Set[T comparable] struct {
	elements *linkedhashset.Set
	pipeline *common.Pipeline[T]
}

func NewSet[T comparable](elements ...T) *Set[T] {
	return NewSetWithConfig(common.DefaultConfig(), elements...)
}

// NewSetWithConfig creates a set containing elements, no callbacks are called for the initial elements.
func NewSetWithConfig[T comparable](config common.Config, elements ...T) *Set[T] {
	set := &Set[T]{
		elements: linkedhashset.New(),
		pipeline: common.NewPipeline[T](config),
	}
	for _, e := range elements {
		set.elements.Add(e)
	}
	return set
}

func (s *Set[T]) Logger() zerolog.Logger {
	return s.pipeline.Logger()
}

func (s *Set[T]) Len() int {
	return s.elements.Size()
}

func (s *Set[T]) Contains(item T) bool {
	return s.elements.Contains(item)
}

// ToSlice returns a copy of the elements.
func (s *Set[T]) ToSlice() []T {
	values := s.elements.Values()
	slice := make([]T, len(values))
	for i, v := range values {
		slice[i] = castElem[T](v)
	}
	return slice
}

// CopyTo copies the elements to dst, starting at dst[index]. It returns the number of copied elements.
func (s *Set[T]) CopyTo(dst []T, index int) (int, error) {
	if index < 0 || index > len(dst) {
		return 0, common.FmtIndexOutOfRange(index, len(dst))
	}
	if len(dst)-index < s.Len() {
		return 0, common.FmtInvalidArgument("dst", "not enough space")
	}
	return copy(dst[index:], s.ToSlice()), nil
}

// All returns a sequence of the elements; each iteration works on the elements the set has when the
// iteration starts.
func (s *Set[T]) All() iter.Seq[T] {
	return common.SnapshotSeq(s.ToSlice)
}

func (s *Set[T]) Iterator() *common.SnapshotIterator[T] {
	return common.NewSnapshotIterator(s.ToSlice())
}

func (s *Set[T]) OnBeforeAdd(fn common.BeforeCallback[T]) common.CallbackHandle {
	return s.pipeline.AddBeforeCallback(common.AddElem, fn)
}

func (s *Set[T]) OnAfterAdd(fn common.AfterCallback[T]) common.CallbackHandle {
	return s.pipeline.AddAfterCallback(common.AddElem, fn)
}

func (s *Set[T]) OnBeforeRemove(fn common.BeforeCallback[T]) common.CallbackHandle {
	return s.pipeline.AddBeforeCallback(common.RemoveElem, fn)
}

func (s *Set[T]) OnAfterRemove(fn common.AfterCallback[T]) common.CallbackHandle {
	return s.pipeline.AddAfterCallback(common.RemoveElem, fn)
}

func (s *Set[T]) RemoveCallback(handle common.CallbackHandle) bool {
	return s.pipeline.RemoveCallback(handle)
}

func (s *Set[T]) RemoveCallbacks() {
	s.pipeline.RemoveCallbacks()
}

// castElem converts a value stored in the backing set, a nil interface value becomes the zero value of T.
func castElem[T any](v any) T {
	e, _ := v.(T)
	return e
}
