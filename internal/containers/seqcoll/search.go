package seqcoll

import (
	"github.com/inoxlang/obscoll/internal/containers/common"
)

// FindIndex returns the index of the first element matching predicate, or -1.
func (s *Sequence[T]) FindIndex(predicate func(e T) bool) (int, error) {
	return s.FindIndexIn(0, len(s.elements), predicate)
}

// FindIndexFrom searches forward from start to the end of the sequence.
func (s *Sequence[T]) FindIndexFrom(start int, predicate func(e T) bool) (int, error) {
	if start < 0 || start > len(s.elements) {
		return -1, common.FmtIndexOutOfRange(start, len(s.elements))
	}
	return s.FindIndexIn(start, len(s.elements)-start, predicate)
}

// FindIndexIn searches forward in the window of count elements starting at start. A start outside of
// [0, length] is an index out of range error, a window ending after the last element is an invalid argument.
func (s *Sequence[T]) FindIndexIn(start int, count int, predicate func(e T) bool) (int, error) {
	if predicate == nil {
		return -1, common.ErrNilPredicate
	}
	if start < 0 || start > len(s.elements) {
		return -1, common.FmtIndexOutOfRange(start, len(s.elements))
	}
	if count < 0 || start > len(s.elements)-count {
		return -1, common.FmtInvalidArgument("count", "window exceeds the sequence")
	}

	end := start + count
	for i := start; i < end; i++ {
		if predicate(s.elements[i]) {
			return i, nil
		}
	}
	return -1, nil
}

// FindLastIndex returns the index of the last element matching predicate, or -1.
func (s *Sequence[T]) FindLastIndex(predicate func(e T) bool) (int, error) {
	return s.FindLastIndexIn(len(s.elements)-1, len(s.elements), predicate)
}

// FindLastIndexFrom searches backward from start to the beginning of the sequence.
func (s *Sequence[T]) FindLastIndexFrom(start int, predicate func(e T) bool) (int, error) {
	return s.FindLastIndexIn(start, start+1, predicate)
}

// FindLastIndexIn searches backward in the window of count elements ending at start (included).
// In an empty sequence the only valid start is -1.
func (s *Sequence[T]) FindLastIndexIn(start int, count int, predicate func(e T) bool) (int, error) {
	if predicate == nil {
		return -1, common.ErrNilPredicate
	}

	if len(s.elements) == 0 {
		if start != -1 {
			return -1, common.FmtIndexOutOfRange(start, 0)
		}
	} else if start < 0 || start >= len(s.elements) {
		return -1, common.FmtIndexOutOfRange(start, len(s.elements))
	}

	if count < 0 || start-count+1 < 0 {
		return -1, common.FmtInvalidArgument("count", "window exceeds the sequence")
	}

	end := start - count
	for i := start; i > end; i-- {
		if predicate(s.elements[i]) {
			return i, nil
		}
	}
	return -1, nil
}
