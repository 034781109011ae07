package seqcoll

import (
	"github.com/inoxlang/obscoll/internal/containers/common"
	"golang.org/x/exp/slices"
)

// Add appends item, see Insert.
func (s *Sequence[T]) Add(item T) (index int, added bool, err error) {
	req := &common.Request[T]{
		Kind:  common.AddElem,
		Index: common.APPEND_INDEX,
		Item:  item,
	}
	return s.insert(req)
}

// Insert inserts item at index, common.APPEND_INDEX appends it. Before callbacks can change the item and
// the index or cancel the insertion. The index is only checked after the before callbacks have been
// called, an invalid index results in an error and the after callbacks are not called.
// Insert returns the position of the inserted element; if the insertion is cancelled the returned index
// is 0 and added is false.
func (s *Sequence[T]) Insert(index int, item T) (int, bool, error) {
	req := &common.Request[T]{
		Kind:  common.InsertElem,
		Index: index,
		Item:  item,
	}
	return s.insert(req)
}

func (s *Sequence[T]) insert(req *common.Request[T]) (int, bool, error) {
	res, ok, err := s.pipeline.Run(req, s.applyInsertion)
	if !ok {
		return 0, false, err
	}
	return res.Index(), true, nil
}

func (s *Sequence[T]) applyInsertion(req *common.Request[T]) (common.Result[T], error) {
	index := req.Index

	switch {
	case index == common.APPEND_INDEX:
		index = len(s.elements)
	case index < 0 || index > len(s.elements):
		return common.Result[T]{}, common.FmtInsertionIndexOutOfRange(index, len(s.elements))
	}

	s.elements = slices.Insert(s.elements, index, req.Item)
	return common.NewAdditionResult(req.Kind, index, req.Item), nil
}

// AddRange appends the items one by one, each insertion is announced to the callbacks. It stops at the
// first error and returns the number of appended items.
func (s *Sequence[T]) AddRange(items []T) (added int, err error) {
	for _, item := range items {
		_, ok, err := s.Add(item)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}
	return
}

// Replace writes item at index. Before callbacks can change the written item or cancel the replacement.
func (s *Sequence[T]) Replace(index int, item T) (replaced bool, err error) {
	if index < 0 || index >= len(s.elements) {
		return false, common.FmtIndexOutOfRange(index, len(s.elements))
	}

	req := &common.Request[T]{
		Kind:    common.ReplaceElem,
		Index:   index,
		OldItem: s.elements[index],
		Item:    item,
	}

	_, replaced, err = s.pipeline.Run(req, func(req *common.Request[T]) (common.Result[T], error) {
		//a before callback may have removed elements
		if index >= len(s.elements) {
			return common.Result[T]{}, common.FmtIndexOutOfRange(index, len(s.elements))
		}
		old := s.elements[index]
		s.elements[index] = req.Item
		return common.NewReplacementResult(index, old, req.Item), nil
	})
	return
}

// Remove removes the first element equal to item. The before callbacks are called even if item is not
// present, in that case the request's index is -1. Remove returns true if an element was removed.
func (s *Sequence[T]) Remove(item T) bool {
	return s.removeItem(common.RemoveElem, item)
}

func (s *Sequence[T]) removeItem(kind common.MutationKind, item T) bool {
	req := &common.Request[T]{
		Kind:    kind,
		Index:   s.IndexOf(item),
		OldItem: item,
	}

	_, removed, _ := s.pipeline.Run(req, func(req *common.Request[T]) (common.Result[T], error) {
		//the element may have been removed or moved by a before callback
		index := s.IndexOf(item)
		if index < 0 {
			return common.Result[T]{}, common.ErrRejectedByStore
		}
		return s.deleteAt(kind, index), nil
	})
	return removed
}

// RemoveAt removes the element at index, it returns false if the removal was cancelled or if the
// element is no longer there once the before callbacks have been called.
func (s *Sequence[T]) RemoveAt(index int) (removed bool, err error) {
	if index < 0 || index >= len(s.elements) {
		return false, common.FmtIndexOutOfRange(index, len(s.elements))
	}

	req := &common.Request[T]{
		Kind:    common.RemoveElem,
		Index:   index,
		OldItem: s.elements[index],
	}

	_, removed, err = s.pipeline.Run(req, func(req *common.Request[T]) (common.Result[T], error) {
		if index >= len(s.elements) {
			return common.Result[T]{}, common.ErrRejectedByStore
		}
		return s.deleteAt(common.RemoveElem, index), nil
	})
	return
}

func (s *Sequence[T]) deleteAt(kind common.MutationKind, index int) common.Result[T] {
	removed := s.elements[index]
	s.elements = slices.Delete(s.elements, index, index+1)

	var zero T
	s.elements[:len(s.elements)+1][len(s.elements)] = zero //do not retain the removed element

	return common.NewRemovalResult(kind, index, removed)
}

// Clear removes the elements one by one, in order. Each removal is announced to the callbacks and can be
// cancelled: the elements whose removal is cancelled remain in the sequence.
func (s *Sequence[T]) Clear() {
	s.pipeline.RemoveEach(s.ToSlice(), func(e T) bool {
		return s.removeItem(common.ClearElem, e)
	})
}

// RemoveAll removes the elements matching predicate. The matching elements are determined before any
// removal, so elements added by callbacks during the removals are kept. Each removal is announced to
// the callbacks.
//
// RemoveAll returns the length of the sequence after the removals, NOT the number of removed elements.
func (s *Sequence[T]) RemoveAll(predicate func(e T) bool) (int, error) {
	_, err := s.pipeline.RemoveMatching(s.ToSlice(), predicate, func(e T) bool {
		return s.removeItem(common.RemoveElem, e)
	})
	if err != nil {
		return 0, err
	}
	return len(s.elements), nil
}
