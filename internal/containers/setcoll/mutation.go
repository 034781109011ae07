package setcoll

import (
	"github.com/inoxlang/obscoll/internal/containers/common"
)

// Add adds item to the set. Before callbacks can change the added item or cancel the addition.
// Add returns false if the addition was cancelled or if the (possibly changed) item was already present,
// the after callbacks are only called when an element is actually added.
func (s *Set[T]) Add(item T) bool {
	req := &common.Request[T]{
		Kind:  common.AddElem,
		Index: common.UNSPECIFIED_INDEX,
		Item:  item,
	}

	_, added, _ := s.pipeline.Run(req, func(req *common.Request[T]) (common.Result[T], error) {
		if s.elements.Contains(req.Item) {
			return common.Result[T]{}, common.ErrRejectedByStore
		}
		s.elements.Add(req.Item)
		return common.NewAdditionResult(common.AddElem, common.UNSPECIFIED_INDEX, req.Item), nil
	})
	return added
}

// AddRange adds the items one by one and returns the number of added items.
func (s *Set[T]) AddRange(items []T) (added int) {
	for _, item := range items {
		if s.Add(item) {
			added++
		}
	}
	return
}

// Remove removes item. The before callbacks are called even if item is not present. Remove returns true
// if the element was removed.
func (s *Set[T]) Remove(item T) bool {
	return s.removeItem(common.RemoveElem, item)
}

func (s *Set[T]) removeItem(kind common.MutationKind, item T) bool {
	req := &common.Request[T]{
		Kind:    kind,
		Index:   common.UNSPECIFIED_INDEX,
		OldItem: item,
	}

	_, removed, _ := s.pipeline.Run(req, func(req *common.Request[T]) (common.Result[T], error) {
		//a before callback may have removed the element
		if !s.elements.Contains(item) {
			return common.Result[T]{}, common.ErrRejectedByStore
		}
		s.elements.Remove(item)
		return common.NewRemovalResult(kind, common.UNSPECIFIED_INDEX, item), nil
	})
	return removed
}

// Clear removes the elements one by one. Each removal is announced to the callbacks and can be
// cancelled: the elements whose removal is cancelled remain in the set.
func (s *Set[T]) Clear() {
	s.pipeline.RemoveEach(s.ToSlice(), func(e T) bool {
		return s.removeItem(common.ClearElem, e)
	})
}

// RemoveAll removes the elements matching predicate. The matching elements are determined before any
// removal, so elements added by callbacks during the removals are kept.
//
// RemoveAll returns the length of the set after the removals, NOT the number of removed elements.
func (s *Set[T]) RemoveAll(predicate func(e T) bool) (int, error) {
	_, err := s.pipeline.RemoveMatching(s.ToSlice(), predicate, func(e T) bool {
		return s.removeItem(common.RemoveElem, e)
	})
	if err != nil {
		return 0, err
	}
	return s.Len(), nil
}
