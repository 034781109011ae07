package common

import (
	"fmt"
)

const (
	// UNSPECIFIED_INDEX is the index of a request or result with no positional meaning.
	// On a sequence it is also the append sentinel.
	UNSPECIFIED_INDEX = -1
	APPEND_INDEX      = UNSPECIFIED_INDEX
)

var (
	MUTATION_KIND_NAMES = [...]string{
		AddElem:     "add-elem",
		InsertElem:  "insert-elem",
		RemoveElem:  "remove-elem",
		ReplaceElem: "replace-elem",
		ClearElem:   "clear-elem",
	}
)

type MutationKind int

const (
	AddElem MutationKind = iota
	InsertElem
	RemoveElem
	ReplaceElem
	ClearElem //removal of a single element during a Clear call
)

func (k MutationKind) String() string {
	if k < 0 || int(k) >= len(MUTATION_KIND_NAMES) {
		return fmt.Sprintf("mutation-kind(%d)", int(k))
	}
	return MUTATION_KIND_NAMES[k]
}

// IsAddition returns true for kinds dispatched to the add hooks.
func (k MutationKind) IsAddition() bool {
	return k == AddElem || k == InsertElem
}

// IsRemoval returns true for kinds dispatched to the remove hooks.
func (k MutationKind) IsRemoval() bool {
	return k == RemoveElem || k == ClearElem
}

// A Request describes a proposed change. It is handed by pointer to each "before" callback in turn:
// callbacks may rewrite Item (and Index for insertions) or set Cancel. The container reads the request
// back once the "before" phase is over; it never retains it.
type Request[T any] struct {
	Kind MutationKind

	// Index is the target position, UNSPECIFIED_INDEX if unknown or if the item should be appended.
	Index int

	// OldItem is the element being replaced or removed.
	OldItem T

	// Item is the element being added, inserted or written by a replacement.
	Item T

	Cancel bool
}

// A Result is an immutable description of a committed change.
type Result[T any] struct {
	kind    MutationKind
	index   int
	oldItem T
	item    T
}

func NewAdditionResult[T any](kind MutationKind, index int, item T) Result[T] {
	return Result[T]{kind: kind, index: index, item: item}
}

func NewRemovalResult[T any](kind MutationKind, index int, removed T) Result[T] {
	return Result[T]{kind: kind, index: index, oldItem: removed}
}

func NewReplacementResult[T any](index int, oldItem, newItem T) Result[T] {
	return Result[T]{kind: ReplaceElem, index: index, oldItem: oldItem, item: newItem}
}

func (r Result[T]) Kind() MutationKind {
	return r.kind
}

// Index returns the resolved position of the change, UNSPECIFIED_INDEX for containers without positions.
func (r Result[T]) Index() int {
	return r.index
}

// OldItem returns the removed or overwritten element.
func (r Result[T]) OldItem() T {
	return r.oldItem
}

// Item returns the element that was actually stored.
func (r Result[T]) Item() T {
	return r.item
}

// Affected returns the element the change is about: the removed one for removals, the stored one otherwise.
func (r Result[T]) Affected() T {
	if r.kind.IsRemoval() {
		return r.oldItem
	}
	return r.item
}

func (r Result[T]) String() string {
	switch {
	case r.kind == ReplaceElem:
		return fmt.Sprintf("%s@%d(%v -> %v)", r.kind, r.index, r.oldItem, r.item)
	case r.kind.IsRemoval():
		return fmt.Sprintf("%s@%d(%v)", r.kind, r.index, r.oldItem)
	default:
		return fmt.Sprintf("%s@%d(%v)", r.kind, r.index, r.item)
	}
}
