package common

import (
	"errors"

	"github.com/bits-and-blooms/bitset"
	"github.com/rs/zerolog"
)

// A Pipeline runs the two phases of every structural mutation of a container: the before callbacks are
// called, then if the request was not cancelled the change is applied and the after callbacks are called.
// It also owns the callbacks of the container.
//
// Pipeline is not thread safe: it is meant to be used by a single goroutine, callbacks are called in-line
// and may mutate the container again.
type Pipeline[T any] struct {
	additions    Hooks[T]
	removals     Hooks[T]
	replacements Hooks[T]

	nextHandle CallbackHandle
	logger     zerolog.Logger
}

func NewPipeline[T any](config Config) *Pipeline[T] {
	return &Pipeline[T]{
		nextHandle: FIRST_VALID_CALLBACK_HANDLE,
		logger:     config.logger(),
	}
}

func (p *Pipeline[T]) Logger() zerolog.Logger {
	return p.logger
}

func (p *Pipeline[T]) hooksOf(kind MutationKind) *Hooks[T] {
	switch {
	case kind.IsAddition():
		return &p.additions
	case kind.IsRemoval():
		return &p.removals
	case kind == ReplaceElem:
		return &p.replacements
	default:
		panic(ErrUnreachable)
	}
}

// Hooks returns the hooks the requests of the given kind are dispatched to.
func (p *Pipeline[T]) Hooks(kind MutationKind) *Hooks[T] {
	return p.hooksOf(kind)
}

// AddBeforeCallback registers fn for the family of kind (additions, removals or replacements).
// A nil function is ignored and an invalid handle is returned.
func (p *Pipeline[T]) AddBeforeCallback(kind MutationKind, fn BeforeCallback[T]) (handle CallbackHandle) {
	if fn == nil {
		return
	}
	handle = p.newHandle()
	p.hooksOf(kind).before.add(fn, handle)
	return
}

// AddAfterCallback registers fn for the family of kind (additions, removals or replacements).
// A nil function is ignored and an invalid handle is returned.
func (p *Pipeline[T]) AddAfterCallback(kind MutationKind, fn AfterCallback[T]) (handle CallbackHandle) {
	if fn == nil {
		return
	}
	handle = p.newHandle()
	p.hooksOf(kind).after.add(fn, handle)
	return
}

func (p *Pipeline[T]) newHandle() CallbackHandle {
	handle := p.nextHandle
	p.nextHandle++
	return handle
}

// RemoveCallback unregisters the callback with the given handle, it returns false if there is none.
func (p *Pipeline[T]) RemoveCallback(handle CallbackHandle) bool {
	if !handle.Valid() {
		return false
	}
	return p.additions.removeCallback(handle) ||
		p.removals.removeCallback(handle) ||
		p.replacements.removeCallback(handle)
}

func (p *Pipeline[T]) RemoveCallbacks() {
	p.additions.removeAll()
	p.removals.removeAll()
	p.replacements.removeAll()
}

// An ApplyFunc applies a request that was not cancelled to the backing store. It returns ErrRejectedByStore
// if the store did not perform the change.
type ApplyFunc[T any] func(req *Request[T]) (Result[T], error)

// Run executes a mutation. The returned boolean is true if the change was committed; it is false with a nil
// error if the request was cancelled or rejected by the store. The after callbacks are only called for
// committed changes.
func (p *Pipeline[T]) Run(req *Request[T], apply ApplyFunc[T]) (Result[T], bool, error) {
	hooks := p.hooksOf(req.Kind)

	if hooks.DispatchBefore(req) {
		p.logger.Debug().Stringer("kind", req.Kind).Int("index", req.Index).Msg("mutation cancelled")
		return Result[T]{}, false, nil
	}

	res, err := apply(req)
	if err != nil {
		if errors.Is(err, ErrRejectedByStore) {
			p.logger.Debug().Stringer("kind", req.Kind).Int("index", req.Index).Msg("mutation rejected by store")
			return Result[T]{}, false, nil
		}
		return Result[T]{}, false, err
	}

	hooks.DispatchAfter(res)
	return res, true, nil
}

// RemoveEach calls remove for every element of snapshot, in order. The snapshot must be a private
// copy of the container's elements: remove dispatches events whose callbacks may mutate the container.
func (p *Pipeline[T]) RemoveEach(snapshot []T, remove func(e T) bool) (removed int) {
	for _, e := range snapshot {
		if remove(e) {
			removed++
		}
	}

	p.logger.Debug().Int("snapshot-size", len(snapshot)).Int("removed", removed).Msg("clear")
	return
}

// RemoveMatching decides which elements of snapshot match predicate before any removal happens, then
// calls remove for each of them in their original relative order. Elements added by callbacks during
// the removals are never considered.
func (p *Pipeline[T]) RemoveMatching(snapshot []T, predicate func(e T) bool, remove func(e T) bool) (removed int, err error) {
	if predicate == nil {
		return 0, ErrNilPredicate
	}

	plan := PlanRemovals(snapshot, predicate)

	for i, ok := plan.NextSet(0); ok; i, ok = plan.NextSet(i + 1) {
		if remove(snapshot[i]) {
			removed++
		}
	}

	p.logger.Debug().
		Int("snapshot-size", len(snapshot)).
		Uint("matched", plan.Count()).
		Int("removed", removed).
		Msg("remove matching")
	return removed, nil
}

// PlanRemovals returns the set of positions in snapshot whose element matches predicate.
func PlanRemovals[T any](snapshot []T, predicate func(e T) bool) *bitset.BitSet {
	plan := bitset.New(uint(len(snapshot)))
	for i, e := range snapshot {
		if predicate(e) {
			plan.Set(uint(i))
		}
	}
	return plan
}
