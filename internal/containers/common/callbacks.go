package common

import (
	"golang.org/x/exp/slices"
)

const (
	FIRST_VALID_CALLBACK_HANDLE = CallbackHandle(1)
)

// A CallbackHandle identifies a registered callback, it is unique among all the callbacks of a container.
type CallbackHandle int

func (h CallbackHandle) Valid() bool {
	return h >= FIRST_VALID_CALLBACK_HANDLE
}

// BeforeCallback is called before a mutation is applied, it can rewrite the request or cancel it.
type BeforeCallback[T any] func(req *Request[T])

// AfterCallback is called after a mutation has been committed.
type AfterCallback[T any] func(res Result[T])

// callbackList is a thread unsafe list of callbacks kept in registration order.
type callbackList[F any] struct {
	callbacks []registeredCallback[F]
}

type registeredCallback[F any] struct {
	fn     F
	handle CallbackHandle
}

func (l *callbackList[F]) add(fn F, handle CallbackHandle) {
	l.callbacks = append(l.callbacks, registeredCallback[F]{fn: fn, handle: handle})
}

func (l *callbackList[F]) remove(handle CallbackHandle) bool {
	index := slices.IndexFunc(l.callbacks, func(c registeredCallback[F]) bool {
		return c.handle == handle
	})
	if index < 0 {
		return false
	}
	l.callbacks = slices.Delete(l.callbacks, index, index+1)
	return true
}

func (l *callbackList[F]) len() int {
	return len(l.callbacks)
}

// functions returns a copy of the registered functions: a callback that registers or removes
// callbacks does not affect the dispatch in progress.
func (l *callbackList[F]) functions() []F {
	if len(l.callbacks) == 0 {
		return nil
	}
	fns := make([]F, len(l.callbacks))
	for i, c := range l.callbacks {
		fns[i] = c.fn
	}
	return fns
}

// Hooks holds the before and after callbacks of a single event family (add, remove or replace).
type Hooks[T any] struct {
	before callbackList[BeforeCallback[T]]
	after  callbackList[AfterCallback[T]]
}

func (h *Hooks[T]) BeforeCount() int {
	return h.before.len()
}

func (h *Hooks[T]) AfterCount() int {
	return h.after.len()
}

// DispatchBefore calls the before callbacks in registration order and stops at the first one that
// cancels the request. It returns true if the request has been cancelled.
func (h *Hooks[T]) DispatchBefore(req *Request[T]) (cancelled bool) {
	for _, fn := range h.before.functions() {
		fn(req)
		if req.Cancel {
			return true
		}
	}
	return false
}

// DispatchAfter calls the after callbacks in registration order.
func (h *Hooks[T]) DispatchAfter(res Result[T]) {
	for _, fn := range h.after.functions() {
		fn(res)
	}
}

func (h *Hooks[T]) removeCallback(handle CallbackHandle) bool {
	return h.before.remove(handle) || h.after.remove(handle)
}

func (h *Hooks[T]) removeAll() {
	h.before = callbackList[BeforeCallback[T]]{}
	h.after = callbackList[AfterCallback[T]]{}
}
