package common

import (
	"bytes"
	"errors"
	"testing"

	"github.com/inoxlang/obscoll/internal/testconfig"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestPipelineRun(t *testing.T) {
	testconfig.AllowParallelization(t)

	commit := func(req *Request[string]) (Result[string], error) {
		return NewAdditionResult(req.Kind, 3, req.Item), nil
	}

	t.Run("before and after callbacks should be called in registration order", func(t *testing.T) {
		p := NewPipeline[string](DefaultConfig())
		var calls []string

		p.AddBeforeCallback(AddElem, func(req *Request[string]) { calls = append(calls, "before-1") })
		p.AddAfterCallback(AddElem, func(res Result[string]) { calls = append(calls, "after-1") })
		p.AddBeforeCallback(AddElem, func(req *Request[string]) { calls = append(calls, "before-2") })
		p.AddAfterCallback(AddElem, func(res Result[string]) { calls = append(calls, "after-2") })

		res, ok, err := p.Run(&Request[string]{Kind: AddElem, Index: APPEND_INDEX, Item: "a"}, commit)
		if !assert.NoError(t, err) {
			return
		}
		assert.True(t, ok)
		assert.Equal(t, NewAdditionResult(AddElem, 3, "a"), res)
		assert.Equal(t, []string{"before-1", "before-2", "after-1", "after-2"}, calls)
	})

	t.Run("dispatch should stop at the first callback that cancels", func(t *testing.T) {
		p := NewPipeline[string](DefaultConfig())
		var calls []string
		applied := false

		p.AddBeforeCallback(AddElem, func(req *Request[string]) {
			calls = append(calls, "before-1")
			req.Cancel = true
		})
		p.AddBeforeCallback(AddElem, func(req *Request[string]) { calls = append(calls, "before-2") })
		p.AddAfterCallback(AddElem, func(res Result[string]) { calls = append(calls, "after") })

		_, ok, err := p.Run(&Request[string]{Kind: AddElem, Item: "a"}, func(req *Request[string]) (Result[string], error) {
			applied = true
			return commit(req)
		})

		assert.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, applied)
		assert.Equal(t, []string{"before-1"}, calls)
	})

	t.Run("the apply step should receive the request rewritten by the callbacks", func(t *testing.T) {
		p := NewPipeline[string](DefaultConfig())

		p.AddBeforeCallback(InsertElem, func(req *Request[string]) {
			req.Item = "b"
			req.Index = 0
		})
		p.AddBeforeCallback(InsertElem, func(req *Request[string]) {
			assert.Equal(t, "b", req.Item)
			req.Item += "c"
		})

		var applied Request[string]
		_, ok, _ := p.Run(&Request[string]{Kind: InsertElem, Index: APPEND_INDEX, Item: "a"}, func(req *Request[string]) (Result[string], error) {
			applied = *req
			return NewAdditionResult(req.Kind, req.Index, req.Item), nil
		})

		assert.True(t, ok)
		assert.Equal(t, Request[string]{Kind: InsertElem, Index: 0, Item: "bc"}, applied)
	})

	t.Run("a change rejected by the store should not be announced", func(t *testing.T) {
		p := NewPipeline[string](DefaultConfig())
		beforeCalled := false
		afterCalled := false

		p.AddBeforeCallback(RemoveElem, func(req *Request[string]) { beforeCalled = true })
		p.AddAfterCallback(RemoveElem, func(res Result[string]) { afterCalled = true })

		_, ok, err := p.Run(&Request[string]{Kind: RemoveElem, Index: UNSPECIFIED_INDEX, OldItem: "a"}, func(req *Request[string]) (Result[string], error) {
			return Result[string]{}, ErrRejectedByStore
		})

		assert.NoError(t, err)
		assert.False(t, ok)
		assert.True(t, beforeCalled)
		assert.False(t, afterCalled)
	})

	t.Run("other errors of the apply step should be returned", func(t *testing.T) {
		p := NewPipeline[string](DefaultConfig())
		afterCalled := false
		p.AddAfterCallback(InsertElem, func(res Result[string]) { afterCalled = true })

		_, ok, err := p.Run(&Request[string]{Kind: InsertElem, Index: 10}, func(req *Request[string]) (Result[string], error) {
			return Result[string]{}, FmtInsertionIndexOutOfRange(10, 0)
		})

		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		assert.False(t, ok)
		assert.False(t, afterCalled)
	})

	t.Run("callbacks of other families should not be called", func(t *testing.T) {
		p := NewPipeline[string](DefaultConfig())
		called := false

		p.AddBeforeCallback(ReplaceElem, func(req *Request[string]) { called = true })
		p.AddAfterCallback(RemoveElem, func(res Result[string]) { called = true })

		_, ok, _ := p.Run(&Request[string]{Kind: AddElem, Item: "a"}, commit)
		assert.True(t, ok)
		assert.False(t, called)
	})

	t.Run("clear removals should be dispatched to the removal callbacks", func(t *testing.T) {
		p := NewPipeline[string](DefaultConfig())
		var kinds []MutationKind

		p.AddAfterCallback(RemoveElem, func(res Result[string]) { kinds = append(kinds, res.Kind()) })

		p.Run(&Request[string]{Kind: ClearElem, OldItem: "a"}, func(req *Request[string]) (Result[string], error) {
			return NewRemovalResult(req.Kind, 0, req.OldItem), nil
		})

		assert.Equal(t, []MutationKind{ClearElem}, kinds)
	})

	t.Run("cancelled mutations should be logged", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		p := NewPipeline[string](Config{
			Name:   "seq",
			Logger: zerolog.New(buf).Level(zerolog.DebugLevel),
		})

		p.AddBeforeCallback(AddElem, func(req *Request[string]) { req.Cancel = true })
		p.Run(&Request[string]{Kind: AddElem, Index: APPEND_INDEX, Item: "a"}, commit)

		assert.Contains(t, buf.String(), `"container":"seq"`)
		assert.Contains(t, buf.String(), `"kind":"add-elem"`)
		assert.Contains(t, buf.String(), "mutation cancelled")
	})
}

func TestPipelineCallbacks(t *testing.T) {
	testconfig.AllowParallelization(t)

	t.Run("handles should be unique across families", func(t *testing.T) {
		p := NewPipeline[int](DefaultConfig())

		h1 := p.AddBeforeCallback(AddElem, func(req *Request[int]) {})
		h2 := p.AddAfterCallback(RemoveElem, func(res Result[int]) {})
		h3 := p.AddBeforeCallback(ReplaceElem, func(req *Request[int]) {})

		assert.Equal(t, FIRST_VALID_CALLBACK_HANDLE, h1)
		assert.Equal(t, FIRST_VALID_CALLBACK_HANDLE+1, h2)
		assert.Equal(t, FIRST_VALID_CALLBACK_HANDLE+2, h3)
	})

	t.Run("nil callbacks should be ignored", func(t *testing.T) {
		p := NewPipeline[int](DefaultConfig())

		handle := p.AddBeforeCallback(AddElem, nil)
		assert.False(t, handle.Valid())
		assert.Zero(t, p.Hooks(AddElem).BeforeCount())

		handle = p.AddAfterCallback(AddElem, nil)
		assert.False(t, handle.Valid())
		assert.Zero(t, p.Hooks(AddElem).AfterCount())
	})

	t.Run("removed callbacks should no longer be called", func(t *testing.T) {
		p := NewPipeline[int](DefaultConfig())
		calls := 0

		handle := p.AddAfterCallback(AddElem, func(res Result[int]) { calls++ })
		p.AddAfterCallback(AddElem, func(res Result[int]) { calls += 10 })

		assert.True(t, p.RemoveCallback(handle))
		assert.False(t, p.RemoveCallback(handle))
		assert.False(t, p.RemoveCallback(0))

		p.Run(&Request[int]{Kind: AddElem}, func(req *Request[int]) (Result[int], error) {
			return NewAdditionResult(AddElem, 0, 1), nil
		})
		assert.Equal(t, 10, calls)
	})

	t.Run("RemoveCallbacks should remove the callbacks of all families", func(t *testing.T) {
		p := NewPipeline[int](DefaultConfig())

		p.AddBeforeCallback(AddElem, func(req *Request[int]) {})
		p.AddAfterCallback(RemoveElem, func(res Result[int]) {})
		p.AddAfterCallback(ReplaceElem, func(res Result[int]) {})

		p.RemoveCallbacks()

		for _, kind := range []MutationKind{AddElem, RemoveElem, ReplaceElem} {
			assert.Zero(t, p.Hooks(kind).BeforeCount())
			assert.Zero(t, p.Hooks(kind).AfterCount())
		}
	})

	t.Run("a callback registered during a dispatch should only be called by the next dispatches", func(t *testing.T) {
		p := NewPipeline[int](DefaultConfig())
		lateCalls := 0

		p.AddBeforeCallback(AddElem, func(req *Request[int]) {
			p.AddBeforeCallback(AddElem, func(req *Request[int]) { lateCalls++ })
		})

		apply := func(req *Request[int]) (Result[int], error) {
			return NewAdditionResult(AddElem, 0, req.Item), nil
		}

		p.Run(&Request[int]{Kind: AddElem}, apply)
		assert.Zero(t, lateCalls)

		p.Run(&Request[int]{Kind: AddElem}, apply)
		assert.Equal(t, 1, lateCalls)
	})

	t.Run("a callback removed during a dispatch should still be called by this dispatch", func(t *testing.T) {
		p := NewPipeline[int](DefaultConfig())
		calls := 0
		var second CallbackHandle

		p.AddAfterCallback(AddElem, func(res Result[int]) { p.RemoveCallback(second) })
		second = p.AddAfterCallback(AddElem, func(res Result[int]) { calls++ })

		apply := func(req *Request[int]) (Result[int], error) {
			return NewAdditionResult(AddElem, 0, req.Item), nil
		}

		p.Run(&Request[int]{Kind: AddElem}, apply)
		p.Run(&Request[int]{Kind: AddElem}, apply)
		assert.Equal(t, 1, calls)
	})
}

func TestPipelineBulkRemovals(t *testing.T) {
	testconfig.AllowParallelization(t)

	t.Run("RemoveEach", func(t *testing.T) {
		p := NewPipeline[int](DefaultConfig())
		var removed []int

		count := p.RemoveEach([]int{1, 2, 3}, func(e int) bool {
			removed = append(removed, e)
			return e != 2
		})

		assert.Equal(t, 2, count)
		assert.Equal(t, []int{1, 2, 3}, removed)
	})

	t.Run("RemoveMatching: nil predicate", func(t *testing.T) {
		p := NewPipeline[int](DefaultConfig())
		called := false

		_, err := p.RemoveMatching([]int{1, 2}, nil, func(e int) bool {
			called = true
			return true
		})

		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.True(t, errors.Is(err, ErrNilPredicate))
		assert.False(t, called)
	})

	t.Run("RemoveMatching: matches should be decided before the first removal", func(t *testing.T) {
		p := NewPipeline[int](DefaultConfig())
		threshold := 3
		var removed []int

		count, err := p.RemoveMatching([]int{5, 1, 4, 2, 3}, func(e int) bool { return e >= threshold }, func(e int) bool {
			threshold = 100
			removed = append(removed, e)
			return true
		})

		if !assert.NoError(t, err) {
			return
		}
		assert.Equal(t, 3, count)
		assert.Equal(t, []int{5, 4, 3}, removed)
	})

	t.Run("PlanRemovals", func(t *testing.T) {
		plan := PlanRemovals([]string{"a", "bb", "c", "dd"}, func(e string) bool { return len(e) == 2 })

		assert.EqualValues(t, 2, plan.Count())
		assert.True(t, plan.Test(1))
		assert.True(t, plan.Test(3))
		assert.False(t, plan.Test(0))
	})
}
