package shuttle

// Promise is the write side of an externally-fulfilled task: a bridge for
// feeding a result into the task system from code that is not itself a
// task body (a callback from outside collaborator code, for instance).
// The paired Future exposes the read side as an ordinary Task so it
// composes with Await and WhenAll without special-casing.
type Promise[T any] struct {
	cell *Cell[T]
}

// Future is the read side of a Promise: a Task whose coroutine has no body
// of its own and is driven purely by the Promise's SetValue/SetError.
type Future[T any] struct {
	task Task[T]
}

// NewPromise returns a linked Promise/Future pair bound to ec
// (DefaultExecutionContext if nil). The underlying coroutine has a nil run
// and is marked completed, so advancing it is a no-op and Await never
// kicks it off: the cell only ever settles when the promise is fulfilled.
func NewPromise[T any](ec *ExecutionContext) (Promise[T], Future[T]) {
	if ec == nil {
		ec = DefaultExecutionContext()
	}
	cell := NewCell[T]()
	core := &taskCore[T]{cell: cell, co: newCoroutine(ec, nil)}
	core.co.state = coroCompleted
	return Promise[T]{cell: cell}, Future[T]{task: Task[T]{core: core}}
}

// SetValue fulfills the promise with v. It must be called at most once
// across SetValue and SetError combined.
func (p Promise[T]) SetValue(v T) {
	p.cell.SetValue(v)
}

// SetError fulfills the promise with err. It must be called at most once
// across SetValue and SetError combined.
func (p Promise[T]) SetError(err error) {
	p.cell.SetError(err)
}

// Task returns the awaitable Task view of the future.
func (f Future[T]) Task() Task[T] {
	return f.task
}

// IsReady reports whether the promise has been fulfilled yet.
func (f Future[T]) IsReady() bool {
	return f.task.IsReady()
}
