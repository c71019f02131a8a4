package shuttle

import "sync"

// ExecutionContext is a single FIFO queue of nullary callbacks. There is no
// implicit concurrency: callbacks run one at a time, on whichever goroutine
// calls Run*, in the order they were posted. Draining the queue is always
// the caller's responsibility; nothing drains it in the background.
type ExecutionContext struct {
	queue []func()
}

// NewExecutionContext returns an empty execution context.
func NewExecutionContext() *ExecutionContext {
	return &ExecutionContext{}
}

// Post enqueues f to run on a future Run* call.
func (ec *ExecutionContext) Post(f func()) {
	ec.queue = append(ec.queue, f)
}

// RunOne pops and invokes the front callback. It panics if the queue is
// empty; callers that don't know the queue is non-empty should use RunAll
// or RunUntil instead.
func (ec *ExecutionContext) RunOne() {
	if len(ec.queue) == 0 {
		panic("shuttle: RunOne called on an empty execution context")
	}
	f := ec.queue[0]
	ec.queue = ec.queue[1:]
	f()
}

// RunAll drains the queue, including callbacks posted by callbacks this
// call itself runs.
func (ec *ExecutionContext) RunAll() {
	for len(ec.queue) > 0 {
		ec.RunOne()
	}
}

// RunUntil drains the queue while it is non-empty and predicate returns
// false. The predicate is evaluated between callbacks, never while one is
// running.
func (ec *ExecutionContext) RunUntil(predicate func() bool) {
	for len(ec.queue) > 0 && !predicate() {
		ec.RunOne()
	}
}

// Pending reports how many callbacks are queued.
func (ec *ExecutionContext) Pending() int {
	return len(ec.queue)
}

var defaultExecutionContext = sync.OnceValue(NewExecutionContext)

// DefaultExecutionContext returns the lazily-initialized, process-wide
// execution context. It is created on first access and never torn down.
// Prefer passing an explicit *ExecutionContext to NewTask/NewAnnotatedTask
// over relying on this singleton; it exists as a thin convenience for
// programs that only ever need one context.
func DefaultExecutionContext() *ExecutionContext {
	return defaultExecutionContext()
}
