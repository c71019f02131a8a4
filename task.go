package shuttle

// TaskFunc is the body of a task. aw is the coroutine's own handle: the
// only way to suspend is to call Await with it on another task.
type TaskFunc[T any] func(aw *Awaiter) (T, error)

// taskCore is the shared state behind every copy of a Task[T] value. Go's
// garbage collector retires the coroutine and cell once the last Task[T]
// value (or live continuation closure referencing it) is dropped, so no
// Close or Release method is exposed.
type taskCore[T any] struct {
	co   *coroutine
	cell *Cell[T]
}

func (tc *taskCore[T]) isReady() bool          { return tc.cell.IsReady() }
func (tc *taskCore[T]) addContinuation(f func()) { tc.cell.AddContinuation(f) }
func (tc *taskCore[T]) advance()               { tc.co.advance() }

// Task is a lazily-suspended, single-assignment asynchronous computation.
// It is a small value type: copies share the same underlying coroutine and
// cell. A freshly-constructed task does not run its body until Start is
// called (directly, or implicitly by something awaiting it).
type Task[T any] struct {
	core *taskCore[T]
}

// NewTask constructs a task bound to ec (DefaultExecutionContext if nil).
// The task does not begin executing body until Start is called or another
// task awaits it.
func NewTask[T any](ec *ExecutionContext, body TaskFunc[T]) Task[T] {
	if ec == nil {
		ec = DefaultExecutionContext()
	}
	cell := NewCell[T]()
	core := &taskCore[T]{cell: cell}
	aw := &Awaiter{}
	core.co = newCoroutine(ec, func() {
		v, err := runTaskBody(core, aw, body)
		if err != nil {
			cell.SetError(err)
		} else {
			cell.SetValue(v)
		}
	})
	aw.co = core.co
	return Task[T]{core: core}
}

// runTaskBody runs body, converting a recovered panic into a TaskPanicError
// instead of letting it escape the coroutine's goroutine.
func runTaskBody[T any](core *taskCore[T], aw *Awaiter, body TaskFunc[T]) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			result = zero
			err = TaskPanicError{Value: r}
		}
	}()
	return body(aw)
}

// ReadyTask returns a task that is already completed with v.
func ReadyTask[T any](v T) Task[T] {
	cell := NewCell[T]()
	cell.SetValue(v)
	return Task[T]{core: &taskCore[T]{cell: cell, co: newCoroutine(nil, nil)}}
}

// Start posts the task's initial resumption onto its execution context.
// Subsequent calls are no-ops; a task starts at most once.
func (t Task[T]) Start() {
	if t.core.co.state != coroCreated {
		return
	}
	ec := t.core.co.ec
	if ec == nil {
		return
	}
	t.core.co.ensureStarted()
	ec.Post(t.core.co.advance)
}

// IsReady reports whether the task's cell has settled.
func (t Task[T]) IsReady() bool {
	return t.core.cell.IsReady()
}

// Value returns the task's settled value, or re-raises its error. The task
// must already be ready; calling it earlier is a programming error.
func (t Task[T]) Value() (T, error) {
	return t.core.cell.Value()
}

// Awaiter is the handle passed to a running task body. It identifies which
// coroutine is currently executing so Await knows what to suspend.
type Awaiter struct {
	co *coroutine
}

// Await suspends the current task until t is ready, then returns its
// value or re-raises its error. If t is already ready, Await returns
// immediately without suspending.
func Await[T any](aw *Awaiter, t Task[T]) (T, error) {
	awaitCore(aw.co, t.core)
	return t.core.cell.Value()
}
