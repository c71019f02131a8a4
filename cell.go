package shuttle

// cellState tracks the monotonic empty -> value|error transition of a Cell.
type cellState int8

const (
	cellEmpty cellState = iota
	cellValue
	cellError
)

// Cell is single-assignment result storage shared between a task's
// coroutine and everything awaiting it. It carries the continuations
// registered while empty and invokes them exactly once, in registration
// order, when it transitions out of empty.
//
// Resolution of the "invoke and append" question left open by the source
// design: a continuation registered on an already-ready cell is invoked
// synchronously and is NOT also appended to the continuation list. A cell
// never invokes the same continuation twice.
type Cell[T any] struct {
	state         cellState
	value         T
	err           error
	continuations []func()
}

// NewCell returns an empty cell.
func NewCell[T any]() *Cell[T] {
	return &Cell[T]{}
}

// SetValue transitions the cell to value(v) and invokes every registered
// continuation in order. The cell must be empty; setting a value twice is a
// programming error and panics.
func (c *Cell[T]) SetValue(v T) {
	if c.state != cellEmpty {
		panic("shuttle: SetValue on a cell that is already settled")
	}
	c.state = cellValue
	c.value = v
	c.fire()
}

// SetError transitions the cell to error(e) and invokes every registered
// continuation in order. The cell must be empty; setting an error twice is
// a programming error and panics.
func (c *Cell[T]) SetError(err error) {
	if err == nil {
		panic("shuttle: SetError called with a nil error")
	}
	if c.state != cellEmpty {
		panic("shuttle: SetError on a cell that is already settled")
	}
	c.state = cellError
	c.err = err
	c.fire()
}

func (c *Cell[T]) fire() {
	continuations := c.continuations
	c.continuations = nil
	for _, f := range continuations {
		f()
	}
}

// IsReady reports whether the cell has left the empty state.
func (c *Cell[T]) IsReady() bool {
	return c.state != cellEmpty
}

// AddContinuation registers f to run when the cell becomes ready. If the
// cell is already ready, f runs synchronously right now and is not also
// queued.
func (c *Cell[T]) AddContinuation(f func()) {
	if c.state != cellEmpty {
		f()
		return
	}
	c.continuations = append(c.continuations, f)
}

// Value returns the settled value, or re-raises the settled error. The cell
// must not be empty; reading an empty cell is a programming error and
// panics.
func (c *Cell[T]) Value() (T, error) {
	switch c.state {
	case cellValue:
		return c.value, nil
	case cellError:
		var zero T
		return zero, c.err
	default:
		panic("shuttle: Value read from an empty cell")
	}
}
