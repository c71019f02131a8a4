package shuttle

// coroState is the lifecycle of one coroutine-backed task body.
type coroState int8

const (
	coroCreated coroState = iota
	coroSuspended
	coroRunning
	coroCompleted
)

// coroutine backs one task body with a goroutine and drives it through an
// explicit handshake instead of Go's own scheduler. Go has no native
// stackless coroutines, so a goroutine blocked on a pair of unbuffered
// channels stands in for one: at most one side of the resume/yield
// handshake is ever runnable at a time, so no mutex guards task or graph
// state even though a real goroutine sits underneath.
//
// A coroutine with a nil run is inert: advance is a no-op. This is how a
// Promise-backed task (no body at all, externally fulfilled) composes with
// Await and WhenAll without special-casing them.
type coroutine struct {
	ec     *ExecutionContext
	run    func()
	state  coroState
	resume chan struct{}
	yield  chan struct{}
}

func newCoroutine(ec *ExecutionContext, run func()) *coroutine {
	return &coroutine{
		ec:     ec,
		run:    run,
		state:  coroCreated,
		resume: make(chan struct{}),
		yield:  make(chan struct{}),
	}
}

func (c *coroutine) ensureStarted() {
	if c.state != coroCreated {
		return
	}
	c.state = coroSuspended
	go func() {
		<-c.resume
		c.run()
		c.yield <- struct{}{}
	}()
}

// advance resumes the coroutine and blocks until it suspends again or
// finishes. This both starts a created coroutine and re-enters a suspended
// one: the caller's own stack is the one that drives the callee to its
// next suspension point (symmetric transfer), rather than going through
// the execution context.
func (c *coroutine) advance() {
	if c.run == nil || c.state == coroCompleted {
		return
	}
	c.ensureStarted()
	c.state = coroRunning
	c.resume <- struct{}{}
	<-c.yield
	if c.state == coroRunning {
		c.state = coroCompleted
	}
}

// park suspends the calling coroutine from inside its own body. It must
// only be called from the goroutine running c.run. Control returns to
// whichever advance() call is currently blocked waiting on c.yield; park
// itself returns once some later advance() call resumes this coroutine.
func (c *coroutine) park() {
	c.state = coroSuspended
	c.yield <- struct{}{}
	<-c.resume
	c.state = coroRunning
}

// awaitable is the minimal surface a coroutine-backed value must expose to
// be awaited: readiness, one-shot completion notification, and the
// ability to be driven to its own next suspension point.
type awaitable interface {
	isReady() bool
	addContinuation(func())
	advance()
	needsKickoff() bool
}

func (c *coroutine) needsKickoff() bool {
	return c.state == coroCreated
}

func (tc *taskCore[T]) needsKickoff() bool { return tc.co.needsKickoff() }

// awaitCore implements the await protocol: if other is already ready,
// return immediately without suspending. Otherwise register a
// continuation that posts a resumption of self, and, only if other has
// never been started, transfer control to it so it runs to its own first
// suspension point inline (the symmetric-transfer kickoff). If other is
// already running or suspended, some other driver already owns advancing
// it - other.advance() must not be called a second time, since that would
// resume it out of turn from whatever it is really waiting on - so this
// waiter only registers its continuation and parks. Either way, self then
// suspends until the continuation fires.
func awaitCore(self *coroutine, other awaitable) {
	if other.isReady() {
		return
	}
	other.addContinuation(func() {
		self.ec.Post(self.advance)
	})
	if other.needsKickoff() {
		other.advance()
	}
	self.park()
}
