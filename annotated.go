package shuttle

import (
	"fmt"
	"runtime"
)

// TaskContext is the introspection value an annotated task can read about
// where it sits in the graph: which graph, which function cluster, and
// which node the caller's region currently sits at.
type TaskContext struct {
	Graph    *Graph
	Function ClusterID
	Node     NodeID
}

// RootContext returns a context anchored at a synthetic root node, for use
// as the parent context of a top-level annotated task that inherits
// nothing from a caller.
func RootContext(g *Graph) TaskContext {
	root := g.AddNode("root", "")
	return TaskContext{Graph: g, Node: root}
}

// regionState tracks the begin/end node pair of the region an annotated
// task is currently inside.
type regionState struct {
	begin NodeID
	end   NodeID
}

// AnnotatedFunc is the body of an annotated task. an is both the Awaiter
// for suspension and the handle through which the body declares graph
// structure.
type AnnotatedFunc[T any] func(an *Annotator) (T, error)

type annotateConfig struct {
	usePredecessor   bool
	terminalOverride *NodeID
	hooks            Hooks
}

// AnnotateOption configures an annotated task at construction time.
type AnnotateOption func(*annotateConfig)

// WithTerminalNode overrides the node other tasks depend on when awaiting
// this task, instead of using the current region's end node at
// completion.
func WithTerminalNode(id NodeID) AnnotateOption {
	return func(cfg *annotateConfig) {
		cfg.terminalOverride = &id
	}
}

// WithoutPredecessorEdge suppresses the flow edge this task would
// otherwise draw from its captured parent context into its first region.
// Used for tasks that inherit a function but should not claim to flow
// from the caller's current node (the when_all combinator does not need
// this; ordinary child tasks do want the default).
func WithoutPredecessorEdge() AnnotateOption {
	return func(cfg *annotateConfig) {
		cfg.usePredecessor = false
	}
}

// WithHooks attaches observation hooks fired as this task records graph
// structure.
func WithHooks(h Hooks) AnnotateOption {
	return func(cfg *annotateConfig) {
		cfg.hooks = cfg.hooks.Merge(h)
	}
}

// Annotator is the handle an annotated task body uses to declare graph
// structure and to await other annotated tasks. It wraps a plain Awaiter
// so the underlying suspension mechanics are exactly C3's.
type Annotator struct {
	aw       *Awaiter
	graph    *Graph
	hooks    Hooks
	captured TaskContext

	function    ClusterID
	haveFunc    bool
	useCaptured bool

	region         *regionState
	firstRegion    bool
	usePredecessor bool
}

// AnnotatedTask is a Task annotated with the graph context it recorded
// while running.
type AnnotatedTask[T any] struct {
	inner            Task[T]
	annotator        *Annotator
	terminalOverride *NodeID
}

// NewAnnotatedTask constructs an annotated task as a sibling of parent in
// the graph. Unlike a plain task's lazy start, construction immediately
// drives the body to its first suspension point rather than waiting for
// an explicit Start or an awaiter.
func NewAnnotatedTask[T any](ec *ExecutionContext, parent TaskContext, body AnnotatedFunc[T], opts ...AnnotateOption) *AnnotatedTask[T] {
	cfg := annotateConfig{usePredecessor: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	an := &Annotator{
		graph:          parent.Graph,
		hooks:          cfg.hooks,
		captured:       parent,
		firstRegion:    true,
		usePredecessor: cfg.usePredecessor,
	}
	at := &AnnotatedTask[T]{annotator: an, terminalOverride: cfg.terminalOverride}

	inner := NewTask(ec, func(aw *Awaiter) (T, error) {
		an.aw = aw
		return body(an)
	})
	at.inner = inner
	inner.core.co.advance()
	return at
}

// Terminal returns the node other tasks should depend on when awaiting
// this task: the terminal-node override if one was given at construction,
// otherwise the current region's end node.
func (at *AnnotatedTask[T]) Terminal() NodeID {
	if at.terminalOverride != nil {
		return *at.terminalOverride
	}
	if at.annotator.region != nil {
		return at.annotator.region.end
	}
	return at.annotator.captured.Node
}

// IsReady reports whether the task has completed.
func (at *AnnotatedTask[T]) IsReady() bool {
	return at.inner.IsReady()
}

// Value returns the task's settled value, or re-raises its error.
func (at *AnnotatedTask[T]) Value() (T, error) {
	return at.inner.Value()
}

// DeclareFunction adds a cluster under the graph's root (or as a sibling
// of the caller's cluster if inherit_function has not been called) and
// records it as this task's function cluster. It must be called at most
// once per task and completes without suspending.
func (an *Annotator) DeclareFunction(name, description string) ClusterID {
	if an.haveFunc {
		panic(fmt.Errorf("shuttle: DeclareFunction called more than once on the same task"))
	}
	id := an.graph.AddCluster(name, description)
	an.function = id
	an.haveFunc = true
	return id
}

// InheritFunction marks this task as sharing its caller's function
// cluster: subsequent regions attach to the caller's cluster rather than
// a new one declared by DeclareFunction.
func (an *Annotator) InheritFunction() {
	an.function = an.captured.Function
	an.haveFunc = true
	an.useCaptured = true
}

// DeclareRegion adds begin/end nodes for a new region inside the task's
// function cluster, with a flow edge begin->end. A flow edge also links
// the previous region's end to this region's begin, and - only on the
// task's first region, and only if the predecessor edge has not been
// suppressed - a flow edge from the captured context's node to this
// region's begin.
//
// The first call in a task's lifetime completes synchronously, since the
// task has not yet suspended; every later call is a genuine suspension
// point that re-enters through the execution context, preserving the
// invariant that at most one declare_region per task runs before that
// task's first real suspension.
func (an *Annotator) DeclareRegion(name, description string) (begin, end NodeID) {
	if !an.haveFunc {
		panic(fmt.Errorf("shuttle: DeclareRegion called before DeclareFunction or InheritFunction"))
	}
	first := an.firstRegion
	if !first {
		an.aw.co.ec.Post(an.aw.co.advance)
		an.aw.co.park()
	}

	cluster := an.function
	begin = an.graph.AddNodeIn(cluster, "begin: "+name, description)
	end = an.graph.AddNodeIn(cluster, "end: "+name, description)
	an.hooks.fireNode(an.graph, an.graph.nodes[begin])
	an.hooks.fireNode(an.graph, an.graph.nodes[end])
	an.mustAddEdge(begin, end, Flow, name)

	if prev := an.region; prev != nil {
		an.mustAddEdge(prev.end, begin, Flow, name)
	}
	if first && an.usePredecessor {
		an.mustAddEdge(an.captured.Node, begin, Flow, name)
	}
	an.firstRegion = false
	an.region = &regionState{begin: begin, end: end}
	return begin, end
}

func (an *Annotator) mustAddEdge(from, to NodeID, kind EdgeKind, label string) {
	e, err := an.graph.AddEdge(from, to, kind, label)
	if err != nil {
		if cyc, ok := err.(*DependencyCycle); ok {
			an.hooks.fireCycle(cyc)
		}
		panic(err)
	}
	an.hooks.fireEdge(an.graph, e)
}

// GetContext returns the task's current introspection context: the graph,
// function cluster, and the current region's begin node. It completes
// synchronously.
func (an *Annotator) GetContext() TaskContext {
	node := an.captured.Node
	if an.region != nil {
		node = an.region.begin
	}
	return TaskContext{Graph: an.graph, Function: an.function, Node: node}
}

// AwaitTask adds a depend edge from child's terminal node to the current
// region's end node, labeled with the call site of this AwaitTask call,
// then delegates to the ordinary await protocol. A *DependencyCycle
// surfaces as a panic recovered by the enclosing task body's panic
// handler, per the ambient error-handling convention used for programming
// errors throughout the package; callers that need to observe a rejected
// edge without the panic unwinding their own body should call
// Graph.AddEdge directly instead.
func AwaitTask[T any](an *Annotator, child *AnnotatedTask[T]) (T, error) {
	if an.region == nil {
		panic(fmt.Errorf("shuttle: AwaitTask called before any DeclareRegion"))
	}
	label := callerLabel()
	an.mustAddEdge(child.Terminal(), an.region.end, Depend, label)
	return Await(an.aw, child.inner)
}

func callerLabel() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s:%d", file, line)
}

// GetPromise returns the annotator itself as the handle through which the
// running task can be referenced as a promise-like object elsewhere. It
// completes synchronously.
func (an *Annotator) GetPromise() *Annotator {
	return an
}

// AnnotatedWhenAll builds a small annotated task that inherits its
// caller's function cluster, declares a "when_all" region, and awaits
// each child in declaration order. The depend edges it draws from every
// child's terminal node into the region's end node encode the join.
func AnnotatedWhenAll[T any](ec *ExecutionContext, parent TaskContext, children ...*AnnotatedTask[T]) *AnnotatedTask[[]T] {
	return NewAnnotatedTask(ec, parent, func(an *Annotator) ([]T, error) {
		an.InheritFunction()
		an.DeclareRegion("when_all", "")
		results := make([]T, len(children))
		for i, child := range children {
			v, err := AwaitTask(an, child)
			if err != nil {
				return nil, err
			}
			results[i] = v
		}
		return results, nil
	})
}
