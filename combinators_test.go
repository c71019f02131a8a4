package shuttle

import (
	"errors"
	"testing"
)

func TestWhenAllJoinsSharedBase(t *testing.T) {
	ec := NewExecutionContext()
	basePromise, baseFuture := NewPromise[int](ec)

	left := NewTask(ec, func(aw *Awaiter) (int, error) {
		v, err := Await(aw, baseFuture.Task())
		if err != nil {
			return 0, err
		}
		return v + 1, nil
	})
	right := NewTask(ec, func(aw *Awaiter) (int, error) {
		v, err := Await(aw, baseFuture.Task())
		if err != nil {
			return 0, err
		}
		return v + 2, nil
	})

	root := WhenAll(ec, left, right)
	root.Start()
	left.Start()
	right.Start()

	basePromise.SetValue(10)
	ec.RunUntil(root.IsReady)

	if !root.IsReady() {
		t.Fatal("root should be ready after draining")
	}
	values, err := root.Value()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(values) != 2 || values[0] != 11 || values[1] != 12 {
		t.Fatalf("values = %v, want [11 12]", values)
	}
}

func TestWhenAllSurfacesFirstError(t *testing.T) {
	ec := NewExecutionContext()
	sentinel := errors.New("boom")
	a := NewTask(ec, func(aw *Awaiter) (int, error) { return 0, sentinel })
	b := NewTask(ec, func(aw *Awaiter) (int, error) { return 1, nil })

	// b runs independently of the combinator, so it settles regardless of
	// whether the combinator ever reaches it in its await order.
	b.Start()

	root := WhenAll(ec, a, b)
	root.Start()
	ec.RunAll()

	_, err := root.Value()
	if !errors.Is(err, sentinel) {
		t.Fatalf("Value() error = %v, want %v", err, sentinel)
	}
	if !b.IsReady() {
		t.Fatal("b should still run to completion even though the combinator stops at a's error")
	}
}

func TestWhenAll2ResolvesBothInOrder(t *testing.T) {
	ec := NewExecutionContext()
	a := NewTask(ec, func(aw *Awaiter) (string, error) { return "x", nil })
	b := NewTask(ec, func(aw *Awaiter) (int, error) { return 1, nil })

	root := WhenAll2(ec, a, b)
	root.Start()
	ec.RunAll()

	v, err := root.Value()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.First != "x" || v.Second != 1 {
		t.Fatalf("got %+v, want {x 1}", v)
	}
}
