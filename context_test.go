package shuttle

import "testing"

func TestExecutionContextRunAllDrainsNestedPosts(t *testing.T) {
	ec := NewExecutionContext()
	var order []int
	ec.Post(func() {
		order = append(order, 1)
		ec.Post(func() { order = append(order, 2) })
	})
	ec.RunAll()
	want := []int{1, 2}
	if len(order) != len(want) || order[0] != want[0] || order[1] != want[1] {
		t.Fatalf("order = %v, want %v", order, want)
	}
}

func TestExecutionContextRunUntilStopsOnPredicate(t *testing.T) {
	ec := NewExecutionContext()
	done := false
	ec.Post(func() { done = true })
	ec.Post(func() { t.Fatal("second callback should not run") })
	ec.RunUntil(func() bool { return done })
	if ec.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", ec.Pending())
	}
}

func TestExecutionContextRunOnePanicsWhenEmpty(t *testing.T) {
	ec := NewExecutionContext()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on RunOne with empty queue")
		}
	}()
	ec.RunOne()
}

func TestDefaultExecutionContextIsSingleton(t *testing.T) {
	if DefaultExecutionContext() != DefaultExecutionContext() {
		t.Fatal("DefaultExecutionContext should return the same instance")
	}
}
