package shuttle

import (
	"errors"
	"testing"
)

func TestCellSetValueInvokesContinuations(t *testing.T) {
	c := NewCell[int]()
	var got int
	c.AddContinuation(func() {
		v, err := c.Value()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = v
	})
	c.SetValue(42)
	if got != 42 {
		t.Fatalf("continuation saw %d, want 42", got)
	}
	if !c.IsReady() {
		t.Fatal("cell should be ready after SetValue")
	}
}

func TestCellAddContinuationOnReadyCellRunsOnceSynchronously(t *testing.T) {
	c := NewCell[int]()
	c.SetValue(7)
	calls := 0
	c.AddContinuation(func() { calls++ })
	if calls != 1 {
		t.Fatalf("continuation ran %d times, want 1", calls)
	}
}

func TestCellSetErrorRePropagates(t *testing.T) {
	c := NewCell[int]()
	sentinel := errors.New("boom")
	c.SetError(sentinel)
	_, err := c.Value()
	if !errors.Is(err, sentinel) {
		t.Fatalf("Value() error = %v, want %v", err, sentinel)
	}
}

func TestCellDoubleSetPanics(t *testing.T) {
	c := NewCell[int]()
	c.SetValue(1)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on double SetValue")
		}
	}()
	c.SetValue(2)
}

func TestCellContinuationOrder(t *testing.T) {
	c := NewCell[int]()
	var order []int
	for i := 0; i < 3; i++ {
		i := i
		c.AddContinuation(func() { order = append(order, i) })
	}
	c.SetValue(0)
	want := []int{0, 1, 2}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
