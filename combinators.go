package shuttle

// WhenAll returns a task that awaits every task in tasks, in declaration
// order, and resolves to their values in the same order. It aborts with
// the first error encountered, without awaiting the remaining tasks.
func WhenAll[T any](ec *ExecutionContext, tasks ...Task[T]) Task[[]T] {
	return NewTask(ec, func(aw *Awaiter) ([]T, error) {
		results := make([]T, len(tasks))
		for i, t := range tasks {
			v, err := Await(aw, t)
			if err != nil {
				return nil, err
			}
			results[i] = v
		}
		return results, nil
	})
}

// pair is the value type behind WhenAll2.
type pair[A, B any] struct {
	First  A
	Second B
}

// WhenAll2 awaits a and b, in that order, and resolves to both values once
// both are ready. It aborts with the first error encountered.
func WhenAll2[A, B any](ec *ExecutionContext, a Task[A], b Task[B]) Task[pair[A, B]] {
	return NewTask(ec, func(aw *Awaiter) (pair[A, B], error) {
		var result pair[A, B]
		av, err := Await(aw, a)
		if err != nil {
			return result, err
		}
		bv, err := Await(aw, b)
		if err != nil {
			return result, err
		}
		result.First, result.Second = av, bv
		return result, nil
	})
}

// triple is the value type behind WhenAll3.
type triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// WhenAll3 awaits a, b and c, in that order, and resolves to all three
// values once all three are ready. It aborts with the first error
// encountered.
func WhenAll3[A, B, C any](ec *ExecutionContext, a Task[A], b Task[B], c Task[C]) Task[triple[A, B, C]] {
	return NewTask(ec, func(aw *Awaiter) (triple[A, B, C], error) {
		var result triple[A, B, C]
		av, err := Await(aw, a)
		if err != nil {
			return result, err
		}
		bv, err := Await(aw, b)
		if err != nil {
			return result, err
		}
		cv, err := Await(aw, c)
		if err != nil {
			return result, err
		}
		result.First, result.Second, result.Third = av, bv, cv
		return result, nil
	})
}
