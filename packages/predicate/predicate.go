package predicate

// Predicate reports whether v satisfies a condition.
type Predicate[T any] func(v T) bool

// Action performs assertions or side effects on v.
type Action[T any] func(v T)

// Test evaluates the predicate. A nil predicate never matches.
func (p Predicate[T]) Test(v T) bool {
	if p == nil {
		return false
	}
	return p(v)
}

// Always matches every value.
func Always[T any]() Predicate[T] {
	return func(T) bool { return true }
}

// Never matches no value.
func Never[T any]() Predicate[T] {
	return func(T) bool { return false }
}

// And matches when every predicate matches. Evaluation stops at the first
// predicate that does not match. And with no predicates matches everything.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	return func(v T) bool {
		for _, p := range preds {
			if !p.Test(v) {
				return false
			}
		}
		return true
	}
}

// Or matches when at least one predicate matches. Or with no predicates
// matches nothing.
func Or[T any](preds ...Predicate[T]) Predicate[T] {
	return func(v T) bool {
		for _, p := range preds {
			if p.Test(v) {
				return true
			}
		}
		return false
	}
}

// Not inverts p.
func Not[T any](p Predicate[T]) Predicate[T] {
	return func(v T) bool {
		return !p.Test(v)
	}
}
