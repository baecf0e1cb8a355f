package declarative

import "github.com/abdul-hamid-achik/hitassert/packages/predicate"

// Assertion binds one subject to a condition and an action.
type Assertion[T any] struct {
	subject   T
	predicate predicate.Predicate[T]
}

// Test wraps subject for a later conditional action.
func Test[T any](subject T) *Assertion[T] {
	return &Assertion[T]{subject: subject}
}

// When stores the condition, replacing any previous one.
func (a *Assertion[T]) When(p predicate.Predicate[T]) *Assertion[T] {
	a.predicate = p
	return a
}

// Then runs action with the subject if the stored condition holds.
// Without a condition nothing runs.
func (a *Assertion[T]) Then(action predicate.Action[T]) {
	if a.predicate.Test(a.subject) {
		action(a.subject)
	}
}
