package assertions

import "github.com/abdul-hamid-achik/hitassert/packages/predicate"

type conditionalFailure[R any] struct {
	when   predicate.Predicate[R]
	action predicate.Action[R]
}

// ApiAssertion checks a single API response. Configure it with the fluent
// methods and finish with Test. It is not safe for concurrent use.
type ApiAssertion[R any] struct {
	response     R
	isSuccessful predicate.Predicate[R]
	onSuccess    predicate.Action[R]
	onFailure    predicate.Action[R]
	conditional  []conditionalFailure[R]
	err          error
}

// New creates an ApiAssertion for response.
func New[R any](response R) *ApiAssertion[R] {
	return &ApiAssertion[R]{response: response}
}

// IsSuccessful sets the predicate that separates successful responses from
// failed ones. Setting it twice records a duplicate configuration error. A nil
// predicate leaves the slot unset, like a nil action passed to OnSuccess or
// OnFailure.
func (a *ApiAssertion[R]) IsSuccessful(p predicate.Predicate[R]) *ApiAssertion[R] {
	if a.err != nil {
		return a
	}
	if a.isSuccessful != nil {
		a.err = newConfigError(KindDuplicateConfiguration, msgDuplicatePredicate)
		return a
	}
	a.isSuccessful = p
	return a
}

// OnSuccess sets the action run when the response is successful.
func (a *ApiAssertion[R]) OnSuccess(action predicate.Action[R]) *ApiAssertion[R] {
	if a.err != nil {
		return a
	}
	if a.onSuccess != nil {
		a.err = newConfigError(KindDuplicateConfiguration, msgDuplicateOnSuccess)
		return a
	}
	a.onSuccess = action
	return a
}

// OnFailure sets the action run for any failed response. It cannot be
// combined with OnFailureWhen.
func (a *ApiAssertion[R]) OnFailure(action predicate.Action[R]) *ApiAssertion[R] {
	if a.err != nil {
		return a
	}
	if a.onFailure != nil {
		a.err = newConfigError(KindDuplicateConfiguration, msgDuplicateOnFailure)
		return a
	}
	a.onFailure = action
	return a
}

// OnFailureWhen adds an action run for a failed response that also satisfies
// p. It may be called any number of times; every matching action runs, in the
// order they were added. A nil action registers nothing.
func (a *ApiAssertion[R]) OnFailureWhen(p predicate.Predicate[R], action predicate.Action[R]) *ApiAssertion[R] {
	if a.err != nil || action == nil {
		return a
	}
	a.conditional = append(a.conditional, conditionalFailure[R]{when: p, action: action})
	return a
}

// Err returns the first duplicate configuration error, if any. Once set, all
// further configuration calls are ignored.
func (a *ApiAssertion[R]) Err() error {
	return a.err
}

// Validate reports whether the builder can be tested, without evaluating
// any predicate or action.
func (a *ApiAssertion[R]) Validate() error {
	if a.err != nil {
		return a.err
	}
	if a.isSuccessful == nil {
		return newConfigError(KindMissingPredicate, msgMissingPredicate)
	}
	if a.onSuccess == nil && a.onFailure == nil && len(a.conditional) == 0 {
		return newConfigError(KindMissingAction, msgMissingAction)
	}
	if a.onFailure != nil && len(a.conditional) > 0 {
		return newConfigError(KindConflictingFailure, msgConflictingFailure)
	}
	return nil
}

// Test validates the configuration and then runs the matching actions.
// The isSuccessful predicate is evaluated exactly once. Panics from
// predicates or actions are not recovered; a panicking conditional action
// stops the remaining ones.
func (a *ApiAssertion[R]) Test() error {
	if err := a.Validate(); err != nil {
		return err
	}

	if a.isSuccessful(a.response) {
		if a.onSuccess != nil {
			a.onSuccess(a.response)
		}
		return nil
	}

	if a.onFailure != nil {
		a.onFailure(a.response)
		return nil
	}

	for _, c := range a.conditional {
		if c.when.Test(a.response) {
			c.action(a.response)
		}
	}
	return nil
}
