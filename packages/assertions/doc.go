// Package assertions provides ApiAssertion, a builder that checks an API
// response along a success path and one or more failure paths.
//
// A builder needs an isSuccessful predicate and at least one action:
//
//	err := assertions.New(resp).
//		IsSuccessful(func(r *http.Response) bool { return r.StatusCode == 200 }).
//		OnSuccess(func(r *http.Response) { assert.Contains(t, r.BodyString(), "OK") }).
//		OnFailureWhen(isStatus(400), func(r *http.Response) { checkBadRequest(t, r) }).
//		OnFailureWhen(isStatus(401), func(r *http.Response) { checkUnauthorized(t, r) }).
//		Test()
//
// A failing response runs either the single OnFailure action or every
// OnFailureWhen action whose predicate matches, in registration order. The
// two failure styles cannot be mixed on one builder.
//
// Misconfiguration is reported as a *ConfigError whose Kind can be matched
// with errors.Is against ErrMissingPredicate, ErrMissingAction,
// ErrConflictingFailure and ErrDuplicateConfiguration.
package assertions
