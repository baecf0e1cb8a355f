// Package declarative runs an action on a value only when a condition holds,
// written so the intent reads left to right:
//
//	declarative.Test(resp).
//		When(func(r *http.Response) bool { return r.StatusCode == 200 }).
//		Then(func(r *http.Response) { assert.Contains(t, r.BodyString(), "ok") })
//
// It is handy inside a conditional failure action of an assertions.ApiAssertion
// when a failure branch needs further branching.
package declarative
