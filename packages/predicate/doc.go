// Package predicate defines the function types shared by the assertion
// builders: a Predicate decides whether a value qualifies and an Action
// reacts to a value.
//
// Predicates compose with And, Or and Not:
//
//	ok := predicate.And(isJSON, predicate.Not(isEmpty))
package predicate
