// Package http models the API responses that hitassert checks.
//
// Responses are never fetched here. They come from:
//   - Recorded fixtures on disk (LoadFixture, YAML or JSON)
//   - Standard library responses, e.g. from httptest (FromStd)
//   - Literal Response values built in test code
package http
