// Package match builds predicates over recorded API responses, ready to be
// passed to assertions.ApiAssertion or declarative.Test.
//
// Supported checks:
//   - Status codes (Status, StatusIn, StatusClass, Success, ClientError, ServerError)
//   - Headers (HeaderEquals, HeaderContains)
//   - Body text (BodyContains, BodyMatches)
//   - JSON paths (JSONPathExists, JSONPathEquals), with body.items[0].id style paths
//   - JSON Schema validation (Schema)
//   - Latency (DurationUnder)
//
// Predicates never panic: an invalid regex, path or schema simply does not match.
package match
