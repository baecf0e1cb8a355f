// Package env resolves {{variable}} references in suite files.
//
// Values come from, in increasing precedence:
//   - A .env file next to the suite
//   - The suite's own variables section
//   - {{$NAME}} references read the process environment directly
package env
