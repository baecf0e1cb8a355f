// Package builtin provides the functions available in suite variables.
//
// Functions are invoked with the {{$name(args)}} syntax and are
// deterministic so recorded responses can be checked against them:
//   - base64(value), base64Decode(value)
//   - basicAuth(user, password): an Authorization header value
//   - md5(value), sha256(value): hex digests
//   - urlEncode(value), urlDecode(value)
//   - lower(value), upper(value)
//   - date(layout): today's UTC date, "2006-01-02" by default
package builtin
