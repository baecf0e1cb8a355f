package builtin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_Call(t *testing.T) {
	r := NewRegistry()
	r.now = func() time.Time { return time.Date(2024, 3, 9, 23, 30, 0, 0, time.FixedZone("X", -3600)) }

	tests := []struct {
		expr string
		want any
	}{
		{`base64("user:pass")`, "dXNlcjpwYXNz"},
		{`base64Decode(dXNlcjpwYXNz)`, "user:pass"},
		{`base64Decode(%%%)`, ""},
		{`basicAuth(user, pass)`, "Basic dXNlcjpwYXNz"},
		{`md5(abc)`, "900150983cd24fb0d6963f7d28e17f72"},
		{`sha256(abc)`, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
		{`urlEncode("a b&c")`, "a+b%26c"},
		{`urlDecode(a+b%26c)`, "a b&c"},
		{`lower(ABC)`, "abc"},
		{`upper('a,b')`, "A,B"},
		{`date()`, "2024-03-10"},
		{`date("02/01/2006")`, "10/03/2024"},
		{`md5()`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, ok := r.Call(tt.expr)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_CallUnknown(t *testing.T) {
	r := NewRegistry()

	_, ok := r.Call("nope(1)")
	assert.False(t, ok)

	_, ok = r.Call("HOME")
	assert.False(t, ok)
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	r.Register("answer", func([]string) any { return 42 })

	got, ok := r.Call("answer()")
	assert.True(t, ok)
	assert.Equal(t, 42, got)
	assert.Contains(t, r.Names(), "answer")
	assert.Contains(t, r.Names(), "basicAuth")
}

func TestParseArgs(t *testing.T) {
	assert.Equal(t, []string{"a", "b, c", "d"}, parseArgs(`a, "b, c", 'd'`))
	assert.Nil(t, parseArgs(""))
}
