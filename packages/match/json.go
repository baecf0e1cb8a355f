package match

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/abdul-hamid-achik/hitassert/packages/http"
	"github.com/tidwall/gjson"
)

var bracketIndex = regexp.MustCompile(`\[(\d+)\]`)

// normalizePath converts "body.items[0].id" into the gjson path "items.0.id".
func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "body" || strings.HasPrefix(path, "body.") || strings.HasPrefix(path, "body[") {
		path = strings.TrimPrefix(path, "body")
	}
	path = strings.TrimPrefix(path, "$")
	path = bracketIndex.ReplaceAllString(path, ".$1")
	return strings.TrimPrefix(path, ".")
}

// lookup returns the value at path in a JSON body. An empty path returns the
// whole document.
func lookup(r *http.Response, path string) (gjson.Result, bool) {
	if r == nil || !gjson.ValidBytes(r.Body) {
		return gjson.Result{}, false
	}
	doc := gjson.ParseBytes(r.Body)
	p := normalizePath(path)
	if p == "" {
		return doc, true
	}
	res := doc.Get(p)
	return res, res.Exists()
}

// JSONPathValue returns the decoded value at path.
func JSONPathValue(r *http.Response, path string) (any, bool) {
	res, ok := lookup(r, path)
	if !ok {
		return nil, false
	}
	return res.Value(), true
}

// JSONPathExists matches when path resolves in the JSON body, including to null.
func JSONPathExists(path string) Predicate {
	return func(r *http.Response) bool {
		_, ok := lookup(r, path)
		return ok
	}
}

// JSONPathEquals matches when the value at path equals expected. Numbers
// compare by value and scalars fall back to their string forms, so 200,
// 200.0 and "200" are all equal.
func JSONPathEquals(path string, expected any) Predicate {
	return func(r *http.Response) bool {
		res, ok := lookup(r, path)
		if !ok {
			return false
		}
		return Equal(res.Value(), expected)
	}
}

// Equal reports loose equality between a decoded JSON value and an expected
// value written in Go or YAML.
func Equal(actual, expected any) bool {
	if reflect.DeepEqual(actual, expected) {
		return true
	}
	if actual == nil || expected == nil {
		return false
	}

	actualNum, aOk := toFloat64(actual)
	expectedNum, eOk := toFloat64(expected)
	if aOk && eOk {
		return actualNum == expectedNum
	}

	switch a := actual.(type) {
	case []any:
		e, ok := expected.([]any)
		if !ok || len(a) != len(e) {
			return false
		}
		for i := range a {
			if !Equal(a[i], e[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		e, ok := expected.(map[string]any)
		if !ok || len(a) != len(e) {
			return false
		}
		for k, v := range a {
			ev, ok := e[k]
			if !ok || !Equal(v, ev) {
				return false
			}
		}
		return true
	}

	if isComposite(actual) || isComposite(expected) {
		return false
	}
	return fmt.Sprintf("%v", actual) == fmt.Sprintf("%v", expected)
}

func isComposite(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct:
		return true
	}
	return false
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
