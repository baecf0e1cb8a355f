package match

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/hitassert/packages/http"
	"github.com/abdul-hamid-achik/hitassert/packages/predicate"
)

// Predicate is a predicate over a recorded response.
type Predicate = predicate.Predicate[*http.Response]

// Status matches an exact status code.
func Status(code int) Predicate {
	return func(r *http.Response) bool {
		return r != nil && r.StatusCode == code
	}
}

// StatusIn matches any of the given status codes.
func StatusIn(codes ...int) Predicate {
	return func(r *http.Response) bool {
		if r == nil {
			return false
		}
		for _, c := range codes {
			if r.StatusCode == c {
				return true
			}
		}
		return false
	}
}

// StatusClass matches a status family written as "2xx", "4xx", etc.
func StatusClass(class string) Predicate {
	class = strings.ToLower(strings.TrimSpace(class))
	if len(class) != 3 || !strings.HasSuffix(class, "xx") {
		return predicate.Never[*http.Response]()
	}
	digit, err := strconv.Atoi(class[:1])
	if err != nil || digit < 1 || digit > 5 {
		return predicate.Never[*http.Response]()
	}
	return func(r *http.Response) bool {
		return r != nil && r.StatusCode/100 == digit
	}
}

// ParseStatusClass reports whether class is a valid status family.
func ParseStatusClass(class string) error {
	class = strings.ToLower(strings.TrimSpace(class))
	if len(class) == 3 && strings.HasSuffix(class, "xx") && class[0] >= '1' && class[0] <= '5' {
		return nil
	}
	return fmt.Errorf("invalid status class %q, expected 1xx-5xx", class)
}

func Success() Predicate {
	return func(r *http.Response) bool { return r != nil && r.IsSuccess() }
}

func ClientError() Predicate {
	return func(r *http.Response) bool { return r != nil && r.IsClientError() }
}

func ServerError() Predicate {
	return func(r *http.Response) bool { return r != nil && r.IsServerError() }
}

// HeaderEquals matches a header value exactly. Header names are case-insensitive.
func HeaderEquals(name, value string) Predicate {
	return func(r *http.Response) bool {
		return r != nil && r.Header(name) == value
	}
}

// HeaderContains matches when the header value contains substr.
func HeaderContains(name, substr string) Predicate {
	return func(r *http.Response) bool {
		if r == nil {
			return false
		}
		v := r.Header(name)
		return v != "" && strings.Contains(v, substr)
	}
}

func BodyContains(substr string) Predicate {
	return func(r *http.Response) bool {
		return r != nil && strings.Contains(r.BodyString(), substr)
	}
}

// BodyMatches matches the body against a regular expression. Surrounding
// slashes are stripped, so "/^ok$/" and "^ok$" are equivalent.
func BodyMatches(pattern string) Predicate {
	re, err := CompilePattern(pattern)
	if err != nil {
		return predicate.Never[*http.Response]()
	}
	return func(r *http.Response) bool {
		return r != nil && re.Match(r.Body)
	}
}

// CompilePattern compiles a /regex/ style pattern.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	pattern = strings.TrimPrefix(pattern, "/")
	pattern = strings.TrimSuffix(pattern, "/")
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern: %w", err)
	}
	return re, nil
}

// DurationUnder matches responses recorded faster than d.
func DurationUnder(d time.Duration) Predicate {
	return func(r *http.Response) bool {
		return r != nil && r.Duration < d
	}
}
