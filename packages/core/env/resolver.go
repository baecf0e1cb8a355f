package env

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/abdul-hamid-achik/hitassert/packages/builtin"
)

var variablePattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// Resolver substitutes {{name}}, {{$ENV_VAR}} and {{$func(args)}} references.
type Resolver struct {
	variables map[string]any
	funcs     *builtin.Registry
}

func NewResolver(vars map[string]any) *Resolver {
	r := &Resolver{
		variables: make(map[string]any, len(vars)),
		funcs:     builtin.NewRegistry(),
	}
	for k, v := range vars {
		r.variables[k] = v
	}
	return r
}

// Resolve replaces every reference it can. Unknown references are left in
// place and returned so callers can report them.
func (r *Resolver) Resolve(input string) (string, []string) {
	var unresolved []string
	out := variablePattern.ReplaceAllStringFunc(input, func(match string) string {
		expr := strings.TrimSpace(match[2 : len(match)-2])

		if name, ok := strings.CutPrefix(expr, "$"); ok {
			if val, called := r.funcs.Call(name); called {
				return fmt.Sprintf("%v", val)
			}
			if val, set := os.LookupEnv(name); set {
				return val
			}
			unresolved = append(unresolved, expr)
			return match
		}

		if val, ok := r.variables[expr]; ok {
			return fmt.Sprintf("%v", val)
		}
		unresolved = append(unresolved, expr)
		return match
	})
	return out, unresolved
}

// MustResolve is Resolve that fails on the first unresolved reference.
func (r *Resolver) MustResolve(input string) (string, error) {
	out, unresolved := r.Resolve(input)
	if len(unresolved) > 0 {
		return "", fmt.Errorf("unresolved variables: %s", strings.Join(unresolved, ", "))
	}
	return out, nil
}

// Lookup returns a variable's raw value.
func (r *Resolver) Lookup(name string) (any, bool) {
	v, ok := r.variables[name]
	return v, ok
}
