package suite

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abdul-hamid-achik/hitassert/packages/core/env"
	"gopkg.in/yaml.v3"
)

var wholeReference = regexp.MustCompile(`^\{\{\s*([^}$][^}]*?)\s*\}\}$`)

func mappingValue(root *yaml.Node, key string) *yaml.Node {
	node := root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// resolveNode substitutes references in every scalar. A scalar that is a
// single reference to a non-string variable takes that variable's type, so
// status: "{{created}}" decodes as an int.
func resolveNode(node *yaml.Node, r *env.Resolver) error {
	if node.Kind == yaml.ScalarNode {
		if !strings.Contains(node.Value, "{{") {
			return nil
		}
		if m := wholeReference.FindStringSubmatch(node.Value); m != nil {
			if v, ok := r.Lookup(m[1]); ok {
				if tag := scalarTag(v); tag != "" {
					node.Value = fmt.Sprintf("%v", v)
					node.Tag = tag
					node.Style = 0
					return nil
				}
			}
		}
		out, err := r.MustResolve(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		node.Value = out
		return nil
	}

	for _, child := range node.Content {
		if err := resolveNode(child, r); err != nil {
			return err
		}
	}
	return nil
}

func scalarTag(v any) string {
	switch v.(type) {
	case int, int64, int32, uint, uint64:
		return "!!int"
	case float64, float32:
		return "!!float"
	case bool:
		return "!!bool"
	}
	return ""
}
