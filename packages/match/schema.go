package match

import (
	"fmt"
	"strings"

	"github.com/abdul-hamid-achik/hitassert/packages/http"
	"github.com/xeipuuv/gojsonschema"
)

// CompileSchema parses a JSON Schema document.
func CompileSchema(schemaJSON []byte) (*gojsonschema.Schema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return s, nil
}

// Schema matches responses whose JSON body validates against schemaJSON.
func Schema(schemaJSON []byte) Predicate {
	s, err := CompileSchema(schemaJSON)
	if err != nil {
		return func(*http.Response) bool { return false }
	}
	return func(r *http.Response) bool {
		return ValidateSchema(s, r) == nil
	}
}

// ValidateSchema validates the response body and returns the collected
// validation errors.
func ValidateSchema(s *gojsonschema.Schema, r *http.Response) error {
	if r == nil {
		return fmt.Errorf("no response")
	}
	result, err := s.Validate(gojsonschema.NewBytesLoader(r.Body))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(errs, "; "))
}
