// Package schema validates JSON payloads against schemas reflected from Go
// wire types.
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	invopop "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Validator validates JSON data against a compiled schema.
type Validator struct {
	schema *jsonschema.Schema
}

// Error lists the problems found in an invalid document.
type Error struct {
	Problems []string
}

func (e *Error) Error() string {
	return "schema validation failed: " + strings.Join(e.Problems, "; ")
}

// ForType reflects a schema from the Go type of v and compiles it.
// Fields without omitempty are required; unknown properties are allowed so
// upstream additions do not break decoding.
func ForType(v any) (*Validator, error) {
	r := &invopop.Reflector{
		Anonymous:                 true,
		DoNotReference:            true,
		AllowAdditionalProperties: true,
	}
	return Compile(r.Reflect(v))
}

// Compile compiles an invopop schema into a validator.
func Compile(s *invopop.Schema) (*Validator, error) {
	// Convert to JSON and back to get a clean map[string]any
	schemaJSON, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}

	schemaValue, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", schemaValue); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}

	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}

	return &Validator{schema: compiled}, nil
}

// MustForType is ForType for package-level initialization.
func MustForType(v any) *Validator {
	val, err := ForType(v)
	if err != nil {
		panic(fmt.Sprintf("schema: reflecting %T: %v", v, err))
	}
	return val
}

// Validate parses data and validates it. It returns *Error when the
// document is not JSON or violates the schema.
func (v *Validator) Validate(data []byte) error {
	value, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return &Error{Problems: []string{fmt.Sprintf("invalid JSON: %s", err.Error())}}
	}
	return v.ValidateValue(value)
}

// ValidateValue validates an already-parsed value.
func (v *Validator) ValidateValue(value any) error {
	err := v.schema.Validate(value)
	if err == nil {
		return nil
	}
	return &Error{Problems: extractValidationErrors(err)}
}

// extractValidationErrors extracts human-readable error messages from a validation error.
func extractValidationErrors(err error) []string {
	var validationErr *jsonschema.ValidationError
	if !errors.As(err, &validationErr) {
		return []string{err.Error()}
	}

	errorsByPath := make(map[string][]string)
	collectErrors(validationErr, errorsByPath)

	paths := make([]string, 0, len(errorsByPath))
	for path := range errorsByPath {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var result []string
	for _, path := range paths {
		seen := make(map[string]bool)
		for _, msg := range errorsByPath[path] {
			if seen[msg] {
				continue
			}
			seen[msg] = true
			if path != "" {
				result = append(result, fmt.Sprintf("%s: %s", path, msg))
			} else {
				result = append(result, msg)
			}
		}
	}
	if len(result) == 0 {
		result = []string{validationErr.Error()}
	}
	return result
}

// printer is a default English printer for localized error messages.
var printer = message.NewPrinter(language.English)

// collectErrors recursively collects leaf errors (those without causes).
func collectErrors(err *jsonschema.ValidationError, errorsByPath map[string][]string) {
	instancePath := ""
	if len(err.InstanceLocation) > 0 {
		instancePath = "/" + strings.Join(err.InstanceLocation, "/")
	}

	if err.ErrorKind != nil && len(err.Causes) == 0 {
		errMsg := err.ErrorKind.LocalizedString(printer)
		// $ref hops carry no information of their own
		if !strings.HasPrefix(errMsg, "$ref ") && !strings.HasPrefix(errMsg, "doesn't validate with") {
			errorsByPath[instancePath] = append(errorsByPath[instancePath], errMsg)
		}
	}

	for _, cause := range err.Causes {
		collectErrors(cause, errorsByPath)
	}
}
