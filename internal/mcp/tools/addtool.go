package tools

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddTool is sdkmcp.AddTool preceded by CheckOutputSchema. It panics when the
// zero value of Out would be rejected by the SDK's own output validation.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	CheckOutputSchema[Out](t.Name)
	sdkmcp.AddTool(srv, t, h)
}

// CheckOutputSchema marshals the zero value of T and validates it against the
// schema the SDK infers for T. A nil slice marshals to null while the schema
// says "array", so an output with an empty phone list would fail at call
// time; omitzero on the field avoids it. json.RawMessage fields are rejected
// too: they are inferred as an array of bytes but marshal as arbitrary JSON.
//
// Untyped any outputs and types the SDK cannot infer are skipped.
func CheckOutputSchema[T any](toolName string) {
	rt := reflect.TypeFor[T]()
	if rt == reflect.TypeFor[any]() {
		return
	}
	elem := rt
	if elem.Kind() == reflect.Pointer {
		elem = elem.Elem()
	}

	if paths := findRawMessageFields(elem, nil, make(map[reflect.Type]bool)); len(paths) > 0 {
		panic(fmt.Sprintf(
			"AddTool %q: output type %s contains json.RawMessage at %s\n"+
				"  json.RawMessage serializes as transparent JSON but schema generator infers []byte (array of ints)\n"+
				"  Fix: change the field type to any (or []any) and decode into it:\n"+
				"    var v any\n"+
				"    err := json.Unmarshal(raw, &v)",
			toolName, elem, strings.Join(paths, ", "),
		))
	}

	schema, err := jsonschema.ForType(elem, &jsonschema.ForOptions{})
	if err != nil {
		return // schema inference failed; SDK will report this in AddTool
	}
	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return // resolution failed; SDK will report this in AddTool
	}

	zero := reflect.Zero(elem).Interface()
	data, err := json.Marshal(zero)
	if err != nil {
		return
	}

	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return
	}

	if err := resolved.Validate(&v); err != nil {
		panic(fmt.Sprintf(
			"AddTool %q: zero value of output type %s fails schema validation: %v\n"+
				"  JSON: %s\n"+
				"  Fix: add `omitzero` to nil-defaulting slice fields, or initialize them to empty slices",
			toolName, elem, err, data,
		))
	}
}

var rawMessageType = reflect.TypeFor[json.RawMessage]()

// findRawMessageFields returns the dotted paths of json.RawMessage fields
// reachable from t.
func findRawMessageFields(t reflect.Type, path []string, visited map[reflect.Type]bool) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t == rawMessageType {
		return []string{strings.Join(path, ".")}
	}

	// recursive types
	if visited[t] {
		return nil
	}
	visited[t] = true
	defer delete(visited, t)

	var found []string

	switch t.Kind() {
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}

			ft := f.Type
			for ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}

			fieldPath := append(path, f.Name)

			if ft == rawMessageType {
				found = append(found, strings.Join(fieldPath, "."))
				continue
			}

			found = append(found, findRawMessageFields(ft, fieldPath, visited)...)
		}

	case reflect.Slice, reflect.Array:
		found = append(found, findRawMessageFields(t.Elem(), append(path, "[]"), visited)...)

	case reflect.Map:
		found = append(found, findRawMessageFields(t.Elem(), append(path, "[value]"), visited)...)
	}

	return found
}
