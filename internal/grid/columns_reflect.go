// Derives column definitions from Go struct types.

package grid

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/invopop/jsonschema"
)

// ColumnsFromType derives columns from the exported fields of struct T.
//
// Column names and types come from the JSON Schema of T, so they follow the
// json tags the way encoding/json does. A jsonschema title becomes the header,
// fields without omitempty are required, and numeric fields validate as
// numbers. Scalar fields are sortable and editable as text.
func ColumnsFromType[T any]() ([]Column, error) {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("type must be a struct or pointer to struct, got %s", t.Kind())
	}
	r := jsonschema.Reflector{Anonymous: true, DoNotReference: true}
	schema := r.ReflectFromType(t)
	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}
	var columns []Column
	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		name := pair.Key
		c := Column{Name: name, Header: pair.Value.Title}
		if c.Header == "" {
			c.Header = name
		}
		var v Validation
		v.Required = required[name]
		// Pointers are reflected as their element type.
		switch pair.Value.Type {
		case "string":
			c.Sortable = true
			c.Editor = "text"
		case "boolean":
			c.Sortable = true
			c.Editor = "checkbox"
		case "integer", "number":
			c.Sortable = true
			c.Editor = "text"
			v.DataType = DataTypeNumber
		}
		if v.Required || v.DataType != "" {
			c.Validation = &v
		}
		columns = append(columns, c)
	}
	return columns, nil
}

// RecordsFromValues converts values to records through their JSON form.
func RecordsFromValues[T any](values []T) ([]Record, error) {
	out := make([]Record, len(values))
	for i, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if err := json.Unmarshal(b, &out[i]); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}
	return out, nil
}
