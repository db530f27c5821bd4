package save

import (
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
)

const orderedMapPkg = "github.com/wk8/go-ordered-map/v2"

// Schema describes the current save document as JSON Schema.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
	}
	r.Mapper = func(t reflect.Type) *jsonschema.Schema {
		if t.PkgPath() != orderedMapPkg || !strings.HasPrefix(t.Name(), "OrderedMap[") {
			return nil
		}
		get, ok := reflect.PointerTo(t).MethodByName("Get")
		if !ok {
			return nil
		}
		values := r.ReflectFromType(get.Type.Out(0))
		values.Version = ""
		return &jsonschema.Schema{Type: "object", AdditionalProperties: values}
	}
	s := r.Reflect(&Document{})
	s.Title = "San Andreas save game"
	s.Description = "Save document, schema version 3."
	return s
}

// JSONSchema describes the [item, price] pair form of a catalog entry.
func (ListingState) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "array",
		Description: "Catalog entry written as [item, price].",
	}
}
