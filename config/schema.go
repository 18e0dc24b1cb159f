package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// SchemaID is the $id of the generated configuration schema.
const SchemaID = "https://grovetools.dev/schemas/atlas.schema.json"

// GenerateSchema generates the JSON Schema for atlas.yml from the Config struct.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		// Extensions (e.g. logging) live at the top level, so unknown keys are allowed there.
		AllowAdditionalProperties:  true,
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		FieldNameTag:               "yaml",
	}

	schema := r.Reflect(&Config{})
	schema.ID = jsonschema.ID(SchemaID)
	schema.Title = "Atlas Configuration"
	schema.Description = "Schema for atlas.yml / atlas.toml."

	return json.MarshalIndent(schema, "", "  ")
}
