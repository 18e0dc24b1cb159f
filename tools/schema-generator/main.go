package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/grovetools/atlas/config"
	"github.com/grovetools/atlas/logging"
	"github.com/invopop/jsonschema"
)

func main() {
	outputDir := "schema"
	if len(os.Args) > 1 {
		outputDir = os.Args[1]
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Fatalf("Error creating schema directory: %v", err)
	}

	schemaBytes, err := config.GenerateSchema()
	if err != nil {
		log.Fatalf("Error generating schema: %v", err)
	}
	write(filepath.Join(outputDir, "atlas.schema.json"), schemaBytes)

	// The logging section is an extension, so it is described separately.
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}
	schema := r.Reflect(&logging.Config{})
	schema.Title = "Atlas Logging Configuration"
	schema.Description = "Schema for the 'logging' extension in atlas.yml."
	schema.Required = nil

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling logging schema: %v", err)
	}
	write(filepath.Join(outputDir, "logging.schema.json"), data)
}

func write(path string, data []byte) {
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}
	log.Printf("Generated %s", path)
}
