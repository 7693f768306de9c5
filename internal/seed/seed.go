// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 PawRadar Contributors

// Package seed loads development seed data from YAML files validated
// against a generated JSON Schema.
package seed

import (
	"encoding/json"
	"os"

	"github.com/invopop/jsonschema"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// File is the root of a seed YAML file.
type File struct {
	Accounts []Account `yaml:"accounts" json:"accounts" jsonschema:"required"`
}

// Account is an account to create, with its pets.
type Account struct {
	Name      string   `yaml:"name" json:"name" jsonschema:"required,minLength=1"`
	Email     string   `yaml:"email" json:"email" jsonschema:"required,format=email"`
	Password  string   `yaml:"password" json:"password" jsonschema:"required,minLength=8"`
	Phone     string   `yaml:"phone,omitempty" json:"phone,omitempty"`
	Location  string   `yaml:"location,omitempty" json:"location,omitempty"`
	Latitude  *float64 `yaml:"latitude,omitempty" json:"latitude,omitempty" jsonschema:"minimum=-90,maximum=90"`
	Longitude *float64 `yaml:"longitude,omitempty" json:"longitude,omitempty" jsonschema:"minimum=-180,maximum=180"`
	Pets      []Pet    `yaml:"pets,omitempty" json:"pets,omitempty"`
}

// Pet is a pet to register under its account.
type Pet struct {
	Name        string  `yaml:"name" json:"name" jsonschema:"required,minLength=1"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Status      string  `yaml:"status" json:"status" jsonschema:"required,enum=lost,enum=found,enum=home"`
	Latitude    float64 `yaml:"latitude" json:"latitude" jsonschema:"required,minimum=-90,maximum=90"`
	Longitude   float64 `yaml:"longitude" json:"longitude" jsonschema:"required,minimum=-180,maximum=180"`
}

// schemaCache holds the compiled schema to avoid recompilation.
var schemaCache *jschema.Schema

// SchemaID is the $id stamped into the generated schema.
const SchemaID = "https://pawradar.app/schemas/seed.schema.json"

// GenerateSchema generates a JSON Schema from the File struct.
func GenerateSchema() ([]byte, error) {
	r := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := r.Reflect(&File{})

	schema.ID = jsonschema.ID(SchemaID)
	schema.Title = "PawRadar Seed File"
	schema.Description = "Schema for seed.yaml development data files"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, oops.Code("SEED_SCHEMA_FAILED").Wrap(err)
	}
	return data, nil
}

// Validate checks raw YAML seed data against the generated schema.
func Validate(data []byte) error {
	if len(data) == 0 {
		return oops.Code("SEED_EMPTY").Errorf("seed data is empty")
	}

	var yamlData any
	if err := yaml.Unmarshal(data, &yamlData); err != nil {
		return oops.Code("SEED_INVALID_YAML").Wrap(err)
	}

	sch, err := compiledSchema()
	if err != nil {
		return err
	}

	if err := sch.Validate(convertToJSONTypes(yamlData)); err != nil {
		return oops.Code("SEED_SCHEMA_VIOLATION").Wrap(err)
	}
	return nil
}

// Parse validates and unmarshals seed YAML.
func Parse(data []byte) (*File, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, oops.Code("SEED_INVALID_YAML").Wrap(err)
	}
	return &f, nil
}

// LoadFile reads and parses a seed YAML file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return nil, oops.Code("SEED_READ_FAILED").With("path", path).Wrap(err)
	}
	return Parse(data)
}

// compiledSchema returns the cached compiled schema or compiles it.
func compiledSchema() (*jschema.Schema, error) {
	if schemaCache != nil {
		return schemaCache, nil
	}

	schemaBytes, err := GenerateSchema()
	if err != nil {
		return nil, err
	}

	var schemaData any
	if err := json.Unmarshal(schemaBytes, &schemaData); err != nil {
		return nil, oops.Code("SEED_SCHEMA_FAILED").Wrap(err)
	}

	c := jschema.NewCompiler()
	if err := c.AddResource("schema.json", schemaData); err != nil {
		return nil, oops.Code("SEED_SCHEMA_FAILED").Wrap(err)
	}

	sch, err := c.Compile("schema.json")
	if err != nil {
		return nil, oops.Code("SEED_SCHEMA_FAILED").Wrap(err)
	}

	schemaCache = sch
	return sch, nil
}

// convertToJSONTypes converts YAML-parsed data to JSON-compatible types.
// yaml.Unmarshal already produces map[string]any, but nested values need
// recursive handling.
func convertToJSONTypes(v any) any {
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, v := range val {
			result[k] = convertToJSONTypes(v)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, v := range val {
			result[i] = convertToJSONTypes(v)
		}
		return result
	case int:
		return float64(val)
	case int64:
		return float64(val)
	default:
		return val
	}
}
