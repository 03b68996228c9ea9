package restapi

import (
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Only structure is asserted. Fields may be missing and decode to zero values.
const taskSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "definitions": {
    "task": {
      "type": "object",
      "properties": {
        "id": {"type": ["integer", "string", "null"]},
        "title": {"type": ["string", "null"]},
        "completed": {"type": ["boolean", "null"]}
      }
    }
  },
  "oneOf": [
    {"$ref": "#/definitions/task"},
    {"type": "array", "items": {"$ref": "#/definitions/task"}}
  ]
}`

const taskSchemaURL = "mem://gtodo/task.schema.json"

var taskSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(taskSchemaURL, strings.NewReader(taskSchemaJSON)); err != nil {
		panic(fmt.Sprintf("add task schema: %v", err))
	}
	return compiler.MustCompile(taskSchemaURL)
}

// validateShape checks a decoded body against the task schema.
func validateShape(v any) error {
	if err := taskSchema.Validate(v); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			return fmt.Errorf("unexpected response shape: %s", ve.Error())
		}
		return err
	}
	return nil
}
