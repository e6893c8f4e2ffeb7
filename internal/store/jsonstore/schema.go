package jsonstore

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "https://github.com/idilsaglam/tasklist/schema/tasks.json"

// taskFileSchema only constrains shape: an array of objects whose fields
// still decode into a task. No field is required and null is accepted
// anywhere, so records missing id, desc or completed still load.
const taskFileSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "id":        { "type": ["integer", "null"] },
      "desc":      { "type": ["string", "null"] },
      "completed": { "type": ["boolean", "null"] }
    }
  }
}`

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(taskFileSchema)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// validate reports every leaf violation of the task file schema.
func validate(doc any) error {
	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	err = schema.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	var msgs []string
	collectSchemaErrors(&msgs, ve)
	return fmt.Errorf("invalid task file: %s", strings.Join(msgs, "; "))
}

func collectSchemaErrors(msgs *[]string, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*msgs = append(*msgs, fmt.Sprintf("%s: %s", loc, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(msgs, cause)
	}
}
