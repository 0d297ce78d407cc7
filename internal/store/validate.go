package store

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const progressSchemaURL = "schema://progress.json"

// progressSchema encodes the invariants of a stored progress document.
const progressSchema = `{
	"type": "object",
	"required": ["xp", "level", "currentStreak", "lastActiveDate", "rollingAccuracy", "recentAnswers", "momentumScore"],
	"properties": {
		"xp": {"type": "integer", "minimum": 0},
		"level": {"type": "integer", "minimum": 1},
		"currentStreak": {"type": "integer", "minimum": 0},
		"lastActiveDate": {"type": "string", "pattern": "^([0-9]{4}-[0-9]{2}-[0-9]{2})?$"},
		"rollingAccuracy": {"type": "number", "minimum": 0, "maximum": 100},
		"recentAnswers": {"type": "array", "items": {"type": "boolean"}, "maxItems": 30},
		"momentumScore": {"type": "integer", "minimum": 0, "maximum": 100}
	}
}`

var (
	compileOnce      sync.Once
	compiledSchema   *jsonschema.Schema
	compileSchemaErr error
)

// getProgressSchema compiles the progress schema once.
func getProgressSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(progressSchema)))
		if err != nil {
			compileSchemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(progressSchemaURL, doc); err != nil {
			compileSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileSchemaErr = c.Compile(progressSchemaURL)
	})
	return compiledSchema, compileSchemaErr
}

// validateProgressJSON checks a raw progress document against the schema.
// Returns an error wrapping ErrInvalidProgress on failure.
func validateProgressJSON(raw []byte) error {
	sch, err := getProgressSchema()
	if err != nil {
		return fmt.Errorf("compile progress schema: %w", err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", ErrInvalidProgress, err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProgress, err)
	}
	return nil
}
