// Package schemas validates JSON documents that cross a trust boundary: the
// payload returned by the content synthesis collaborator and the persisted
// store snapshot read back at startup.
package schemas

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed json/*.schema.json
var schemaFS embed.FS

// Schema file names under json/.
const (
	GeneratedContentSchema = "generated_content.schema.json"
	SnapshotSchema         = "snapshot.schema.json"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Schema string
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s validation failed:", ve.Schema)
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, " %d. %s: %s;", i+1, err.Field, err.Message)
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Name  string
	Cause error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("failed to load schema %s: %v", e.Name, e.Cause)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Validator holds the compiled embedded schemas. It is safe for concurrent use.
type Validator struct {
	content  *gojsonschema.Schema
	snapshot *gojsonschema.Schema
}

// NewValidator compiles the embedded schemas.
func NewValidator() (*Validator, error) {
	content, err := compile(GeneratedContentSchema)
	if err != nil {
		return nil, err
	}
	snapshot, err := compile(SnapshotSchema)
	if err != nil {
		return nil, err
	}
	return &Validator{content: content, snapshot: snapshot}, nil
}

func compile(name string) (*gojsonschema.Schema, error) {
	raw, err := schemaFS.ReadFile("json/" + name)
	if err != nil {
		return nil, &SchemaLoadError{Name: name, Cause: err}
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, &SchemaLoadError{Name: name, Cause: err}
	}
	return schema, nil
}

// ValidateGeneratedContent checks a raw content synthesis payload.
func (v *Validator) ValidateGeneratedContent(data []byte) error {
	return validate(GeneratedContentSchema, v.content, data)
}

// ValidateSnapshot checks a raw persisted snapshot.
func (v *Validator) ValidateSnapshot(data []byte) error {
	return validate(SnapshotSchema, v.snapshot, data)
}

func validate(name string, schema *gojsonschema.Schema, data []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		// The document itself could not be parsed as JSON.
		return &ValidationError{
			Schema: name,
			Errors: []FieldError{{Field: "(root)", Message: err.Error()}},
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Schema: name,
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
