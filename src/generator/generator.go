// Package generator emits typed source code for Notion database
// schemas.
package generator

import (
	"time"

	"github.com/snadboy/sbnotion/src/schema"
)

// Generator is implemented by every target language backend.
type Generator interface {
	// Generate emits a complete source file for the given schema.
	Generate(descriptor *schema.Descriptor) ([]byte, error)

	// Language returns the name of the target language, e.g. "go".
	Language() string

	// FileExtension returns the extension of generated files,
	// e.g. ".go".
	FileExtension() string
}

// Metadata is the sidecar written next to every generated file. The
// schema hash lets later runs skip databases whose schema has not
// changed.
type Metadata struct {
	SchemaHash    string            `json:"schema_hash"`
	GeneratedAt   time.Time         `json:"generated_at"`
	DatabaseID    string            `json:"notion_db_id"`
	DatabaseName  string            `json:"notion_db_name"`
	PropertyTypes map[string]string `json:"property_types"`
}

// NewMetadata builds the sidecar content for a descriptor.
func NewMetadata(descriptor *schema.Descriptor) *Metadata {
	return &Metadata{
		SchemaHash:    descriptor.Hash,
		GeneratedAt:   time.Now().UTC(),
		DatabaseID:    descriptor.DatabaseID,
		DatabaseName:  descriptor.Title,
		PropertyTypes: descriptor.PropertyTypes(),
	}
}
