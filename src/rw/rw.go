package rw

import (
	"context"

	"github.com/snadboy/sbnotion/src/generator"
)

type DataIdentifier string

func (id DataIdentifier) String() string {
	return string(id)
}

// ReaderWriter persists generated source files together with their
// metadata sidecars. The name argument is the file stem derived from
// the database title; extensions are appended by the implementation.
type ReaderWriter interface {
	WriteGeneratedFile(context.Context, string, []byte) (DataIdentifier, error)
	WriteMetadata(context.Context, string, *generator.Metadata) (DataIdentifier, error)
	ReadMetadata(context.Context, string) (*generator.Metadata, error)
	CleanUp(context.Context) error
}
