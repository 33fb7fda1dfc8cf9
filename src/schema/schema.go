// Package schema turns a Notion database object into an ordered,
// hashable descriptor that code generators consume.
package schema

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/snadboy/sbnotion/src/notion"
)

var ErrNoTitleProperty = errors.New(
	"database schema has no title property")

// Property is one column of a database schema.
type Property struct {
	Name    string
	Type    notion.PropertyType
	Options []notion.Option
}

// Descriptor is the schema of a single database. Properties are held
// in a deterministic order: the title property first, the rest sorted
// by name. Notion serves properties as a JSON object, so the upstream
// order is not stable.
type Descriptor struct {
	DatabaseID string
	Title      string
	Hash       string
	Properties []Property
}

// NewDescriptor builds a Descriptor from a full database object.
func NewDescriptor(database *notion.Database) (*Descriptor, error) {
	if database == nil {
		return nil, errors.New("nullptr received for database object")
	}

	hash, err := Hash(database)
	if err != nil {
		return nil, err
	}

	properties := make([]Property, 0, len(database.Properties))
	titleCount := 0
	for name, config := range database.Properties {
		if config.Type == notion.PropertyTypeTitle {
			titleCount++
		}
		properties = append(properties, Property{
			Name:    name,
			Type:    config.Type,
			Options: config.Options(),
		})
	}

	if titleCount == 0 {
		return nil, ErrNoTitleProperty
	}

	sort.Slice(properties, func(i, j int) bool {
		if properties[i].Type == notion.PropertyTypeTitle {
			return true
		}
		if properties[j].Type == notion.PropertyTypeTitle {
			return false
		}
		return properties[i].Name < properties[j].Name
	})

	return &Descriptor{
		DatabaseID: database.ID.String(),
		Title:      database.PlainTitle(),
		Hash:       hash,
		Properties: properties,
	}, nil
}

// TitleProperty returns the schema's title property.
func (d *Descriptor) TitleProperty() Property {
	return d.Properties[0]
}

// PropertyTypes maps every property name to its type tag.
func (d *Descriptor) PropertyTypes() map[string]string {
	types := make(map[string]string, len(d.Properties))
	for _, property := range d.Properties {
		types[property.Name] = string(property.Type)
	}
	return types
}
