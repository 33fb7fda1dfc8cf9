package generator

import (
	"fmt"
	"go/format"
	"strings"

	"github.com/pkg/errors"
	"github.com/snadboy/sbnotion/src/notion"
	"github.com/snadboy/sbnotion/src/schema"
)

const (
	DEFAULT_PACKAGE_NAME = "generated"
)

// GoGenerator emits one Go source file per database: a struct with one
// field per property, a database id constant and a typed constant set
// for every select, multi select and status property.
type GoGenerator struct {
	packageName string
}

// GetGoGenerator returns a Go backend emitting code into the given
// package.
func GetGoGenerator(packageName string) Generator {
	if packageName == "" {
		packageName = DEFAULT_PACKAGE_NAME
	}
	return &GoGenerator{packageName: packageName}
}

func (g *GoGenerator) Language() string {
	return "go"
}

func (g *GoGenerator) FileExtension() string {
	return ".go"
}

type goEnum struct {
	typeName string
	options  []notion.Option
}

type goField struct {
	name     string
	goType   string
	property schema.Property
}

func (g *GoGenerator) Generate(descriptor *schema.Descriptor) ([]byte,
	error) {
	if descriptor == nil || len(descriptor.Properties) == 0 {
		return nil, errors.New("empty schema descriptor")
	}

	structName := ExportedIdentifier(descriptor.Title)
	if structName == "" {
		return nil, errors.Errorf(
			"database title %q yields no valid type name", descriptor.Title)
	}

	fieldNames := newUniqueIdentifiers()
	fieldNames.claim(structName)

	fields := []goField{}
	enums := []goEnum{}

	for _, property := range descriptor.Properties {
		fieldName := ExportedIdentifier(property.Name)
		if fieldName == "" {
			fieldName = "Property"
		}
		fieldName = fieldNames.claim(fieldName)

		enumType := ""
		if len(property.Options) > 0 && isSelectLike(property.Type) {
			enumType = structName + fieldName
			enums = append(enums, goEnum{
				typeName: enumType,
				options:  property.Options,
			})
		}

		fields = append(fields, goField{
			name:     fieldName,
			goType:   goFieldType(property.Type, enumType),
			property: property,
		})
	}

	source := &strings.Builder{}
	fmt.Fprintf(source,
		"// Code generated by sbnotion from the %q Notion database. DO NOT EDIT.\n",
		descriptor.Title)
	fmt.Fprintf(source, "package %s\n\n", g.packageName)

	if needsTimeImport(fields) {
		fmt.Fprintf(source, "import \"time\"\n\n")
	}

	fmt.Fprintf(source, "// %sDatabaseID is the id of the source database.\n",
		structName)
	fmt.Fprintf(source, "const %sDatabaseID = %q\n\n", structName,
		descriptor.DatabaseID)

	for _, enum := range enums {
		g.writeEnum(source, enum)
	}

	fmt.Fprintf(source, "type %s struct {\n", structName)
	for _, field := range fields {
		fmt.Fprintf(source, "\t%s %s `notion:\"%s,%s\"`\n", field.name,
			field.goType, field.property.Name, field.property.Type)
	}
	fmt.Fprintf(source, "}\n")

	formatted, err := format.Source([]byte(source.String()))
	if err != nil {
		return nil, errors.Wrap(err, "generated source does not compile")
	}

	return formatted, nil
}

func (g *GoGenerator) writeEnum(source *strings.Builder, enum goEnum) {
	fmt.Fprintf(source, "type %s string\n\n", enum.typeName)
	fmt.Fprintf(source, "const (\n")

	constNames := newUniqueIdentifiers()
	for _, option := range enum.options {
		constName := ExportedIdentifier(option.Name)
		if constName == "" {
			constName = "Option"
		}
		constName = constNames.claim(enum.typeName + constName)
		fmt.Fprintf(source, "\t%s %s = %q\n", constName, enum.typeName,
			option.Name)
	}

	fmt.Fprintf(source, ")\n\n")
}

func isSelectLike(propertyType notion.PropertyType) bool {
	return propertyType == notion.PropertyTypeSelect ||
		propertyType == notion.PropertyTypeMultiSelect ||
		propertyType == notion.PropertyTypeStatus
}

// goFieldType maps a Notion property type to the Go type of the
// generated struct field.
func goFieldType(propertyType notion.PropertyType, enumType string) string {
	switch propertyType {
	case notion.PropertyTypeTitle, notion.PropertyTypeRichText,
		notion.PropertyTypeURL, notion.PropertyTypeEmail,
		notion.PropertyTypePhoneNumber, notion.PropertyTypeCreatedBy,
		notion.PropertyTypeLastEditedBy, notion.PropertyTypeUniqueID:
		return "string"
	case notion.PropertyTypeSelect, notion.PropertyTypeStatus:
		if enumType != "" {
			return enumType
		}
		return "string"
	case notion.PropertyTypeMultiSelect:
		if enumType != "" {
			return "[]" + enumType
		}
		return "[]string"
	case notion.PropertyTypeNumber:
		return "float64"
	case notion.PropertyTypeCheckbox:
		return "bool"
	case notion.PropertyTypeDate, notion.PropertyTypeCreatedTime,
		notion.PropertyTypeLastEditedTime:
		return "time.Time"
	case notion.PropertyTypePeople, notion.PropertyTypeFiles,
		notion.PropertyTypeRelation:
		return "[]string"
	default:
		// formula, rollup and anything Notion adds later
		return "interface{}"
	}
}

func needsTimeImport(fields []goField) bool {
	for _, field := range fields {
		if field.goType == "time.Time" {
			return true
		}
	}
	return false
}
