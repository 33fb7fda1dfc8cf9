package bind

import (
	"reflect"
	"time"

	"github.com/pkg/errors"
	"github.com/snadboy/sbnotion/src/notion"
)

// MarshalProperties converts the tagged fields of a generated struct
// into the property map accepted by the page create and update
// endpoints. Zero valued fields are omitted so partial updates do not
// clear properties. Read-only property types (formula, rollup,
// created/edited metadata, unique_id) are skipped.
func MarshalProperties(in interface{}) (map[string]notion.PropertyValue,
	error) {
	value := reflect.ValueOf(in)
	if value.Kind() == reflect.Ptr {
		if value.IsNil() {
			return nil, errors.New("nullptr received for data object")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, errors.Errorf("expected struct, got %T", in)
	}

	properties := map[string]notion.PropertyValue{}
	structType := value.Type()

	for i := 0; i < structType.NumField(); i++ {
		tag, tagged := parseTag(structType.Field(i))
		if !tagged {
			continue
		}

		field := value.Field(i)
		if field.IsZero() {
			continue
		}

		property, writable, err := propertyValue(field, tag)
		if err != nil {
			return nil, errors.Wrapf(err, "property %q", tag.propertyName)
		}
		if writable {
			properties[tag.propertyName] = property
		}
	}

	return properties, nil
}

func propertyValue(field reflect.Value, tag fieldTag) (notion.PropertyValue,
	bool, error) {
	switch tag.propertyType {
	case notion.PropertyTypeTitle:
		return notion.PropertyValue{
			Type:  notion.PropertyTypeTitle,
			Title: notion.NewRichText(field.String()),
		}, true, nil

	case notion.PropertyTypeRichText:
		return notion.PropertyValue{
			Type:     notion.PropertyTypeRichText,
			RichText: notion.NewRichText(field.String()),
		}, true, nil

	case notion.PropertyTypeSelect:
		return notion.PropertyValue{
			Type:   notion.PropertyTypeSelect,
			Select: &notion.Option{Name: field.String()},
		}, true, nil

	case notion.PropertyTypeStatus:
		return notion.PropertyValue{
			Type:   notion.PropertyTypeStatus,
			Status: &notion.Option{Name: field.String()},
		}, true, nil

	case notion.PropertyTypeMultiSelect:
		if field.Kind() != reflect.Slice {
			return notion.PropertyValue{}, false, errors.Errorf(
				"cannot encode %s as multi_select", field.Type())
		}
		options := make([]notion.Option, 0, field.Len())
		for i := 0; i < field.Len(); i++ {
			options = append(options,
				notion.Option{Name: field.Index(i).String()})
		}
		return notion.PropertyValue{
			Type:        notion.PropertyTypeMultiSelect,
			MultiSelect: options,
		}, true, nil

	case notion.PropertyTypeNumber:
		number := field.Float()
		return notion.PropertyValue{
			Type:   notion.PropertyTypeNumber,
			Number: &number,
		}, true, nil

	case notion.PropertyTypeCheckbox:
		checked := field.Bool()
		return notion.PropertyValue{
			Type:     notion.PropertyTypeCheckbox,
			Checkbox: &checked,
		}, true, nil

	case notion.PropertyTypeURL:
		url := field.String()
		return notion.PropertyValue{
			Type: notion.PropertyTypeURL,
			URL:  &url,
		}, true, nil

	case notion.PropertyTypeEmail:
		email := field.String()
		return notion.PropertyValue{
			Type:  notion.PropertyTypeEmail,
			Email: &email,
		}, true, nil

	case notion.PropertyTypePhoneNumber:
		phone := field.String()
		return notion.PropertyValue{
			Type:        notion.PropertyTypePhoneNumber,
			PhoneNumber: &phone,
		}, true, nil

	case notion.PropertyTypeDate:
		ts, ok := field.Interface().(time.Time)
		if !ok {
			return notion.PropertyValue{}, false, errors.Errorf(
				"cannot encode %s as date", field.Type())
		}
		start := ts.Format(time.RFC3339)
		return notion.PropertyValue{
			Type: notion.PropertyTypeDate,
			Date: &notion.Date{Start: &start},
		}, true, nil

	case notion.PropertyTypeRelation:
		if field.Kind() != reflect.Slice {
			return notion.PropertyValue{}, false, errors.Errorf(
				"cannot encode %s as relation", field.Type())
		}
		relations := make([]notion.Relation, 0, field.Len())
		for i := 0; i < field.Len(); i++ {
			relations = append(relations,
				notion.Relation{ID: notion.PageID(field.Index(i).String())})
		}
		return notion.PropertyValue{
			Type:     notion.PropertyTypeRelation,
			Relation: relations,
		}, true, nil
	}

	return notion.PropertyValue{}, false, nil
}
