// Package bind maps Notion page properties onto generated structs and
// back, driven by the notion struct tag written by the code generator.
//
// The tag format is `notion:"<property name>,<property type>"`.
package bind

import (
	"reflect"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/snadboy/sbnotion/src/notion"
)

const tagName = "notion"

type fieldTag struct {
	propertyName string
	propertyType notion.PropertyType
}

func parseTag(field reflect.StructField) (fieldTag, bool) {
	raw, found := field.Tag.Lookup(tagName)
	if !found || raw == "" || raw == "-" {
		return fieldTag{}, false
	}

	name, typeTag, found := strings.Cut(raw, ",")
	if !found || !notion.IsValidPropertyType(typeTag) {
		return fieldTag{}, false
	}

	return fieldTag{
		propertyName: name,
		propertyType: notion.PropertyType(typeTag),
	}, true
}

// UnmarshalPage fills the tagged fields of out with the property
// values of the given page. out must be a non-nil struct pointer.
// Unknown properties and untagged fields are skipped.
func UnmarshalPage(page *notion.Page, out interface{}) error {
	if page == nil {
		return errors.New("nullptr received for page object")
	}

	pointer := reflect.ValueOf(out)
	if pointer.Kind() != reflect.Ptr || pointer.IsNil() ||
		pointer.Elem().Kind() != reflect.Struct {
		return errors.Errorf("expected non-nil struct pointer, got %T", out)
	}

	structValue := pointer.Elem()
	structType := structValue.Type()

	for i := 0; i < structType.NumField(); i++ {
		tag, tagged := parseTag(structType.Field(i))
		if !tagged {
			continue
		}

		value, found := page.Properties[tag.propertyName]
		if !found {
			continue
		}

		if err := setField(structValue.Field(i), tag, value); err != nil {
			return errors.Wrapf(err, "property %q", tag.propertyName)
		}
	}

	return nil
}

func setField(field reflect.Value, tag fieldTag,
	value notion.PropertyValue) error {
	if !field.CanSet() {
		return nil
	}

	switch tag.propertyType {
	case notion.PropertyTypeTitle, notion.PropertyTypeRichText:
		return setString(field, value.PlainText())

	case notion.PropertyTypeSelect:
		if value.Select != nil {
			return setString(field, value.Select.Name)
		}

	case notion.PropertyTypeStatus:
		if value.Status != nil {
			return setString(field, value.Status.Name)
		}

	case notion.PropertyTypeMultiSelect:
		names := make([]string, 0, len(value.MultiSelect))
		for _, option := range value.MultiSelect {
			names = append(names, option.Name)
		}
		return setStringSlice(field, names)

	case notion.PropertyTypeNumber:
		if value.Number != nil {
			if field.Kind() != reflect.Float64 {
				return errors.Errorf("cannot assign number to %s",
					field.Kind())
			}
			field.SetFloat(*value.Number)
		}

	case notion.PropertyTypeCheckbox:
		if value.Checkbox != nil {
			if field.Kind() != reflect.Bool {
				return errors.Errorf("cannot assign checkbox to %s",
					field.Kind())
			}
			field.SetBool(*value.Checkbox)
		}

	case notion.PropertyTypeURL:
		if value.URL != nil {
			return setString(field, *value.URL)
		}

	case notion.PropertyTypeEmail:
		if value.Email != nil {
			return setString(field, *value.Email)
		}

	case notion.PropertyTypePhoneNumber:
		if value.PhoneNumber != nil {
			return setString(field, *value.PhoneNumber)
		}

	case notion.PropertyTypeDate:
		if value.Date != nil {
			ts, err := value.Date.StartTime()
			if err != nil {
				return err
			}
			return setTime(field, ts)
		}

	case notion.PropertyTypeCreatedTime:
		if value.CreatedTime != nil {
			return setTimestamp(field, *value.CreatedTime)
		}

	case notion.PropertyTypeLastEditedTime:
		if value.LastEditedTime != nil {
			return setTimestamp(field, *value.LastEditedTime)
		}

	case notion.PropertyTypeCreatedBy:
		if value.CreatedBy != nil {
			return setString(field, value.CreatedBy.Name)
		}

	case notion.PropertyTypeLastEditedBy:
		if value.LastEditedBy != nil {
			return setString(field, value.LastEditedBy.Name)
		}

	case notion.PropertyTypePeople:
		names := make([]string, 0, len(value.People))
		for _, user := range value.People {
			names = append(names, user.Name)
		}
		return setStringSlice(field, names)

	case notion.PropertyTypeFiles:
		urls := make([]string, 0, len(value.Files))
		for _, file := range value.Files {
			urls = append(urls, file.URLString())
		}
		return setStringSlice(field, urls)

	case notion.PropertyTypeRelation:
		ids := make([]string, 0, len(value.Relation))
		for _, relation := range value.Relation {
			ids = append(ids, relation.ID.String())
		}
		return setStringSlice(field, ids)

	case notion.PropertyTypeUniqueID:
		if value.UniqueID != nil {
			return setString(field, value.UniqueID.String())
		}
	}

	return nil
}

func setString(field reflect.Value, value string) error {
	if field.Kind() != reflect.String {
		return errors.Errorf("cannot assign string to %s", field.Kind())
	}
	field.SetString(value)
	return nil
}

func setStringSlice(field reflect.Value, values []string) error {
	if field.Kind() != reflect.Slice ||
		field.Type().Elem().Kind() != reflect.String {
		return errors.Errorf("cannot assign string list to %s",
			field.Type())
	}

	slice := reflect.MakeSlice(field.Type(), len(values), len(values))
	for i, value := range values {
		slice.Index(i).SetString(value)
	}
	field.Set(slice)
	return nil
}

var timeType = reflect.TypeOf(time.Time{})

func setTime(field reflect.Value, ts time.Time) error {
	if field.Type() != timeType {
		return errors.Errorf("cannot assign time to %s", field.Type())
	}
	field.Set(reflect.ValueOf(ts))
	return nil
}

func setTimestamp(field reflect.Value, raw string) error {
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return errors.Wrap(err, "failed to parse timestamp")
	}
	return setTime(field, ts)
}
