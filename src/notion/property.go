package notion

import "strconv"

type PropertyType string

const (
	PropertyTypeTitle          PropertyType = "title"
	PropertyTypeRichText       PropertyType = "rich_text"
	PropertyTypeNumber         PropertyType = "number"
	PropertyTypeSelect         PropertyType = "select"
	PropertyTypeMultiSelect    PropertyType = "multi_select"
	PropertyTypeStatus         PropertyType = "status"
	PropertyTypeDate           PropertyType = "date"
	PropertyTypePeople         PropertyType = "people"
	PropertyTypeFiles          PropertyType = "files"
	PropertyTypeCheckbox       PropertyType = "checkbox"
	PropertyTypeURL            PropertyType = "url"
	PropertyTypeEmail          PropertyType = "email"
	PropertyTypePhoneNumber    PropertyType = "phone_number"
	PropertyTypeFormula        PropertyType = "formula"
	PropertyTypeRelation       PropertyType = "relation"
	PropertyTypeRollup         PropertyType = "rollup"
	PropertyTypeCreatedTime    PropertyType = "created_time"
	PropertyTypeCreatedBy      PropertyType = "created_by"
	PropertyTypeLastEditedTime PropertyType = "last_edited_time"
	PropertyTypeLastEditedBy   PropertyType = "last_edited_by"
	PropertyTypeUniqueID       PropertyType = "unique_id"
)

// PropertyTypes lists every supported property type tag.
func PropertyTypes() []PropertyType {
	return []PropertyType{
		PropertyTypeTitle,
		PropertyTypeRichText,
		PropertyTypeNumber,
		PropertyTypeSelect,
		PropertyTypeMultiSelect,
		PropertyTypeStatus,
		PropertyTypeDate,
		PropertyTypePeople,
		PropertyTypeFiles,
		PropertyTypeCheckbox,
		PropertyTypeURL,
		PropertyTypeEmail,
		PropertyTypePhoneNumber,
		PropertyTypeFormula,
		PropertyTypeRelation,
		PropertyTypeRollup,
		PropertyTypeCreatedTime,
		PropertyTypeCreatedBy,
		PropertyTypeLastEditedTime,
		PropertyTypeLastEditedBy,
		PropertyTypeUniqueID,
	}
}

// IsValidPropertyType reports whether the given type tag is part of
// Notion's property type enumeration supported by this client.
func IsValidPropertyType(propertyType string) bool {
	for _, knownType := range PropertyTypes() {
		if string(knownType) == propertyType {
			return true
		}
	}
	return false
}

// PropertyConfig describes one column of a database schema. Only the
// member matching Type is populated.
type PropertyConfig struct {
	ID   ObjectID     `json:"id,omitempty"`
	Type PropertyType `json:"type"`
	Name string       `json:"name,omitempty"`

	Select      *SelectConfig   `json:"select,omitempty"`
	MultiSelect *SelectConfig   `json:"multi_select,omitempty"`
	Status      *StatusConfig   `json:"status,omitempty"`
	Number      *NumberConfig   `json:"number,omitempty"`
	Formula     *FormulaConfig  `json:"formula,omitempty"`
	Relation    *RelationConfig `json:"relation,omitempty"`
	Rollup      *RollupConfig   `json:"rollup,omitempty"`
}

// Options returns the option list for select, multi_select and status
// configs and nil for every other property type.
func (c PropertyConfig) Options() []Option {
	switch c.Type {
	case PropertyTypeSelect:
		if c.Select != nil {
			return c.Select.Options
		}
	case PropertyTypeMultiSelect:
		if c.MultiSelect != nil {
			return c.MultiSelect.Options
		}
	case PropertyTypeStatus:
		if c.Status != nil {
			return c.Status.Options
		}
	}
	return nil
}

type SelectConfig struct {
	Options []Option `json:"options"`
}

type StatusConfig struct {
	Options []Option `json:"options"`
	Groups  []Group  `json:"groups,omitempty"`
}

type Option struct {
	ID    ObjectID `json:"id,omitempty"`
	Name  string   `json:"name"`
	Color Color    `json:"color,omitempty"`
}

type Group struct {
	ID        ObjectID   `json:"id,omitempty"`
	Name      string     `json:"name"`
	Color     Color      `json:"color,omitempty"`
	OptionIDs []ObjectID `json:"option_ids,omitempty"`
}

type NumberConfig struct {
	Format string `json:"format,omitempty"`
}

type FormulaConfig struct {
	Expression string `json:"expression,omitempty"`
}

type RelationConfig struct {
	DatabaseID DatabaseID `json:"database_id,omitempty"`
}

type RollupConfig struct {
	RelationPropertyName string `json:"relation_property_name,omitempty"`
	RollupPropertyName   string `json:"rollup_property_name,omitempty"`
	Function             string `json:"function,omitempty"`
}

// PropertyValue carries the value of one page property. Only the member
// matching Type is populated.
type PropertyValue struct {
	ID   ObjectID     `json:"id,omitempty"`
	Type PropertyType `json:"type,omitempty"`

	Title          []RichText     `json:"title,omitempty"`
	RichText       []RichText     `json:"rich_text,omitempty"`
	Number         *float64       `json:"number,omitempty"`
	Select         *Option        `json:"select,omitempty"`
	MultiSelect    []Option       `json:"multi_select,omitempty"`
	Status         *Option        `json:"status,omitempty"`
	Date           *Date          `json:"date,omitempty"`
	People         []User         `json:"people,omitempty"`
	Files          []File         `json:"files,omitempty"`
	Checkbox       *bool          `json:"checkbox,omitempty"`
	URL            *string        `json:"url,omitempty"`
	Email          *string        `json:"email,omitempty"`
	PhoneNumber    *string        `json:"phone_number,omitempty"`
	Formula        *FormulaValue  `json:"formula,omitempty"`
	Relation       []Relation     `json:"relation,omitempty"`
	Rollup         *RollupValue   `json:"rollup,omitempty"`
	CreatedTime    *string        `json:"created_time,omitempty"`
	CreatedBy      *User          `json:"created_by,omitempty"`
	LastEditedTime *string        `json:"last_edited_time,omitempty"`
	LastEditedBy   *User          `json:"last_edited_by,omitempty"`
	UniqueID       *UniqueIDValue `json:"unique_id,omitempty"`
}

// PlainText flattens the rich text content of title and rich_text
// values into a plain string.
func (v PropertyValue) PlainText() string {
	var parts []RichText
	switch v.Type {
	case PropertyTypeTitle:
		parts = v.Title
	case PropertyTypeRichText:
		parts = v.RichText
	default:
		return ""
	}

	text := ""
	for _, rt := range parts {
		if rt.PlainText != "" {
			text += rt.PlainText
			continue
		}
		if rt.Text != nil {
			text += rt.Text.Content
		}
	}
	return text
}

type FormulaValue struct {
	Type    string   `json:"type"`
	String  *string  `json:"string,omitempty"`
	Number  *float64 `json:"number,omitempty"`
	Boolean *bool    `json:"boolean,omitempty"`
	Date    *Date    `json:"date,omitempty"`
}

type RollupValue struct {
	Type   string          `json:"type"`
	Number *float64        `json:"number,omitempty"`
	Date   *Date           `json:"date,omitempty"`
	Array  []PropertyValue `json:"array,omitempty"`
}

type UniqueIDValue struct {
	Prefix *string `json:"prefix,omitempty"`
	Number int64   `json:"number"`
}

// String renders the unique id the way Notion displays it, e.g. TASK-42.
func (u UniqueIDValue) String() string {
	if u.Prefix == nil || *u.Prefix == "" {
		return strconv.FormatInt(u.Number, 10)
	}
	return *u.Prefix + "-" + strconv.FormatInt(u.Number, 10)
}
