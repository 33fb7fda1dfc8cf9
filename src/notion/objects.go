package notion

import (
	"encoding/json"
	"fmt"
	"time"
)

type ObjectType string
type ObjectID string
type DatabaseID string
type PageID string
type Cursor string
type ParentType string
type Color string

const (
	ObjectTypeDatabase ObjectType = "database"
	ObjectTypePage     ObjectType = "page"
	ObjectTypeList     ObjectType = "list"
	ObjectTypeError    ObjectType = "error"
)

const (
	ParentTypeDatabase  ParentType = "database_id"
	ParentTypePage      ParentType = "page_id"
	ParentTypeWorkspace ParentType = "workspace"
)

func (id ObjectID) String() string {
	return string(id)
}

func (id DatabaseID) String() string {
	return string(id)
}

func (id PageID) String() string {
	return string(id)
}

// Object is implemented by every top level Notion API object which can
// appear in a search result list.
type Object interface {
	GetObject() ObjectType
}

type Database struct {
	Object         ObjectType                `json:"object"`
	ID             ObjectID                  `json:"id"`
	CreatedTime    time.Time                 `json:"created_time"`
	LastEditedTime time.Time                 `json:"last_edited_time"`
	Title          []RichText                `json:"title"`
	Properties     map[string]PropertyConfig `json:"properties"`
	Parent         Parent                    `json:"parent,omitempty"`
	URL            string                    `json:"url,omitempty"`
	Archived       bool                      `json:"archived,omitempty"`
}

func (db *Database) GetObject() ObjectType {
	return ObjectTypeDatabase
}

// PlainTitle returns the concatenated plain text of the database title.
func (db *Database) PlainTitle() string {
	title := ""
	for _, rt := range db.Title {
		title += rt.PlainText
	}
	return title
}

type Page struct {
	Object         ObjectType               `json:"object"`
	ID             ObjectID                 `json:"id"`
	CreatedTime    time.Time                `json:"created_time"`
	LastEditedTime time.Time                `json:"last_edited_time"`
	Parent         Parent                   `json:"parent"`
	Archived       bool                     `json:"archived"`
	Properties     map[string]PropertyValue `json:"properties"`
	URL            string                   `json:"url,omitempty"`
}

func (p *Page) GetObject() ObjectType {
	return ObjectTypePage
}

// PlainTitle returns the plain text of the page's title property if any.
func (p *Page) PlainTitle() string {
	for _, value := range p.Properties {
		if value.Type != PropertyTypeTitle {
			continue
		}
		title := ""
		for _, rt := range value.Title {
			title += rt.PlainText
		}
		return title
	}
	return ""
}

type Parent struct {
	Type       ParentType `json:"type,omitempty"`
	DatabaseID DatabaseID `json:"database_id,omitempty"`
	PageID     PageID     `json:"page_id,omitempty"`
	Workspace  bool       `json:"workspace,omitempty"`
}

type RichText struct {
	Type      string `json:"type,omitempty"`
	Text      *Text  `json:"text,omitempty"`
	PlainText string `json:"plain_text,omitempty"`
	Href      string `json:"href,omitempty"`
}

type Text struct {
	Content string `json:"content"`
	Link    *Link  `json:"link,omitempty"`
}

type Link struct {
	Url string `json:"url"`
}

// NewRichText builds the minimal rich text payload accepted by write
// endpoints.
func NewRichText(content string) []RichText {
	return []RichText{{Type: "text", Text: &Text{Content: content}}}
}

type User struct {
	Object    ObjectType `json:"object,omitempty"`
	ID        ObjectID   `json:"id"`
	Name      string     `json:"name,omitempty"`
	AvatarURL string     `json:"avatar_url,omitempty"`
}

type File struct {
	Name     string        `json:"name,omitempty"`
	Type     string        `json:"type,omitempty"`
	File     *FileLocation `json:"file,omitempty"`
	External *FileLocation `json:"external,omitempty"`
}

type FileLocation struct {
	URL string `json:"url"`
}

// URLString returns the effective URL regardless of hosting type.
func (f File) URLString() string {
	if f.File != nil {
		return f.File.URL
	}
	if f.External != nil {
		return f.External.URL
	}
	return ""
}

type Relation struct {
	ID PageID `json:"id"`
}

type Date struct {
	Start    *string `json:"start"`
	End      *string `json:"end,omitempty"`
	TimeZone *string `json:"time_zone,omitempty"`
}

// StartTime parses the start of the date range. Notion emits either a
// plain date or an RFC3339 timestamp.
func (d *Date) StartTime() (time.Time, error) {
	if d == nil || d.Start == nil {
		return time.Time{}, fmt.Errorf("date property has no start value")
	}

	if ts, err := time.Parse(time.RFC3339, *d.Start); err == nil {
		return ts, nil
	}

	return time.Parse("2006-01-02", *d.Start)
}

// decodeObject decodes one search result based on its "object" field.
func decodeObject(raw json.RawMessage) (Object, error) {
	var probe struct {
		Object ObjectType `json:"object"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}

	switch probe.Object {
	case ObjectTypeDatabase:
		db := &Database{}
		if err := json.Unmarshal(raw, db); err != nil {
			return nil, err
		}
		return db, nil
	case ObjectTypePage:
		page := &Page{}
		if err := json.Unmarshal(raw, page); err != nil {
			return nil, err
		}
		return page, nil
	}

	return nil, fmt.Errorf("unsupported object type: %s", probe.Object)
}
