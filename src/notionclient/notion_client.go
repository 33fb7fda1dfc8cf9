package notionclient

import (
	"context"

	"github.com/snadboy/sbnotion/src/notion"
)

type PageID string
type PageName string
type DatabaseID string
type DatabaseName string
type Token string

const (
	DEFAULT_PAGE_SIZE = 100
)

type ObjectType int

const (
	UNKNOWN  ObjectType = 0
	DATABASE            = 1
	PAGE                = 2
)

type NotionClient interface {
	GetAllPages(context.Context, notion.Cursor) ([]notion.Page, notion.Cursor, error)
	GetAllDatabases(context.Context, notion.Cursor) ([]notion.Database, notion.Cursor, error)
	GetPagesByName(context.Context, PageName, notion.Cursor) ([]notion.Page, notion.Cursor, error)
	GetDatabasesByName(context.Context, DatabaseName, notion.Cursor) ([]notion.Database, notion.Cursor, error)
	GetPageByID(context.Context, PageID) (*notion.Page, error)
	GetDatabaseByID(context.Context, DatabaseID) (*notion.Database, error)
	GetDatabasePages(context.Context, DatabaseID, notion.Cursor) ([]notion.Page, notion.Cursor, error)
	CreatePage(context.Context, *notion.PageCreateRequest) (*notion.Page, error)
	UpdatePage(context.Context, PageID, *notion.PageUpdateRequest) (*notion.Page, error)
}

type NotionApiClient struct {
	Client *notion.Client
}

// Function to get NotionApiClient instance
func GetNotionApiClient(ctx context.Context, token notion.Token, newClient notion.NewClient) NotionClient {
	return &NotionApiClient{
		Client: newClient(token),
	}
}

// Helper function for searching the required objects i.e. pages and databases
// with given query parameter
func (c *NotionApiClient) search(ctx context.Context, objectType ObjectType, cursor notion.Cursor, query string) (*notion.SearchResponse, error) {
	objectValue := "page"
	if objectType == DATABASE {
		objectValue = "database"
	}

	req := &notion.SearchRequest{
		Query: query,
		Filter: &notion.SearchFilter{
			Value:    objectValue,
			Property: "object",
		},
		PageSize:    DEFAULT_PAGE_SIZE,
		StartCursor: cursor,
	}

	resp, err := c.Client.Search.Do(ctx, req)
	return resp, err
}

// Helper function to get all pages matching the given page name
func (c *NotionApiClient) getPages(ctx context.Context, name PageName, cursor notion.Cursor) ([]notion.Page, notion.Cursor, error) {
	pages := []notion.Page{}

	resp, err := c.search(ctx, PAGE, cursor, string(name))
	if err != nil {
		return nil, "", err
	}

	for _, result := range resp.Results {
		page, ok := result.(*notion.Page)
		if !ok {
			continue
		}
		pages = append(pages, *page)
	}

	var newCursor notion.Cursor
	if resp.HasMore {
		newCursor = resp.NextCursor
	} else {
		newCursor = notion.Cursor("")
	}

	return pages, newCursor, nil
}

// Get all pages. Passing empty name would mean fetching all the pages from
// workspace
func (c *NotionApiClient) GetAllPages(ctx context.Context, cursor notion.Cursor) ([]notion.Page, notion.Cursor, error) {
	return c.getPages(ctx, "" /*PageName*/, cursor)
}

// Get all pages matching the given page name
func (c *NotionApiClient) GetPagesByName(ctx context.Context, name PageName, cursor notion.Cursor) ([]notion.Page, notion.Cursor, error) {
	return c.getPages(ctx, name, cursor)
}

// Helper function to get all databases matching the given database name
func (c *NotionApiClient) getDatabases(ctx context.Context, name DatabaseName, cursor notion.Cursor) ([]notion.Database, notion.Cursor, error) {
	databases := []notion.Database{}

	resp, err := c.search(ctx, DATABASE, cursor, string(name))
	if err != nil {
		return nil, "", err
	}

	for _, result := range resp.Results {
		database, ok := result.(*notion.Database)
		if !ok {
			continue
		}
		databases = append(databases, *database)
	}

	var newCursor notion.Cursor
	if resp.HasMore {
		newCursor = resp.NextCursor
	} else {
		newCursor = notion.Cursor("")
	}

	return databases, newCursor, nil
}

// Get all databases. Passing empty name would mean fetching all the databases
// from workspace
func (c *NotionApiClient) GetAllDatabases(ctx context.Context, cursor notion.Cursor) ([]notion.Database, notion.Cursor, error) {
	return c.getDatabases(ctx, "" /*DatabaseName*/, cursor)
}

// Get all databases matching the given database name
func (c *NotionApiClient) GetDatabasesByName(ctx context.Context, name DatabaseName, cursor notion.Cursor) ([]notion.Database, notion.Cursor, error) {
	return c.getDatabases(ctx, name, cursor)
}

// Get Page with given PageID
func (c *NotionApiClient) GetPageByID(ctx context.Context, id PageID) (*notion.Page, error) {
	return c.Client.Page.Get(ctx, notion.PageID(id))
}

// Get Database with given DatabaseID
func (c *NotionApiClient) GetDatabaseByID(ctx context.Context, id DatabaseID) (*notion.Database, error) {
	return c.Client.Database.Get(ctx, notion.DatabaseID(id))
}

// Get all pages for given Database
func (c *NotionApiClient) GetDatabasePages(ctx context.Context, id DatabaseID, cursor notion.Cursor) ([]notion.Page, notion.Cursor, error) {
	queryReq := &notion.DatabaseQueryRequest{
		StartCursor: cursor,
		PageSize:    DEFAULT_PAGE_SIZE,
	}

	resp, err := c.Client.Database.Query(ctx, notion.DatabaseID(id), queryReq)
	if err != nil {
		return nil, "", err
	}

	pages := []notion.Page{}
	pages = append(pages, resp.Results...)

	var newCursor notion.Cursor
	if resp.HasMore {
		newCursor = resp.NextCursor
	} else {
		newCursor = notion.Cursor("")
	}

	return pages, newCursor, nil
}

// Create a new page under the parent given in the request
func (c *NotionApiClient) CreatePage(ctx context.Context, req *notion.PageCreateRequest) (*notion.Page, error) {
	return c.Client.Page.Create(ctx, req)
}

// Update properties of the page with given PageID
func (c *NotionApiClient) UpdatePage(ctx context.Context, id PageID, req *notion.PageUpdateRequest) (*notion.Page, error) {
	return c.Client.Page.Update(ctx, notion.PageID(id), req)
}
