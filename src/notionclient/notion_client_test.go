package notionclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/snadboy/sbnotion/src/notion"
	"github.com/snadboy/sbnotion/src/notionclient"
	"github.com/snadboy/sbnotion/src/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	TEST_DATA_PATH           = "./../../testdata/"
	DATABASE_JSON            = TEST_DATA_PATH + "database.json"
	PAGE_JSON                = TEST_DATA_PATH + "page.json"
	SEARCH_DATABASES_JSON    = TEST_DATA_PATH + "search_databases.json"
	EMPTY_SEARCH_RESULT_JSON = TEST_DATA_PATH + "empty_search_result.json"
	QUERY_RESPONSE_JSON      = TEST_DATA_PATH + "database_query_response.json"

	TEST_DATABASE_ID = "cd9c83fe-848b-46cb-a1f4-7c1a51b4f831"
	TEST_PAGE_ID     = "59833787-2cf9-4fdf-8782-e53db20768a5"
)

// getTestApiClient serves canned responses from an httptest server so
// the wrapper is exercised against real HTTP round trips.
func getTestApiClient(t *testing.T,
	handler http.HandlerFunc) notionclient.NotionClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return notionclient.GetNotionApiClient(context.Background(),
		"test-token",
		func(token notion.Token, opts ...notion.ClientOption) *notion.Client {
			opts = append(opts, notion.WithBaseURL(server.URL))
			return notion.GetClient(token, opts...)
		})
}

func serveTestFile(t *testing.T, w http.ResponseWriter, filePath string) {
	t.Helper()
	data, err := utils.ReadJsonFile(filePath)
	require.NoError(t, err)
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func TestGetNotionApiClient(t *testing.T) {
	t.Run("Get Client with valid parameters", func(t *testing.T) {
		client := notionclient.GetNotionApiClient(context.Background(),
			"test-token", notion.GetClient)
		assert.NotNil(t, client)
	})
}

func TestGetAllDatabases(t *testing.T) {
	tests := []struct {
		name        string
		filePath    string
		wantCount   int
		cursorEmpty bool
	}{
		{
			name:        "Databases with pagination",
			filePath:    SEARCH_DATABASES_JSON,
			wantCount:   2,
			cursorEmpty: false,
		},
		{
			name:        "Empty search result",
			filePath:    EMPTY_SEARCH_RESULT_JSON,
			wantCount:   0,
			cursorEmpty: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			client := getTestApiClient(t,
				func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, "/v1/search", r.URL.Path)

					var req notion.SearchRequest
					require.NoError(t,
						json.NewDecoder(r.Body).Decode(&req))
					require.NotNil(t, req.Filter)
					assert.Equal(t, "database", req.Filter.Value)
					assert.Equal(t, "object", req.Filter.Property)

					serveTestFile(t, w, test.filePath)
				})

			databases, cursor, err := client.GetAllDatabases(
				context.Background(), notion.Cursor(""))
			require.NoError(t, err)
			assert.Len(t, databases, test.wantCount)
			assert.Equal(t, test.cursorEmpty, cursor == "")
		})
	}
}

func TestGetDatabasesByName(t *testing.T) {
	client := getTestApiClient(t,
		func(w http.ResponseWriter, r *http.Request) {
			var req notion.SearchRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Task Tracker", req.Query)
			serveTestFile(t, w, SEARCH_DATABASES_JSON)
		})

	databases, cursor, err := client.GetDatabasesByName(
		context.Background(), "Task Tracker", notion.Cursor(""))
	require.NoError(t, err)
	assert.NotEmpty(t, databases)
	assert.NotEqual(t, notion.Cursor(""), cursor)
}

func TestGetAllPages(t *testing.T) {
	client := getTestApiClient(t,
		func(w http.ResponseWriter, r *http.Request) {
			var req notion.SearchRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			require.NotNil(t, req.Filter)
			assert.Equal(t, "page", req.Filter.Value)
			serveTestFile(t, w, EMPTY_SEARCH_RESULT_JSON)
		})

	pages, cursor, err := client.GetAllPages(context.Background(),
		notion.Cursor(""))
	require.NoError(t, err)
	assert.Empty(t, pages)
	assert.Equal(t, notion.Cursor(""), cursor)
}

func TestGetPageByID(t *testing.T) {
	client := getTestApiClient(t,
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/pages/"+TEST_PAGE_ID, r.URL.Path)
			serveTestFile(t, w, PAGE_JSON)
		})

	page, err := client.GetPageByID(context.Background(),
		notionclient.PageID(TEST_PAGE_ID))
	require.NoError(t, err)
	assert.Equal(t, TEST_PAGE_ID, page.ID.String())
}

func TestGetDatabaseByID(t *testing.T) {
	client := getTestApiClient(t,
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/databases/"+TEST_DATABASE_ID, r.URL.Path)
			serveTestFile(t, w, DATABASE_JSON)
		})

	database, err := client.GetDatabaseByID(context.Background(),
		notionclient.DatabaseID(TEST_DATABASE_ID))
	require.NoError(t, err)
	assert.Equal(t, "Task Tracker", database.PlainTitle())
}

func TestGetDatabasePages(t *testing.T) {
	client := getTestApiClient(t,
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t,
				"/v1/databases/"+TEST_DATABASE_ID+"/query", r.URL.Path)
			serveTestFile(t, w, QUERY_RESPONSE_JSON)
		})

	pages, cursor, err := client.GetDatabasePages(context.Background(),
		notionclient.DatabaseID(TEST_DATABASE_ID), notion.Cursor(""))
	require.NoError(t, err)
	assert.Len(t, pages, 2)
	assert.Equal(t, notion.Cursor(""), cursor)
}

func TestCreatePage(t *testing.T) {
	client := getTestApiClient(t,
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/pages", r.URL.Path)

			var req notion.PageCreateRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, notion.ParentTypeDatabase, req.Parent.Type)

			serveTestFile(t, w, PAGE_JSON)
		})

	page, err := client.CreatePage(context.Background(),
		&notion.PageCreateRequest{
			Parent: notion.Parent{
				Type:       notion.ParentTypeDatabase,
				DatabaseID: notion.DatabaseID(TEST_DATABASE_ID),
			},
			Properties: map[string]notion.PropertyValue{
				"Name": {
					Type:  notion.PropertyTypeTitle,
					Title: notion.NewRichText("Write report"),
				},
			},
		})
	require.NoError(t, err)
	assert.Equal(t, TEST_PAGE_ID, page.ID.String())
}

func TestUpdatePage(t *testing.T) {
	client := getTestApiClient(t,
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "/v1/pages/"+TEST_PAGE_ID, r.URL.Path)
			serveTestFile(t, w, PAGE_JSON)
		})

	page, err := client.UpdatePage(context.Background(),
		notionclient.PageID(TEST_PAGE_ID),
		&notion.PageUpdateRequest{
			Properties: map[string]notion.PropertyValue{
				"Done": {
					Type:     notion.PropertyTypeCheckbox,
					Checkbox: boolPtr(true),
				},
			},
		})
	require.NoError(t, err)
	assert.Equal(t, TEST_PAGE_ID, page.ID.String())
}

func boolPtr(b bool) *bool {
	return &b
}
