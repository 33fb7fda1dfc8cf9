package notion

import (
	"context"
	"fmt"
	"net/http"
)

type DatabaseService struct {
	client *Client
}

type DatabaseQueryRequest struct {
	Filter      interface{}  `json:"filter,omitempty"`
	Sorts       []SortObject `json:"sorts,omitempty"`
	StartCursor Cursor       `json:"start_cursor,omitempty"`
	PageSize    int          `json:"page_size,omitempty"`
}

type SortObject struct {
	Property  string `json:"property,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Direction string `json:"direction,omitempty"`
}

type DatabaseQueryResponse struct {
	Object     ObjectType `json:"object"`
	Results    []Page     `json:"results"`
	HasMore    bool       `json:"has_more"`
	NextCursor Cursor     `json:"next_cursor"`
}

// Get retrieves the full database object including its schema.
func (s *DatabaseService) Get(ctx context.Context,
	id DatabaseID) (*Database, error) {
	db := &Database{}
	err := s.client.request(ctx, http.MethodGet,
		fmt.Sprintf("databases/%s", id), nil, nil, db)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Query returns one page of rows of the given database.
func (s *DatabaseService) Query(ctx context.Context, id DatabaseID,
	req *DatabaseQueryRequest) (*DatabaseQueryResponse, error) {
	resp := &DatabaseQueryResponse{}
	err := s.client.request(ctx, http.MethodPost,
		fmt.Sprintf("databases/%s/query", id), nil, req, resp)
	if err != nil {
		return nil, err
	}
	return resp, nil
}
