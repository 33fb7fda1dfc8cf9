package notion

import (
	"context"
	"encoding/json"
	"net/http"
)

type SearchService struct {
	client *Client
}

type SearchRequest struct {
	Query       string        `json:"query,omitempty"`
	Sort        *SearchSort   `json:"sort,omitempty"`
	Filter      *SearchFilter `json:"filter,omitempty"`
	StartCursor Cursor        `json:"start_cursor,omitempty"`
	PageSize    int           `json:"page_size,omitempty"`
}

type SearchSort struct {
	Direction string `json:"direction"`
	Timestamp string `json:"timestamp"`
}

type SearchFilter struct {
	Value    string `json:"value"`
	Property string `json:"property"`
}

type SearchResponse struct {
	Object     ObjectType `json:"object"`
	Results    []Object   `json:"results"`
	HasMore    bool       `json:"has_more"`
	NextCursor Cursor     `json:"next_cursor"`
}

// UnmarshalJSON decodes each search result into its concrete type based
// on the object tag.
func (r *SearchResponse) UnmarshalJSON(data []byte) error {
	var envelope struct {
		Object     ObjectType        `json:"object"`
		Results    []json.RawMessage `json:"results"`
		HasMore    bool              `json:"has_more"`
		NextCursor Cursor            `json:"next_cursor"`
	}

	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}

	r.Object = envelope.Object
	r.HasMore = envelope.HasMore
	r.NextCursor = envelope.NextCursor
	r.Results = make([]Object, 0, len(envelope.Results))

	for _, raw := range envelope.Results {
		object, err := decodeObject(raw)
		if err != nil {
			return err
		}
		r.Results = append(r.Results, object)
	}

	return nil
}

// Do searches all pages and databases shared with the integration.
func (s *SearchService) Do(ctx context.Context,
	req *SearchRequest) (*SearchResponse, error) {
	resp := &SearchResponse{}
	err := s.client.request(ctx, http.MethodPost, "search", nil, req, resp)
	if err != nil {
		return nil, err
	}
	return resp, nil
}
