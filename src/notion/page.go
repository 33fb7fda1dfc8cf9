package notion

import (
	"context"
	"fmt"
	"net/http"
)

type PageService struct {
	client *Client
}

type PageCreateRequest struct {
	Parent     Parent                   `json:"parent"`
	Properties map[string]PropertyValue `json:"properties"`
}

type PageUpdateRequest struct {
	Properties map[string]PropertyValue `json:"properties"`
	Archived   *bool                    `json:"archived,omitempty"`
}

// Get retrieves a page by its id.
func (s *PageService) Get(ctx context.Context, id PageID) (*Page, error) {
	page := &Page{}
	err := s.client.request(ctx, http.MethodGet,
		fmt.Sprintf("pages/%s", id), nil, nil, page)
	if err != nil {
		return nil, err
	}
	return page, nil
}

// Create creates a page under the given parent database or page.
func (s *PageService) Create(ctx context.Context,
	req *PageCreateRequest) (*Page, error) {
	page := &Page{}
	err := s.client.request(ctx, http.MethodPost, "pages", nil, req, page)
	if err != nil {
		return nil, err
	}
	return page, nil
}

// Update patches the properties of an existing page.
func (s *PageService) Update(ctx context.Context, id PageID,
	req *PageUpdateRequest) (*Page, error) {
	page := &Page{}
	err := s.client.request(ctx, http.MethodPatch,
		fmt.Sprintf("pages/%s", id), nil, req, page)
	if err != nil {
		return nil, err
	}
	return page, nil
}
