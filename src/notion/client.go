package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

type Token string

const (
	apiURL     = "https://api.notion.com"
	apiVersion = "v1"

	// notionVersion pins the versioned behavior of the REST API.
	notionVersion = "2022-06-28"

	// Notion allows an average of three requests per second per
	// integration.
	requestsPerSecond = 3

	defaultMaxRetries = 3
	defaultBackoff    = 500 * time.Millisecond
)

type ClientOption func(*Client)

// Client is a low level Notion REST API client. It injects the bearer
// token and Notion-Version headers, enforces the documented request
// rate and retries rate limited and transient server failures. A Client
// is safe for concurrent use by multiple goroutines.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	version    string
	token      Token
	limiter    *rate.Limiter
	maxRetries int
	backoff    time.Duration

	Search   *SearchService
	Database *DatabaseService
	Page     *PageService
}

type NewClient func(token Token, opts ...ClientOption) *Client

// GetClient returns a Client authenticated with the given token.
func GetClient(token Token, opts ...ClientOption) *Client {
	base, _ := url.Parse(apiURL)

	client := &Client{
		httpClient: http.DefaultClient,
		baseURL:    base,
		version:    notionVersion,
		token:      token,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		maxRetries: defaultMaxRetries,
		backoff:    defaultBackoff,
	}

	client.Search = &SearchService{client: client}
	client.Database = &DatabaseService{client: client}
	client.Page = &PageService{client: client}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL points the client at a different endpoint, typically a
// test server.
func WithBaseURL(rawURL string) ClientOption {
	return func(c *Client) {
		if parsed, err := url.Parse(rawURL); err == nil {
			c.baseURL = parsed
		}
	}
}

// WithMaxRetries bounds how often a rate limited or failed request is
// reissued before the error is surfaced.
func WithMaxRetries(maxRetries int) ClientOption {
	return func(c *Client) {
		c.maxRetries = maxRetries
	}
}

// WithRetryBackoff sets the base duration of the exponential backoff
// between retries.
func WithRetryBackoff(backoff time.Duration) ClientOption {
	return func(c *Client) {
		c.backoff = backoff
	}
}

// WithVersion overrides the Notion-Version header.
func WithVersion(version string) ClientOption {
	return func(c *Client) {
		if version != "" {
			c.version = version
		}
	}
}

func (c *Client) request(ctx context.Context, method string,
	urlStr string, queryParams url.Values, requestBody interface{},
	result interface{}) error {
	requestURL := *c.baseURL
	requestURL.Path = fmt.Sprintf("/%s/%s", apiVersion, urlStr)
	if len(queryParams) > 0 {
		requestURL.RawQuery = queryParams.Encode()
	}

	var bodyBytes []byte
	if requestBody != nil {
		data, err := json.Marshal(requestBody)
		if err != nil {
			return errors.Wrap(err, "failed to encode request body")
		}
		bodyBytes = data
	}

	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		retryable, err := c.do(ctx, method, requestURL.String(),
			bodyBytes, result)
		if err == nil {
			return nil
		}

		if !retryable || attempt >= c.maxRetries {
			return err
		}

		if waitErr := c.wait(ctx, attempt, err); waitErr != nil {
			return waitErr
		}
	}
}

// do performs a single HTTP exchange. The returned bool reports whether
// the failure may be retried.
func (c *Client) do(ctx context.Context, method string, requestURL string,
	bodyBytes []byte, result interface{}) (bool, error) {
	var bodyReader io.Reader
	if bodyBytes != nil {
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL,
		bodyReader)
	if err != nil {
		return false, errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("Authorization", "Bearer "+string(c.token))
	req.Header.Set("Notion-Version", c.version)
	if bodyBytes != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport level failures are worth one more attempt unless
		// the context already gave up.
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return true, errors.Wrap(err, "failed to perform request")
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, errors.Wrap(err, "failed to read response body")
	}

	if resp.StatusCode >= http.StatusOK &&
		resp.StatusCode < http.StatusMultipleChoices {
		if result == nil {
			return false, nil
		}

		if err := json.Unmarshal(respBytes, result); err != nil {
			return false, errors.Wrap(err, "failed to decode response")
		}
		return false, nil
	}

	apiErr := &APIError{Status: resp.StatusCode}
	if err := json.Unmarshal(respBytes, apiErr); err != nil {
		apiErr.Message = string(respBytes)
	}
	apiErr.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))

	return apiErr.Retryable(), apiErr
}

// wait sleeps between retries, honoring Retry-After when the server
// provided one and exponential backoff otherwise.
func (c *Client) wait(ctx context.Context, attempt int, cause error) error {
	delay := c.backoff << uint(attempt)

	var apiErr *APIError
	if errors.As(cause, &apiErr) && apiErr.RetryAfter > 0 {
		delay = apiErr.RetryAfter
	}

	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}

	if seconds, err := strconv.ParseFloat(header, 64); err == nil {
		return time.Duration(seconds * float64(time.Second))
	}
	return 0
}
