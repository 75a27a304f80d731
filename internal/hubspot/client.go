// Package hubspot provides a minimal client for the HubSpot CRM v3 objects API.
package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// DefaultBaseURL is the public HubSpot API host.
const DefaultBaseURL = "https://api.hubapi.com"

// ObjectKind names a CRM object type as it appears in the objects API path.
type ObjectKind string

const (
	Contacts  ObjectKind = "contacts"
	Companies ObjectKind = "companies"
	Deals     ObjectKind = "deals"
)

// Credentials holds either a legacy API key or a private app access token.
// When both are set the API key is used.
type Credentials struct {
	APIKey      string
	AccessToken string
}

// ErrNoCredentials is returned by New when neither credential is set.
var ErrNoCredentials = errors.New("either API key or access token must be provided")

// Client is a thin HTTP client for HubSpot CRM records.
type Client struct {
	BaseURL string
	Creds   Credentials
	HTTP    *http.Client
}

// New returns a new client. If httpClient is nil, http.DefaultClient is used,
// which has no timeout.
func New(baseURL string, creds Credentials, httpClient *http.Client) (*Client, error) {
	if creds.APIKey == "" && creds.AccessToken == "" {
		return nil, ErrNoCredentials
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), Creds: creds, HTTP: httpClient}, nil
}

// Object is a single CRM record.
type Object struct {
	ID         string         `json:"id"`
	Properties map[string]any `json:"properties"`
	CreatedAt  string         `json:"createdAt,omitempty"`
	UpdatedAt  string         `json:"updatedAt,omitempty"`
	Archived   bool           `json:"archived"`
}

// NextPage is the continuation cursor of a paged response.
type NextPage struct {
	After string `json:"after"`
	Link  string `json:"link,omitempty"`
}

// Paging wraps the optional continuation cursor.
type Paging struct {
	Next *NextPage `json:"next,omitempty"`
}

// Page is one page of records from a list or search call.
type Page struct {
	Total   int      `json:"total,omitempty"`
	Results []Object `json:"results"`
	Paging  *Paging  `json:"paging,omitempty"`
}

// HasMore reports whether the upstream returned a continuation cursor.
func (p *Page) HasMore() bool {
	return p != nil && p.Paging != nil && p.Paging.Next != nil
}

// NextAfter returns the continuation cursor, or "" on the last page.
func (p *Page) NextAfter() string {
	if !p.HasMore() {
		return ""
	}
	return p.Paging.Next.After
}

// SearchRequest is the body of a full-text object search.
type SearchRequest struct {
	Query      string   `json:"query"`
	Limit      int      `json:"limit,omitempty"`
	After      string   `json:"after,omitempty"`
	Properties []string `json:"properties,omitempty"`
}

type objectInput struct {
	Properties map[string]any `json:"properties"`
}

// GetPage reads a single page of records of the given kind.
func (c *Client) GetPage(ctx context.Context, kind ObjectKind, limit int, after string, properties []string) (*Page, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if after != "" {
		q.Set("after", after)
	}
	if len(properties) > 0 {
		q.Set("properties", strings.Join(properties, ","))
	}
	var page Page
	if err := c.do(ctx, http.MethodGet, objectsPath(kind), q, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetByID reads one record.
func (c *Client) GetByID(ctx context.Context, kind ObjectKind, id string, properties []string) (*Object, error) {
	q := url.Values{}
	if len(properties) > 0 {
		q.Set("properties", strings.Join(properties, ","))
	}
	var obj Object
	if err := c.do(ctx, http.MethodGet, objectsPath(kind, id), q, nil, &obj); err != nil {
		return nil, err
	}
	return &obj, nil
}

// Create creates a record with the given properties.
func (c *Client) Create(ctx context.Context, kind ObjectKind, properties map[string]any) (*Object, error) {
	var obj Object
	if err := c.do(ctx, http.MethodPost, objectsPath(kind), nil, objectInput{Properties: properties}, &obj); err != nil {
		return nil, err
	}
	return &obj, nil
}

// Update patches a record; only the given properties change.
func (c *Client) Update(ctx context.Context, kind ObjectKind, id string, properties map[string]any) (*Object, error) {
	var obj Object
	if err := c.do(ctx, http.MethodPatch, objectsPath(kind, id), nil, objectInput{Properties: properties}, &obj); err != nil {
		return nil, err
	}
	return &obj, nil
}

// Search runs a full-text search over records of the given kind.
func (c *Client) Search(ctx context.Context, kind ObjectKind, req SearchRequest) (*Page, error) {
	var page Page
	if err := c.do(ctx, http.MethodPost, objectsPath(kind, "search"), nil, req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func objectsPath(kind ObjectKind, segments ...string) string {
	p := "/crm/v3/objects/" + string(kind)
	for _, s := range segments {
		p += "/" + url.PathEscape(s)
	}
	return p
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body, out any) error {
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return fmt.Errorf("invalid base url: %w", err)
	}
	if q == nil {
		q = url.Values{}
	}
	if c.Creds.APIKey != "" {
		q.Set("hapikey", c.Creds.APIKey)
	}
	u.RawQuery = q.Encode()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Creds.APIKey == "" {
		req.Header.Set("Authorization", "Bearer "+c.Creds.AccessToken)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
