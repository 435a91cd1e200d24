package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"rental_browser/models"
)

// DefaultBaseURL matches the development API.
const DefaultBaseURL = "http://127.0.0.1:8000/api"

type requestIDKey struct{}

// WithRequestID attaches the id sent as X-Request-ID by the client.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Client is a read-only client for the rentals API. It performs exactly
// one GET per call: no retries, no caching.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	suggestClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    httpClient,
		suggestClient: httpClient,
	}
}

// WithSuggestClient sends autocomplete requests through hc.
func (c *Client) WithSuggestClient(hc *http.Client) *Client {
	if hc != nil {
		c.suggestClient = hc
	}
	return c
}

// ListParams are the query parameters of a property search. Empty
// filters are left out of the request.
type ListParams struct {
	Page     int
	PageSize int
	Location string
	Query    string
	MinPrice string
	MaxPrice string
}

func (p ListParams) Values() url.Values {
	v := url.Values{}
	page := p.Page
	if page < 1 {
		page = 1
	}
	v.Set("page", strconv.Itoa(page))
	if p.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(p.PageSize))
	}
	setIf := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	setIf("location", p.Location)
	setIf("q", p.Query)
	setIf("min_price", p.MinPrice)
	setIf("max_price", p.MaxPrice)
	return v
}

func (c *Client) ListProperties(ctx context.Context, params ListParams) (models.ResultPage, error) {
	var page models.ResultPage
	if err := c.getJSON(ctx, c.httpClient, "list properties", "/properties/", params.Values(), &page); err != nil {
		return models.ResultPage{}, err
	}
	if page.Items == nil {
		page.Items = []models.PropertySummary{}
	}
	return page, nil
}

func (c *Client) GetProperty(ctx context.Context, slug string) (models.Property, error) {
	var prop models.Property
	if strings.TrimSpace(slug) == "" {
		return prop, &Error{Op: "get property", Status: http.StatusNotFound, Err: ErrNotFound}
	}
	path := "/properties/" + url.PathEscape(slug) + "/"
	if err := c.getJSON(ctx, c.httpClient, "get property", path, nil, &prop); err != nil {
		return models.Property{}, err
	}
	return prop, nil
}

func (c *Client) LocationSuggestions(ctx context.Context, q string) ([]string, error) {
	var names []string
	if err := c.getJSON(ctx, c.suggestClient, "location suggestions", "/locations/autocomplete/", url.Values{"q": {q}}, &names); err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (c *Client) getJSON(ctx context.Context, hc *http.Client, op, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &Error{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}

	requestID := RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		slog.Debug("api request failed", "op", op, "path", path, "request_id", requestID, "err", err)
		return &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	slog.Debug("api request",
		"op", op,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID,
	)

	if resp.StatusCode == http.StatusNotFound {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		return &Error{Op: op, Status: resp.StatusCode, Err: ErrNotFound}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("unexpected response: %s", strings.TrimSpace(string(body)))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}
