// internal/api/client.go
//
// Typed HTTP client for the CRM backend. The backend is REST-and-JSON
// but loose about envelopes: list endpoints return either a bare array
// or an object wrapping the array under "data" or "records", and
// mutation endpoints answer {"success": bool, "message": string}. The
// client absorbs both so callers see plain slices and errors.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"propdesk/internal/crm"
)

// DefaultPageSize matches the page size the list screens request.
const DefaultPageSize = 50

// Client talks to the CRM backend over HTTP with a bearer token.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// New creates a Client for the given base URL and bearer token.
func New(baseURL, token string) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

// NewForTesting creates a Client with a custom http.Client so tests
// can point it at an httptest.Server.
func NewForTesting(httpClient *http.Client, baseURL, token string) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
	}
}

// ListOptions control list endpoint pagination and scoping.
type ListOptions struct {
	// Page is 1-based. Zero means page 1.
	Page int
	// Limit is the page size. Zero means DefaultPageSize.
	Limit int
	// Department scopes the listing when non-empty.
	Department string
}

func (o ListOptions) query() url.Values {
	page := o.Page
	if page <= 0 {
		page = 1
	}
	limit := o.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	values := url.Values{
		"page":  {strconv.Itoa(page)},
		"limit": {strconv.Itoa(limit)},
	}
	if o.Department != "" {
		values.Set("department", o.Department)
	}
	return values
}

// ListDeals fetches one page of deals.
func (c *Client) ListDeals(ctx context.Context, opts ListOptions) ([]crm.Deal, error) {
	var deals []crm.Deal
	if err := c.list(ctx, "/deals", opts.query(), &deals); err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	return deals, nil
}

// ListBookings fetches one page of bookings.
func (c *Client) ListBookings(ctx context.Context, opts ListOptions) ([]crm.Booking, error) {
	var bookings []crm.Booking
	if err := c.list(ctx, "/bookings", opts.query(), &bookings); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// ListUnits fetches one page of inventory units.
func (c *Client) ListUnits(ctx context.Context, opts ListOptions) ([]crm.Unit, error) {
	var units []crm.Unit
	if err := c.list(ctx, "/inventory", opts.query(), &units); err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	return units, nil
}

// ListUsers fetches the users the reassignment picker offers.
func (c *Client) ListUsers(ctx context.Context) ([]crm.User, error) {
	var users []crm.User
	if err := c.list(ctx, "/users", url.Values{"limit": {"1000"}}, &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Lookups fetches lookup rows of one type (stages, teams, …).
func (c *Client) Lookups(ctx context.Context, lookupType string) ([]crm.Lookup, error) {
	values := url.Values{
		"lookup_type": {lookupType},
		"limit":       {"1000"},
	}
	var rows []crm.Lookup
	if err := c.list(ctx, "/lookups", values, &rows); err != nil {
		return nil, fmt.Errorf("lookups %s: %w", lookupType, err)
	}
	return rows, nil
}

// UpdateDeal sends a partial field update for one deal. The payload is
// exactly the fields given, never a full-record overwrite.
func (c *Client) UpdateDeal(ctx context.Context, id string, fields map[string]any) error {
	return c.update(ctx, "/deals/"+url.PathEscape(id), fields)
}

// UpdateBooking sends a partial field update for one booking.
func (c *Client) UpdateBooking(ctx context.Context, id string, fields map[string]any) error {
	return c.update(ctx, "/bookings/"+url.PathEscape(id), fields)
}

// UpdateUnit sends a partial field update for one inventory unit.
func (c *Client) UpdateUnit(ctx context.Context, id string, fields map[string]any) error {
	return c.update(ctx, "/inventory/"+url.PathEscape(id), fields)
}

// mutationEnvelope is the backend's write acknowledgement.
type mutationEnvelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

func (c *Client) update(ctx context.Context, path string, fields map[string]any) error {
	if len(fields) == 0 {
		return fmt.Errorf("update %s: empty field set", path)
	}
	encoded, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("update %s: encoding payload: %w", path, err)
	}
	request, err := c.newRequest(ctx, http.MethodPut, path, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")
	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("update %s: %w", path, err)
	}
	defer response.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(response.Body, 1<<20))
	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("update %s: HTTP %d: %s", path, response.StatusCode, errorBody(body))
	}
	var envelope mutationEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		// A 200 with a non-envelope body counts as success.
		return nil
	}
	if envelope.Success != nil && !*envelope.Success {
		message := envelope.Message
		if message == "" {
			message = "update rejected"
		}
		return fmt.Errorf("update %s: %s", path, message)
	}
	return nil
}

func (c *Client) list(ctx context.Context, path string, values url.Values, out any) error {
	request, err := c.newRequest(ctx, http.MethodGet, path+"?"+values.Encode(), nil)
	if err != nil {
		return err
	}
	response, err := c.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d: %s", response.StatusCode, errorBody(body))
	}
	return decodeList(body, out)
}

// decodeList unmarshals a list response into out, accepting a bare
// array or an object wrapping the array under "data" or "records".
func decodeList(body []byte, out any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, out)
	}
	var envelope struct {
		Data    json.RawMessage `json:"data"`
		Records json.RawMessage `json:"records"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return fmt.Errorf("decoding list envelope: %w", err)
	}
	switch {
	case len(envelope.Data) > 0 && string(envelope.Data) != "null":
		return json.Unmarshal(envelope.Data, out)
	case len(envelope.Records) > 0 && string(envelope.Records) != "null":
		return json.Unmarshal(envelope.Records, out)
	}
	// Empty envelope: leave out as its zero value (empty slice).
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		request.Header.Set("Authorization", "Bearer "+c.token)
	}
	request.Header.Set("X-Request-ID", uuid.NewString())
	return request, nil
}

// errorBody extracts a short printable message from an error response.
func errorBody(body []byte) string {
	var envelope mutationEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Message != "" {
		return envelope.Message
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200]
	}
	if text == "" {
		return "empty response body"
	}
	return text
}
