// Package client is a typed Go client for the inventory HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"inventory_backend/internal/api"
	authdto "inventory_backend/internal/feature/auth/transport/http/dto"
	itemdto "inventory_backend/internal/feature/items/transport/http/dto"
	httpclient "inventory_backend/internal/platform/http"
)

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("api error %d: %s %v", e.StatusCode, e.Message, e.Fields)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// StatusOf returns the HTTP status carried by err, or 0 when err is not an *APIError.
func StatusOf(err error) int {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode
	}
	return 0
}

// ItemInput is the body of create and update requests.
// Price is sent as a decimal string so no digits are lost on the way to the server.
type ItemInput struct {
	ItemName    string          `json:"itemName"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
}

// Client calls the API on behalf of one user. It is not safe to change the token concurrently with requests.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the tuned default client, e.g. with httptest.Server.Client().
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpclient.NewHTTPClient(httpclient.DefaultTimeout),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the bearer token in use.
func (c *Client) Token() string { return c.token }

// SetToken replaces the bearer token.
func (c *Client) SetToken(token string) { c.token = token }

// Signup registers a user and keeps the returned token.
func (c *Client) Signup(ctx context.Context, username, email, password string) (*authdto.AuthResponse, error) {
	var out authdto.AuthResponse
	body := authdto.SignupReq{Username: username, Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/signup", body, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

// Login authenticates and keeps the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (*authdto.AuthResponse, error) {
	var out authdto.AuthResponse
	body := authdto.LoginReq{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out); err != nil {
		return nil, err
	}
	c.token = out.Token
	return &out, nil
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (*authdto.UserResponse, error) {
	var out authdto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateItem(ctx context.Context, in ItemInput) (*itemdto.ItemResponse, error) {
	var out itemdto.ItemResponse
	if err := c.do(ctx, http.MethodPost, "/items", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListItems returns the caller's items; an empty category means all.
func (c *Client) ListItems(ctx context.Context, category string) (*itemdto.ItemListResponse, error) {
	path := "/items"
	if category != "" {
		path += "?" + url.Values{"category": {category}}.Encode()
	}
	var out itemdto.ItemListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetItem(ctx context.Context, id uuid.UUID) (*itemdto.ItemResponse, error) {
	return c.itemCall(ctx, http.MethodGet, "/items/"+id.String(), nil)
}

func (c *Client) UpdateItem(ctx context.Context, id uuid.UUID, in ItemInput) (*itemdto.ItemResponse, error) {
	return c.itemCall(ctx, http.MethodPut, "/items/"+id.String(), in)
}

// AdjustQuantity adds delta (which may be negative) to the item's quantity.
func (c *Client) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int64) (*itemdto.ItemResponse, error) {
	return c.itemCall(ctx, http.MethodPatch, "/items/"+id.String()+"/quantity", map[string]int64{"delta": delta})
}

// DeleteItem deletes the item and returns its last state.
func (c *Client) DeleteItem(ctx context.Context, id uuid.UUID) (*itemdto.ItemResponse, error) {
	return c.itemCall(ctx, http.MethodDelete, "/items/"+id.String(), nil)
}

func (c *Client) Stats(ctx context.Context) (*itemdto.StatsResponse, error) {
	var out itemdto.StatsResponse
	if err := c.do(ctx, http.MethodGet, "/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) itemCall(ctx context.Context, method, path string, body any) (*itemdto.ItemResponse, error) {
	var out itemdto.ItemResponse
	if err := c.do(ctx, method, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var er api.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&er); err == nil && er.Error != "" {
			apiErr.Message = er.Error
			apiErr.Fields = er.Fields
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
