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
	"time"

	"tireshop/internal/domain"

	"github.com/google/uuid"
)

var (
	// ErrConflict maps HTTP 409: insufficient stock on order commit, a
	// duplicate variant on product create, or a still-referenced product
	// on delete. Always recoverable; the caller's draft stays intact.
	ErrConflict = errors.New("conflict")

	// ErrNotFound maps HTTP 404
	ErrNotFound = errors.New("not found")
)

// APIError carries the server's error envelope alongside the sentinel it
// unwraps to, so callers can branch with errors.Is and still log the detail.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusConflict:
		return ErrConflict
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// Client is a typed HTTP client for the trading API contract
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given base URL, e.g. "http://localhost:8080/api"
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// NewWithHTTPClient allows callers (tests in particular) to supply the
// underlying http.Client.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	c := New(baseURL)
	if hc != nil {
		c.http = hc
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// decodeError reads the server's error envelope; a body that is not the
// envelope still yields a usable APIError from the status line.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Code:       http.StatusText(resp.StatusCode),
	}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		if envelope.Error.Code != "" {
			apiErr.Code = envelope.Error.Code
		}
		apiErr.Message = envelope.Error.Message
	}
	return apiErr
}

// Categories fetches all categories
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	err := c.do(ctx, http.MethodGet, "/categories", nil, &out)
	return out, err
}

// CreateCategory creates a category by name
func (c *Client) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	var out domain.Category
	err := c.do(ctx, http.MethodPost, "/categories", map[string]string{"name": name}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Units fetches all measurement units
func (c *Client) Units(ctx context.Context) ([]domain.Unit, error) {
	var out []domain.Unit
	err := c.do(ctx, http.MethodGet, "/units", nil, &out)
	return out, err
}

// CreateUnit creates a unit by name
func (c *Client) CreateUnit(ctx context.Context, name string) (*domain.Unit, error) {
	var out domain.Unit
	err := c.do(ctx, http.MethodPost, "/units", map[string]string{"name": name}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// TireBrands fetches tire brands with their nested models
func (c *Client) TireBrands(ctx context.Context) ([]domain.TireBrand, error) {
	var out []domain.TireBrand
	err := c.do(ctx, http.MethodGet, "/tire-brands", nil, &out)
	return out, err
}

// CreateTireBrand creates a tire brand
func (c *Client) CreateTireBrand(ctx context.Context, name string) (*domain.TireBrand, error) {
	var out domain.TireBrand
	err := c.do(ctx, http.MethodPost, "/tire-brands", map[string]string{"name": name}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTireModel creates a model under an existing brand
func (c *Client) CreateTireModel(ctx context.Context, brandID uuid.UUID, name string) (*domain.TireModel, error) {
	var out domain.TireModel
	body := map[string]interface{}{"brandId": brandID, "name": name}
	err := c.do(ctx, http.MethodPost, "/tire-models", body, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SpeedIndices fetches the static speed index reference data
func (c *Client) SpeedIndices(ctx context.Context) ([]domain.TireSpeedIndex, error) {
	var out []domain.TireSpeedIndex
	err := c.do(ctx, http.MethodGet, "/tire-indices/speed", nil, &out)
	return out, err
}

// LoadIndices fetches the static load index reference data
func (c *Client) LoadIndices(ctx context.Context) ([]domain.TireLoadIndex, error) {
	var out []domain.TireLoadIndex
	err := c.do(ctx, http.MethodGet, "/tire-indices/load", nil, &out)
	return out, err
}

// AutoSubcategories fetches auto-part subcategories
func (c *Client) AutoSubcategories(ctx context.Context) ([]domain.AutoSubcategory, error) {
	var out []domain.AutoSubcategory
	err := c.do(ctx, http.MethodGet, "/auto-subcategories", nil, &out)
	return out, err
}

// CreateAutoSubcategory creates an auto-part subcategory
func (c *Client) CreateAutoSubcategory(ctx context.Context, name string) (*domain.AutoSubcategory, error) {
	var out domain.AutoSubcategory
	err := c.do(ctx, http.MethodPost, "/auto-subcategories", map[string]string{"name": name}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Products fetches the full product catalog with variant details embedded
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	err := c.do(ctx, http.MethodGet, "/products", nil, &out)
	return out, err
}

// CreateProduct creates a product; a duplicate variant tuple yields ErrConflict
func (c *Client) CreateProduct(ctx context.Context, input domain.ProductInput) (*domain.Product, error) {
	var out domain.Product
	err := c.do(ctx, http.MethodPost, "/products", input, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct replaces a product's attributes
func (c *Client) UpdateProduct(ctx context.Context, id uuid.UUID, input domain.ProductInput) (*domain.Product, error) {
	var out domain.Product
	err := c.do(ctx, http.MethodPut, "/products/"+id.String(), input, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProduct deletes a product; ErrConflict while any order item references it
func (c *Client) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/products/"+id.String(), nil, nil)
}

// Counterparties fetches counterparties with optional filters
func (c *Client) Counterparties(ctx context.Context, filter domain.CounterpartyFilter) ([]domain.Counterparty, error) {
	params := url.Values{}
	if filter.Type != "" {
		params.Set("type", string(filter.Type))
	}
	if filter.Query != "" {
		params.Set("q", filter.Query)
	}
	if filter.IncludeInactive {
		params.Set("inactive", "1")
	}
	path := "/counterparties"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var out []domain.Counterparty
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// CounterpartyInput is the create/update payload for counterparties
type CounterpartyInput struct {
	Type    domain.CounterpartyType `json:"type"`
	Name    string                  `json:"name"`
	Phone   string                  `json:"phone"`
	Email   string                  `json:"email,omitempty"`
	TaxID   string                  `json:"taxId,omitempty"`
	Address string                  `json:"address,omitempty"`
	Note    string                  `json:"note,omitempty"`
}

// CreateCounterparty creates a counterparty
func (c *Client) CreateCounterparty(ctx context.Context, input CounterpartyInput) (*domain.Counterparty, error) {
	var out domain.Counterparty
	err := c.do(ctx, http.MethodPost, "/counterparties", input, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCounterparty replaces a counterparty's attributes
func (c *Client) UpdateCounterparty(ctx context.Context, id uuid.UUID, input CounterpartyInput) (*domain.Counterparty, error) {
	var out domain.Counterparty
	err := c.do(ctx, http.MethodPut, "/counterparties/"+id.String(), input, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SetCounterpartyStatus soft-deletes or restores a counterparty
func (c *Client) SetCounterpartyStatus(ctx context.Context, id uuid.UUID, isActive bool) (*domain.Counterparty, error) {
	var out domain.Counterparty
	body := map[string]bool{"isActive": isActive}
	err := c.do(ctx, http.MethodPatch, "/counterparties/"+id.String()+"/status", body, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Orders fetches orders, optionally filtered by document type
func (c *Client) Orders(ctx context.Context, orderType domain.OrderType) ([]domain.Order, error) {
	path := "/orders"
	if orderType != "" {
		path += "?type=" + url.QueryEscape(string(orderType))
	}
	var out []domain.Order
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// Order fetches a single order with its items and products embedded
func (c *Client) Order(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var out domain.Order
	err := c.do(ctx, http.MethodGet, "/orders/"+id.String(), nil, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateOrder commits a new document; insufficient stock yields ErrConflict
func (c *Client) CreateOrder(ctx context.Context, input domain.OrderInput) (*domain.Order, error) {
	var out domain.Order
	err := c.do(ctx, http.MethodPost, "/orders", input, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateOrder replaces an order's entire item list; the server re-derives
// the stock delta atomically.
func (c *Client) UpdateOrder(ctx context.Context, id uuid.UUID, input domain.OrderInput) (*domain.Order, error) {
	var out domain.Order
	err := c.do(ctx, http.MethodPut, "/orders/"+id.String(), input, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Stock fetches the derived stock view
func (c *Client) Stock(ctx context.Context) ([]domain.StockItem, error) {
	var out []domain.StockItem
	err := c.do(ctx, http.MethodGet, "/stock", nil, &out)
	return out, err
}
