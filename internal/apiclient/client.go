package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"fintrack/internal/tableview"
)

const defaultTimeout = 30 * time.Second

// Client talks to the fintrack REST API. It implements the table data source
// and mutation store contracts via typed adapters, see NewSource and NewStore.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithSession attaches an existing session instead of a fresh in-memory one.
func WithSession(s *Session) ClientOption {
	return func(c *Client) {
		c.session = s
	}
}

// NewClient creates a client for the API at baseURL (no trailing slash).
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		session:    NewSession(&MemoryTokenStore{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the client's session.
func (c *Client) Session() *Session {
	return c.session
}

// do sends one JSON request and decodes the response into out (skipped when
// out is nil). Non-2xx responses are returned as *APIError carrying the
// server's message verbatim.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	op := fmt.Sprintf("%s %s", method, path)

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return wrapTransportError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s: decode response: %w", op, err)
		}
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	var envelope errorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil || envelope.Error.Message == "" {
		return &APIError{
			Code:    "SYSTEM_005",
			Message: fmt.Sprintf("Request failed with status %d", resp.StatusCode),
			Status:  resp.StatusCode,
		}
	}
	return &APIError{
		Code:    envelope.Error.Code,
		Message: envelope.Error.Message,
		Details: envelope.Error.Details,
		TraceID: envelope.Error.TraceID,
		Status:  resp.StatusCode,
	}
}

// loginRequest, refreshRequest and tokenResponse mirror the auth endpoint
// payloads.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Login exchanges credentials for a token pair and stores it in the
// session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return err
	}
	return c.session.SetTokens(resp.AccessToken, resp.RefreshToken)
}

// Refresh rotates the session's token pair using the stored refresh token.
func (c *Client) Refresh(ctx context.Context) error {
	refresh := c.session.RefreshToken()
	if refresh == "" {
		return fmt.Errorf("refresh: no refresh token in session")
	}
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/refresh", refreshRequest{RefreshToken: refresh}, &resp); err != nil {
		return err
	}
	return c.session.SetTokens(resp.AccessToken, resp.RefreshToken)
}

// Logout revokes the current token server-side and clears the session.
// The session is cleared even when the revocation call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	if clearErr := c.session.Clear(); clearErr != nil && err == nil {
		err = clearErr
	}
	return err
}

// ItemRow is an item as the items table renders it.
type ItemRow struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type int    `json:"type"`
}

// EntryRow is an income or expense as the tables render it. Date, Amount,
// and ItemID are strings as the grid carries them.
type EntryRow struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"`
	Amount   string `json:"amount"`
	Note     string `json:"note"`
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
}

// ItemFields is the create/update payload for items.
type ItemFields struct {
	Name string `json:"name"`
	Type int    `json:"type"`
}

// EntryFields is the create/update payload for incomes and expenses.
type EntryFields struct {
	Date   string `json:"date"`
	Amount string `json:"amount"`
	Note   string `json:"note"`
	ItemID int64  `json:"item_id"`
}

// Source adapts one entity collection endpoint to tableview.DataSource.
type Source[R any] struct {
	client *Client
	path   string
}

// NewSource returns a data source for /api/{path}. path is one of "items",
// "incomes", "expenses".
func NewSource[R any](c *Client, path string) *Source[R] {
	return &Source[R]{client: c, path: path}
}

// FetchPage posts the page request to the collection's query endpoint.
func (s *Source[R]) FetchPage(ctx context.Context, req tableview.PageRequest) (tableview.Page[R], error) {
	var page tableview.Page[R]
	err := s.client.do(ctx, http.MethodPost, "/api/"+s.path+"/query", req, &page)
	return page, err
}

// RemoteStore adapts one entity collection endpoint to tableview.Store.
type RemoteStore[F any] struct {
	client *Client
	path   string
}

// NewStore returns a mutation store for /api/{path}.
func NewStore[F any](c *Client, path string) *RemoteStore[F] {
	return &RemoteStore[F]{client: c, path: path}
}

func (s *RemoteStore[F]) Create(ctx context.Context, fields F) error {
	return s.client.do(ctx, http.MethodPost, "/api/"+s.path, fields, nil)
}

func (s *RemoteStore[F]) Update(ctx context.Context, id int64, fields F) error {
	return s.client.do(ctx, http.MethodPut, fmt.Sprintf("/api/%s/%d", s.path, id), fields, nil)
}

func (s *RemoteStore[F]) Delete(ctx context.Context, id int64) error {
	return s.client.do(ctx, http.MethodDelete, fmt.Sprintf("/api/%s/%d", s.path, id), nil, nil)
}

// ItemOptions fetches the selectable items of one kind for the entry form's
// autocomplete. kind is "income" or "expense".
func (c *Client) ItemOptions(ctx context.Context, kind string) ([]tableview.Option, error) {
	var options []tableview.Option
	err := c.do(ctx, http.MethodGet, "/api/items/options?kind="+kind, nil, &options)
	return options, err
}

// SummaryReport is the dashboard's aggregate view.
type SummaryReport struct {
	TotalIncome   string         `json:"total_income"`
	TotalExpense  string         `json:"total_expense"`
	Balance       string         `json:"balance"`
	MonthlyTotals []MonthlyTotal `json:"monthly_totals"`
}

// MonthlyTotal is one month's income and expense sums.
type MonthlyTotal struct {
	Month   string `json:"month"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

// reportQuery builds the query string for the report endpoints. kind, from
// and to are appended only when non-empty; from and to are YYYY-MM-DD dates.
func reportQuery(kind, from, to string) string {
	params := url.Values{}
	if kind != "" {
		params.Set("kind", kind)
	}
	if from != "" {
		params.Set("from", from)
	}
	if to != "" {
		params.Set("to", to)
	}
	if len(params) == 0 {
		return ""
	}
	return "?" + params.Encode()
}

// Report fetches the summary dashboard data. from and to optionally bound
// the aggregates to a date range; empty strings leave a side open.
func (c *Client) Report(ctx context.Context, from, to string) (*SummaryReport, error) {
	var report SummaryReport
	if err := c.do(ctx, http.MethodGet, "/api/report/summary"+reportQuery("", from, to), nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// ChartPoint is one slice of the per-item breakdown chart.
type ChartPoint struct {
	ItemName string `json:"item_name"`
	Total    string `json:"total"`
}

// Chart fetches the per-item totals for one entry kind, optionally bounded
// to a date range.
func (c *Client) Chart(ctx context.Context, kind, from, to string) ([]ChartPoint, error) {
	var points []ChartPoint
	err := c.do(ctx, http.MethodGet, "/api/report/chart"+reportQuery(kind, from, to), nil, &points)
	return points, err
}
