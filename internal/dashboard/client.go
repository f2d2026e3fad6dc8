// Package dashboard is the admin-side client of the HTTP API. It keeps the
// page-scoped state the dashboard screens render and only mutates it after
// the server has confirmed a change.
package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"motopartes/internal/domain"
	"motopartes/internal/modules/auth"
	"motopartes/internal/modules/catalog"
	"motopartes/internal/modules/finder"
	"motopartes/internal/modules/reservation"

	"github.com/cockroachdb/errors"
)

// APIError is a non-2xx answer carrying the server's error envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

// IsConflict reports whether err is a 409 from the server.
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient returns a client for the API rooted at baseURL. A nil
// httpClient gets a 10s timeout client.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, header http.Header) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return errors.Wrapf(err, "build %s %s", method, path)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= 300 {
			return &APIError{Status: resp.StatusCode, Code: "UNKNOWN", Message: resp.Status}
		}
		return errors.Wrapf(err, "decode %s %s", method, path)
	}
	if resp.StatusCode >= 300 || !env.Success {
		apiErr := &APIError{Status: resp.StatusCode}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return errors.Wrapf(json.Unmarshal(env.Data, out), "decode %s %s", method, path)
}

// Login authenticates and keeps the returned token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (*auth.SessionView, error) {
	var s auth.SessionView
	err := c.do(ctx, http.MethodPost, "/auth/login", auth.LoginRequest{Email: email, Password: password}, &s, nil)
	if err != nil {
		return nil, err
	}
	c.SetToken(s.Token)
	return &s, nil
}

// Reservations fetches one status page. An empty status fetches all of them.
func (c *Client) Reservations(ctx context.Context, status domain.ReservaStatus) ([]reservation.ReservaView, error) {
	path := "/dashboard/reservas"
	if status != "" {
		path += "?estado=" + url.QueryEscape(string(status))
	}
	var props struct {
		Reservas []reservation.ReservaView `json:"reservas"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &props, nil); err != nil {
		return nil, err
	}
	return props.Reservas, nil
}

func (c *Client) UpdateReservaStatus(ctx context.Context, id int64, next domain.ReservaStatus) (*reservation.ReservaView, string, error) {
	var out struct {
		Reserva reservation.ReservaView `json:"reserva"`
		Message string                  `json:"message"`
	}
	path := fmt.Sprintf("/dashboard/reservas/%d/estado", id)
	if err := c.do(ctx, http.MethodPatch, path, reservation.UpdateStatusRequest{Estado: string(next)}, &out, nil); err != nil {
		return nil, "", err
	}
	return &out.Reserva, out.Message, nil
}

func (c *Client) Products(ctx context.Context, q string) (*catalog.ListProps, error) {
	path := "/dashboard/productos"
	if q != "" {
		path += "?q=" + url.QueryEscape(q)
	}
	var props catalog.ListProps
	if err := c.do(ctx, http.MethodGet, path, nil, &props, nil); err != nil {
		return nil, err
	}
	return &props, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/productos/%d", id), nil, &out, nil); err != nil {
		return "", err
	}
	return out.Message, nil
}

func visitorHeader(visitor string) http.Header {
	if visitor == "" {
		return nil
	}
	return http.Header{finder.HeaderVisitorID: []string{visitor}}
}

func (c *Client) FinderOptions(ctx context.Context) (finder.Options, error) {
	var opts finder.Options
	err := c.do(ctx, http.MethodGet, "/moto-finder/options", nil, &opts, nil)
	return opts, err
}

// FinderResult is the server's answer to a completed search.
type FinderResult struct {
	Redirect string                `json:"redirect"`
	Message  string                `json:"message"`
	Recent   finder.RecentSearches `json:"recent"`
}

func (c *Client) FinderSearch(ctx context.Context, visitor string, q finder.Search) (*FinderResult, error) {
	var out FinderResult
	if err := c.do(ctx, http.MethodPost, "/moto-finder/search", q, &out, visitorHeader(visitor)); err != nil {
		return nil, err
	}
	return &out, nil
}
