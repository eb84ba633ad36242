// Package archmap is a thin HTTP client for the archmap directory API.
package archmap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client is the archmap SDK entry point.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sets the bearer token for authenticated calls.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SignUp registers an account and stores the returned token on the client.
func (c *Client) SignUp(ctx context.Context, email, password string) (Session, error) {
	return c.credentials(ctx, "/auth/signup", email, password)
}

// SignIn authenticates and stores the returned token on the client.
func (c *Client) SignIn(ctx context.Context, email, password string) (Session, error) {
	return c.credentials(ctx, "/auth/signin", email, password)
}

func (c *Client) credentials(ctx context.Context, path, email, password string) (Session, error) {
	var sess Session
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, path, nil, body, &sess); err != nil {
		return Session{}, err
	}
	c.token = sess.Token
	return sess, nil
}

// Buildings lists the directory, optionally filtered.
func (c *Client) Buildings(ctx context.Context, f Filter) (BuildingList, error) {
	q := url.Values{}
	for _, a := range f.Architects {
		q.Add("architect", a)
	}
	for _, d := range f.Districts {
		q.Add("district", d)
	}
	if f.YearFrom != nil {
		q.Set("year_from", strconv.Itoa(*f.YearFrom))
	}
	if f.YearTo != nil {
		q.Set("year_to", strconv.Itoa(*f.YearTo))
	}

	var list BuildingList
	err := c.do(ctx, http.MethodGet, "/buildings", q, nil, &list)
	return list, err
}

// Facets returns the selectable filter values.
func (c *Client) Facets(ctx context.Context) (Facets, error) {
	var f Facets
	err := c.do(ctx, http.MethodGet, "/buildings/facets", nil, nil, &f)
	return f, err
}

// Near lists buildings within radiusMeters of a point, closest first.
func (c *Client) Near(ctx context.Context, lat, lon, radiusMeters float64) (BuildingList, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("radius_m", strconv.FormatFloat(radiusMeters, 'f', -1, 64))

	var list BuildingList
	err := c.do(ctx, http.MethodGet, "/buildings/near", q, nil, &list)
	return list, err
}

// Favorites returns the signed-in user's favorites.
func (c *Client) Favorites(ctx context.Context) (BuildingList, error) {
	var list BuildingList
	err := c.do(ctx, http.MethodGet, "/favorites", nil, nil, &list)
	return list, err
}

// ToggleFavorite flips the favorite state of the named building.
func (c *Client) ToggleFavorite(ctx context.Context, name string) (Toggle, error) {
	var t Toggle
	err := c.do(ctx, http.MethodPost, "/favorites/toggle", nil, map[string]string{"name": name}, &t)
	return t, err
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("archmap: marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("archmap: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("archmap: %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode, Code: "internal_error"}
		var payload struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&payload); decodeErr == nil {
			apiErr.Code = payload.Code
			apiErr.Message = payload.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("archmap: decode response: %w", err)
	}
	return nil
}
