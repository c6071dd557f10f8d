// Package client is a thin HTTP wrapper for the primitive backend API.
// A Client dials nothing up front; capability handles for individual
// primitives are obtained from it by name and are safe for concurrent use.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client is a thin HTTP wrapper for the primitive backend API.
type Client struct {
	URL        string
	HTTPClient *http.Client
}

// New creates a new backend client.
func New(serverURL string) *Client {
	return &Client{
		URL: serverURL,
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Health checks the backend's health endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, "GET", "/healthz", nil, nil)
}

// Counter returns a handle to the named counter primitive.
func (c *Client) Counter(name string) *Counter {
	return &Counter{c: c, name: url.PathEscape(name)}
}

// Map returns a handle to the named map primitive.
func (c *Client) Map(name string) *Map {
	return &Map{c: c, name: url.PathEscape(name)}
}

// Set returns a handle to the named set primitive.
func (c *Client) Set(name string) *Set {
	return &Set{c: c, name: url.PathEscape(name)}
}

// Counter is a handle to a named counter.
type Counter struct {
	c    *Client
	name string
}

type counterValue struct {
	Value int64 `json:"value"`
}

// Increment adds delta to the counter and returns the new value.
func (k *Counter) Increment(ctx context.Context, delta int64) (int64, error) {
	var out counterValue
	err := k.c.do(ctx, "POST", "/api/v1/counter/"+k.name+"/increment", map[string]int64{"delta": delta}, &out)
	return out.Value, err
}

// Decrement subtracts delta from the counter and returns the new value.
func (k *Counter) Decrement(ctx context.Context, delta int64) (int64, error) {
	var out counterValue
	err := k.c.do(ctx, "POST", "/api/v1/counter/"+k.name+"/decrement", map[string]int64{"delta": delta}, &out)
	return out.Value, err
}

// Get returns the current counter value.
func (k *Counter) Get(ctx context.Context) (int64, error) {
	var out counterValue
	err := k.c.do(ctx, "GET", "/api/v1/counter/"+k.name, nil, &out)
	return out.Value, err
}

// Map is a handle to a named map.
type Map struct {
	c    *Client
	name string
}

// Put stores value under key, returning the previous value if one existed.
func (m *Map) Put(ctx context.Context, key, value string) (string, error) {
	var out struct {
		Old string `json:"old"`
	}
	err := m.c.do(ctx, "PUT", "/api/v1/map/"+m.name+"/keys/"+url.PathEscape(key), map[string]string{"value": value}, &out)
	return out.Old, err
}

// Get returns the value under key. Fails with NotFound if the key is absent.
func (m *Map) Get(ctx context.Context, key string) (string, error) {
	var out struct {
		Value string `json:"value"`
	}
	err := m.c.do(ctx, "GET", "/api/v1/map/"+m.name+"/keys/"+url.PathEscape(key), nil, &out)
	return out.Value, err
}

// Remove deletes key and returns the removed value. Fails with NotFound if
// the key is absent.
func (m *Map) Remove(ctx context.Context, key string) (string, error) {
	var out struct {
		Old string `json:"old"`
	}
	err := m.c.do(ctx, "DELETE", "/api/v1/map/"+m.name+"/keys/"+url.PathEscape(key), nil, &out)
	return out.Old, err
}

// Set is a handle to a named set.
type Set struct {
	c    *Client
	name string
}

// Add inserts elem, returning false if it was already present.
func (s *Set) Add(ctx context.Context, elem string) (bool, error) {
	var out struct {
		Added bool `json:"added"`
	}
	err := s.c.do(ctx, "POST", "/api/v1/set/"+s.name+"/elements", map[string]string{"element": elem}, &out)
	return out.Added, err
}

// Contains reports whether elem is in the set.
func (s *Set) Contains(ctx context.Context, elem string) (bool, error) {
	var out struct {
		Contains bool `json:"contains"`
	}
	err := s.c.do(ctx, "GET", "/api/v1/set/"+s.name+"/elements/"+url.PathEscape(elem), nil, &out)
	return out.Contains, err
}

// Remove deletes elem. Fails with NotFound if the element was never added.
func (s *Set) Remove(ctx context.Context, elem string) (bool, error) {
	var out struct {
		Removed bool `json:"removed"`
	}
	err := s.c.do(ctx, "DELETE", "/api/v1/set/"+s.name+"/elements/"+url.PathEscape(elem), nil, &out)
	return out.Removed, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL+path, reader)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		var errBody struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil {
			apiErr.Msg = errBody.Error
			apiErr.Code = errBody.Code
		}
		return apiErr
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
