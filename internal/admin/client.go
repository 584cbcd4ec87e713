package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/careportal/careportal/internal/registry"
)

// Delete outcome sentinels, mapped from upstream status codes.
var (
	// ErrAlreadyGone means the record vanished upstream first. Callers
	// treat it as a soft success.
	ErrAlreadyGone = errors.New("already removed")
	ErrForbidden   = errors.New("not allowed")
	ErrConflict    = errors.New("in use by other records")
	ErrRejected    = errors.New("rejected")
)

// ErrUnknownResource is returned before any request is issued.
var ErrUnknownResource = errors.New("unknown resource")

// Collection is the uniform shape every upstream response is folded into.
type Collection struct {
	Items []map[string]interface{}
	Total int
	// ServerPaginated is set when the upstream reported its own total,
	// in which case Items is one page, not the whole set.
	ServerPaginated bool
}

// Client talks to the resource endpoints the registry knows about.
type Client struct {
	baseURL    string
	http       *http.Client
	auth       string
	authHeader string
}

func NewClient(baseURL string, authToken string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		auth:    authToken,
	}
}

// WithAuthorization returns a client sending the given Authorization header
// verbatim, overriding any token the client was built with. The console uses
// it to reach the guarded API with the calling admin's own credentials.
func (c *Client) WithAuthorization(header string) *Client {
	if header == "" {
		return c
	}
	clone := *c
	clone.authHeader = header
	return &clone
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	if c.authHeader != "" {
		req.Header.Set("Authorization", c.authHeader)
	} else if c.auth != "" {
		req.Header.Set("Authorization", "Bearer "+c.auth)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// Fetch lists a resource. It asks for the requested page first; when that
// fails it retries once against the bare endpoint, the only automatic retry
// in the system.
func (c *Client) Fetch(ctx context.Context, key string, page int) (*Collection, error) {
	endpoint, ok := registry.Endpoint(key)
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrUnknownResource)
	}
	url := c.baseURL + endpoint

	col, err := c.fetchURL(ctx, fmt.Sprintf("%s?page=%d", url, page))
	if err == nil {
		return col, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return c.fetchURL(ctx, url)
}

func (c *Client) fetchURL(ctx context.Context, url string) (*Collection, error) {
	req, err := c.newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("list %s: %s", url, statusDetail(resp))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return Normalize(body)
}

// Normalize folds the response shapes upstream services actually send into
// one Collection: a bare array, a {results,count} envelope, an object whose
// single array property holds the rows, or any other object as a one-item
// collection.
func Normalize(body []byte) (*Collection, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return &Collection{Items: []map[string]interface{}{}}, nil
	}

	if trimmed[0] == '[' {
		var items []map[string]interface{}
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode list response: %w", err)
		}
		if items == nil {
			items = []map[string]interface{}{}
		}
		return &Collection{Items: items, Total: len(items)}, nil
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}

	if results, ok := obj["results"].([]interface{}); ok {
		items := toItemMaps(results)
		total := len(items)
		if count, ok := obj["count"].(float64); ok {
			return &Collection{Items: items, Total: int(count), ServerPaginated: true}, nil
		}
		return &Collection{Items: items, Total: total}, nil
	}

	// A single array-valued property carries the rows.
	var arrayProps []string
	for k, v := range obj {
		if _, ok := v.([]interface{}); ok {
			arrayProps = append(arrayProps, k)
		}
	}
	if len(arrayProps) == 1 {
		items := toItemMaps(obj[arrayProps[0]].([]interface{}))
		return &Collection{Items: items, Total: len(items)}, nil
	}

	// Anything else is a single record.
	return &Collection{Items: []map[string]interface{}{obj}, Total: 1}, nil
}

func toItemMaps(raw []interface{}) []map[string]interface{} {
	items := make([]map[string]interface{}, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(map[string]interface{}); ok {
			items = append(items, m)
		}
	}
	return items
}

// Delete removes a record, mapping the upstream status onto the sentinel
// errors above. A 404 is a soft success: the record is gone either way.
func (c *Client) Delete(ctx context.Context, key, id string) error {
	endpoint, ok := registry.Endpoint(key)
	if !ok {
		return fmt.Errorf("%s: %w", key, ErrUnknownResource)
	}
	req, err := c.newRequest(ctx, http.MethodDelete, c.baseURL+endpoint+id+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode <= 299:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return ErrAlreadyGone
	case resp.StatusCode == http.StatusForbidden:
		return ErrForbidden
	case resp.StatusCode == http.StatusConflict:
		return ErrConflict
	case resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrRejected, statusDetail(resp))
	default:
		return fmt.Errorf("delete %s/%s: %s", key, id, statusDetail(resp))
	}
}

// Create posts a flat JSON payload to the resource endpoint.
func (c *Client) Create(ctx context.Context, key string, fields map[string]interface{}) (map[string]interface{}, error) {
	endpoint, ok := registry.Endpoint(key)
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrUnknownResource)
	}
	return c.write(ctx, http.MethodPost, c.baseURL+endpoint, fields)
}

// Update puts a flat JSON payload to the record endpoint.
func (c *Client) Update(ctx context.Context, key, id string, fields map[string]interface{}) (map[string]interface{}, error) {
	endpoint, ok := registry.Endpoint(key)
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrUnknownResource)
	}
	return c.write(ctx, http.MethodPut, c.baseURL+endpoint+id+"/", fields)
}

func (c *Client) write(ctx context.Context, method, url string, fields map[string]interface{}) (map[string]interface{}, error) {
	payload, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, method, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%s %s: %s", method, url, statusDetail(resp))
	}
	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil && err != io.EOF {
		return nil, err
	}
	return result, nil
}

// statusDetail prefers the server's own detail message over the bare status.
func statusDetail(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var obj struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &obj) == nil {
		if obj.Detail != "" {
			return obj.Detail
		}
		if obj.Message != "" {
			return obj.Message
		}
	}
	return resp.Status
}
