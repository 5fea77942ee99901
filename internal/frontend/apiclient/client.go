package apiclient

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

	apperrors "crm-backend/internal/errors"
	"crm-backend/internal/logger"

	"golang.org/x/oauth2"
)

// Record is one JSON object returned by the record API
type Record map[string]interface{}

// String returns the value at key rendered as text. Missing keys and nulls are empty.
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// ID returns the record id. A record without one is a malformed answer.
func (r Record) ID() (string, error) {
	id, ok := r["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("%w: missing id", apperrors.ErrMalformedResponse)
	}
	return id, nil
}

// Nested returns the embedded object at key, or nil when absent
func (r Record) Nested(key string) Record {
	m, ok := r[key].(map[string]interface{})
	if !ok {
		return nil
	}
	return Record(m)
}

// Tokens is the pair issued by the login endpoint
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type errorBody struct {
	Detail string              `json:"detail"`
	Errors map[string][]string `json:"errors"`
}

type pageBody struct {
	Next    *string           `json:"next"`
	Results []json.RawMessage `json:"results"`
}

// Client talks to the record API on behalf of the frontend
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// New creates a client for the API rooted at baseURL
func New(baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, apperrors.ErrAPIBaseURLMissing
	}
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}
	return &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Login exchanges credentials for a token pair. The frontend never checks passwords itself.
func (c *Client) Login(ctx context.Context, username, password string) (*Tokens, error) {
	var tokens Tokens
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, c.httpClient, http.MethodPost, c.resolve("login/", nil), body, &tokens); err != nil {
		return nil, err
	}
	if tokens.Access == "" || tokens.Refresh == "" {
		return nil, fmt.Errorf("%w: missing tokens", apperrors.ErrMalformedResponse)
	}
	return &tokens, nil
}

// As returns a session that sends accessToken as a bearer token on every call
func (c *Client) As(accessToken string) *Session {
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, c.httpClient)
	hc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))
	hc.Timeout = c.httpClient.Timeout
	return &Session{client: c, http: hc}
}

func (c *Client) resolve(path string, query url.Values) string {
	ref := &url.URL{Path: strings.TrimPrefix(path, "/")}
	if len(query) > 0 {
		ref.RawQuery = query.Encode()
	}
	return c.baseURL.ResolveReference(ref).String()
}

func (c *Client) do(ctx context.Context, hc *http.Client, method, target string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return &apperrors.UpstreamError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apperrors.UpstreamError{URL: target, Err: err}
	}

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"method": method,
		"url":    target,
		"status": resp.StatusCode,
	}).Debug("record API call")

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &apperrors.APIError{StatusCode: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil {
			apiErr.Detail = eb.Detail
			apiErr.Fields = eb.Errors
		}
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrMalformedResponse, err)
	}
	return nil
}

// Session is a client bound to one user's access token
type Session struct {
	client *Client
	http   *http.Client
}

// Get fetches a single record
func (s *Session) Get(ctx context.Context, path string) (Record, error) {
	var rec Record
	if err := s.client.do(ctx, s.http, http.MethodGet, s.client.resolve(path, nil), nil, &rec); err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: empty body", apperrors.ErrMalformedResponse)
	}
	return rec, nil
}

// ListAll fetches a list endpoint and follows `next` links until exhausted,
// concatenating every page's results.
func (s *Session) ListAll(ctx context.Context, path string, query url.Values) ([]Record, error) {
	target := s.client.resolve(path, query)
	records := []Record{}

	for target != "" {
		var page pageBody
		if err := s.client.do(ctx, s.http, http.MethodGet, target, nil, &page); err != nil {
			return nil, err
		}
		if page.Results == nil {
			return nil, fmt.Errorf("%w: missing results", apperrors.ErrMalformedResponse)
		}
		for _, raw := range page.Results {
			var rec Record
			if err := json.Unmarshal(raw, &rec); err != nil {
				return nil, fmt.Errorf("%w: %v", apperrors.ErrMalformedResponse, err)
			}
			records = append(records, rec)
		}

		target = ""
		if page.Next != nil {
			target = *page.Next
		}
	}

	return records, nil
}

// Post creates a record and returns the API's answer
func (s *Session) Post(ctx context.Context, path string, body interface{}) (Record, error) {
	return s.write(ctx, http.MethodPost, path, body)
}

// Put replaces a record
func (s *Session) Put(ctx context.Context, path string, body interface{}) (Record, error) {
	return s.write(ctx, http.MethodPut, path, body)
}

// Patch partially updates a record
func (s *Session) Patch(ctx context.Context, path string, body interface{}) (Record, error) {
	return s.write(ctx, http.MethodPatch, path, body)
}

// Delete removes a record
func (s *Session) Delete(ctx context.Context, path string) error {
	return s.client.do(ctx, s.http, http.MethodDelete, s.client.resolve(path, nil), nil, nil)
}

func (s *Session) write(ctx context.Context, method, path string, body interface{}) (Record, error) {
	var rec Record
	if err := s.client.do(ctx, s.http, method, s.client.resolve(path, nil), body, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// IsUnauthorized reports whether err is a 401 answer of the record API
func IsUnauthorized(err error) bool {
	var apiErr *apperrors.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}
