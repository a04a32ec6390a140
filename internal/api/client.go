package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultUserAgent = "cinemaddict/1.0"
	defaultTimeout   = 10 * time.Second
)

// StatusError reports a response with status 400 or above.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api %s %s returned status %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("api %s %s returned status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Client talks to the catalog REST API.
type Client struct {
	baseURL       *url.URL
	http          *http.Client
	authorization string
	userAgent     string
}

// NewClient builds a Client for endpoint. authorization is sent verbatim in
// the Authorization header of every request.
func NewClient(endpoint, authorization string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(endpoint)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:       base,
		http:          &http.Client{Timeout: timeout},
		authorization: authorization,
		userAgent:     defaultUserAgent,
	}, nil
}

// Films fetches the whole catalog.
func (c *Client) Films(ctx context.Context) ([]Film, error) {
	var films []Film
	if err := c.do(ctx, http.MethodGet, "movies", nil, &films); err != nil {
		return nil, err
	}
	return films, nil
}

// UpdateFilm replaces a film and returns the stored version.
func (c *Client) UpdateFilm(ctx context.Context, film Film) (Film, error) {
	var updated Film
	if err := c.do(ctx, http.MethodPut, "movies/"+url.PathEscape(film.ID), film, &updated); err != nil {
		return Film{}, err
	}
	return updated, nil
}

// Comments fetches the comments of one film.
func (c *Client) Comments(ctx context.Context, filmID string) ([]Comment, error) {
	var comments []Comment
	if err := c.do(ctx, http.MethodGet, "comments/"+url.PathEscape(filmID), nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// AddComment posts a comment on a film.
func (c *Client) AddComment(ctx context.Context, filmID string, draft CommentDraft) (CommentPostResponse, error) {
	var resp CommentPostResponse
	if err := c.do(ctx, http.MethodPost, "comments/"+url.PathEscape(filmID), draft, &resp); err != nil {
		return CommentPostResponse{}, err
	}
	return resp, nil
}

// DeleteComment removes a comment.
func (c *Client) DeleteComment(ctx context.Context, commentID string) error {
	return c.do(ctx, http.MethodDelete, "comments/"+url.PathEscape(commentID), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authorization != "" {
		req.Header.Set("Authorization", c.authorization)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{
			Method: method,
			Path:   "/" + path,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(msg)),
		}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(endpoint string) (*url.URL, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("endpoint %q has no host", endpoint)
	}
	// Relative references resolve against the last path segment, so the
	// base path must end in a slash to be kept.
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
