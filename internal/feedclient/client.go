// Package feedclient is the HTTP client for the feed API.
package feedclient

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

	"instafeed/internal/models"
	"instafeed/internal/observability"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultTimeout bounds every request the client makes.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of an error response is read for details.
const maxErrorBody = 4 << 10

// Client talks to the feed API under baseURL (e.g. http://localhost:8001).
type Client struct {
	base    string
	hc      *http.Client
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying http.Client. Its transport is used as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.hc = hc
		}
	}
}

// New returns a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base:    strings.TrimRight(baseURL, "/") + "/api",
		hc:      &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ListPosts(ctx context.Context) ([]models.Post, error) {
	var out []models.Post
	return out, c.do(ctx, "list_posts", http.MethodGet, "/posts", nil, &out)
}

func (c *Client) GetPost(ctx context.Context, id string) (*models.Post, error) {
	var out models.Post
	if err := c.do(ctx, "get_post", http.MethodGet, "/posts/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleLike asks the backend to flip the like on a post.
func (c *Client) ToggleLike(ctx context.Context, id string) (*models.LikeState, error) {
	var out models.LikeState
	if err := c.do(ctx, "toggle_like", http.MethodPost, "/posts/"+url.PathEscape(id)+"/like", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ToggleSave asks the backend to flip the save flag on a post.
func (c *Client) ToggleSave(ctx context.Context, id string) (*models.SaveState, error) {
	var out models.SaveState
	if err := c.do(ctx, "toggle_save", http.MethodPost, "/posts/"+url.PathEscape(id)+"/save", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	var out []models.Comment
	return out, c.do(ctx, "list_comments", http.MethodGet, "/posts/"+url.PathEscape(postID)+"/comments", nil, &out)
}

func (c *Client) AddComment(ctx context.Context, postID string, in models.CommentInput) (*models.Comment, error) {
	var out models.Comment
	if err := c.do(ctx, "add_comment", http.MethodPost, "/posts/"+url.PathEscape(postID)+"/comment", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListStories(ctx context.Context) ([]models.Story, error) {
	var out []models.Story
	return out, c.do(ctx, "list_stories", http.MethodGet, "/stories", nil, &out)
}

func (c *Client) ListReels(ctx context.Context) ([]models.Reel, error) {
	var out []models.Reel
	return out, c.do(ctx, "list_reels", http.MethodGet, "/reels", nil, &out)
}

// Explore returns the explore grid image URLs.
func (c *Client) Explore(ctx context.Context) ([]string, error) {
	var out models.ExploreResponse
	if err := c.do(ctx, "explore", http.MethodGet, "/explore", nil, &out); err != nil {
		return nil, err
	}
	return out.Images, nil
}

func (c *Client) Profile(ctx context.Context) (*models.Profile, error) {
	var out models.Profile
	if err := c.do(ctx, "profile", http.MethodGet, "/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	return out, c.do(ctx, "list_users", http.MethodGet, "/users", nil, &out)
}

func (c *Client) GetUser(ctx context.Context, id string) (*models.UserWithPosts, error) {
	var out models.UserWithPosts
	if err := c.do(ctx, "get_user", http.MethodGet, "/users/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reseed restores the backend's built-in dataset.
func (c *Client) Reseed(ctx context.Context) error {
	return c.do(ctx, "reseed", http.MethodPost, "/seed", nil, nil)
}

// do performs one JSON round trip. Transport failures become NETWORK_ERROR,
// 404 becomes NOT_FOUND and any other non-2xx becomes UPSTREAM_ERROR.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	defer observability.TrackClientRequest(op)()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cid := observability.ExtractCorrelationID(ctx); cid != "" {
		req.Header.Set("X-Request-ID", cid)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return models.NewNetworkError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(op, resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return models.NewUpstreamError(op, resp.StatusCode, "malformed response: "+err.Error())
	}
	return nil
}

func statusError(op string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	detail := strings.TrimSpace(string(raw))
	var apiErr models.ErrorResponse
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error != "" {
		detail = apiErr.Error
	}

	if resp.StatusCode == http.StatusNotFound {
		msg := detail
		if msg == "" {
			msg = op + ": not found"
		}
		return &models.AppError{Code: models.CodeNotFound, Message: msg}
	}
	return models.NewUpstreamError(op, resp.StatusCode, detail)
}

// IsNetworkFailure reports whether err came from the transport or a non-2xx answer
// rather than from a missing resource.
func IsNetworkFailure(err error) bool {
	return models.HasCode(err, models.CodeNetwork) || models.HasCode(err, models.CodeUpstream)
}
