package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/pushpak1497/swift/internal/domain"
	"github.com/pushpak1497/swift/internal/observability/metrics"
)

// consecutive failures before the breaker opens
const tripAfter = 5

// Client reads the placeholder API. It implements domain.Source.
// Calls are never retried; the breaker only makes repeated failures fail fast.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
}

// NewClient creates a client for baseURL, e.g. https://jsonplaceholder.typicode.com.
// A zero timeout leaves calls unbounded.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:     "upstream",
		Interval: time.Minute,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= tripAfter
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			// a caller giving up says nothing about upstream health
			return err == nil || errors.Is(err, context.Canceled)
		},
	})

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: breaker,
		logger:  logger,
	}
}

// FetchUsers returns every upstream user in upstream order
func (c *Client) FetchUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.getJSON(ctx, "users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FetchPosts returns the posts of one user
func (c *Client) FetchPosts(ctx context.Context, userID int64) ([]domain.Post, error) {
	var posts []domain.Post
	query := url.Values{"userId": {strconv.FormatInt(userID, 10)}}
	if err := c.getJSON(ctx, "posts", query, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// FetchComments returns the comments of one post
func (c *Client) FetchComments(ctx context.Context, postID int64) ([]domain.Comment, error) {
	var comments []domain.Comment
	query := url.Values{"postId": {strconv.FormatInt(postID, 10)}}
	if err := c.getJSON(ctx, "comments", query, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (c *Client) getJSON(ctx context.Context, resource string, query url.Values, out interface{}) error {
	target := c.baseURL + "/" + resource
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.do(ctx, target, out)
	})
	if err != nil {
		metrics.ObserveUpstream(resource, "error")
		c.logger.Error("upstream request failed",
			slog.String("url", target),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%w: fetch %s: %w", domain.ErrUpstream, resource, err)
	}

	metrics.ObserveUpstream(resource, "success")
	c.logger.Debug("upstream request completed", slog.String("url", target))
	return nil
}

func (c *Client) do(ctx context.Context, target string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
