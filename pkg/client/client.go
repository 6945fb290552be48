// Package client talks to a running votecloud server.
//
// It is used by the terminal leaderboard and by scripts that want the
// current standings without rendering anything locally. Transient failures
// (network errors and 5xx responses) are retried with exponential backoff.
//
//	c := client.New("http://localhost:8000")
//	ranking, err := c.Ranking(ctx)
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/votecloud/votecloud/pkg/buildinfo"
	"github.com/votecloud/votecloud/pkg/errors"
	"github.com/votecloud/votecloud/pkg/score"
)

// DefaultTimeout bounds a single HTTP request.
const DefaultTimeout = 10 * time.Second

// Client is an HTTP client for the votecloud API.
type Client struct {
	baseURL  string
	http     *http.Client
	attempts int
	delay    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithRetry sets the number of attempts and the initial backoff delay.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.delay = delay
	}
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: DefaultTimeout},
		attempts: 3,
		delay:    time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server address.
func (c *Client) BaseURL() string { return c.baseURL }

// Ranking fetches the ranking drawn into the current leaderboard.
func (c *Client) Ranking(ctx context.Context) (score.RankedList, error) {
	var ranking score.RankedList
	if err := c.getJSON(ctx, "/ranking", &ranking); err != nil {
		return nil, err
	}
	return ranking, nil
}

// TotalVotes fetches the number of votes cast.
func (c *Client) TotalVotes(ctx context.Context) (int, error) {
	var summary struct {
		TotalVotes int `json:"totalVotes"`
	}
	if err := c.getJSON(ctx, "/votes-summary", &summary); err != nil {
		return 0, err
	}
	return summary.TotalVotes, nil
}

// Leaderboard downloads the current leaderboard PNG.
func (c *Client) Leaderboard(ctx context.Context) ([]byte, error) {
	var data []byte
	err := errors.Retry(ctx, c.attempts, c.delay, func() error {
		body, err := c.get(ctx, "/leaderboard.png")
		if err != nil {
			return err
		}
		defer body.Close()
		data, err = io.ReadAll(body)
		if err != nil {
			return errors.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read leaderboard"))
		}
		return nil
	})
	return data, err
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	return errors.Retry(ctx, c.attempts, c.delay, func() error {
		body, err := c.get(ctx, path)
		if err != nil {
			return err
		}
		defer body.Close()
		if err := json.NewDecoder(body).Decode(v); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "decode %s", path)
		}
		return nil
	})
}

func (c *Client) get(ctx context.Context, path string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", path))
	}
	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

// checkStatus turns a non-200 response into a coded error, using the
// server's error body when it has one.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}

	var body struct {
		Error string      `json:"error"`
		Code  errors.Code `json:"code"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body)
	msg := body.Error
	if msg == "" {
		msg = fmt.Sprintf("status %d", resp.StatusCode)
	}

	switch {
	case resp.StatusCode >= 500:
		return errors.Retryable(errors.New(errors.ErrCodeNetwork, "server error: %s", msg))
	case resp.StatusCode == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "%s", msg)
	case body.Code != "":
		return errors.New(body.Code, "%s", msg)
	default:
		return errors.New(errors.ErrCodeNetwork, "%s", msg)
	}
}
