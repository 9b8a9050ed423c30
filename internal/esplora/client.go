package esplora

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/dando385/esplora-cli/internal/logger"
)

const userAgent = "esplora-cli/1.0"

// ClientConfig configures a Client.
type ClientConfig struct {
	Name           string
	URL            string // base URL, e.g. https://blockstream.info/api
	Timeout        time.Duration
	MaxRetries     int // read requests only
	BackoffInitial time.Duration
	BackoffMax     time.Duration
	Logger         logger.AppLogger
}

// Client talks to one Esplora endpoint.
//
// Reads go through a resty client with exponential backoff on network errors
// and 5xx answers. Broadcasts use a second resty client with retries
// disabled: a submission that may have reached the network is reported, not
// repeated.
type Client struct {
	name   string
	url    string
	read   *resty.Client
	submit *resty.Client
	log    logger.AppLogger
}

func NewClient(cfg ClientConfig) *Client {
	base := strings.TrimRight(cfg.URL, "/")
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	read := resty.New().
		SetBaseURL(base).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", userAgent)
	if cfg.MaxRetries > 0 {
		read.SetRetryCount(cfg.MaxRetries).
			SetRetryWaitTime(cfg.BackoffInitial).
			SetRetryMaxWaitTime(cfg.BackoffMax).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				return err != nil || r.StatusCode() >= http.StatusInternalServerError
			})
	}

	submit := resty.New().
		SetBaseURL(base).
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", userAgent).
		SetRetryCount(0)

	return &Client{
		name:   cfg.Name,
		url:    base,
		read:   read,
		submit: submit,
		log:    log.With("provider", cfg.Name),
	}
}

func (c *Client) Name() string { return c.name }

func (c *Client) URL() string { return c.url }

// get performs one logical GET and returns the body of a 2xx answer.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	start := time.Now()
	resp, err := c.read.R().SetContext(ctx).Get(path)
	if err != nil {
		c.log.Debug("request failed", "method", http.MethodGet, "path", path, "error", err)
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	c.log.Debug("request", "method", http.MethodGet, "path", path,
		"status", resp.StatusCode(), "latency", time.Since(start))

	if !resp.IsSuccess() {
		return nil, &StatusError{Method: http.MethodGet, Path: path, Code: resp.StatusCode(), Body: resp.String()}
	}
	return resp.Body(), nil
}

func (c *Client) getText(ctx context.Context, path string) (string, error) {
	body, err := c.get(ctx, path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	body, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("GET %s: invalid JSON response: %w", path, err)
	}
	return nil
}

// post performs a single POST with a text body. It is never retried.
func (c *Client) post(ctx context.Context, path, body string) (string, error) {
	start := time.Now()
	resp, err := c.submit.R().
		SetContext(ctx).
		SetHeader("Content-Type", "text/plain").
		SetBody(body).
		Post(path)
	if err != nil {
		c.log.Debug("request failed", "method", http.MethodPost, "path", path, "error", err)
		return "", fmt.Errorf("POST %s: %w", path, err)
	}
	c.log.Debug("request", "method", http.MethodPost, "path", path,
		"status", resp.StatusCode(), "latency", time.Since(start))

	if !resp.IsSuccess() {
		return "", &StatusError{Method: http.MethodPost, Path: path, Code: resp.StatusCode(), Body: resp.String()}
	}
	return strings.TrimSpace(resp.String()), nil
}
