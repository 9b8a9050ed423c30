// Package provider builds Esplora clients from configuration and fans a call
// out across every configured endpoint.
package provider

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dando385/esplora-cli/internal/config"
	"github.com/dando385/esplora-cli/internal/esplora"
	"github.com/dando385/esplora-cli/internal/logger"
)

// NewClient builds the Esplora client for one endpoint using the retry and
// backoff settings from cfg.Defaults.
func NewClient(cfg *config.Config, p config.Provider, log logger.AppLogger) *esplora.Client {
	timeout := p.Timeout
	if timeout == 0 {
		timeout = cfg.Defaults.Timeout
	}
	return esplora.NewClient(esplora.ClientConfig{
		Name:           p.Name,
		URL:            p.URL,
		Timeout:        timeout,
		MaxRetries:     cfg.Defaults.MaxRetries,
		BackoffInitial: cfg.Defaults.BackoffInitial,
		BackoffMax:     cfg.Defaults.BackoffMax,
		Logger:         log,
	})
}

// Result wraps one provider's answer.
type Result[T any] struct {
	Provider config.Provider
	Value    T
	Err      error
	Latency  time.Duration
}

// ExecuteAll runs fn concurrently for each provider. Results come back in
// provider order, not completion order. A failing provider does not cancel
// the others; its error is recorded in its Result.
func ExecuteAll[T any](
	ctx context.Context,
	providers []config.Provider,
	fn func(ctx context.Context, p config.Provider) (T, error),
) []Result[T] {
	results := make([]Result[T], len(providers))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range providers {
		g.Go(func() error {
			start := time.Now()
			val, err := fn(gctx, p)
			// each goroutine owns results[i]
			results[i] = Result[T]{Provider: p, Value: val, Err: err, Latency: time.Since(start)}
			return nil
		})
	}

	_ = g.Wait()
	return results
}
