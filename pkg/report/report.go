// Package report forwards handler failures to the places operators look.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/kasuboski/showfinder/pkg/logger"
	"go.uber.org/zap"
)

// Reporter receives failures that were not shown to the user
type Reporter interface {
	Report(ctx context.Context, err error)
}

// Func adapts a function to a Reporter
type Func func(ctx context.Context, err error)

func (f Func) Report(ctx context.Context, err error) {
	f(ctx, err)
}

// Log reports to the logger in ctx
type Log struct{}

func (Log) Report(ctx context.Context, err error) {
	logger.FromCtx(ctx).Warnw("reported failure", zap.Error(err))
}

// Multi reports to each reporter in order
type Multi []Reporter

func (m Multi) Report(ctx context.Context, err error) {
	for _, r := range m {
		r.Report(ctx, err)
	}
}

// Sentry captures failures as sentry events
type Sentry struct {
	hub *sentry.Hub
}

// NewSentry creates a reporter with its own sentry client
func NewSentry(opts sentry.ClientOptions) (*Sentry, error) {
	client, err := sentry.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create sentry client: %w", err)
	}

	return &Sentry{
		hub: sentry.NewHub(client, sentry.NewScope()),
	}, nil
}

func (s *Sentry) Report(ctx context.Context, err error) {
	s.hub.CaptureException(err)
}

// Flush waits for buffered events to be sent
func (s *Sentry) Flush(timeout time.Duration) bool {
	return s.hub.Flush(timeout)
}
