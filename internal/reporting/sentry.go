// Package reporting forwards server-side failures to an external error
// tracker.
package reporting

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

const flushTimeout = 2 * time.Second

type Reporter interface {
	Report(err error, tags map[string]string)
}

// Nop discards every report.
type Nop struct{}

func (Nop) Report(error, map[string]string) {}

// Sentry reports to a Sentry project. Each report is flushed before Report
// returns so nothing is lost when a serverless runtime freezes the process.
type Sentry struct {
	hub *sentry.Hub
}

// New returns Nop when dsn is empty.
func New(dsn, environment string) (Reporter, error) {
	if dsn == "" {
		return Nop{}, nil
	}
	return NewSentry(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
	})
}

func NewSentry(opts sentry.ClientOptions) (*Sentry, error) {
	client, err := sentry.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("creating sentry client: %w", err)
	}

	return &Sentry{hub: sentry.NewHub(client, sentry.NewScope())}, nil
}

func (s *Sentry) Report(err error, tags map[string]string) {
	if err == nil {
		return
	}

	s.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		s.hub.CaptureException(err)
	})
	s.hub.Flush(flushTimeout)
}
