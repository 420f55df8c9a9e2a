package dispatch

import (
	"context"
	"fmt"

	"github.com/mteja/jobscout/internal/jobs"
)

// Status is the outcome of one dispatch attempt.
type Status string

const (
	StatusSent    Status = "sent"
	StatusSkipped Status = "skipped"
	StatusAborted Status = "aborted"
	StatusFailed  Status = "failed"
)

// Kind distinguishes direct applications from HR outreach.
type Kind string

const (
	KindApplication Kind = "application"
	KindEmail       Kind = "email"
)

// Outcome describes what a strategy did with one job record.
type Outcome struct {
	URL        string
	Company    string
	Kind       Kind
	Status     Status
	Reason     string
	Steps      int
	EmailsSent int
}

// Strategy applies one job record through a site-specific delivery flow.
// The run state is threaded in explicitly so quota checks and counters stay
// testable and runs stay independent.
type Strategy interface {
	Name() string
	Apply(ctx context.Context, rec *jobs.Record, state *RunState) (*Outcome, error)
}

// Registry selects a Strategy by job source. New sites are added by
// registering a variant, never by extending a conditional.
type Registry struct {
	strategies map[jobs.Source]Strategy
}

func NewRegistry() *Registry {
	return &Registry{strategies: make(map[jobs.Source]Strategy)}
}

func (r *Registry) Register(src jobs.Source, s Strategy) {
	r.strategies[src] = s
}

// For returns the strategy registered for a source.
func (r *Registry) For(src jobs.Source) (Strategy, error) {
	s, ok := r.strategies[src]
	if !ok {
		return nil, fmt.Errorf("no strategy registered for source %q", src)
	}
	return s, nil
}

// Sources lists the registered sources.
func (r *Registry) Sources() []jobs.Source {
	out := make([]jobs.Source, 0, len(r.strategies))
	for src := range r.strategies {
		out = append(out, src)
	}
	return out
}
