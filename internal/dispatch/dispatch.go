package dispatch

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/mteja/jobscout/internal/jobs"
	"github.com/mteja/jobscout/internal/logger"
	"github.com/mteja/jobscout/internal/profile"
	"github.com/mteja/jobscout/internal/store"
	"github.com/mteja/jobscout/internal/utils"
)

// History is the persistence the dispatcher needs across runs. *store.DB
// satisfies it.
type History interface {
	Seen(url string) (bool, error)
	MarkSeen(url string) error
	RecordOutcome(o store.Outcome) error
}

// Dispatcher routes accepted records through per-source strategies, enforcing
// quotas, cross-run URL dedup, and pacing between deliveries.
type Dispatcher struct {
	registry *Registry
	limits   profile.DailyLimits
	history  History
	limiter  *rate.Limiter
	runID    string
	logger   *zap.Logger
}

func New(registry *Registry, limits profile.DailyLimits, history History, runID string, lg *zap.Logger) *Dispatcher {
	if lg == nil {
		lg = zap.NewNop()
	}

	// One delivery per minimum-delay interval, with bursts of one.
	interval := time.Duration(limits.DelayMinSeconds) * time.Second
	limiter := rate.NewLimiter(rate.Inf, 1)
	if interval > 0 {
		limiter = rate.NewLimiter(rate.Every(interval), 1)
	}

	return &Dispatcher{
		registry: registry,
		limits:   limits,
		history:  history,
		limiter:  limiter,
		runID:    runID,
		logger:   lg,
	}
}

// Run dispatches every relevant record and returns the final run state with
// the per-record outcomes, in input order.
func (d *Dispatcher) Run(ctx context.Context, records *jobs.Records) (*RunState, []*Outcome, error) {
	state := NewRunState(d.limits)
	outcomes := make([]*Outcome, 0, records.Len())

	for _, rec := range records.Items {
		if rec.Routing == nil || !rec.Routing.IsRelevant {
			continue
		}

		if state.Exhausted() {
			d.logger.Info("daily quotas exhausted, stopping dispatch",
				zap.Int("applications", state.ApplicationsSent),
				zap.Int("emails", state.EmailsSent))
			break
		}

		out, err := d.dispatchOne(ctx, rec, state)
		if err != nil {
			return state, outcomes, err
		}
		outcomes = append(outcomes, out)

		if err := d.record(out, state); err != nil {
			return state, outcomes, err
		}

		if out.Status == StatusSent {
			if err := d.pause(ctx); err != nil {
				return state, outcomes, err
			}
		}
	}

	return state, outcomes, nil
}

func (d *Dispatcher) dispatchOne(ctx context.Context, rec *jobs.Record, state *RunState) (*Outcome, error) {
	fields := logger.JobFields(rec.URL, string(rec.Source), rec.Company)

	if state.HasSeen(rec.URL) {
		return &Outcome{URL: rec.URL, Company: rec.Company, Status: StatusSkipped, Reason: "duplicate in this run"}, nil
	}
	if d.history != nil {
		seen, err := d.history.Seen(rec.URL)
		if err != nil {
			return nil, fmt.Errorf("seen lookup for %s: %w", rec.URL, err)
		}
		if seen {
			return &Outcome{URL: rec.URL, Company: rec.Company, Status: StatusSkipped, Reason: "handled in an earlier run"}, nil
		}
	}

	strategy, err := d.registry.For(rec.Source)
	if err != nil {
		d.logger.Warn("no dispatch strategy", append(fields, zap.Error(err))...)
		return &Outcome{URL: rec.URL, Company: rec.Company, Status: StatusFailed, Reason: err.Error()}, nil
	}

	if err := d.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	out, err := strategy.Apply(ctx, rec, state)
	if err != nil {
		out = &Outcome{URL: rec.URL, Company: rec.Company, Status: StatusFailed, Reason: err.Error()}
	}

	d.logger.Info("dispatched",
		append(fields,
			zap.String("strategy", strategy.Name()),
			zap.String("status", string(out.Status)),
			zap.String("reason", out.Reason))...)

	return out, nil
}

// record persists the outcome and, for attempted jobs, the seen-URL mark.
// Quota skips are not marked seen so the job is retried on the next run.
func (d *Dispatcher) record(out *Outcome, state *RunState) error {
	attempted := out.Status == StatusSent || out.Status == StatusAborted
	if attempted {
		state.MarkSeen(out.URL)
	}

	if d.history == nil {
		return nil
	}

	if attempted {
		if err := d.history.MarkSeen(out.URL); err != nil {
			return fmt.Errorf("mark seen %s: %w", out.URL, err)
		}
	}

	err := d.history.RecordOutcome(store.Outcome{
		RunID:  d.runID,
		URL:    out.URL,
		Kind:   string(out.Kind),
		Status: string(out.Status),
		Detail: out.Reason,
	})
	if err != nil {
		return fmt.Errorf("record outcome %s: %w", out.URL, err)
	}

	return nil
}

// pause inserts the configured randomized delay after a delivery.
func (d *Dispatcher) pause(ctx context.Context) error {
	lo, hi := d.limits.DelayMinSeconds, d.limits.DelayMaxSeconds
	if hi <= lo {
		return nil
	}
	jitter := time.Duration(rand.IntN(hi-lo+1)) * time.Second

	return utils.WaitFor(ctx, jitter)
}
