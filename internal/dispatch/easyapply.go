package dispatch

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mteja/jobscout/internal/delivery"
	"github.com/mteja/jobscout/internal/jobs"
	"github.com/mteja/jobscout/internal/logger"
)

// maxFormSteps bounds a multi-page application form. A flow that has not
// reached a submit control after this many pages is abandoned.
const maxFormSteps = 8

// FlowState is the explicit state of an in-page application flow.
type FlowState string

const (
	FlowStarted      FlowState = "started"
	FlowFilling      FlowState = "filling"
	FlowAwaitingNext FlowState = "awaiting_next"
	FlowSubmitting   FlowState = "submitting"
	FlowDone         FlowState = "done"
	FlowAborted      FlowState = "aborted"
)

// Affordance is a UI control detected on the current form page.
type Affordance int

const (
	AffordanceNone Affordance = iota
	AffordanceNext
	AffordanceSubmit
)

// PageProbe is the browser-side view of one open application form. The
// external automation layer implements it; tests use fakes.
type PageProbe interface {
	// Fill populates the visible form page with candidate data and the
	// given resume file.
	Fill(ctx context.Context, resume string) error
	// Detect reports which progression control the current page offers.
	Detect(ctx context.Context) (Affordance, error)
	// Advance moves to the next form page.
	Advance(ctx context.Context) error
	// Close releases the page.
	Close() error
}

// Browser opens job pages for form flows.
type Browser interface {
	OpenJob(ctx context.Context, url string) (PageProbe, error)
}

// FlowResult is the terminal state of one form flow, with the transition
// trace that led there.
type FlowResult struct {
	State  FlowState
	Steps  int
	Reason string
	Trace  []FlowState
}

// runForm drives a multi-step form to completion or abort. Submission itself
// is left to the Delivery collaborator; the flow only establishes that the
// form reached a submittable state.
func runForm(ctx context.Context, probe PageProbe, resume string) FlowResult {
	trace := []FlowState{FlowStarted}
	steps := 0

	abort := func(reason string) FlowResult {
		return FlowResult{State: FlowAborted, Steps: steps, Reason: reason, Trace: append(trace, FlowAborted)}
	}

	for steps < maxFormSteps {
		trace = append(trace, FlowFilling)
		if err := probe.Fill(ctx, resume); err != nil {
			return abort(fmt.Sprintf("form fill failed: %v", err))
		}

		trace = append(trace, FlowAwaitingNext)
		affordance, err := probe.Detect(ctx)
		if err != nil {
			return abort(fmt.Sprintf("page probe failed: %v", err))
		}

		switch affordance {
		case AffordanceSubmit:
			trace = append(trace, FlowSubmitting)
			return FlowResult{State: FlowDone, Steps: steps + 1, Trace: append(trace, FlowDone)}
		case AffordanceNext:
			if err := probe.Advance(ctx); err != nil {
				return abort(fmt.Sprintf("advance failed: %v", err))
			}
			steps++
		default:
			return abort("form incomplete: no next or submit control")
		}
	}

	return abort(fmt.Sprintf("step ceiling of %d reached", maxFormSteps))
}

// EasyApplyStrategy drives in-site application forms (LinkedIn and Naukri
// style flows) through a Browser and hands completed submissions to the
// delivery layer.
type EasyApplyStrategy struct {
	name     string
	browser  Browser
	delivery delivery.Delivery
	logger   *zap.Logger
}

func NewEasyApplyStrategy(name string, browser Browser, del delivery.Delivery, lg *zap.Logger) *EasyApplyStrategy {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &EasyApplyStrategy{name: name, browser: browser, delivery: del, logger: lg}
}

func (s *EasyApplyStrategy) Name() string { return s.name }

func (s *EasyApplyStrategy) Apply(ctx context.Context, rec *jobs.Record, state *RunState) (*Outcome, error) {
	out := &Outcome{URL: rec.URL, Company: rec.Company, Kind: KindApplication}

	if !state.CanApply() {
		out.Status = StatusSkipped
		out.Reason = "application quota reached"
		return out, nil
	}

	probe, err := s.browser.OpenJob(ctx, rec.URL)
	if err != nil {
		out.Status = StatusFailed
		out.Reason = fmt.Sprintf("open job page: %v", err)
		return out, nil
	}
	defer probe.Close()

	resume := ""
	if rec.Routing != nil {
		resume = rec.Routing.Resume
	}

	flow := runForm(ctx, probe, resume)
	out.Steps = flow.Steps
	if flow.State != FlowDone {
		out.Status = StatusAborted
		out.Reason = flow.Reason
		s.logger.Info("application flow aborted",
			append(logger.JobFields(rec.URL, string(rec.Source), rec.Company),
				zap.String("reason", flow.Reason), zap.Int("steps", flow.Steps))...)
		return out, nil
	}

	err = s.delivery.SubmitApplication(ctx, &delivery.Application{Job: rec, Resume: resume, Steps: flow.Steps})
	if err != nil {
		out.Status = StatusFailed
		out.Reason = fmt.Sprintf("submit: %v", err)
		return out, nil
	}

	state.CountApplication()
	out.Status = StatusSent
	out.Reason = fmt.Sprintf("submitted after %d form steps", flow.Steps)

	return out, nil
}
