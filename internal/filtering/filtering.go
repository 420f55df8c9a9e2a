// Package filtering implements the job relevance and routing engine: a
// deterministic per-record pipeline of role, location, experience, and
// salary checks followed by résumé selection. Filtering is a pure function
// of the record and the candidate profile; it performs no I/O and is safe
// to run concurrently across records.
package filtering

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mteja/jobscout/internal/jobs"
	"github.com/mteja/jobscout/internal/profile"
)

// Step describes the drop accounting of one pipeline stage over a batch.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Engine evaluates job records against a candidate profile. The profile is
// read-only after construction.
type Engine struct {
	cfg    *profile.Config
	logger *zap.Logger
}

// New builds an engine over a validated profile.
func New(cfg *profile.Config, logger *zap.Logger) (*Engine, error) {
	if cfg == nil {
		return nil, errors.New("profile config is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{cfg: cfg, logger: logger}, nil
}

// FilterJob routes a single record through the pipeline with short-circuit
// rejection. Details only carries stages that actually executed. A panic
// inside a stage is recovered into a fault result so one bad record never
// aborts a batch.
func (e *Engine) FilterJob(rec *jobs.Record) (res *Result) {
	details := &Details{}

	defer func() {
		if r := recover(); r != nil {
			res = &Result{
				Status:  StatusFault,
				Reason:  fmt.Sprintf("filtering fault: %v", r),
				Details: details,
			}
		}
	}()

	text := strings.ToLower(rec.Title + " " + rec.Description)

	role := e.checkRole(text)
	details.RoleCheck = role
	if !role.IsRelevant {
		return rejected(StageRole, role.Reason, details)
	}

	location := e.checkLocation(rec.Location)
	details.LocationCheck = location
	if !location.IsMatch {
		return rejected(StageLocation, location.Reason, details)
	}

	experience := e.checkExperience(strings.ToLower(rec.Description))
	details.ExperienceCheck = experience
	if !experience.IsMatch {
		return rejected(StageExperience, experience.Reason, details)
	}

	salary := extractSalary(text)
	details.SalaryInfo = salary
	if salary.Found {
		if salary.Max < e.cfg.Salary.Min {
			reason := fmt.Sprintf("salary %g LPA below minimum %g LPA", salary.Max, e.cfg.Salary.Min)
			return rejected(StageSalary, reason, details)
		}
		if salary.Min > e.cfg.Salary.Max {
			reason := fmt.Sprintf("salary %g LPA above realistic range", salary.Min)
			return rejected(StageSalary, reason, details)
		}
	}

	resume := e.selectResume(text)

	return &Result{
		Status:          StatusAccepted,
		IsRelevant:      true,
		Reason:          "job matches all criteria",
		ResumeToUse:     resume,
		RelevanceScore:  role.Score,
		SalaryLPA:       salary.Average,
		SalaryFound:     salary.Found,
		FresherFriendly: role.FresherFriendly,
		MatchedKeywords: role.MatchedKeywords,
		Details:         details,
	}
}

func rejected(stage Stage, reason string, details *Details) *Result {
	return &Result{
		Status:      StatusRejected,
		Reason:      reason,
		FailedStage: stage,
		Details:     details,
	}
}

// Run filters a whole feed. Records are independent, so the batch is
// processed with up to workers goroutines; the returned slice is indexed
// like records.Items. Accepted records get their routing annotation
// appended, and per-stage drop accounting is logged the same way for any
// worker count.
func (e *Engine) Run(ctx context.Context, records *jobs.Records, workers int) ([]*Result, error) {
	if records == nil {
		return nil, nil
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]*Result, len(records.Items))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)

	for i, rec := range records.Items {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = e.FilterJob(rec)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	for i, rec := range records.Items {
		res := results[i]
		rec.Routing = &jobs.RoutingAnnotation{
			IsRelevant: res.IsRelevant,
			Reason:     res.Reason,
			Resume:     res.ResumeToUse,
			Score:      res.RelevanceScore,
			Keywords:   res.MatchedKeywords,
		}
	}

	for _, stage := range Stages {
		step := stageStep(results, stage)
		e.logger.Info("filter step",
			zap.String("name", string(stage)),
			zap.Int("initial", step.Initial),
			zap.Int("dropped", step.Dropped),
			zap.Int("left", step.Left),
		)
	}

	return results, nil
}

// stageStep computes how many records entered a stage and how many it
// dropped. A record entered a stage when no earlier stage rejected it.
func stageStep(results []*Result, stage Stage) Step {
	entered := 0
	dropped := 0

	for _, res := range results {
		if res == nil {
			continue
		}
		if res.Status == StatusFault {
			continue
		}
		if res.Status == StatusRejected && stageIndex(res.FailedStage) < stageIndex(stage) {
			continue
		}
		entered++
		if res.Status == StatusRejected && res.FailedStage == stage {
			dropped++
		}
	}

	return Step{Initial: entered, Dropped: dropped, Left: entered - dropped}
}

func stageIndex(stage Stage) int {
	for i, s := range Stages {
		if s == stage {
			return i
		}
	}
	return len(Stages)
}

// Summary aggregates a batch of results for reporting.
type Summary struct {
	Total            int
	Relevant         int
	Faults           int
	RelevanceRate    float64
	RejectionReasons map[string]int
}

// Summarize counts verdicts and groups rejection reasons.
func Summarize(results []*Result) Summary {
	summary := Summary{RejectionReasons: make(map[string]int)}

	for _, res := range results {
		if res == nil {
			continue
		}
		summary.Total++
		switch res.Status {
		case StatusAccepted:
			summary.Relevant++
		case StatusFault:
			summary.Faults++
			summary.RejectionReasons[res.Reason]++
		default:
			summary.RejectionReasons[res.Reason]++
		}
	}

	if summary.Total > 0 {
		summary.RelevanceRate = float64(summary.Relevant) / float64(summary.Total) * 100
	}

	return summary
}
