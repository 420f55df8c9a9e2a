package dispatch

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mteja/jobscout/internal/contacts"
	"github.com/mteja/jobscout/internal/contentgen"
	"github.com/mteja/jobscout/internal/delivery"
	"github.com/mteja/jobscout/internal/jobs"
	"github.com/mteja/jobscout/internal/logger"
	"github.com/mteja/jobscout/internal/profile"
)

// maxContactsPerJob bounds outreach fan-out: only the best-ranked contacts
// of a posting get a message.
const maxContactsPerJob = 2

// OutreachStrategy handles sites without an in-page application flow by
// emailing derived HR contacts. Contacts come back ranked by confidence, so
// truncation keeps the strongest addresses.
type OutreachStrategy struct {
	writer   contentgen.Writer
	delivery delivery.Delivery
	sender   *profile.Sender
	skills   []string
	logger   *zap.Logger
}

func NewOutreachStrategy(w contentgen.Writer, del delivery.Delivery, sender *profile.Sender, skills []string, lg *zap.Logger) *OutreachStrategy {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &OutreachStrategy{writer: w, delivery: del, sender: sender, skills: skills, logger: lg}
}

func (s *OutreachStrategy) Name() string { return "hr-outreach" }

func (s *OutreachStrategy) Apply(ctx context.Context, rec *jobs.Record, state *RunState) (*Outcome, error) {
	out := &Outcome{URL: rec.URL, Company: rec.Company, Kind: KindEmail}

	if !state.CanEmail() {
		out.Status = StatusSkipped
		out.Reason = "email quota reached"
		return out, nil
	}

	found := contacts.Extract(rec)
	if len(found) == 0 {
		out.Status = StatusSkipped
		out.Reason = "no contacts derived"
		return out, nil
	}

	budget := maxContactsPerJob
	if left := state.EmailBudget(); left < budget {
		budget = left
	}
	if len(found) > budget {
		found = found[:budget]
	}

	resume := ""
	if rec.Routing != nil {
		resume = rec.Routing.Resume
	}

	var lastErr error
	for i := range found {
		contact := found[i]

		email, err := s.writer.Write(ctx, &contentgen.Request{
			Job:     rec,
			Contact: &contact,
			Resume:  resume,
			Sender:  s.sender,
			Skills:  s.skills,
		})
		if err != nil {
			lastErr = fmt.Errorf("compose for %s: %w", contact.Email, err)
			s.logger.Warn("email composition failed",
				append(logger.JobFields(rec.URL, string(rec.Source), rec.Company), zap.Error(err))...)
			continue
		}

		err = s.delivery.SendEmail(ctx, &delivery.Message{Job: rec, Contact: &contact, Email: email, Resume: resume})
		if err != nil {
			lastErr = fmt.Errorf("send to %s: %w", contact.Email, err)
			continue
		}

		state.CountEmail()
		out.EmailsSent++
	}

	switch {
	case out.EmailsSent > 0:
		out.Status = StatusSent
		out.Reason = fmt.Sprintf("emailed %d of %d contacts", out.EmailsSent, len(found))
	case lastErr != nil:
		out.Status = StatusFailed
		out.Reason = lastErr.Error()
	default:
		out.Status = StatusSkipped
		out.Reason = "no contacts within quota"
	}

	return out, nil
}
