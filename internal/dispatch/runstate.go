package dispatch

import "github.com/mteja/jobscout/internal/profile"

// RunState carries the mutable counters of a dispatch run explicitly instead
// of process-wide globals. A fresh state is built per run and returned to the
// caller when the batch finishes.
type RunState struct {
	ApplicationsSent int
	EmailsSent       int
	SeenURLs         map[string]bool

	limits profile.DailyLimits
}

func NewRunState(limits profile.DailyLimits) *RunState {
	return &RunState{
		SeenURLs: make(map[string]bool),
		limits:   limits,
	}
}

func (s *RunState) CanApply() bool {
	return s.ApplicationsSent < s.limits.MaxApplications
}

func (s *RunState) CanEmail() bool {
	return s.EmailsSent < s.limits.MaxHREmails
}

// EmailBudget returns how many more emails the quota allows.
func (s *RunState) EmailBudget() int {
	left := s.limits.MaxHREmails - s.EmailsSent
	if left < 0 {
		return 0
	}
	return left
}

func (s *RunState) CountApplication() { s.ApplicationsSent++ }
func (s *RunState) CountEmail()       { s.EmailsSent++ }

func (s *RunState) MarkSeen(url string) {
	if url != "" {
		s.SeenURLs[url] = true
	}
}

func (s *RunState) HasSeen(url string) bool { return s.SeenURLs[url] }

// Exhausted reports that no delivery of any kind remains possible.
func (s *RunState) Exhausted() bool { return !s.CanApply() && !s.CanEmail() }
