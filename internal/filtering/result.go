package filtering

import "strconv"

// Status distinguishes a legitimate non-match from a record-scoped fault.
// Both carry IsRelevant=false; callers that only branch on relevance are
// unaffected.
type Status string

const (
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusFault    Status = "fault"
)

// Stage names the pipeline stages in execution order.
type Stage string

const (
	StageRole       Stage = "role_check"
	StageLocation   Stage = "location_check"
	StageExperience Stage = "experience_check"
	StageSalary     Stage = "salary_check"
	StageResume     Stage = "resume_select"
)

// Stages is the fixed pipeline order.
var Stages = []Stage{StageRole, StageLocation, StageExperience, StageSalary, StageResume}

// RoleCheck is the relevance classifier verdict.
type RoleCheck struct {
	IsRelevant      bool
	Reason          string
	Score           int
	MatchedKeywords []string
	FresherFriendly bool
}

// LocationCheck is the location matcher verdict.
type LocationCheck struct {
	IsMatch bool
	Reason  string
}

// ExperienceCheck is the experience matcher verdict.
type ExperienceCheck struct {
	IsMatch       bool
	RequiredYears float64
	Reason        string
}

// SalaryInfo is the salary extractor output, in LPA.
type SalaryInfo struct {
	Found   bool
	Min     float64
	Max     float64
	Average float64
}

// Details carries the sub-results of stages that actually executed. A stage
// the pipeline short-circuited before stays nil.
type Details struct {
	RoleCheck       *RoleCheck
	LocationCheck   *LocationCheck
	ExperienceCheck *ExperienceCheck
	SalaryInfo      *SalaryInfo
}

// Result is the routing verdict for one job record. Created fresh per
// filtering call and never mutated after construction.
type Result struct {
	Status          Status
	IsRelevant      bool
	Reason          string
	ResumeToUse     string
	RelevanceScore  int
	SalaryLPA       float64
	SalaryFound     bool
	FresherFriendly bool
	MatchedKeywords []string
	// FailedStage is set when Status is StatusRejected.
	FailedStage Stage
	Details     *Details
}

// SalaryText renders the salary the way reports show it.
func (r *Result) SalaryText() string {
	if !r.SalaryFound {
		return "not specified"
	}
	return strconv.FormatFloat(r.SalaryLPA, 'f', -1, 64) + " LPA"
}
