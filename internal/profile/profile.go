// Package profile holds the static candidate configuration the routing
// engine is evaluated against. The config is loaded once at startup and is
// read-only for the rest of the run.
package profile

import (
	"fmt"
	"strings"
)

// ConfigError reports a missing or malformed required configuration field.
// It is fatal at startup; the filtering core never defaults absent keys.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config field %q: %s", e.Field, e.Reason)
}

// Keywords are the lower-cased keyword lists driving the relevance classifier.
type Keywords struct {
	Positive        []string `mapstructure:"positive"`
	Negative        []string `mapstructure:"negative"`
	FresherFriendly []string `mapstructure:"fresher_friendly"`
}

// SalaryBand is the acceptable salary range in LPA (lakhs per annum).
type SalaryBand struct {
	Min float64 `mapstructure:"min_lpa"`
	Max float64 `mapstructure:"max_lpa"`
}

// ResumeFiles maps the three résumé variants to their file names.
type ResumeFiles struct {
	Automation string `mapstructure:"automation"`
	Entry      string `mapstructure:"entry"`
	General    string `mapstructure:"general"`
}

// SelectorKeywords are the three disjoint keyword families used by the
// résumé selector. Empty families fall back to the package defaults.
type SelectorKeywords struct {
	Automation      []string `mapstructure:"automation"`
	Entry           []string `mapstructure:"entry"`
	AdvancedProject []string `mapstructure:"advanced_project"`
}

// DailyLimits caps delivery volume per run day.
type DailyLimits struct {
	MaxApplications int `mapstructure:"max_applications"`
	MaxHREmails     int `mapstructure:"max_hr_emails"`
	// Delay bounds, in seconds, between consecutive delivery actions.
	DelayMinSeconds int `mapstructure:"delay_min_seconds"`
	DelayMaxSeconds int `mapstructure:"delay_max_seconds"`
}

// Sender identifies the candidate in outreach payloads.
type Sender struct {
	Name     string `mapstructure:"name"`
	Email    string `mapstructure:"email"`
	Phone    string `mapstructure:"phone"`
	LinkedIn string `mapstructure:"linkedin"`
}

// Config is the full candidate profile.
type Config struct {
	Keywords        *Keywords         `mapstructure:"keywords"`
	Salary          *SalaryBand       `mapstructure:"salary"`
	Locations       []string          `mapstructure:"locations"`
	Resumes         *ResumeFiles      `mapstructure:"resumes"`
	Selector        *SelectorKeywords `mapstructure:"selector"`
	ExperienceYears float64           `mapstructure:"experience_years"`
	Limits          *DailyLimits      `mapstructure:"limits"`
	Sender          *Sender           `mapstructure:"sender"`
	Skills          []string          `mapstructure:"skills"`
}

// Default keyword families for the résumé selector, used when the config
// does not override them.
var (
	defaultAutomationKeywords = []string{
		"selenium", "pytest", "automation framework", "ci/cd", "jenkins",
		"api testing", "python automation", "test framework", "automation engineer",
		"sdet", "technical testing", "test automation", "framework development",
		"scripting", "api automation", "regression automation",
	}
	defaultEntryKeywords = []string{
		"fresher", "entry level", "trainee", "graduate", "0-1 year",
		"0-2 year", "manual testing", "basic", "beginner", "new grad",
		"associate", "junior", "starting career",
	}
	defaultAdvancedProjectKeywords = []string{
		"framework", "tool development", "python", "automation tool",
		"testing utility", "performance testing", "load testing",
	}
)

const defaultExperienceYears = 1.5

// Validate checks required fields, normalizes keyword lists to lower case,
// and fills selector/experience defaults. The first problem found is
// returned as a *ConfigError.
func (c *Config) Validate() error {
	if c == nil {
		return &ConfigError{Field: "profile", Reason: "is required"}
	}

	if c.Keywords == nil {
		return &ConfigError{Field: "keywords", Reason: "is required"}
	}
	if len(c.Keywords.Positive) == 0 {
		return &ConfigError{Field: "keywords.positive", Reason: "must not be empty"}
	}

	c.Keywords.Positive = lowered(c.Keywords.Positive)
	c.Keywords.Negative = lowered(c.Keywords.Negative)
	c.Keywords.FresherFriendly = lowered(c.Keywords.FresherFriendly)

	if kw := overlap(c.Keywords.Positive, c.Keywords.Negative); kw != "" {
		return &ConfigError{
			Field:  "keywords",
			Reason: fmt.Sprintf("%q appears in both positive and negative lists", kw),
		}
	}

	if c.Salary == nil {
		return &ConfigError{Field: "salary", Reason: "is required"}
	}
	if c.Salary.Min < 0 || c.Salary.Max <= 0 {
		return &ConfigError{Field: "salary", Reason: "min_lpa/max_lpa must be positive"}
	}
	if c.Salary.Min > c.Salary.Max {
		return &ConfigError{Field: "salary", Reason: "min_lpa exceeds max_lpa"}
	}

	if len(c.Locations) == 0 {
		return &ConfigError{Field: "locations", Reason: "must not be empty"}
	}

	if c.Resumes == nil {
		return &ConfigError{Field: "resumes", Reason: "is required"}
	}
	if c.Resumes.Automation == "" || c.Resumes.Entry == "" || c.Resumes.General == "" {
		return &ConfigError{Field: "resumes", Reason: "automation, entry and general files are all required"}
	}

	if c.Selector == nil {
		c.Selector = &SelectorKeywords{}
	}
	if len(c.Selector.Automation) == 0 {
		c.Selector.Automation = defaultAutomationKeywords
	}
	if len(c.Selector.Entry) == 0 {
		c.Selector.Entry = defaultEntryKeywords
	}
	if len(c.Selector.AdvancedProject) == 0 {
		c.Selector.AdvancedProject = defaultAdvancedProjectKeywords
	}
	c.Selector.Automation = lowered(c.Selector.Automation)
	c.Selector.Entry = lowered(c.Selector.Entry)
	c.Selector.AdvancedProject = lowered(c.Selector.AdvancedProject)

	if c.ExperienceYears <= 0 {
		c.ExperienceYears = defaultExperienceYears
	}

	if c.Limits == nil {
		return &ConfigError{Field: "limits", Reason: "is required"}
	}
	if c.Limits.MaxApplications <= 0 || c.Limits.MaxHREmails <= 0 {
		return &ConfigError{Field: "limits", Reason: "max_applications and max_hr_emails must be positive"}
	}

	if c.Sender == nil || c.Sender.Name == "" || c.Sender.Email == "" {
		return &ConfigError{Field: "sender", Reason: "name and email are required"}
	}

	return nil
}

func lowered(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func overlap(a, b []string) string {
	seen := make(map[string]bool, len(a))
	for _, s := range a {
		seen[s] = true
	}
	for _, s := range b {
		if seen[s] {
			return s
		}
	}
	return ""
}
