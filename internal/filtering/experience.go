package filtering

import (
	"fmt"
	"regexp"
	"strconv"
)

// experiencePatterns find an explicit years-of-experience requirement.
// First match wins; for range matches the minimum is the requirement.
var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\+?\s*years?\s*(?:of\s*)?experience`),
	regexp.MustCompile(`(\d+)\s*to\s*(\d+)\s*years?`),
	regexp.MustCompile(`minimum\s*(\d+)\s*years?`),
	regexp.MustCompile(`at\s*least\s*(\d+)\s*years?`),
	regexp.MustCompile(`(\d+)\s*-\s*(\d+)\s*years?`),
}

// experienceSlackYears is the flexibility allowed above the candidate's
// assumed experience.
const experienceSlackYears = 1

// checkExperience compares a stated requirement against the candidate's
// assumed experience. No stated requirement is treated as fresher-friendly.
func (e *Engine) checkExperience(text string) *ExperienceCheck {
	actual := e.cfg.ExperienceYears

	for _, pattern := range experiencePatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		required := 0.0
		first := true
		for _, group := range match[1:] {
			if group == "" {
				continue
			}
			v, err := strconv.Atoi(group)
			if err != nil {
				continue
			}
			if first || float64(v) < required {
				required = float64(v)
			}
			first = false
		}
		if first {
			continue
		}

		if required <= actual+experienceSlackYears {
			return &ExperienceCheck{
				IsMatch:       true,
				RequiredYears: required,
				Reason:        fmt.Sprintf("experience requirement (%g years) matches profile", required),
			}
		}
		return &ExperienceCheck{
			IsMatch:       false,
			RequiredYears: required,
			Reason:        fmt.Sprintf("requires %g years, profile has %g", required, actual),
		}
	}

	return &ExperienceCheck{
		IsMatch: true,
		Reason:  "no specific experience requirement mentioned",
	}
}
