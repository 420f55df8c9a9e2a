package filtering

import (
	"regexp"
	"strconv"
)

// salaryPatterns cover the common Indian job market salary wordings. The
// order matters: the first pattern that matches determines the result,
// later patterns are never consulted.
var salaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+(?:\.\d+)?)\s*-?\s*(\d+(?:\.\d+)?)?\s*lpa`),
	regexp.MustCompile(`₹\s*(\d+(?:\.\d+)?)\s*-?\s*(\d+(?:\.\d+)?)?\s*lakh`),
	regexp.MustCompile(`(\d+(?:\.\d+)?)\s*-?\s*(\d+(?:\.\d+)?)?\s*lakhs?\s*per\s*annum`),
	regexp.MustCompile(`salary:?\s*(\d+(?:\.\d+)?)\s*-?\s*(\d+(?:\.\d+)?)?\s*lpa`),
	regexp.MustCompile(`ctc:?\s*(\d+(?:\.\d+)?)\s*-?\s*(\d+(?:\.\d+)?)?\s*lpa`),
	regexp.MustCompile(`package:?\s*(\d+(?:\.\d+)?)\s*-?\s*(\d+(?:\.\d+)?)?\s*lpa`),
	regexp.MustCompile(`(\d+(?:\.\d+)?)\s*to\s*(\d+(?:\.\d+)?)\s*lpa`),
	regexp.MustCompile(`upto?\s*(\d+(?:\.\d+)?)\s*lpa`),
}

// extractSalary scans lower-cased title+description text for a salary
// figure in LPA. Absence of a salary never rejects a job; only a found
// figure outside the configured band does.
func extractSalary(text string) *SalaryInfo {
	for _, pattern := range salaryPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		var values []float64
		for _, group := range match[1:] {
			if group == "" {
				continue
			}
			v, err := strconv.ParseFloat(group, 64)
			if err != nil {
				continue
			}
			values = append(values, v)
		}

		switch len(values) {
		case 2:
			lo, hi := values[0], values[1]
			if lo > hi {
				lo, hi = hi, lo
			}
			return &SalaryInfo{Found: true, Min: lo, Max: hi, Average: (lo + hi) / 2}
		case 1:
			v := values[0]
			return &SalaryInfo{Found: true, Min: v, Max: v, Average: v}
		}
	}

	return &SalaryInfo{}
}
