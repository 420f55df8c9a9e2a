package filtering

import (
	"fmt"
	"strings"
)

const minPositiveMatches = 2

// checkRole scores the lower-cased title+description text against the
// profile keyword lists. Matching is set membership per keyword, not
// occurrence frequency.
func (e *Engine) checkRole(text string) *RoleCheck {
	kw := e.cfg.Keywords

	positive := 0
	var matched []string
	for _, keyword := range kw.Positive {
		if strings.Contains(text, keyword) {
			positive++
			matched = append(matched, keyword)
		}
	}

	if positive < minPositiveMatches {
		return &RoleCheck{
			IsRelevant:      false,
			Reason:          "insufficient role keywords",
			MatchedKeywords: matched,
		}
	}

	var negative []string
	for _, keyword := range kw.Negative {
		if strings.Contains(text, keyword) {
			negative = append(negative, keyword)
		}
	}

	fresher := 0
	for _, keyword := range kw.FresherFriendly {
		if strings.Contains(text, keyword) {
			fresher++
		}
	}

	// Fresher-friendly language neutralizes an experience red flag.
	if len(negative) > 0 && fresher == 0 {
		return &RoleCheck{
			IsRelevant:      false,
			Reason:          fmt.Sprintf("high experience requirement: %s", strings.Join(negative, ", ")),
			MatchedKeywords: matched,
		}
	}

	score := positive*10 + fresher*5
	if score > 100 {
		score = 100
	}

	return &RoleCheck{
		IsRelevant:      true,
		Reason:          fmt.Sprintf("good match with %d role keywords", positive),
		Score:           score,
		MatchedKeywords: matched,
		FresherFriendly: fresher > 0,
	}
}
