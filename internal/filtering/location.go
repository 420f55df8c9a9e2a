package filtering

import (
	"fmt"
	"strings"
)

// remoteVocabulary is the fixed remote-work wording accepted regardless of
// target locations.
var remoteVocabulary = []string{
	"remote", "work from home", "wfh", "anywhere", "virtual",
	"distributed", "home based", "telecommute",
}

// checkLocation applies the location policy in order, first match wins:
// empty accepts, target substring accepts, remote wording accepts, a
// token-level partial hit on a target accepts, otherwise reject.
func (e *Engine) checkLocation(location string) *LocationCheck {
	if strings.TrimSpace(location) == "" {
		return &LocationCheck{IsMatch: true, Reason: "no location specified, assuming remote"}
	}

	lower := strings.ToLower(location)

	for _, target := range e.cfg.Locations {
		if strings.Contains(lower, strings.ToLower(target)) {
			return &LocationCheck{IsMatch: true, Reason: fmt.Sprintf("matches preferred location %s", target)}
		}
	}

	for _, word := range remoteVocabulary {
		if strings.Contains(lower, word) {
			return &LocationCheck{IsMatch: true, Reason: fmt.Sprintf("remote work: %s", word)}
		}
	}

	// Flexibility heuristic: any single word of a target location counts.
	// Very short tokens are skipped to limit false hits on filler words.
	for _, target := range e.cfg.Locations {
		for _, token := range strings.Fields(strings.ToLower(target)) {
			if len([]rune(token)) < 3 {
				continue
			}
			if strings.Contains(lower, token) {
				return &LocationCheck{IsMatch: true, Reason: fmt.Sprintf("partial location match: %s", target)}
			}
		}
	}

	return &LocationCheck{IsMatch: false, Reason: fmt.Sprintf("location %s not in preferred list", location)}
}
