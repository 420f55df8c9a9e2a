package filtering

import "strings"

const (
	automationResumeThreshold = 3
	advancedResumeThreshold   = 2
	entryResumeThreshold      = 2
)

// selectResume picks one of the three résumé variants. This is a strict
// priority cascade, not a max-score comparison: an automation hit wins even
// when the entry family scored higher.
func (e *Engine) selectResume(text string) string {
	sel := e.cfg.Selector

	automation := countMatches(text, sel.Automation)
	entry := countMatches(text, sel.Entry)
	advanced := countMatches(text, sel.AdvancedProject)

	switch {
	case automation >= automationResumeThreshold || advanced >= advancedResumeThreshold:
		return e.cfg.Resumes.Automation
	case entry >= entryResumeThreshold:
		return e.cfg.Resumes.Entry
	default:
		return e.cfg.Resumes.General
	}
}

func countMatches(text string, keywords []string) int {
	n := 0
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			n++
		}
	}
	return n
}
