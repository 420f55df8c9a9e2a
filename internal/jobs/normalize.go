package jobs

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FlattenHTML turns a scraped HTML description into plain text so the
// keyword classifiers see the same text a human would. Non-HTML input is
// only whitespace-normalized.
func FlattenHTML(s string) string {
	if !strings.ContainsRune(s, '<') {
		return cleanText(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return cleanText(s)
	}

	doc.Find("script, style").Remove()

	return cleanText(doc.Text())
}

// cleanText collapses whitespace, including non-breaking spaces left behind
// by HTML scrapes.
func cleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}

func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
