package contacts

import (
	"strings"
	"testing"

	"github.com/mteja/jobscout/internal/jobs"
)

func TestCleanCompanyNameStripsSuffixes(t *testing.T) {
	cases := map[string]string{
		"TechCorp Solutions Pvt Ltd": "techcorp",
		"Acme Technologies":          "acme",
		"Initech":                    "initech",
		"Globex Systems Pvt. Ltd.":   "globex",
		"Wayne Enterprises LLP":      "wayne",
		"Umbrella Private Limited":   "umbrella",
		"Stark Industries Inc.":      "starkindustries",
	}

	for in, want := range cases {
		if got := CleanCompanyName(in); got != want {
			t.Errorf("CleanCompanyName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerateDomains(t *testing.T) {
	domains := GenerateDomains("techcorp")
	want := []string{"techcorp.com", "techcorp.in", "techcorp.co.in", "techcorp.org"}
	if len(domains) != len(want) {
		t.Fatalf("expected %d domains, got %v", len(want), domains)
	}
	for i, d := range want {
		if domains[i] != d {
			t.Fatalf("domain %d = %q, want %q", i, domains[i], d)
		}
	}
}

func TestGenerateDomainsLongNameTruncation(t *testing.T) {
	domains := GenerateDomains("verylongcompanyname")
	if len(domains) != 5 {
		t.Fatalf("expected cap of 5 domains, got %d: %v", len(domains), domains)
	}
	found := false
	for _, d := range domains {
		if d == "verylong.com" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected 8-char truncated domain in %v", domains)
	}
}

func TestGenerateDomainsEmpty(t *testing.T) {
	if got := GenerateDomains(""); got != nil {
		t.Fatalf("expected nil for empty token, got %v", got)
	}
}

func TestExtractFiltersNoiseAddresses(t *testing.T) {
	// Scenario: both a real contact and a noreply address in the text.
	rec := &jobs.Record{
		Description: "contact: careers@acme.com and noreply@acme.com",
	}

	result := Extract(rec)
	if len(result) != 1 {
		t.Fatalf("expected exactly 1 contact, got %v", result)
	}
	if result[0].Email != "careers@acme.com" {
		t.Fatalf("unexpected email: %q", result[0].Email)
	}
	if result[0].Source != SourceJobDescription || result[0].Confidence != ConfidenceHigh {
		t.Fatalf("unexpected tagging: %+v", result[0])
	}
}

func TestExtractRanksByConfidence(t *testing.T) {
	rec := &jobs.Record{
		Company:     "TechCorp Solutions Pvt Ltd",
		Description: "Reach us at recruiter@techcorp.com for this opening.",
	}

	result := Extract(rec)
	if len(result) != 3 {
		t.Fatalf("expected 3 contacts, got %d: %v", len(result), result)
	}

	// The literal address must not be buried under generated guesses.
	if result[0].Email != "recruiter@techcorp.com" || result[0].Confidence != ConfidenceHigh {
		t.Fatalf("expected description-derived contact first, got %+v", result[0])
	}
	for _, c := range result[1:] {
		if c.Source != SourceDomainPattern || c.Confidence != ConfidenceMedium {
			t.Fatalf("expected domain-pattern guesses after literal contact: %+v", c)
		}
		if !strings.HasSuffix(c.Email, "@techcorp.com") {
			t.Fatalf("expected first-domain guesses, got %q", c.Email)
		}
	}
}

func TestExtractDeduplicatesAndBounds(t *testing.T) {
	rec := &jobs.Record{
		Company:     "TechCorp Solutions Pvt Ltd",
		Description: "hr@techcorp.com hr@techcorp.com recruiter@techcorp.com",
	}

	result := Extract(rec)
	if len(result) > 3 {
		t.Fatalf("contact list must be bounded to 3, got %d", len(result))
	}

	seen := map[string]bool{}
	for _, c := range result {
		if seen[c.Email] {
			t.Fatalf("duplicate email %q in %v", c.Email, result)
		}
		seen[c.Email] = true
	}
}

func TestExtractLocationPatternGuess(t *testing.T) {
	rec := &jobs.Record{
		Company:  "TechCorp Solutions",
		Location: "Hyderabad",
	}

	result := Extract(rec)

	// Location guesses are lowest confidence; with dozens of
	// medium-confidence domain guesses ahead, it must not make the cut.
	for _, c := range result {
		if c.Source == SourceLocationPattern {
			t.Fatalf("low-confidence guess should be truncated away: %+v", c)
		}
	}
	if len(result) != 3 {
		t.Fatalf("expected 3 contacts, got %d", len(result))
	}
}

func TestExtractNoCompanyNoDescription(t *testing.T) {
	if got := Extract(&jobs.Record{}); len(got) != 0 {
		t.Fatalf("expected no contacts, got %v", got)
	}
	if got := Extract(nil); got != nil {
		t.Fatalf("expected nil for nil record, got %v", got)
	}
}
