// Package contacts derives best-effort HR outreach addresses for a job
// record: generated guesses from the company name and literal addresses
// found in the posting text. Derivation is deterministic and performs no
// network I/O; nothing here verifies that an address actually exists.
package contacts

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/mteja/jobscout/internal/jobs"
)

// ContactSource says how an address was derived.
type ContactSource string

const (
	SourceDomainPattern   ContactSource = "domain_pattern"
	SourceJobDescription  ContactSource = "job_description"
	SourceLocationPattern ContactSource = "location_pattern"
)

// Confidence is the qualitative trust level of a derived address: highest
// for addresses literally present in the posting, lowest for location-based
// guesses.
type Confidence int

const (
	ConfidenceLow Confidence = iota
	ConfidenceMedium
	ConfidenceHigh
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	default:
		return "low"
	}
}

// Contact is one candidate outreach address.
type Contact struct {
	Email      string
	Name       string
	Company    string
	Source     ContactSource
	Confidence Confidence
}

// maxContacts bounds the returned list per job.
const maxContacts = 3

// maxDomains bounds the generated domain guesses per company.
const maxDomains = 5

// hrLocalParts are the canonical HR-style mailbox names tried per domain.
var hrLocalParts = []string{"hr", "careers", "jobs", "recruitment", "hiring", "talent"}

// companySuffixes are corporate suffix tokens stripped from company names
// before guessing domains. Multi-word suffixes come first so "pvt ltd" is
// removed as a whole.
var companySuffixes = []string{
	"pvt ltd", "private limited", "ltd", "limited", "inc", "corporation",
	"corp", "company", "technologies", "technology", "tech", "solutions",
	"solution", "systems", "system", "services", "service", "enterprises",
	"enterprise", "group", "pvt", "llp", "llc",
}

var (
	emailScanRe  = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	emailShapeRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9\s]`)
	spacesRe     = regexp.MustCompile(`\s+`)

	suffixRes = compileSuffixes()
)

func compileSuffixes() []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(companySuffixes))
	for _, suffix := range companySuffixes {
		res = append(res, regexp.MustCompile(`\b`+suffix+`\b`))
	}
	return res
}

// noiseLocalParts mark addresses that are never useful outreach targets.
var noiseLocalParts = []string{"noreply", "no-reply", "donotreply", "admin", "support"}

// Extract derives up to three outreach contacts for a job record, ranked by
// confidence (addresses found in the posting text first, then domain
// guesses, then location guesses). Duplicate addresses collapse to one and
// malformed ones are dropped. Any internal fault yields an empty list; a
// single bad record never aborts a batch.
func Extract(rec *jobs.Record) (result []Contact) {
	defer func() {
		if recover() != nil {
			result = nil
		}
	}()

	if rec == nil {
		return nil
	}

	var found []Contact

	domains := GenerateDomains(CleanCompanyName(rec.Company))
	for _, domain := range domains {
		for _, local := range hrLocalParts {
			found = append(found, Contact{
				Email:      local + "@" + domain,
				Name:       "HR Team",
				Company:    rec.Company,
				Source:     SourceDomainPattern,
				Confidence: ConfidenceMedium,
			})
		}
	}

	for _, email := range scanEmails(rec.Description) {
		found = append(found, Contact{
			Email:      email,
			Name:       "Contact Person",
			Company:    rec.Company,
			Source:     SourceJobDescription,
			Confidence: ConfidenceHigh,
		})
	}

	if c := locationContact(rec, domains); c != nil {
		found = append(found, *c)
	}

	// Rank by confidence before truncating so literal addresses are never
	// buried under generated guesses.
	sort.SliceStable(found, func(i, j int) bool {
		return found[i].Confidence > found[j].Confidence
	})

	seen := make(map[string]bool, len(found))
	for _, contact := range found {
		if !emailShapeRe.MatchString(contact.Email) {
			continue
		}
		if seen[contact.Email] {
			continue
		}
		seen[contact.Email] = true
		result = append(result, contact)
		if len(result) >= maxContacts {
			break
		}
	}

	return result
}

// CleanCompanyName strips corporate suffixes and non-alphanumeric
// characters, producing the bare token domains are guessed from.
func CleanCompanyName(company string) string {
	clean := strings.ToLower(company)

	for _, re := range suffixRes {
		clean = re.ReplaceAllString(clean, "")
	}

	clean = nonAlnumRe.ReplaceAllString(clean, "")
	clean = spacesRe.ReplaceAllString(clean, "")

	return strings.TrimSpace(clean)
}

// GenerateDomains combines the clean company token, an 8-character
// truncation for long names, and common lexical variants with Indian and
// generic TLDs, capped at maxDomains.
func GenerateDomains(clean string) []string {
	if clean == "" {
		return nil
	}

	domains := []string{
		clean + ".com",
		clean + ".in",
		clean + ".co.in",
		clean + ".org",
	}

	if len(clean) > 8 {
		short := clean[:8]
		domains = append(domains, short+".com", short+".in")
	}

	variants := []string{
		strings.ReplaceAll(clean, "technologies", "tech"),
		strings.ReplaceAll(clean, "solutions", "sol"),
		strings.ReplaceAll(clean, "systems", "sys"),
	}
	for _, variant := range variants {
		if variant != clean {
			domains = append(domains, variant+".com", variant+".in")
		}
	}

	if len(domains) > maxDomains {
		domains = domains[:maxDomains]
	}
	return domains
}

// scanEmails pulls email-shaped strings out of free text, dropping
// addresses with noise local parts.
func scanEmails(text string) []string {
	var emails []string
	for _, email := range emailScanRe.FindAllString(text, -1) {
		lower := strings.ToLower(email)
		noisy := false
		for _, noise := range noiseLocalParts {
			if strings.Contains(lower, noise) {
				noisy = true
				break
			}
		}
		if !noisy {
			emails = append(emails, email)
		}
	}
	return emails
}

// locationContact guesses a city-specific HR mailbox for larger tech
// companies in the major hubs.
func locationContact(rec *jobs.Record, domains []string) *Contact {
	if len(domains) == 0 {
		return nil
	}

	company := strings.ToLower(rec.Company)
	techy := false
	for _, token := range []string{"tech", "solutions", "systems", "software"} {
		if strings.Contains(company, token) {
			techy = true
			break
		}
	}
	if !techy {
		return nil
	}

	location := strings.ToLower(strings.TrimSpace(rec.Location))
	if !strings.Contains(location, "hyderabad") && !strings.Contains(location, "bangalore") {
		return nil
	}

	city := strings.Fields(location)[0]
	return &Contact{
		Email:      fmt.Sprintf("hr.%s@%s", city, domains[0]),
		Name:       "HR Team - " + strings.ToUpper(city[:1]) + city[1:],
		Company:    rec.Company,
		Source:     SourceLocationPattern,
		Confidence: ConfidenceLow,
	}
}
