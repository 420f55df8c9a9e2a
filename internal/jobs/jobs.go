package jobs

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
)

const (
	RecordURLField     = "URL"
	RecordCompanyField = "Company"
	RecordSourceField  = "Source"
)

// Source identifies the site a job record was scraped from.
type Source string

const (
	SourceLinkedIn  Source = "linkedin"
	SourceNaukri    Source = "naukri"
	SourceIndeed    Source = "indeed"
	SourceTimesJobs Source = "timesjobs"
	SourceUnknown   Source = "unknown"
)

// ParseSource normalizes a feed-provided source name.
func ParseSource(s string) Source {
	switch Source(normalizeToken(s)) {
	case SourceLinkedIn:
		return SourceLinkedIn
	case SourceNaukri:
		return SourceNaukri
	case SourceIndeed:
		return SourceIndeed
	case SourceTimesJobs:
		return SourceTimesJobs
	default:
		return SourceUnknown
	}
}

// Record is a raw scraped job posting as produced by the source feed.
// Missing feed fields decode to empty strings. A record is immutable once
// produced; the routing engine only appends its annotation.
type Record struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Company     string `json:"company,omitempty"`
	URL         string `json:"url,omitempty"`
	Source      Source `json:"source,omitempty"`

	// Routing is appended by the filtering engine before the record is
	// handed to the dispatcher and reporting.
	Routing *RoutingAnnotation `json:"routing,omitempty"`
}

// RoutingAnnotation is the filtering verdict attached to a record.
type RoutingAnnotation struct {
	IsRelevant bool     `json:"is_relevant"`
	Reason     string   `json:"reason,omitempty"`
	Resume     string   `json:"resume,omitempty"`
	Score      int      `json:"score,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`
}

// Records is a mutable collection of job records.
type Records struct {
	Items []*Record `json:"items"`
}

func (r *Records) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Items)
}

func (rec *Record) GetStringField(name string) string {
	switch name {
	case RecordURLField:
		return rec.URL
	case RecordCompanyField:
		return rec.Company
	case RecordSourceField:
		return string(rec.Source)
	default:
		return ""
	}
}

// Exclude removes records whose named string field matches any of the given
// values and returns the URLs of the removed records.
func (r *Records) Exclude(field string, values []string) []string {
	if r == nil || len(values) == 0 {
		return nil
	}

	drop := make(map[string]bool, len(values))
	for _, v := range values {
		drop[v] = true
	}

	var removed []string
	kept := make([]*Record, 0, len(r.Items))
	for _, rec := range r.Items {
		if drop[rec.GetStringField(field)] {
			removed = append(removed, rec.URL)
			continue
		}
		kept = append(kept, rec)
	}
	r.Items = kept

	return removed
}

// DumpToTmpFile writes the records as pretty-printed JSON to a temp file and
// returns the file name.
func (r *Records) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "jobs_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// LoadRecords reads a saved job feed from a JSON file. The feed may be a bare
// array of records or a {"items": [...]} document; either way the items are
// decoded loosely so partial records from flaky scrapes still load. Scraped
// HTML descriptions are flattened to plain text.
func LoadRecords(path string) (*Records, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading jobs file: %w", err)
	}

	var items []map[string]any
	if err := json.Unmarshal(data, &items); err != nil {
		var wrapped struct {
			Items []map[string]any `json:"items"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("parsing jobs file %q: %w", path, err)
		}
		items = wrapped.Items
	}

	records, err := DecodeRecords(items)
	if err != nil {
		return nil, fmt.Errorf("decoding jobs file %q: %w", path, err)
	}
	return records, nil
}

// DecodeRecords converts loosely-typed feed items into records.
func DecodeRecords(items []map[string]any) (*Records, error) {
	var loose []*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Location    string `json:"location"`
		Company     string `json:"company"`
		URL         string `json:"url"`
		Source      string `json:"source"`
	}

	cfg := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           &loose,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(items); err != nil {
		return nil, err
	}

	records := &Records{Items: make([]*Record, 0, len(loose))}
	for _, item := range loose {
		if item == nil {
			continue
		}
		records.Items = append(records.Items, &Record{
			Title:       cleanText(item.Title),
			Description: FlattenHTML(item.Description),
			Location:    cleanText(item.Location),
			Company:     cleanText(item.Company),
			URL:         item.URL,
			Source:      ParseSource(item.Source),
		})
	}
	return records, nil
}

// ToExcludeList converts records into an exclude-file document so future runs
// can skip them.
func (r *Records) ToExcludeList() *ExcludeList {
	list := &ExcludeList{}
	for _, rec := range r.Items {
		list.Items = append(list.Items, &ExcludedRecord{
			URL:        rec.URL,
			Company:    rec.Company,
			ExcludedAt: time.Now().UTC(),
		})
	}
	return list
}

// ExcludeList is a persisted set of records to skip in future runs.
type ExcludeList struct {
	Items []*ExcludedRecord `json:"items"`
}

type ExcludedRecord struct {
	URL        string    `json:"url"`
	Company    string    `json:"company,omitempty"`
	ExcludedAt time.Time `json:"excluded_at"`
}

func (l *ExcludeList) URLs() []string {
	urls := make([]string, 0, len(l.Items))
	for _, item := range l.Items {
		urls = append(urls, item.URL)
	}
	return urls
}

func (l *ExcludeList) Append(other *ExcludeList) {
	l.Items = append(l.Items, other.Items...)
}

// LoadExcludeList reads an exclude file. An empty file yields an empty list.
func LoadExcludeList(path string) (*ExcludeList, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if stat.Size() == 0 {
		return &ExcludeList{}, nil
	}

	var list ExcludeList
	if err := json.NewDecoder(file).Decode(&list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ToFile writes the exclude list as pretty-printed JSON.
func (l *ExcludeList) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(l)
}
