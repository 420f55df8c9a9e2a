package jobs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDecodeRecordsMissingFields(t *testing.T) {
	records, err := DecodeRecords([]map[string]any{
		{"title": "QA Engineer", "source": "LinkedIn"},
		{"company": "Acme", "url": "https://example.com/j/2"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", records.Len())
	}

	first := records.Items[0]
	if first.Description != "" || first.Location != "" {
		t.Fatalf("expected missing fields to decode as empty strings: %+v", first)
	}
	if first.Source != SourceLinkedIn {
		t.Fatalf("expected normalized source, got %q", first.Source)
	}
	if records.Items[1].Source != SourceUnknown {
		t.Fatalf("expected unknown source, got %q", records.Items[1].Source)
	}
}

func TestDecodeRecordsFlattensHTML(t *testing.T) {
	records, err := DecodeRecords([]map[string]any{
		{
			"title":       "SDET",
			"description": "<html><body><p>Selenium &amp; Pytest.</p><script>x()</script><p>Apply now</p></body></html>",
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := records.Items[0].Description
	want := "Selenium & Pytest. Apply now"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestExcludeByURL(t *testing.T) {
	records := &Records{Items: []*Record{
		{URL: "https://example.com/j/1"},
		{URL: "https://example.com/j/2"},
		{URL: "https://example.com/j/3"},
	}}

	removed := records.Exclude(RecordURLField, []string{"https://example.com/j/2"})
	if len(removed) != 1 || removed[0] != "https://example.com/j/2" {
		t.Fatalf("unexpected removed list: %v", removed)
	}
	if records.Len() != 2 {
		t.Fatalf("expected 2 records left, got %d", records.Len())
	}
}

func TestLoadRecordsBareArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	data := `[{"title": "QA Engineer", "company": "Acme", "source": "Naukri"}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := LoadRecords(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records.Len() != 1 || records.Items[0].Source != SourceNaukri {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestLoadRecordsWrappedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	data := `{"items": [{"title": "SDET"}, {"title": "Test Engineer"}]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := LoadRecords(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", records.Len())
	}
}

func TestExcludeListRoundTrip(t *testing.T) {
	records := &Records{Items: []*Record{
		{URL: "https://example.com/j/1", Company: "Acme"},
	}}

	path := filepath.Join(t.TempDir(), "exclude.json")
	if err := records.ToExcludeList().ToFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list, err := LoadExcludeList(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	urls := list.URLs()
	if len(urls) != 1 || urls[0] != "https://example.com/j/1" {
		t.Fatalf("unexpected urls: %v", urls)
	}
}

func TestLoadExcludeListEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exclude.json")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	list, err := LoadExcludeList(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Items) != 0 {
		t.Fatalf("expected empty list, got %d items", len(list.Items))
	}
}
