package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mteja/jobscout/internal/dispatch"
	"github.com/mteja/jobscout/internal/filtering"
	"github.com/mteja/jobscout/internal/jobs"
	"github.com/mteja/jobscout/internal/profile"
)

func sampleData() *Data {
	records := &jobs.Records{Items: []*jobs.Record{
		{
			Title:   "QA Engineer",
			Company: "Acme",
			URL:     "https://example.com/job/1",
			Source:  jobs.SourceLinkedIn,
			Routing: &jobs.RoutingAnnotation{
				IsRelevant: true,
				Resume:     "qa_automation.pdf",
				Score:      40,
				Keywords:   []string{"selenium", "pytest"},
			},
		},
		{
			Title:   "Senior Architect",
			Company: "Globex",
			URL:     "https://example.com/job/2",
			Routing: &jobs.RoutingAnnotation{IsRelevant: false, Reason: "high experience requirement: senior"},
		},
	}}

	state := dispatch.NewRunState(profile.DailyLimits{MaxApplications: 5, MaxHREmails: 5})
	state.CountApplication()

	return &Data{
		RunID:       "run-test",
		GeneratedAt: time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC),
		Summary: &filtering.Summary{
			Total: 2, Relevant: 1, RelevanceRate: 50,
			RejectionReasons: map[string]int{"high experience requirement: senior": 1},
		},
		Records: records,
		Outcomes: []*dispatch.Outcome{
			{URL: "https://example.com/job/1", Company: "Acme", Kind: dispatch.KindApplication, Status: dispatch.StatusSent, Steps: 3},
		},
		State: state,
	}
}

func TestWriteWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")

	if err := WriteWorkbook(sampleData(), path); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Summary", "Accepted Jobs", "Outcomes"} {
		if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
			t.Fatalf("missing sheet %q", sheet)
		}
	}

	title, err := f.GetCellValue("Accepted Jobs", "A2")
	if err != nil {
		t.Fatal(err)
	}
	if title != "QA Engineer" {
		t.Fatalf("expected accepted job row, got %q", title)
	}

	// Rejected records must not leak into the accepted sheet.
	second, _ := f.GetCellValue("Accepted Jobs", "A3")
	if second != "" {
		t.Fatalf("rejected record leaked into accepted sheet: %q", second)
	}

	status, _ := f.GetCellValue("Outcomes", "D2")
	if status != "sent" {
		t.Fatalf("expected outcome status, got %q", status)
	}
}

func TestWriteWorkbookAppendsExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report")

	if err := WriteWorkbook(sampleData(), path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path + ".xlsx"); err != nil {
		t.Fatalf("expected .xlsx file: %v", err)
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")

	if err := WriteCSV(sampleData(), path); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatal(err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected header plus one row, got %d rows", len(rows))
	}
	if rows[0][0] != "run_id" || rows[1][0] != "run-test" {
		t.Fatalf("unexpected rows: %v", rows)
	}
	if rows[1][4] != "sent" {
		t.Fatalf("unexpected status column: %v", rows[1])
	}
}

func TestNewRunIDUnique(t *testing.T) {
	if NewRunID() == NewRunID() {
		t.Fatal("run ids should be unique")
	}
}
