package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/mteja/jobscout/internal/dispatch"
	"github.com/mteja/jobscout/internal/filtering"
	"github.com/mteja/jobscout/internal/jobs"
)

// Data is everything a run report is built from.
type Data struct {
	RunID       string
	GeneratedAt time.Time
	Summary     *filtering.Summary
	Records     *jobs.Records
	Outcomes    []*dispatch.Outcome
	State       *dispatch.RunState
}

// NewRunID returns a fresh run identifier.
func NewRunID() string { return uuid.NewString() }

// WriteWorkbook writes the run report as an xlsx workbook with Summary,
// Accepted Jobs, and Outcomes sheets.
func WriteWorkbook(data *Data, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath += ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	summarySheet := "Summary"
	acceptedSheet := "Accepted Jobs"
	outcomesSheet := "Outcomes"

	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(acceptedSheet)
	f.NewSheet(outcomesSheet)

	if err := writeSummarySheet(f, summarySheet, data); err != nil {
		return fmt.Errorf("summary sheet: %w", err)
	}
	if err := writeAcceptedSheet(f, acceptedSheet, data.Records); err != nil {
		return fmt.Errorf("accepted sheet: %w", err)
	}
	if err := writeOutcomesSheet(f, outcomesSheet, data.Outcomes); err != nil {
		return fmt.Errorf("outcomes sheet: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	return nil
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
}

func writeSummarySheet(f *excelize.File, sheet string, data *Data) error {
	f.SetColWidth(sheet, "A", "A", 28)
	f.SetColWidth(sheet, "B", "B", 50)

	header, err := headerStyle(f)
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	row := 1
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Job Search Run Report")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), header)
	f.MergeCell(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row))
	row += 2

	put := func(label string, value any) {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), label)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), value)
		row++
	}

	put("Run ID:", data.RunID)
	put("Generated:", data.GeneratedAt.Format("2006-01-02 15:04:05"))

	if data.Summary != nil {
		put("Jobs Filtered:", data.Summary.Total)
		put("Relevant:", data.Summary.Relevant)
		put("Faults:", data.Summary.Faults)
		put("Relevance Rate:", fmt.Sprintf("%.1f%%", data.Summary.RelevanceRate))
	}
	if data.State != nil {
		put("Applications Sent:", data.State.ApplicationsSent)
		put("HR Emails Sent:", data.State.EmailsSent)
	}

	if data.Summary != nil && len(data.Summary.RejectionReasons) > 0 {
		row++
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Rejection Reasons:")
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), header)
		f.MergeCell(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row))
		row++
		for reason, count := range data.Summary.RejectionReasons {
			put(reason, count)
		}
	}

	return nil
}

var acceptedHeaders = []string{"Title", "Company", "Location", "Source", "URL", "Score", "Resume", "Keywords"}

func writeAcceptedSheet(f *excelize.File, sheet string, records *jobs.Records) error {
	f.SetColWidth(sheet, "A", "B", 30)
	f.SetColWidth(sheet, "C", "D", 16)
	f.SetColWidth(sheet, "E", "E", 45)
	f.SetColWidth(sheet, "F", "H", 18)

	header, err := headerStyle(f)
	if err != nil {
		return err
	}
	for col, h := range acceptedHeaders {
		cell := fmt.Sprintf("%s1", string(rune('A'+col)))
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, header)
	}

	row := 2
	if records != nil {
		for _, rec := range records.Items {
			if rec.Routing == nil || !rec.Routing.IsRelevant {
				continue
			}
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), rec.Title)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), rec.Company)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), rec.Location)
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), string(rec.Source))
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), rec.URL)
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), rec.Routing.Score)
			f.SetCellValue(sheet, fmt.Sprintf("G%d", row), rec.Routing.Resume)
			f.SetCellValue(sheet, fmt.Sprintf("H%d", row), strings.Join(rec.Routing.Keywords, ", "))
			row++
		}
	}

	if row > 2 {
		f.AutoFilter(sheet, fmt.Sprintf("A1:H%d", row-1), []excelize.AutoFilterOptions{})
	}
	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	return nil
}

var outcomeHeaders = []string{"URL", "Company", "Kind", "Status", "Reason", "Emails", "Form Steps"}

func writeOutcomesSheet(f *excelize.File, sheet string, outcomes []*dispatch.Outcome) error {
	f.SetColWidth(sheet, "A", "A", 45)
	f.SetColWidth(sheet, "B", "E", 22)
	f.SetColWidth(sheet, "F", "G", 12)

	header, err := headerStyle(f)
	if err != nil {
		return err
	}
	for col, h := range outcomeHeaders {
		cell := fmt.Sprintf("%s1", string(rune('A'+col)))
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, header)
	}

	for i, out := range outcomes {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), out.URL)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), out.Company)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), string(out.Kind))
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), string(out.Status))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), out.Reason)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), out.EmailsSent)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), out.Steps)
	}

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	return nil
}
