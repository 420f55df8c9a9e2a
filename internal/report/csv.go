package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// WriteCSV writes the per-job outcomes as a flat CSV, the fallback format
// when a workbook is not wanted.
func WriteCSV(data *Data, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write(append([]string{"run_id"}, csvHeaders...)); err != nil {
		return err
	}

	for _, out := range data.Outcomes {
		row := []string{
			data.RunID,
			out.URL,
			out.Company,
			string(out.Kind),
			string(out.Status),
			out.Reason,
			strconv.Itoa(out.EmailsSent),
			strconv.Itoa(out.Steps),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}

var csvHeaders = []string{"url", "company", "kind", "status", "reason", "emails", "form_steps"}
