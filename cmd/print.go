package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Tiliavir/healthsync/internal/datecalc"
	"github.com/Tiliavir/healthsync/internal/model"
)

// table is a printable view of one collection.
type table struct {
	header []string
	rows   [][]string
}

func printRecords(w io.Writer, format string, records any, t table) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("error encoding JSON: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case "csv":
		printCSV(w, t)
	case "text", "":
		printText(w, t)
	default:
		return fmt.Errorf("unknown format %q (want text, json or csv)", format)
	}
	return nil
}

// printText prints rows grouped under their date, which is the first column.
func printText(w io.Writer, t table) {
	if len(t.rows) == 0 {
		fmt.Fprintln(w, "No records found.")
		return
	}
	var currentDay string
	for _, row := range t.rows {
		if row[0] != currentDay {
			fmt.Fprintln(w, row[0])
			currentDay = row[0]
		}
		var parts []string
		for _, cell := range row[1:] {
			if cell != "" {
				parts = append(parts, cell)
			}
		}
		fmt.Fprintf(w, "  %s\n", strings.Join(parts, "  "))
	}
}

func printCSV(w io.Writer, t table) {
	fmt.Fprintln(w, strings.Join(t.header, ","))
	for _, row := range t.rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = csvEscape(c)
		}
		fmt.Fprintln(w, strings.Join(cells, ","))
	}
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func diaryTable(entries []model.DiaryEntry) table {
	t := table{header: []string{"date", "mood", "summary", "tags", "id"}}
	for _, e := range entries {
		t.rows = append(t.rows, []string{
			datecalc.Day(e.Date),
			string(e.Mood),
			e.Summary,
			strings.Join(e.Tags, ";"),
			e.ID,
		})
	}
	return t
}

func labTable(reports []model.LabReport) table {
	t := table{header: []string{"date", "test_type", "notes", "file_url", "id"}}
	for _, r := range reports {
		t.rows = append(t.rows, []string{
			datecalc.Day(r.ReportDate),
			r.TestType,
			r.Notes,
			r.FileURL,
			r.ID,
		})
	}
	return t
}

func measurementTable(ms []model.Measurement) table {
	t := table{header: []string{"date", "type", "value", "unit", "notes", "id"}}
	for _, m := range ms {
		for _, r := range m.Readings {
			t.rows = append(t.rows, []string{
				datecalc.Day(m.Date),
				string(r.Type),
				r.Value.String(),
				r.Unit,
				r.Notes,
				m.ID,
			})
		}
	}
	return t
}
