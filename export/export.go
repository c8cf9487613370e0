package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/abefas/tasktracker/models"
	"github.com/jung-kurt/gofpdf"
)

// ErrUnsupportedFormat is returned for formats other than json, csv and pdf.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Report is the JSON export document.
type Report struct {
	Tasks []models.Task `json:"tasks"`
	Stats models.Stats  `json:"stats"`
}

// Export renders tasks and their stats in the requested format.
func Export(tasks []models.Task, stats models.Stats, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		if tasks == nil {
			tasks = []models.Task{}
		}
		return json.MarshalIndent(Report{Tasks: tasks, Stats: stats}, "", "  ")
	case "csv":
		var b bytes.Buffer
		w := csv.NewWriter(&b)
		_ = w.Write([]string{"id", "title", "completed"})
		for _, t := range tasks {
			_ = w.Write([]string{strconv.Itoa(t.ID), t.Title, strconv.FormatBool(t.Completed)})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, fmt.Errorf("failed to write csv: %w", err)
		}
		return b.Bytes(), nil
	case "pdf":
		return renderPDF(tasks, stats)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func renderPDF(tasks []models.Task, stats models.Stats) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task Report")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Total: %d  Completed: %d  Pending: %d", stats.Total, stats.Completed, stats.Pending))
	pdf.Ln(10)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, t := range tasks {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%s #%d %s", mark, t.ID, t.Title)), "0", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// ContentType returns the MIME type for a supported format.
func ContentType(format string) string {
	switch strings.ToLower(format) {
	case "csv":
		return "text/csv"
	case "pdf":
		return "application/pdf"
	default:
		return "application/json"
	}
}

// Filename is the attachment name offered for a download.
func Filename(format string) string {
	return "tasks." + strings.ToLower(format)
}
