// Package report renders a snapshot of the task list as a standalone
// document. Reports are written, never read back.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"smarttodo/internal/tasklist"
)

// Formats lists the accepted format names.
var Formats = []string{"text", "csv", "json", "pdf"}

// Title heads the text and PDF reports.
const Title = "Smart To-Do List"

type jsonTask struct {
	Index       int    `json:"index"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
}

// Render writes entries to w in the named format.
func Render(w io.Writer, format string, entries []tasklist.Entry) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text", "":
		return renderText(w, entries)
	case "csv":
		return renderCSV(w, entries)
	case "json":
		return renderJSON(w, entries)
	case "pdf":
		return renderPDF(w, entries)
	default:
		return fmt.Errorf("unknown report format: %s", format)
	}
}

// FormatFromPath guesses the format from a file extension, defaulting to text.
func FormatFromPath(path string) string {
	i := strings.LastIndex(path, ".")
	if i < 0 {
		return "text"
	}
	switch ext := strings.ToLower(path[i+1:]); ext {
	case "csv", "json", "pdf":
		return ext
	default:
		return "text"
	}
}

func renderText(w io.Writer, entries []tasklist.Entry) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%d tasks)\n", Title, len(entries))
	for _, e := range entries {
		fmt.Fprintf(&b, "%4d  %-8d %s\n", e.Index, e.Priority, e.Description)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func renderCSV(w io.Writer, entries []tasklist.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"index", "description", "priority"}); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{strconv.Itoa(e.Index), e.Description, strconv.Itoa(e.Priority)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func renderJSON(w io.Writer, entries []tasklist.Entry) error {
	out := make([]jsonTask, len(entries))
	for i, e := range entries {
		out[i] = jsonTask{Index: e.Index, Description: e.Description, Priority: e.Priority}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func renderPDF(w io.Writer, entries []tasklist.Entry) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, Title)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(15, 7, "#", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 7, "Priority", "1", 0, "C", false, 0, "")
	pdf.CellFormat(0, 7, "Description", "1", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, e := range entries {
		pdf.CellFormat(15, 6, strconv.Itoa(e.Index), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, strconv.Itoa(e.Priority), "1", 0, "C", false, 0, "")
		pdf.CellFormat(0, 6, tr(e.Description), "1", 1, "L", false, 0, "")
	}

	return pdf.Output(w)
}
