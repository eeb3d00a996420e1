package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/phyten/todolist/internal/engine"
)

// Record is one match flattened together with its file path.
type Record struct {
	Path     string `json:"path"`
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	Pattern  string `json:"pattern"`
	Priority int    `json:"priority"`
	Text     string `json:"text"`
}

var recordHeaders = []string{"path", "row", "col", "pattern", "priority", "text"}

func (r Record) values() []string {
	return []string{
		r.Path,
		strconv.Itoa(r.Row),
		strconv.Itoa(r.Col),
		r.Pattern,
		strconv.Itoa(r.Priority),
		r.Text,
	}
}

// Records flattens the report in path order, keeping match order per file.
func Records(rep *engine.Report) []Record {
	var out []Record
	for _, path := range rep.Paths() {
		for _, m := range rep.Files[path].Matches {
			out = append(out, Record{
				Path:     path,
				Row:      m.Row,
				Col:      m.Column,
				Pattern:  m.Pattern,
				Priority: m.Priority,
				Text:     m.Text,
			})
		}
	}
	return out
}

// WriteJSON encodes the whole report, statistics included.
func WriteJSON(w io.Writer, rep *engine.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(rep)
}

// WriteNDJSON streams one JSON object per match.
func WriteNDJSON(w io.Writer, rep *engine.Report) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, rec := range Records(rep) {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

// WriteCSV renders matches as RFC 4180 CSV (including CRLF endings).
func WriteCSV(w io.Writer, rep *engine.Report) error {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true
	if err := writer.Write(recordHeaders); err != nil {
		return err
	}
	for _, rec := range Records(rep) {
		if err := writer.Write(rec.values()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteMarkdownTable renders matches as a GitHub Flavored Markdown table.
func WriteMarkdownTable(w io.Writer, rep *engine.Report) error {
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(recordHeaders, " | ")); err != nil {
		return err
	}
	sep := make([]string, len(recordHeaders))
	for i := range sep {
		sep[i] = "---"
	}
	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(sep, " | ")); err != nil {
		return err
	}
	for _, rec := range Records(rep) {
		row := rec.values()
		for i := range row {
			row[i] = escapeMarkdownCell(row[i])
		}
		if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(row, " | ")); err != nil {
			return err
		}
	}
	return nil
}

func escapeMarkdownCell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "<br>")
	return strings.ReplaceAll(s, "|", "\\|")
}

// Write dispatches on a normalized output format.
func Write(w io.Writer, format string, rep *engine.Report, opts TextOptions) error {
	switch format {
	case "json":
		return WriteJSON(w, rep)
	case "ndjson":
		return WriteNDJSON(w, rep)
	case "csv":
		return WriteCSV(w, rep)
	case "md":
		return WriteMarkdownTable(w, rep)
	case "", "text":
		return WriteText(w, rep, opts)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
