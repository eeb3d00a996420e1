package output

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/phyten/todolist/internal/engine"
	"github.com/phyten/todolist/internal/termcolor"
	"github.com/phyten/todolist/internal/textutil"
)

// TextOptions controls the human readable report.
type TextOptions struct {
	Color   bool
	Palette termcolor.Palette
	Verbose bool
	// Truncate limits match text to N display cells; 0 keeps it whole.
	Truncate int
}

const statsLabelWidth = 17

// WriteHeader prints the banner shown above text reports.
func WriteHeader(w io.Writer, version string, opts TextOptions) error {
	line := termcolor.Apply(termcolor.HeaderStyle(), "To-Do List Scanner "+version, opts.Color)
	_, err := fmt.Fprintf(w, "%s\n\n", line)
	return err
}

// WriteText renders missing roots, then every file with at least one task
// in path order, then the optional statistics block.
func WriteText(w io.Writer, rep *engine.Report, opts TextOptions) error {
	tw := &textWriter{w: w, opts: opts}
	for _, root := range rep.NotFound {
		tw.printf("%s\n", tw.style(termcolor.NoticeStyle(), "No files found: "+root))
	}
	for _, path := range rep.Paths() {
		res := rep.Files[path]
		if len(res.Matches) == 0 {
			continue
		}
		tw.printf("%s\n", tw.style(termcolor.FileStyle(), path))
		for _, m := range res.Matches {
			tw.printf("  [%4d, %3d] %s\n", m.Row, m.Column, tw.task(m))
		}
		tw.printf("\n")
	}
	if opts.Verbose {
		tw.stats(rep.Stats)
	}
	return tw.err
}

type textWriter struct {
	w    io.Writer
	opts TextOptions
	err  error
}

func (tw *textWriter) printf(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.w, format, args...)
}

func (tw *textWriter) style(s termcolor.Style, text string) string {
	return termcolor.Apply(s, text, tw.opts.Color)
}

// task shows the text after the marker, or the marker when nothing follows.
func (tw *textWriter) task(m engine.Match) string {
	text := m.Text
	if text == "" {
		text = m.Pattern
	}
	if tw.opts.Truncate > 0 {
		text = textutil.TruncateByWidth(text, tw.opts.Truncate, "…")
	}
	if tw.opts.Palette == nil {
		return text
	}
	return tw.style(tw.opts.Palette(m.Priority), text)
}

func (tw *textWriter) stats(st engine.Stats) {
	tw.stat("Files Scanned", strconv.Itoa(st.FilesScanned))
	tw.stat("Files With Tasks", strconv.Itoa(st.FilesWithMatches))
	tw.stat("Lines Scanned", strconv.Itoa(st.TotalLines))
	if st.LineDensity != nil {
		tw.stat("Task Line Density", formatDensity(*st.LineDensity))
	}
	if st.FileDensity != nil {
		tw.stat("Task File Density", formatDensity(*st.FileDensity))
	}
	tw.stat("Total Tasks", strconv.Itoa(st.TotalMatches))
}

func (tw *textWriter) stat(label, value string) {
	label = textutil.PadRight(label, statsLabelWidth) + " : "
	tw.printf("%s%s\n", tw.style(termcolor.LabelStyle(), label), value)
}

// formatDensity rounds to two decimals and drops trailing zeros.
func formatDensity(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
