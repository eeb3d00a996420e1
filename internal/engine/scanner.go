package engine

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

// ScanFile reads path line by line and reports every pattern occurrence.
// The file handle is released before returning.
func ScanFile(path string, ps *PatternSet) (FileResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileResult{}, &FileError{Path: path, Stage: "open", Err: err}
	}
	defer f.Close()

	res, err := ScanReader(f, ps)
	if err != nil {
		return FileResult{}, &FileError{Path: path, Stage: "read", Err: err}
	}
	res.Path = path
	return res, nil
}

// ScanReader scans r against ps. Path is left empty. Lines may be of any
// length; "\n" and "\r\n" terminators are removed before matching.
func ScanReader(r io.Reader, ps *PatternSet) (FileResult, error) {
	patterns := ps.Patterns()
	var res FileResult

	br := bufio.NewReaderSize(r, 64*1024)
	for {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return FileResult{}, err
		}
		if line != "" {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			res.LineCount++
			res.Matches = append(res.Matches, matchLine(line, res.LineCount, patterns)...)
		}
		if err != nil {
			return res, nil
		}
	}
}

// matchLine returns one match per pattern found in line, in pattern order.
// Only the first occurrence of each pattern is reported.
func matchLine(line string, row int, patterns []Pattern) []Match {
	var out []Match
	for _, p := range patterns {
		col := strings.Index(line, p.Text)
		if col < 0 {
			continue
		}
		out = append(out, Match{
			Row:      row,
			Column:   col,
			Pattern:  p.Text,
			Text:     strings.TrimSpace(line[col+len(p.Text):]),
			Priority: p.Priority,
		})
	}
	return out
}
