package engine

import "sort"

// Stats は走査全体の集計値
type Stats struct {
	FilesScanned     int      `json:"files_scanned"`
	FilesWithMatches int      `json:"files_with_tasks"`
	TotalLines       int      `json:"lines_scanned"`
	TotalMatches     int      `json:"tasks"`
	LineDensity      *float64 `json:"task_line_density,omitempty"`
	FileDensity      *float64 `json:"task_file_density,omitempty"`
}

// Report は 1 回の実行結果。構築後は読み取り専用として扱う。
type Report struct {
	Files      map[string]FileResult `json:"files"`
	Stats      Stats                 `json:"stats"`
	NotFound   []string              `json:"not_found,omitempty"`
	Errors     []FileError           `json:"errors,omitempty"`
	ErrorCount int                   `json:"error_count"`
}

// Aggregate builds a report from per-file results. Each path counts once,
// so the statistics always agree with Files.
func Aggregate(results []FileResult, roots []RootError, fileErrs []FileError) *Report {
	rep := &Report{Files: make(map[string]FileResult, len(results))}
	for _, res := range results {
		if _, dup := rep.Files[res.Path]; dup {
			continue
		}
		rep.Files[res.Path] = res
		rep.Stats.FilesScanned++
		rep.Stats.TotalLines += res.LineCount
		rep.Stats.TotalMatches += len(res.Matches)
		if len(res.Matches) > 0 {
			rep.Stats.FilesWithMatches++
		}
	}
	if n := rep.Stats.TotalMatches; n > 0 {
		lines := float64(rep.Stats.TotalLines) / float64(n)
		files := float64(rep.Stats.FilesScanned) / float64(n)
		rep.Stats.LineDensity = &lines
		rep.Stats.FileDensity = &files
	}

	for _, re := range roots {
		rep.NotFound = append(rep.NotFound, re.Root)
	}
	sort.Strings(rep.NotFound)

	if len(fileErrs) > 0 {
		rep.Errors = append([]FileError(nil), fileErrs...)
		sort.SliceStable(rep.Errors, func(i, j int) bool {
			if rep.Errors[i].Path == rep.Errors[j].Path {
				return rep.Errors[i].Stage < rep.Errors[j].Stage
			}
			return rep.Errors[i].Path < rep.Errors[j].Path
		})
	}
	rep.ErrorCount = len(rep.Errors)
	return rep
}

// Paths returns the scanned file paths in lexical order.
func (r *Report) Paths() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.Files))
	for p := range r.Files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Empty reports whether nothing was scanned and no root was missing.
func (r *Report) Empty() bool {
	return r == nil || (len(r.Files) == 0 && len(r.NotFound) == 0)
}
