package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phyten/todolist/internal/engine"
)

type cliResult struct {
	stdout string
	stderr string
	err    error
}

func runCLI(t *testing.T, env map[string]string, args ...string) cliResult {
	t.Helper()
	home := t.TempDir()
	merged := map[string]string{"HOME": home, "XDG_CONFIG_HOME": filepath.Join(home, ".config"), "NO_COLOR": "1"}
	for k, v := range env {
		merged[k] = v
	}
	cwd := t.TempDir()

	var stdout, stderr bytes.Buffer
	a := &app{
		stdout: &stdout,
		stderr: &stderr,
		getenv: func(key string) string { return merged[key] },
		environ: func() []string {
			out := make([]string, 0, len(merged))
			for k, v := range merged {
				out = append(out, k+"="+v)
			}
			return out
		},
		getwd: func() (string, error) { return cwd, nil },
	}
	cmd := newRootCommand(a)
	cmd.SetArgs(append([]string{"--no-progress"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestCLIテキスト出力(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "main.go")
	writeFile(t, file, "package main\n// TODO: fix this\n")
	writeFile(t, filepath.Join(dir, "notes.md"), "TODO ignored\n")

	res := runCLI(t, nil, dir)
	if res.err != nil {
		t.Fatalf("unexpected error: %v\nstderr: %s", res.err, res.stderr)
	}
	want := "To-Do List Scanner dev\n\n" +
		file + "\n" +
		"  [   2,   3] : fix this\n" +
		"\n"
	if res.stdout != want {
		t.Fatalf("unexpected output\nwant:\n%s\ngot:\n%s", want, res.stdout)
	}
}

func TestCLIQuietとVerbose(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.go"), "// FIXME broken\n// TODO later\nx\ny\n")

	res := runCLI(t, nil, "-q", "-v", dir)
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	if strings.Contains(res.stdout, "To-Do List Scanner") {
		t.Fatalf("quiet should hide the header:\n%s", res.stdout)
	}
	for _, want := range []string{
		"Files Scanned     : 1\n",
		"Files With Tasks  : 1\n",
		"Lines Scanned     : 4\n",
		"Task Line Density : 2\n",
		"Task File Density : 0.5\n",
		"Total Tasks       : 2\n",
	} {
		if !strings.Contains(res.stdout, want) {
			t.Fatalf("missing %q in:\n%s", want, res.stdout)
		}
	}
}

func TestCLI存在しないルート(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	res := runCLI(t, nil, "-q", missing)
	if res.err != nil {
		t.Fatalf("missing root should not be an error: %v", res.err)
	}
	if res.stdout != "No files found: "+missing+"\n" {
		t.Fatalf("unexpected output: %q", res.stdout)
	}
}

func TestCLI再帰とタスク指定(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "top.go"), "// TODO top\n")
	writeFile(t, filepath.Join(dir, "sub", "deep.go"), "// TODO deep\n// REVIEW me\n")
	writeFile(t, filepath.Join(dir, "vendor", "dep.go"), "// TODO vendored\n")

	res := runCLI(t, nil, "-o", "ndjson", dir)
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	if got := strings.Count(res.stdout, "\n"); got != 1 {
		t.Fatalf("non-recursive scan should find 1 task, got %d:\n%s", got, res.stdout)
	}

	res = runCLI(t, nil, "-r", "-e", "vendor", "-t", "REVIEW=2", "-o", "ndjson", dir)
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected only the REVIEW task, got:\n%s", res.stdout)
	}
	var rec struct {
		Path     string `json:"path"`
		Pattern  string `json:"pattern"`
		Priority int    `json:"priority"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("invalid NDJSON: %v", err)
	}
	if rec.Pattern != "REVIEW" || rec.Priority != 2 || filepath.Base(rec.Path) != "deep.go" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestCLI設定ファイルと環境変数(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "page.php"), "<?php // @todo tidy\n")
	cfgPath := filepath.Join(t.TempDir(), "php.xml")
	writeFile(t, cfgPath, `<config>
  <fileTypes><fileType>php</fileType></fileTypes>
  <tasks><task pattern="@todo" priority="4"/></tasks>
</config>`)

	res := runCLI(t, map[string]string{"TODOLIST_OUTPUT": "csv"}, "-c", cfgPath, dir)
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	want := "path,row,col,pattern,priority,text\r\n" +
		filepath.Join(dir, "page.php") + ",1,9,@todo,4,tidy\r\n"
	if res.stdout != want {
		t.Fatalf("unexpected CSV\nwant: %q\ngot:  %q", want, res.stdout)
	}

	res = runCLI(t, map[string]string{"TODOLIST_OUTPUT": "csv"}, "-c", cfgPath, "-o", "md", dir)
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	if !strings.HasPrefix(res.stdout, "| path |") {
		t.Fatalf("flag should override env output:\n%s", res.stdout)
	}
}

func TestCLI色の強制(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.go"), "// FIXME now\n")

	res := runCLI(t, nil, "-f", "-q", dir)
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	if !strings.Contains(res.stdout, "\x1b[1;31mnow\x1b[0m") {
		t.Fatalf("expected bold red priority 1 task:\n%q", res.stdout)
	}

	res = runCLI(t, nil, "-f", "--color", "never", "-q", dir)
	if strings.Contains(res.stdout, "\x1b[") {
		t.Fatalf("--color never should win over -f:\n%q", res.stdout)
	}
}

func TestCLI不正な指定はエラー(t *testing.T) {
	dir := t.TempDir()
	cases := map[string][]string{
		"output":  {"-o", "xml", dir},
		"jobs":    {"-j", "0", dir},
		"task":    {"-t", "TODO=x", dir},
		"exclude": {"-e", "[", dir},
		"config":  {"-c", filepath.Join(dir, "missing.yaml"), dir},
		"color":   {"--color", "sometimes", dir},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			if res := runCLI(t, nil, args...); res.err == nil {
				t.Fatalf("expected error for %v", args)
			}
		})
	}
}

func TestCLI引数なしは使い方を表示(t *testing.T) {
	res := runCLI(t, nil)
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	if !strings.Contains(res.stdout+res.stderr, "Usage:") {
		t.Fatalf("expected usage text, got stdout=%q stderr=%q", res.stdout, res.stderr)
	}
}

func TestUnlistedNotFound(t *testing.T) {
	rep := engine.Aggregate(nil, []engine.RootError{{Root: "gone", Err: engine.ErrNotFound}}, nil)
	for _, format := range []string{"csv", "ndjson", "md"} {
		got := unlistedNotFound(rep, format)
		if len(got) != 1 || got[0] != "no files found: gone" {
			t.Fatalf("%s: unexpected notices %v", format, got)
		}
	}
	for _, format := range []string{"text", "json"} {
		if got := unlistedNotFound(rep, format); len(got) != 0 {
			t.Fatalf("%s already lists missing roots, got %v", format, got)
		}
	}
}

func TestCLI既定で除外されるディレクトリ(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.go"), "// TODO keep\n")
	writeFile(t, filepath.Join(dir, ".svn", "b.go"), "// TODO svn\n")
	writeFile(t, filepath.Join(dir, ".output", "c.go"), "// TODO output\n")

	res := runCLI(t, nil, "-r", "-o", "ndjson", dir)
	if res.err != nil {
		t.Fatalf("unexpected error: %v", res.err)
	}
	if strings.Count(res.stdout, "\n") != 1 || !strings.Contains(res.stdout, "keep") {
		t.Fatalf("expected only a.go task:\n%s", res.stdout)
	}
}
