package engine

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNotFound はルートパスが存在しない、またはファイルでもディレクトリでもない場合に返される。
	ErrNotFound = errors.New("no such file or directory")
	// ErrNotScannable は拡張子がフィルタに含まれないファイルを表す。
	ErrNotScannable = errors.New("file type not scannable")
)

// Match は 1 行で検出した 1 件のタスクを表す
type Match struct {
	Row      int    `json:"row"`
	Column   int    `json:"col"`
	Pattern  string `json:"pattern"`
	Text     string `json:"text"`
	Priority int    `json:"priority"`
}

// FileResult は 1 ファイルの走査結果
type FileResult struct {
	Path      string  `json:"path"`
	LineCount int     `json:"lines"`
	Matches   []Match `json:"tasks"`
}

// RootError は走査を開始できなかったルートパスを表す
type RootError struct {
	Root string
	Err  error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("%s: %v", e.Root, e.Err)
}

func (e *RootError) Unwrap() error { return e.Err }

// FileError は読み込みに失敗し、結果から除外されたファイルを表す
type FileError struct {
	Path  string `json:"path"`
	Stage string `json:"stage"`
	Err   error  `json:"-"`
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

func (e FileError) MarshalJSON() ([]byte, error) {
	msg := ""
	if e.Err != nil {
		msg = e.Err.Error()
	}
	return json.Marshal(struct {
		Path    string `json:"path"`
		Stage   string `json:"stage"`
		Message string `json:"message"`
	}{e.Path, e.Stage, msg})
}

// Observer receives one call per file once it has been scanned or skipped.
type Observer interface {
	FilesFound(total int)
	Advance()
}

// Options は実行オプション
type Options struct {
	Roots     []string
	Recursive bool
	Patterns  *PatternSet
	FileTypes *FileTypeFilter
	Excludes  []string
	Jobs      int
	Observer  Observer
}

// WalkOptions controls how a single root is expanded into files.
type WalkOptions struct {
	Recursive bool
	FileTypes *FileTypeFilter
	Excludes  []string
}

func (o Options) walkOptions() WalkOptions {
	return WalkOptions{Recursive: o.Recursive, FileTypes: o.FileTypes, Excludes: o.Excludes}
}

func (o Options) validate() error {
	if o.Patterns == nil {
		return errors.New("engine: pattern set is required")
	}
	if o.FileTypes == nil {
		return errors.New("engine: file type filter is required")
	}
	return nil
}
