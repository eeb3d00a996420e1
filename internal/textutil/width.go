package textutil

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// CSI and OSC escape sequences.
var ansiRe = regexp.MustCompile(`\x1b\[[0-?]*[ -/]*[@-~]|\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`)

// StripANSI removes terminal escape sequences from s.
func StripANSI(s string) string {
	if !strings.ContainsRune(s, 0x1b) {
		return s
	}
	return ansiRe.ReplaceAllString(s, "")
}

// VisibleWidth returns the number of terminal cells s occupies once escape
// sequences are removed.
func VisibleWidth(s string) int {
	width := 0
	eachGrapheme(StripANSI(s), func(_ string, w int) bool {
		width += w
		return true
	})
	return width
}

// TruncateByWidth shortens s to at most w cells without splitting a
// grapheme cluster. When s is cut and tail fits, tail is appended.
// Escape sequences are dropped from truncated results.
func TruncateByWidth(s string, w int, tail string) string {
	if w <= 0 {
		return ""
	}
	if VisibleWidth(s) <= w {
		return s
	}
	limit := w
	tailW := runewidth.StringWidth(tail)
	if tailW <= w {
		limit = w - tailW
	} else {
		tail = ""
	}
	var b strings.Builder
	used := 0
	eachGrapheme(StripANSI(s), func(seg string, segW int) bool {
		if used+segW > limit {
			return false
		}
		b.WriteString(seg)
		used += segW
		return true
	})
	return b.String() + tail
}

// PadRight pads s with spaces up to w visible cells.
func PadRight(s string, w int) string {
	if pad := w - VisibleWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

func eachGrapheme(s string, fn func(seg string, width int) bool) {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		seg := g.Str()
		if !fn(seg, runewidth.StringWidth(seg)) {
			return
		}
	}
}
