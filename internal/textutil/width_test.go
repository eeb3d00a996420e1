package textutil

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestVisibleWidth(t *testing.T) {
	setEastAsianWidth(t, false)
	cases := []struct {
		name string
		s    string
		want int
	}{
		{name: "Empty", s: "", want: 0},
		{name: "ASCII", s: "TODO", want: 4},
		{name: "Hiragana", s: "あいう", want: 6},
		{name: "CombiningMark", s: "é", want: 1},
		{name: "ANSIColored", s: "\x1b[31m赤\x1b[0m", want: 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := VisibleWidth(tc.s); got != tc.want {
				t.Fatalf("VisibleWidth(%q) = %d, want %d", tc.s, got, tc.want)
			}
		})
	}
}

func TestTruncateByWidth(t *testing.T) {
	setEastAsianWidth(t, false)
	cases := []struct {
		name  string
		s     string
		width int
		tail  string
		want  string
	}{
		{name: "Fits", s: "fix me", width: 10, tail: "…", want: "fix me"},
		{name: "ASCII", s: "refactor the parser", width: 8, tail: "...", want: "refac..."},
		{name: "Japanese", s: "こんにちは世界", width: 6, tail: "…", want: "こん…"},
		{name: "NoTail", s: "abcdef", width: 3, tail: "", want: "abc"},
		{name: "TailTooWide", s: "abcdef", width: 2, tail: "...", want: "ab"},
		{name: "ZeroWidth", s: "abc", width: 0, tail: "…", want: ""},
		{name: "Combining", s: "ééé", width: 2, tail: "", want: "éé"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TruncateByWidth(tc.s, tc.width, tc.tail)
			if got != tc.want {
				t.Fatalf("TruncateByWidth(%q, %d) = %q, want %q", tc.s, tc.width, got, tc.want)
			}
			if w := VisibleWidth(got); w > tc.width {
				t.Fatalf("result width %d exceeds limit %d", w, tc.width)
			}
		})
	}
}

func TestStripANSI(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "plain", want: "plain"},
		{in: "\x1b[31mRed\x1b[0m", want: "Red"},
		{in: "\x1b[1;38;5;196mTODO\x1b[0m", want: "TODO"},
		{in: "\x1b]8;;https://example.com\x07link\x1b]8;;\x07", want: "link"},
	}
	for _, tc := range cases {
		if got := StripANSI(tc.in); got != tc.want {
			t.Fatalf("StripANSI(%q)=%q want %q", tc.in, got, tc.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	setEastAsianWidth(t, false)
	if got := VisibleWidth(PadRight("あ", 6)); got != 6 {
		t.Fatalf("PadRight did not reach target width: %d", got)
	}
	if got := PadRight("\x1b[1mFiles\x1b[0m", 7); StripANSI(got) != "Files  " {
		t.Fatalf("PadRight should ignore escape sequences, got %q", got)
	}
	if got := PadRight("toolong", 3); got != "toolong" {
		t.Fatalf("PadRight should not shorten, got %q", got)
	}
}

func setEastAsianWidth(t *testing.T, eastAsian bool) {
	t.Helper()
	runewidth.EastAsianWidth = eastAsian
	runewidth.DefaultCondition = runewidth.NewCondition()
}
