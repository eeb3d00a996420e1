package termcolor

import "testing"

func TestApply(t *testing.T) {
	boldRed := Style{Bold: true}
	color := 1
	boldRed.FGBasic = &color
	got := Apply(boldRed, "Hello", true)
	want := "\x1b[1;31mHello\x1b[0m"
	if got != want {
		t.Fatalf("Apply produced %q, want %q", got, want)
	}

	if got := Apply(Style{}, "Hello", true); got != "Hello" {
		t.Fatalf("empty style should return the text unchanged, got %q", got)
	}
	if got := Apply(boldRed, "Hello", false); got != "Hello" {
		t.Fatalf("disabled Apply should return the text unchanged, got %q", got)
	}
	idx := 196
	if got := Apply(Style{Dim: true, FG256: &idx}, "x", true); got != "\x1b[2;38;5;196mx\x1b[0m" {
		t.Fatalf("unexpected 256 color output %q", got)
	}
}

func TestStyleIsZero(t *testing.T) {
	if !(Style{}).IsZero() {
		t.Fatal("empty style should be zero")
	}
	if (Style{Underline: true}).IsZero() {
		t.Fatal("underline style is not zero")
	}
}
