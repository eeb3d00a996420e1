package opts

import (
	"math"
	"reflect"
	"testing"

	"github.com/phyten/todolist/internal/engine"
)

func TestParseBoolVariants(t *testing.T) {
	trueVals := []string{"1", "true", "TRUE", "yes", "On"}
	falseVals := []string{"0", "false", "FALSE", "no", "OFF"}

	for _, tc := range trueVals {
		t.Run("true/"+tc, func(t *testing.T) {
			got, err := ParseBool(tc, "flag")
			if err != nil {
				t.Fatalf("ParseBool(%q) error: %v", tc, err)
			}
			if !got {
				t.Fatalf("ParseBool(%q) = false, want true", tc)
			}
		})
	}

	for _, tc := range falseVals {
		t.Run("false/"+tc, func(t *testing.T) {
			got, err := ParseBool(tc, "flag")
			if err != nil {
				t.Fatalf("ParseBool(%q) error: %v", tc, err)
			}
			if got {
				t.Fatalf("ParseBool(%q) = true, want false", tc)
			}
		})
	}

	if _, err := ParseBool("maybe", "flag"); err == nil {
		t.Fatal("ParseBool should reject unknown values")
	}
}

func TestParseIntInRange(t *testing.T) {
	got, err := ParseIntInRange("42", "jobs", 1, 64)
	if err != nil {
		t.Fatalf("ParseIntInRange error: %v", err)
	}
	if got != 42 {
		t.Fatalf("ParseIntInRange = %d, want 42", got)
	}

	if _, err := ParseIntInRange("-1", "jobs", 0, math.MinInt); err == nil {
		t.Fatal("ParseIntInRange should reject negative values when min=0")
	}

	if _, err := ParseIntInRange("65", "jobs", 1, 64); err == nil {
		t.Fatal("ParseIntInRange should reject values above max")
	}
}

func TestNormalizeOutput(t *testing.T) {
	cases := map[string]string{"": "text", "TABLE": "text", "json": "json", " NDJSON ": "ndjson", "csv": "csv", "Markdown": "md"}
	for in, want := range cases {
		got, err := NormalizeOutput(in)
		if err != nil || got != want {
			t.Fatalf("NormalizeOutput(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := NormalizeOutput("xml"); err == nil {
		t.Fatal("NormalizeOutput should reject xml")
	}
}

func TestParsePatterns(t *testing.T) {
	got, err := ParsePatterns([]string{"TODO=2, FIXME", "// HACK:=9"})
	if err != nil {
		t.Fatalf("ParsePatterns error: %v", err)
	}
	want := []engine.Pattern{
		{Text: "TODO", Priority: 2},
		{Text: "FIXME", Priority: 1},
		{Text: "// HACK:", Priority: 9},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ParsePatterns = %+v, want %+v", got, want)
	}
	if _, err := ParsePatterns([]string{"TODO=high"}); err == nil {
		t.Fatal("non-numeric priority should fail")
	}
	if _, err := ParsePatterns([]string{"=3"}); err == nil {
		t.Fatal("empty pattern text should fail")
	}
}

func TestNormalizeAndValidate(t *testing.T) {
	o := Defaults([]string{" src ", ""})
	if err := NormalizeAndValidate(&o); err == nil {
		t.Fatal("expected error without patterns")
	}
	o.Patterns.Add("TODO", 2)
	if err := NormalizeAndValidate(&o); err == nil {
		t.Fatal("expected error without file types")
	}
	o.FileTypes.Add([]string{"go"})
	if err := NormalizeAndValidate(&o); err != nil {
		t.Fatalf("NormalizeAndValidate: %v", err)
	}
	if !reflect.DeepEqual(o.Roots, []string{"src"}) {
		t.Fatalf("roots not trimmed: %v", o.Roots)
	}
	o.Jobs = 0
	if err := NormalizeAndValidate(&o); err == nil {
		t.Fatal("jobs=0 should be rejected")
	}
	o.Jobs = 1
	o.Patterns = engine.NewPatternSet()
	if err := NormalizeAndValidate(&o); err == nil {
		t.Fatal("empty pattern set should be rejected")
	}
}
