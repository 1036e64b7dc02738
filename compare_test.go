package assertdiff

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestCompareStrings(t *testing.T) {
	long := strings.Repeat("x", 30)

	cases := []struct {
		description string
		a, b        string
		expect      *StringDiff
	}{
		{"equal strings", "same", "same", nil},
		{"empty strings", "", "", nil},
		{"word change", "hello world", "hello earth", &StringDiff{
			Offset: 6, ExpectedLen: 11, ActualLen: 11,
			ExpectedLabel: "Expected", ActualLabel: "Actual",
			ExpectedWindow: "hello | ----> |world",
			ActualWindow:   "hello | ----> |earth",
		}},
		{"prefix", "abc", "abcdef", &StringDiff{
			Offset: 3, ExpectedLen: 3, ActualLen: 6,
			ExpectedLabel: "Expected", ActualLabel: "Actual",
			ExpectedWindow: "abc| ----> |",
			ActualWindow:   "abc| ----> |def",
		}},
		{"first byte", "a", "b", &StringDiff{
			Offset: 0, ExpectedLen: 1, ActualLen: 1,
			ExpectedLabel: "Expected", ActualLabel: "Actual",
			ExpectedWindow: "| ----> |a",
			ActualWindow:   "| ----> |b",
		}},
		{"empty against text", "", "text", &StringDiff{
			Offset: 0, ExpectedLen: 0, ActualLen: 4,
			ExpectedLabel: "Expected", ActualLabel: "Actual",
			ExpectedWindow: "| ----> |",
			ActualWindow:   "| ----> |text",
		}},
		{"leading context is cut", long + "A", long + "B", &StringDiff{
			Offset: 30, ExpectedLen: 31, ActualLen: 31,
			ExpectedLabel: "Expected", ActualLabel: "Actual",
			ExpectedWindow: strings.Repeat("x", 15) + "| ----> |A",
			ActualWindow:   strings.Repeat("x", 15) + "| ----> |B",
		}},
	}

	ignoreWidth := cmpopts.IgnoreFields(StringDiff{}, "Width")
	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			got := CompareStrings(c.a, c.b)
			if diff := cmp.Diff(c.expect, got, ignoreWidth); diff != "" {
				t.Errorf("result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompareStringsSymmetricOffset(t *testing.T) {
	pairs := [][2]string{
		{"hello world", "hello earth"},
		{"abc", "abcdef"},
		{"", "x"},
		{"naïve", "naive"},
	}
	for _, p := range pairs {
		ab := CompareStrings(p[0], p[1])
		ba := CompareStrings(p[1], p[0])
		if ab == nil || ba == nil {
			t.Fatalf("%q, %q: expected a difference both ways", p[0], p[1])
		}
		if ab.Offset != ba.Offset {
			t.Errorf("%q, %q: offsets differ: %d != %d", p[0], p[1], ab.Offset, ba.Offset)
		}
	}
}

func TestStringDiffString(t *testing.T) {
	sep := "\n" + strings.Repeat("-", 114)
	expect := sep + `

  First difference at position 6.

  Expected length: 11, Actual length: 11

  Expected:  hello | ----> |world
  Actual:    hello | ----> |earth
` + sep

	got := CompareStrings("hello world", "hello earth").String()
	if got != expect {
		t.Errorf("mismatch.\nwant:\n%s\ngot:\n%s", expect, got)
	}

	// a report built by hand sizes its separator from its content
	built := &StringDiff{
		Offset: 1, ExpectedLen: 2, ActualLen: 2,
		ExpectedLabel: "A", ActualLabel: "B",
		ExpectedWindow: "a|b", ActualWindow: "a|c",
	}
	builtSep := "\n" + strings.Repeat("-", len("a|b")+len("  A:  ")+2)
	builtExpect := builtSep + "\n\n  First difference at position 1.\n\n  A length: 2, B length: 2\n\n  A:  a|b\n  B:  a|c\n" + builtSep
	if got := built.String(); got != builtExpect {
		t.Errorf("mismatch.\nwant:\n%s\ngot:\n%s", builtExpect, got)
	}

	var none *StringDiff
	if s := none.String(); s != "" {
		t.Errorf("expected empty string for nil report, got %q", s)
	}
}

func TestCompareStringsOptions(t *testing.T) {
	h := New(
		OptionCharsBefore(2),
		OptionCharsAfter(3),
		OptionPointer("^"),
		OptionLabels("Want", "Received"),
	)

	got := h.CompareStrings("0123456789", "01234X6789")
	expect := &StringDiff{
		Offset: 5, ExpectedLen: 10, ActualLen: 10,
		ExpectedLabel: "Want", ActualLabel: "Received",
		ExpectedWindow: "34^567",
		ActualWindow:   "34^X67",
		Width:          3 + 2 + 1 + len("  Want:      ") + 2,
	}
	if diff := cmp.Diff(expect, got); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}

	lines := strings.Split(got.String(), "\n")
	if lines[7] != "  Want:      34^567" || lines[8] != "  Received:  34^X67" {
		t.Errorf("windows should line up, got:\n%s\n%s", lines[7], lines[8])
	}

	labeled := h.CompareStringsLabeled("a", "b", "Left", "Right")
	if labeled.ExpectedLabel != "Left" || labeled.ActualLabel != "Right" {
		t.Errorf("expected explicit labels, got %q & %q", labeled.ExpectedLabel, labeled.ActualLabel)
	}
}

func TestNegativeWidthsIgnored(t *testing.T) {
	cfg := New(OptionCharsBefore(-1), OptionCharsAfter(-5)).Config()
	if cfg.CharsBefore != 15 || cfg.CharsAfter != 75 {
		t.Errorf("expected defaults to survive negative widths, got %d & %d", cfg.CharsBefore, cfg.CharsAfter)
	}
}

func TestCompareMapsAsStrings(t *testing.T) {
	h := New()
	if d := h.CompareMapsAsStrings(MapOf("a", 1), MapOf("a", 1)); d != nil {
		t.Errorf("expected equal dumps, got:\n%s", d)
	}
	if d := h.CompareMapsAsStrings(MapOf("a", 1, "b", 2), MapOf("b", 2, "a", 1)); d == nil {
		t.Error("expected key order to show up in dumps")
	}
	if d := h.CompareMapsAsStrings(map[string]interface{}{"a": 1}, map[string]interface{}{"a": "1"}); d == nil {
		t.Error("expected leaf types to show up in dumps")
	}
}
