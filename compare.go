package assertdiff

import (
	"fmt"
	"strings"
)

// StringDiff locates the first difference between two strings. A nil
// *StringDiff means the strings are equal
type StringDiff struct {
	// Offset is the byte index of the first difference. When one string is a
	// prefix of the other it's the length of the shorter one
	Offset int

	ExpectedLen int
	ActualLen   int

	ExpectedLabel string
	ActualLabel   string

	// windows of context around Offset, with the pointer marker inserted
	ExpectedWindow string
	ActualWindow   string

	// Width is the length of the separator lines. When zero String derives it
	// from the windows and labels
	Width int
}

// CompareStrings reports where a and b first differ, labelling them with the
// configured expected & actual labels. It returns nil if a == b
func (h *Helper) CompareStrings(a, b string) *StringDiff {
	return h.CompareStringsLabeled(a, b, h.cfg.ExpectedLabel, h.cfg.ActualLabel)
}

// CompareStringsLabeled is CompareStrings with explicit labels
func (h *Helper) CompareStringsLabeled(a, b, labelA, labelB string) *StringDiff {
	return h.cfg.compareStrings(a, b, labelA, labelB)
}

// CompareMapsAsStrings runs the string locator over canonical dumps of a and
// b, exposing differences Diff doesn't see: key order & leaf types
func (h *Helper) CompareMapsAsStrings(a, b interface{}) *StringDiff {
	return h.CompareStrings(dump(a), dump(b))
}

func (cfg *Config) compareStrings(a, b, labelA, labelB string) *StringDiff {
	if a == b {
		return nil
	}

	offset := firstDifference(a, b)
	start := offset - cfg.CharsBefore
	if start < 0 {
		start = 0
	}

	labelColA, _ := labelColumns(labelA, labelB)

	return &StringDiff{
		Offset:         offset,
		ExpectedLen:    len(a),
		ActualLen:      len(b),
		ExpectedLabel:  labelA,
		ActualLabel:    labelB,
		ExpectedWindow: cfg.window(a, start, offset),
		ActualWindow:   cfg.window(b, start, offset),
		Width:          cfg.CharsAfter + cfg.CharsBefore + len(cfg.Pointer) + len(labelColA) + 2,
	}
}

// firstDifference is the index of the first differing byte of a and b, or
// the length of the shorter one
func firstDifference(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// window cuts s[start:offset] + pointer + s[offset:offset+CharsAfter],
// clamping every bound to s
func (cfg *Config) window(s string, start, offset int) string {
	return clampSlice(s, start, offset) + cfg.Pointer + clampSlice(s, offset, offset+cfg.CharsAfter)
}

func clampSlice(s string, from, to int) string {
	if from > len(s) {
		from = len(s)
	}
	if to > len(s) {
		to = len(s)
	}
	if from < 0 {
		from = 0
	}
	if to < from {
		to = from
	}
	return s[from:to]
}

// labelColumns pads the shorter label so both windows start at the same
// column
func labelColumns(labelA, labelB string) (string, string) {
	padA, padB := "", ""
	if diff := len(labelB) - len(labelA); diff > 0 {
		padA = strings.Repeat(" ", diff)
	} else if diff < 0 {
		padB = strings.Repeat(" ", -diff)
	}
	return "  " + labelA + ":  " + padA, "  " + labelB + ":  " + padB
}

// String renders the report framed by separator lines:
//
//	-----------------------------------------
//
//	  First difference at position 6.
//
//	  Expected length: 11, Actual length: 11
//
//	  Expected:  hello | ----> |world
//	  Actual:    hello | ----> |earth
//	-----------------------------------------
func (sd *StringDiff) String() string {
	if sd == nil {
		return ""
	}
	colA, colB := labelColumns(sd.ExpectedLabel, sd.ActualLabel)
	width := sd.Width
	if width <= 0 {
		width = len(sd.ExpectedWindow)
		if len(sd.ActualWindow) > width {
			width = len(sd.ActualWindow)
		}
		width += len(colA) + 2
	}
	sep := "\n" + strings.Repeat("-", width)
	return fmt.Sprintf("%s\n\n  First difference at position %d.\n\n  %s length: %d, %s length: %d\n\n%s%s\n%s%s\n%s",
		sep,
		sd.Offset,
		sd.ExpectedLabel, sd.ExpectedLen, sd.ActualLabel, sd.ActualLen,
		colA, sd.ExpectedWindow,
		colB, sd.ActualWindow,
		sep,
	)
}
