package assertdiff

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// spewConfig renders values with their dynamic types and, for *Map, the
// internal key order. Pointer addresses are left out so dumps of equal trees
// are byte-identical
var spewConfig = spew.ConfigState{
	Indent:                  " ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
	DisableMethods:          true,
}

var colors = map[Operation]string{
	Operation("close"): "\x1b[0m", // end color tag

	DTInsert: "\x1b[32m", // green
	DTDelete: "\x1b[31m", // red
}

// FormatPrettyString is a convenience wrapper that outputs to a string instead
// of an io.Writer
func FormatPrettyString(changes Deltas, colorTTY bool) (string, error) {
	buf := &bytes.Buffer{}
	if err := FormatPretty(buf, changes, colorTTY); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatPretty writes one line per delta to w. if colorTTY is true it will add
// red "-" for missing leaves
// green "+" for unexpected ones
func FormatPretty(w io.Writer, changes Deltas, colorTTY bool) error {
	var colorMap map[Operation]string
	if colorTTY {
		colorMap = colors
	}

	for _, d := range changes {
		if _, err := fmt.Fprintf(w, "%s%s %s: %s%s\n", colorMap[d.Type], d.Type, d.Path, formatValue(d.Value), colorMap[Operation("close")]); err != nil {
			return err
		}
	}
	return nil
}

// formatValue renders a leaf as compact JSON, falling back to spew for values
// JSON can't hold (funcs, channels, cyclic structures, NaN)
func formatValue(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return strings.TrimSpace(spewConfig.Sdump(v))
	}
	return string(data)
}

// dump is the canonical rendering two values are compared through when their
// structural diff is empty: every type & key order difference is visible
func dump(v interface{}) string {
	return spewConfig.Sdump(v)
}

// VarExport renders a value for humans, used as the default explanation of
// AssertMapKeysExist
func VarExport(v interface{}) string {
	return varExport(v, "Given map:\n\n")
}

func varExport(v interface{}, label string) string {
	data, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return label + dump(v)
	}
	return label + string(data)
}

// FormatPrettyStats prints a string of stats info
func FormatPrettyStats(diffStat *Stats) string {
	return formatStats(diffStat, false)
}

// FormatPrettyStatsColor prints a string of stats info with ANSI colors
func FormatPrettyStatsColor(diffStat *Stats) string {
	return formatStats(diffStat, true)
}

func formatStats(ds *Stats, color bool) string {
	var (
		neutralColor, insertColor, deleteColor, closeColor string
	)

	if ds == nil {
		return "<nil>"
	}

	if color {
		neutralColor = "\x1b[37m"
		insertColor = colors[DTInsert]
		deleteColor = colors[DTDelete]
		closeColor = colors[Operation("close")]
	}

	buf := &bytes.Buffer{}

	elsColor := insertColor
	change := ds.LeafChange()
	leavesWord := "leaves"
	sign := "+"
	if change < 0 {
		elsColor = deleteColor
		sign = ""
	} else if change == 0 {
		elsColor = neutralColor
		sign = ""
	}
	if change == 1 || change == -1 {
		leavesWord = "leaf"
	}

	buf.WriteString(fmt.Sprintf("%s%s%d %s%s%s%s.",
		elsColor, sign, change, closeColor,
		neutralColor, leavesWord, closeColor,
	))
	buf.WriteString(fmt.Sprintf(" %s%d missing.%s", deleteColor, ds.Missing, closeColor))
	buf.WriteString(fmt.Sprintf(" %s%d unexpected.%s", insertColor, ds.Unexpected, closeColor))
	buf.WriteRune('\n')

	return buf.String()
}
