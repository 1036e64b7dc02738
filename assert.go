package assertdiff

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/stretchr/testify/assert"
)

// TestingT is the subset of *testing.T assertions report through
type TestingT = assert.TestingT

type tHelper interface {
	Helper()
}

// Helper bundles the assertions with the Config they render messages with.
// A Helper is read-only after New and safe for concurrent use
type Helper struct {
	cfg *Config
}

// New creates a Helper, applying opts on top of DefaultConfig
func New(opts ...Option) *Helper {
	return &Helper{cfg: newConfig(opts...)}
}

// Config returns a copy of the helper's configuration
func (h *Helper) Config() Config {
	return *h.cfg
}

// Diff is the package-level Diff using this helper's leaf comparison
func (h *Helper) Diff(expected, actual interface{}) (*DiffResult, error) {
	return h.cfg.diff(expected, actual)
}

var (
	defaultMu     sync.RWMutex
	defaultHelper = New()
)

// SetDefault replaces the configuration used by package-level helpers. It's
// meant for TestMain, before any test runs
func SetDefault(opts ...Option) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultHelper = New(opts...)
}

// Default returns the helper package-level functions delegate to
func Default() *Helper {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultHelper
}

// AssertSameMap asserts expected and actual are the same mapping: same keys,
// same key order for *Map values, same leaf types and values. On failure the
// message explains which keys are missing or unexpected, or, when the
// mappings only differ in key order or leaf types, where their dumps diverge.
// Extra msgAndArgs follow after a blank line.
func (h *Helper) AssertSameMap(t TestingT, expected, actual interface{}, msgAndArgs ...interface{}) bool {
	if th, ok := t.(tHelper); ok {
		th.Helper()
	}

	message := messageFromMsgAndArgs(msgAndArgs...)
	if !sameValue(expected, actual) {
		message = joinMessages(h.sameMapMessage(expected, actual), message)
	}

	return assert.Exactly(t, expected, actual, message)
}

// AssertSameSortedMap is AssertSameMap for mappings whose top-level key order
// is incidental: top-level *Map keys are sorted on both sides first. Nested
// *Maps keep their order and must match it
func (h *Helper) AssertSameSortedMap(t TestingT, expected, actual interface{}, msgAndArgs ...interface{}) bool {
	if th, ok := t.(tHelper); ok {
		th.Helper()
	}
	return h.AssertSameMap(t, sortKeys(expected), sortKeys(actual), msgAndArgs...)
}

// AssertMapKeysExist asserts every key is present in mapping. The failure
// lists the missing keys, followed by a dump of mapping unless msgAndArgs
// provides another explanation
func (h *Helper) AssertMapKeysExist(t TestingT, keys []string, mapping interface{}, msgAndArgs ...interface{}) bool {
	if th, ok := t.(tHelper); ok {
		th.Helper()
	}

	expected := NewMap()
	for i, k := range keys {
		expected.Set(k, i)
	}

	present := NewMap()
	if m, ok := asMapping(mapping); ok {
		for _, k := range expected.Keys() {
			if _, ok := m.Get(k); ok {
				v, _ := expected.Get(k)
				present.Set(k, v)
			}
		}
	}

	if len(msgAndArgs) == 0 {
		msgAndArgs = []interface{}{VarExport(mapping)}
	}
	return h.AssertSameMap(t, expected, present, msgAndArgs...)
}

// AssertStringsEqual asserts two strings are equal. The failure shows the
// position of the first difference with context around it
func (h *Helper) AssertStringsEqual(t TestingT, expected, actual string, msgAndArgs ...interface{}) bool {
	if th, ok := t.(tHelper); ok {
		th.Helper()
	}
	message := messageFromMsgAndArgs(msgAndArgs...)
	if report := h.CompareStrings(expected, actual); report != nil {
		message = joinMessages(report.String(), message)
	}
	return assert.Equal(t, expected, actual, message)
}

// AssertHTMLStringsEqual is AssertStringsEqual over NormalizeHTML'd inputs
func (h *Helper) AssertHTMLStringsEqual(t TestingT, expected, actual string, msgAndArgs ...interface{}) bool {
	if th, ok := t.(tHelper); ok {
		th.Helper()
	}
	return h.AssertStringsEqual(t, NormalizeHTML(expected), NormalizeHTML(actual), msgAndArgs...)
}

// sameMapMessage explains why expected and actual aren't the same
func (h *Helper) sameMapMessage(expected, actual interface{}) string {
	buf := &strings.Builder{}
	buf.WriteString("Failed asserting that maps are the same. More info:\n\n")

	d, err := h.cfg.subtractBoth(expected, actual)
	if err != nil || d.Empty() {
		if sd := h.CompareMapsAsStrings(expected, actual); sd != nil {
			buf.WriteString(sd.String())
		} else {
			buf.WriteString("Values differ but render identically.")
		}
		return buf.String()
	}

	var missing, unexpected Deltas
	for _, dlt := range d.Deltas() {
		if dlt.Type == DTDelete {
			missing = append(missing, dlt)
		} else {
			unexpected = append(unexpected, dlt)
		}
	}

	// rendering into a strings.Builder can't fail
	buf.WriteString("Missing:\n")
	_ = FormatPretty(buf, missing, h.cfg.Color)
	buf.WriteString("Unexpected:\n")
	_ = FormatPretty(buf, unexpected, h.cfg.Color)
	buf.WriteString(formatStats(calcStats(expected, actual, d), h.cfg.Color))
	return strings.TrimSuffix(buf.String(), "\n")
}

// sameValue is the strict comparison AssertSameMap ends with
func sameValue(expected, actual interface{}) bool {
	return reflect.TypeOf(expected) == reflect.TypeOf(actual) && assert.ObjectsAreEqual(expected, actual)
}

// sortKeys sorts the top level of *Map values, leaving other mappings alone:
// Go maps are always visited sorted already
func sortKeys(v interface{}) interface{} {
	if m, ok := v.(*Map); ok {
		return m.SortKeys()
	}
	return v
}

// joinMessages puts extra after msg, separated by a blank line
func joinMessages(msg, extra string) string {
	if extra == "" {
		return msg
	}
	if msg == "" {
		return extra
	}
	return msg + "\n\n" + extra
}

// messageFromMsgAndArgs follows testify: a single argument is the message,
// several are a format string and its arguments
func messageFromMsgAndArgs(msgAndArgs ...interface{}) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	msg, ok := msgAndArgs[0].(string)
	if !ok {
		return fmt.Sprintf("%+v", msgAndArgs[0])
	}
	if len(msgAndArgs) == 1 {
		return msg
	}
	return fmt.Sprintf(msg, msgAndArgs[1:]...)
}

// AssertSameMap calls AssertSameMap on the default helper
func AssertSameMap(t TestingT, expected, actual interface{}, msgAndArgs ...interface{}) bool {
	if th, ok := t.(tHelper); ok {
		th.Helper()
	}
	return Default().AssertSameMap(t, expected, actual, msgAndArgs...)
}

// AssertSameSortedMap calls AssertSameSortedMap on the default helper
func AssertSameSortedMap(t TestingT, expected, actual interface{}, msgAndArgs ...interface{}) bool {
	if th, ok := t.(tHelper); ok {
		th.Helper()
	}
	return Default().AssertSameSortedMap(t, expected, actual, msgAndArgs...)
}

// AssertMapKeysExist calls AssertMapKeysExist on the default helper
func AssertMapKeysExist(t TestingT, keys []string, mapping interface{}, msgAndArgs ...interface{}) bool {
	if th, ok := t.(tHelper); ok {
		th.Helper()
	}
	return Default().AssertMapKeysExist(t, keys, mapping, msgAndArgs...)
}

// AssertStringsEqual calls AssertStringsEqual on the default helper
func AssertStringsEqual(t TestingT, expected, actual string, msgAndArgs ...interface{}) bool {
	if th, ok := t.(tHelper); ok {
		th.Helper()
	}
	return Default().AssertStringsEqual(t, expected, actual, msgAndArgs...)
}

// AssertHTMLStringsEqual calls AssertHTMLStringsEqual on the default helper
func AssertHTMLStringsEqual(t TestingT, expected, actual string, msgAndArgs ...interface{}) bool {
	if th, ok := t.(tHelper); ok {
		th.Helper()
	}
	return Default().AssertHTMLStringsEqual(t, expected, actual, msgAndArgs...)
}

// CompareStrings calls CompareStrings on the default helper
func CompareStrings(a, b string) *StringDiff {
	return Default().CompareStrings(a, b)
}
