package assertdiff

import (
	"errors"
	"fmt"
)

// ErrNotMapping is returned by Diff when an input can't be walked as a mapping
var ErrNotMapping = errors.New("value is not a mapping")

// DiffResult describes how two mappings differ. A nil Removed or Added means
// that side has no differences, which is distinct from an empty mapping being
// reported as a difference.
type DiffResult struct {
	// Removed holds keys & subtrees of the expected value that are absent from,
	// or different in, the actual value
	Removed *Map
	// Added is the complement: what actual has that expected doesn't
	Added *Map
}

// Empty is true when neither side reports a difference
func (d *DiffResult) Empty() bool {
	return d == nil || (d.Removed == nil && d.Added == nil)
}

// Diff compares two mappings key by key, recursing into nested mappings.
// Leaves are compared with LooseEqual unless OptionStrictLeaves is passed
//
// Only the options affecting comparison matter here, rendering options are
// ignored.
func Diff(expected, actual interface{}, opts ...Option) (*DiffResult, error) {
	return newConfig(opts...).diff(expected, actual)
}

func (cfg *Config) diff(expected, actual interface{}) (*DiffResult, error) {
	d, err := cfg.subtractBoth(expected, actual)
	if err != nil {
		return nil, err
	}
	if cfg.stats != nil {
		*cfg.stats = *calcStats(expected, actual, d)
	}
	return d, nil
}

func (cfg *Config) subtractBoth(expected, actual interface{}) (*DiffResult, error) {
	e, ok := asMapping(expected)
	if !ok {
		return nil, fmt.Errorf("expected: %w: %T", ErrNotMapping, expected)
	}
	a, ok := asMapping(actual)
	if !ok {
		return nil, fmt.Errorf("actual: %w: %T", ErrNotMapping, actual)
	}

	return &DiffResult{
		Removed: cfg.subtract(e, a),
		Added:   cfg.subtract(a, e),
	}, nil
}

// subtract reports everything in a that b lacks or holds differently. A
// mapping on one side against anything else on the other always reports the
// whole subtree. nil means "no differences"
func (cfg *Config) subtract(a, b mapping) *Map {
	var diff *Map

	report := func(key string, value interface{}) {
		if diff == nil {
			diff = NewMap()
		}
		diff.Set(key, value)
	}

	for _, key := range a.Keys() {
		av, _ := a.Get(key)
		bv, inB := b.Get(key)

		if am, ok := asMapping(av); ok {
			bm, ok := asMapping(bv)
			if !inB || !ok {
				report(key, av)
				continue
			}
			if nested := cfg.subtract(am, bm); nested != nil {
				report(key, nested)
			}
			continue
		}

		if !inB || isMapping(bv) || !cfg.leafEqual(av, bv) {
			report(key, av)
		}
	}

	return diff
}
