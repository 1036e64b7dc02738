package assertdiff

// Stats holds leaf counts about a diff
type Stats struct {
	Expected int `json:"expectedLeaves"` // count of leaves in the expected mapping
	Actual   int `json:"actualLeaves"`   // count of leaves in the actual mapping

	Missing    int `json:"missing,omitempty"`    // leaves removed from expected
	Unexpected int `json:"unexpected,omitempty"` // leaves added by actual
}

// LeafChange returns a count of the shift between expected & actual
func (s Stats) LeafChange() int {
	return s.Actual - s.Expected
}

// OptionSetStats will populate the passed-in stats pointer when Diff is called
func OptionSetStats(st *Stats) Option {
	return func(cfg *Config) {
		cfg.stats = st
	}
}

// calcStats counts leaves of both inputs and of both sides of d
func calcStats(expected, actual interface{}, d *DiffResult) *Stats {
	st := &Stats{
		Expected: countLeaves(expected),
		Actual:   countLeaves(actual),
	}
	for _, dlt := range d.Deltas() {
		switch dlt.Type {
		case DTDelete:
			st.Missing++
		case DTInsert:
			st.Unexpected++
		}
	}
	return st
}
