package assertdiff

// Config holds the tunables shared by every helper. The zero value is not
// useful, start from DefaultConfig
type Config struct {
	// CharsBefore is how many bytes of context a string report shows ahead of
	// the first difference
	CharsBefore int
	// CharsAfter is how many bytes of context follow the first difference
	CharsAfter int
	// Pointer marks the first difference inside a context window
	Pointer string
	// ExpectedLabel & ActualLabel name the two sides of a string report
	ExpectedLabel string
	ActualLabel   string
	// StrictLeaves makes Diff compare leaves with assert.ObjectsAreEqual
	// instead of LooseEqual, so "1" and 1 are reported as different
	StrictLeaves bool
	// Color adds ANSI colors to rendered deltas & stats
	Color bool

	// filled in by Diff when set through OptionSetStats
	stats *Stats
}

// DefaultConfig returns the configuration package-level helpers use
func DefaultConfig() *Config {
	return &Config{
		CharsBefore:   15,
		CharsAfter:    75,
		Pointer:       "| ----> |",
		ExpectedLabel: "Expected",
		ActualLabel:   "Actual",
	}
}

// Option is a function that adjusts a config, zero or more Options can be
// passed to New, Diff & SetDefault
type Option func(cfg *Config)

// OptionCharsBefore sets the leading context width of string reports
func OptionCharsBefore(n int) Option {
	return func(cfg *Config) {
		if n >= 0 {
			cfg.CharsBefore = n
		}
	}
}

// OptionCharsAfter sets the trailing context width of string reports
func OptionCharsAfter(n int) Option {
	return func(cfg *Config) {
		if n >= 0 {
			cfg.CharsAfter = n
		}
	}
}

// OptionPointer sets the marker inserted at the first difference
func OptionPointer(pointer string) Option {
	return func(cfg *Config) {
		cfg.Pointer = pointer
	}
}

// OptionLabels renames the expected & actual sides of string reports
func OptionLabels(expected, actual string) Option {
	return func(cfg *Config) {
		cfg.ExpectedLabel = expected
		cfg.ActualLabel = actual
	}
}

// OptionStrictLeaves turns off type coercion when Diff compares leaves
func OptionStrictLeaves() Option {
	return func(cfg *Config) {
		cfg.StrictLeaves = true
	}
}

// OptionColor enables ANSI colors in rendered diffs
func OptionColor(color bool) Option {
	return func(cfg *Config) {
		cfg.Color = color
	}
}

func newConfig(opts ...Option) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// leafEqual picks the leaf comparison for this config
func (cfg *Config) leafEqual(a, b interface{}) bool {
	if cfg.StrictLeaves {
		return strictEqual(a, b)
	}
	return LooseEqual(a, b)
}
