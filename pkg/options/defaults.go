package options

const (
	// DefaultDataDir is the base directory fragdb stores fragments in when
	// no other directory is specified during initialization.
	DefaultDataDir = "/var/lib/fragdb"

	// MinCompactionThreshold is the smallest unreclaimed-space threshold
	// accepted by WithCompactionThreshold.
	MinCompactionThreshold uint64 = 4 * 1024

	// DefaultCompactionThreshold is the number of unreclaimed bytes that
	// triggers an online compaction pass.
	DefaultCompactionThreshold uint64 = 1_000_000
)

// Holds the default configuration settings for a Store instance.
var defaultOptions = Options{
	DataDir:             DefaultDataDir,
	CompactionThreshold: DefaultCompactionThreshold,
}

func NewDefaultOptions() Options {
	return defaultOptions
}
