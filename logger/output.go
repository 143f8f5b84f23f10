package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information the CLI prints regardless of severity.

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults    OutputCategory = iota // Captured point, journal listing
	OutputErrors                           // Errors with hints
	OutputUserStatus                       // Final run status

	// Level 1 (-v) - Informational
	OutputProgress // Click counter while a run is active
	OutputStartup  // Request summary before a run starts

	// Level 2 (-vv) - Detailed
	OutputTiming // Per-click delays
	OutputConfig // Config values loaded/applied

	// Level 3 (-vvv) - Debug
	OutputHookEvents // Raw global hook events
	OutputSQLQueries // Journal statements
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	OutputResults:    VerbosityUser,
	OutputErrors:     VerbosityUser,
	OutputUserStatus: VerbosityUser,

	OutputProgress: VerbosityInfo,
	OutputStartup:  VerbosityInfo,

	OutputTiming: VerbosityDebug,
	OutputConfig: VerbosityDebug,

	OutputHookEvents: VerbosityTrace,
	OutputSQLQueries: VerbosityTrace,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityTrace
	}
	return verbosity >= minLevel
}

var categoryNames = map[OutputCategory]string{
	OutputResults:    "results",
	OutputErrors:     "errors",
	OutputUserStatus: "status",
	OutputProgress:   "progress",
	OutputStartup:    "startup",
	OutputTiming:     "timing",
	OutputConfig:     "config",
	OutputHookEvents: "hook-events",
	OutputSQLQueries: "sql",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}
