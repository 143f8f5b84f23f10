// Package sym defines the symbols mousemacro tags its log lines and CLI output with.
// These symbols are stable across CLI output and structured logs.
package sym

// Glyph string constants.
const (
	Pulse      = "꩜" // click loop heartbeat
	PulseOpen  = "✿" // run started
	PulseClose = "❀" // run finished
	Capture    = "⌖" // click capture
	Hook       = "⌨" // global input hook
	DB         = "⊔" // run journal storage
	AM         = "≡" // configuration
)

// CommandToSymbol maps CLI commands to the symbol shown next to them.
var CommandToSymbol = map[string]string{
	"run":     Pulse,
	"capture": Capture,
	"journal": DB,
	"config":  AM,
}

// SymbolToCommand is the reverse of CommandToSymbol.
var SymbolToCommand = map[string]string{
	Pulse:   "run",
	Capture: "capture",
	DB:      "journal",
	AM:      "config",
}
