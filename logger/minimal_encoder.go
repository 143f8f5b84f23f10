package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	colorReset = "\x1b[0m"
	colorBold  = "\x1b[1m"
)

// palette is one console color theme
type palette struct {
	fg        string
	time      string
	component string
	symbol    string
	id        string
	number    string
	key       string
	warn      string
	warnBg    string
	err       string
	errBg     string
}

// Gruvbox Dark (warm, muted)
var gruvbox = palette{
	fg:        "\x1b[38;5;223m",
	time:      "\x1b[38;5;108m",
	component: "\x1b[38;5;208m",
	symbol:    "\x1b[38;5;142m",
	id:        "\x1b[38;5;109m",
	number:    "\x1b[38;5;175m",
	key:       "\x1b[38;5;245m",
	warn:      "\x1b[38;5;214m",
	warnBg:    "\x1b[48;5;58m",
	err:       "\x1b[38;5;167m",
	errBg:     "\x1b[48;5;88m",
}

// Everforest Dark (forest greens)
var everforest = palette{
	fg:        "\x1b[38;5;223m",
	time:      "\x1b[38;5;107m",
	component: "\x1b[38;5;65m",
	symbol:    "\x1b[38;5;108m",
	id:        "\x1b[38;5;109m",
	number:    "\x1b[38;5;108m",
	key:       "\x1b[38;5;245m",
	warn:      "\x1b[38;5;179m",
	warnBg:    "\x1b[48;5;58m",
	err:       "\x1b[38;5;167m",
	errBg:     "\x1b[48;5;52m",
}

var currentTheme = "everforest"

// SetTheme configures the color scheme for log output (everforest, gruvbox)
func SetTheme(theme string) {
	if theme == "everforest" || theme == "gruvbox" {
		currentTheme = theme
	}
}

func colors() palette {
	if currentTheme == "gruvbox" {
		return gruvbox
	}
	return everforest
}

// Fields rendered as identifiers rather than plain values
var idFields = map[string]bool{
	FieldRunID: true,
	FieldMacro: true,
}

// minimalEncoder implements a calm, compact console encoder with theme support.
// Format: "13:04:35  engine  ꩜ Click executed  run_id=3f2a… executed=12"
//
// Context fields (logger.With) are collected in the embedded map encoder so
// they are rendered with every entry instead of being lost.
type minimalEncoder struct {
	*zapcore.MapObjectEncoder
}

func newMinimalEncoder() *minimalEncoder {
	return &minimalEncoder{MapObjectEncoder: zapcore.NewMapObjectEncoder()}
}

func (enc *minimalEncoder) Clone() zapcore.Encoder {
	clone := zapcore.NewMapObjectEncoder()
	for k, v := range enc.Fields {
		clone.Fields[k] = v
	}
	return &minimalEncoder{MapObjectEncoder: clone}
}

func (enc *minimalEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	c := colors()
	final := buffer.NewPool().Get()

	final.AppendString(c.time)
	final.AppendString(ent.Time.Format("15:04:05"))
	final.AppendString(colorReset)

	// Level: only show for non-INFO with bold + background
	if ent.Level != zapcore.InfoLevel {
		final.AppendString("  ")
		final.AppendString(levelColorString(ent.Level))
	}

	if ent.LoggerName != "" {
		final.AppendString("  ")
		final.AppendString(c.component)
		final.AppendString(ent.LoggerName)
		final.AppendString(colorReset)
	}

	kvs := enc.collect(fields)

	final.AppendString("  ")
	if symbol, ok := kvs.take(FieldSymbol); ok {
		final.AppendString(c.symbol)
		final.AppendString(symbol)
		final.AppendString(colorReset)
		final.AppendString(" ")
	}
	final.AppendString(c.fg)
	final.AppendString(ent.Message)
	final.AppendString(colorReset)

	if rendered := kvs.render(c); rendered != "" {
		final.AppendString("  ")
		final.AppendString(rendered)
	}

	final.AppendString("\n")
	return final, nil
}

type keyValue struct {
	key   string
	value string
}

type keyValues []keyValue

// take removes key from the list and returns its value
func (kvs *keyValues) take(key string) (string, bool) {
	for i, kv := range *kvs {
		if kv.key == key {
			*kvs = append((*kvs)[:i], (*kvs)[i+1:]...)
			return kv.value, true
		}
	}
	return "", false
}

func (kvs keyValues) render(c palette) string {
	parts := make([]string, 0, len(kvs))
	for _, kv := range kvs {
		var val string
		switch {
		case idFields[kv.key]:
			val = c.id + kv.value + colorReset
		case kv.key == FieldDurationMS:
			val = c.number + kv.value + colorReset + "ms"
		case isNumeric(kv.value):
			val = c.number + kv.value + colorReset
		case kv.key == FieldError:
			val = c.err + kv.value + colorReset
		default:
			val = kv.value
		}
		parts = append(parts, c.key+kv.key+"="+colorReset+val)
	}
	return strings.Join(parts, " ")
}

// collect flattens context fields (sorted by key) followed by entry fields
// (in call order) into key/value pairs. No field is ever dropped except the
// verbose stack rendering zap derives from error fields.
func (enc *minimalEncoder) collect(fields []zapcore.Field) keyValues {
	var kvs keyValues

	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		kvs = append(kvs, keyValue{key: k, value: fmt.Sprint(enc.Fields[k])})
	}

	for _, field := range fields {
		m := zapcore.NewMapObjectEncoder()
		field.AddTo(m)
		fieldKeys := make([]string, 0, len(m.Fields))
		for k := range m.Fields {
			if strings.HasSuffix(k, "Verbose") {
				continue
			}
			fieldKeys = append(fieldKeys, k)
		}
		sort.Strings(fieldKeys)
		for _, k := range fieldKeys {
			kvs = append(kvs, keyValue{key: k, value: fmt.Sprint(m.Fields[k])})
		}
	}

	return kvs
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	dot := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '-' && i == 0 && len(s) > 1:
		case r == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return true
}

// levelColorString returns bold + colored + background for non-INFO levels
func levelColorString(level zapcore.Level) string {
	c := colors()

	switch level {
	case zapcore.DebugLevel:
		return c.key + "DEBUG" + colorReset
	case zapcore.WarnLevel:
		return colorBold + c.warnBg + c.warn + "WARN" + colorReset
	case zapcore.ErrorLevel:
		return colorBold + c.errBg + c.err + "ERROR" + colorReset
	default:
		return colorBold + c.errBg + c.err + level.CapitalString() + colorReset
	}
}
