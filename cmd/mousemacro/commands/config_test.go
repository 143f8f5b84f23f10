package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/teranos/mousemacro/config"
	"github.com/teranos/mousemacro/errors"
)

func TestFormatConfig_RoundTrips(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Macro.Name = "farm"
	cfg.Macro.Schedule = config.ScheduleConfig{Enabled: true, Start: "09:00", End: "17:00"}

	decoders := map[string]func([]byte, interface{}) error{
		"toml": toml.Unmarshal,
		"json": json.Unmarshal,
		"yaml": yaml.Unmarshal,
	}
	for format, decode := range decoders {
		t.Run(format, func(t *testing.T) {
			data, err := formatConfig(cfg, format)
			require.NoError(t, err)

			var back config.Config
			require.NoError(t, decode(data, &back))
			assert.Equal(t, *cfg, back)
		})
	}
}

func TestFormatConfig_TOMLKeys(t *testing.T) {
	data, err := formatConfig(defaultConfig(t), "toml")
	require.NoError(t, err)
	out := string(data)
	assert.True(t, strings.HasPrefix(out, "# mousemacro configuration\n"))
	assert.Contains(t, out, "[macro.delay]")
	assert.Contains(t, out, "base_ms = 300")
	assert.Contains(t, out, "dry_run = true")
}

func TestFormatConfig_UnknownFormat(t *testing.T) {
	_, err := formatConfig(defaultConfig(t), "ini")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestWriteSourceReport(t *testing.T) {
	settings := []config.SettingInfo{
		{Key: "macro.name", Value: "from-env", Source: config.SourceEnvironment, SourcePath: "MOUSEMACRO_MACRO_NAME"},
		{Key: "macro.x", Value: 11, Source: config.SourceUser, SourcePath: "/home/u/.mousemacro/config.toml"},
		{Key: "macro.y", Value: 20, Source: config.SourceSystem, SourcePath: "/etc/mousemacro/config.toml"},
		{Key: "capture.timeout_seconds", Value: 15, Source: config.SourceDefault, SourcePath: "built-in default"},
		{Key: "journal.path", Value: strings.Repeat("p", 80), Source: config.SourceDefault, SourcePath: "built-in default"},
	}

	var buf bytes.Buffer
	writeSourceReport(&buf, settings)
	out := buf.String()

	order := []string{
		"default: 2 settings",
		"system: 1 settings from /etc/mousemacro/config.toml",
		"user: 1 settings from /home/u/.mousemacro/config.toml",
		"environment: 1 settings from environment variables",
	}
	last := -1
	for _, header := range order {
		idx := strings.Index(out, header)
		require.GreaterOrEqual(t, idx, 0, "missing %q in:\n%s", header, out)
		assert.Greater(t, idx, last, "%q out of precedence order", header)
		last = idx
	}
	assert.Contains(t, out, "macro.name = from-env (MOUSEMACRO_MACRO_NAME)")
	assert.Contains(t, out, strings.Repeat("p", 49)+"…")
	assert.NotContains(t, out, strings.Repeat("p", 50))
}
