package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/mousemacro/config"
	"github.com/teranos/mousemacro/errors"
	"github.com/teranos/mousemacro/internal/util"
	"github.com/teranos/mousemacro/sym"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: sym.AM + " Show and validate configuration",
	Long: sym.AM + ` config - Show and validate mousemacro configuration

Configuration sources (later overrides earlier):
1. Default values
2. System config (/etc/mousemacro/config.toml)
3. User config (~/.mousemacro/config.toml)
4. Project config (./mousemacro.toml, searched up directories)
5. Explicit config (--config)
6. Environment variables (MOUSEMACRO_* prefix, e.g. MOUSEMACRO_MACRO_X)
7. Command line flags (run only)

Examples:
  mousemacro config show                  # Show current configuration
  mousemacro config show --format json    # Show configuration in JSON format
  mousemacro config get macro.delay.base_ms
  mousemacro config validate
  mousemacro config where                 # Which file set each value`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the effective configuration merged from all sources",
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a specific configuration value",
	Long:  "Get a specific configuration value using dot notation (e.g., macro.x, engine.dry_run)",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	RunE:  runConfigValidate,
}

var configWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	Long: `Show every effective setting grouped by the source that set it:
defaults, a config file, or an environment variable.`,
	RunE: runConfigWhere,
}

var configFormat string

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configGetCmd)
	ConfigCmd.AddCommand(configValidateCmd)
	ConfigCmd.AddCommand(configWhereCmd)
}

// formatConfig renders cfg as toml, json or yaml.
func formatConfig(cfg *config.Config, format string) ([]byte, error) {
	switch format {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config to JSON")
		}
		return append(data, '\n'), nil
	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config to YAML")
		}
		return append([]byte("# mousemacro configuration\n"), data...), nil
	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config to TOML")
		}
		return append([]byte("# mousemacro configuration\n"), data...), nil
	}
	return nil, errors.NewInvalidArgumentError("unsupported format: %s (supported: toml, json, yaml)", format)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	data, err := formatConfig(cfg, configFormat)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	v, err := config.GetViper()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if !v.IsSet(key) {
		return errors.WithHint(errors.Newf("configuration key %q not found", key),
			"run 'mousemacro config where' to list every key")
	}
	fmt.Fprintln(cmd.OutOrStdout(), v.Get(key))
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration is valid")
	return nil
}

func runConfigWhere(cmd *cobra.Command, args []string) error {
	settings, err := config.Introspect()
	if err != nil {
		return err
	}
	writeSourceReport(cmd.OutOrStdout(), settings)
	return nil
}

// Longest value shown by config where before truncation.
const maxWhereValue = 50

// writeSourceReport prints settings grouped by source in precedence order.
func writeSourceReport(w io.Writer, settings []config.SettingInfo) {
	type group struct {
		source   config.ConfigSource
		path     string
		settings []config.SettingInfo
	}

	order := map[config.ConfigSource]int{
		config.SourceDefault:     0,
		config.SourceSystem:      1,
		config.SourceUser:        2,
		config.SourceProject:     3,
		config.SourceExplicit:    4,
		config.SourceEnvironment: 5,
	}

	groups := map[string]*group{}
	for _, s := range settings {
		key := string(s.Source)
		path := ""
		if s.Source != config.SourceDefault && s.Source != config.SourceEnvironment {
			key, path = s.SourcePath, s.SourcePath
		}
		g, ok := groups[key]
		if !ok {
			g = &group{source: s.Source, path: path}
			groups[key] = g
		}
		g.settings = append(g.settings, s)
	}

	sorted := make([]*group, 0, len(groups))
	for _, g := range groups {
		sorted = append(sorted, g)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if order[sorted[i].source] != order[sorted[j].source] {
			return order[sorted[i].source] < order[sorted[j].source]
		}
		return sorted[i].path < sorted[j].path
	})

	fmt.Fprintln(w, "Active configuration (later overrides earlier):")
	for _, g := range sorted {
		switch {
		case g.path != "":
			fmt.Fprintf(w, "\n%s: %d settings from %s\n", g.source, len(g.settings), g.path)
		case g.source == config.SourceEnvironment:
			fmt.Fprintf(w, "\n%s: %d settings from environment variables\n", g.source, len(g.settings))
		default:
			fmt.Fprintf(w, "\n%s: %d settings\n", g.source, len(g.settings))
		}
		for _, s := range g.settings {
			value := util.Truncate(fmt.Sprintf("%v", s.Value), maxWhereValue)
			if g.source == config.SourceEnvironment {
				fmt.Fprintf(w, "  %s = %s (%s)\n", s.Key, value, s.SourcePath)
				continue
			}
			fmt.Fprintf(w, "  %s = %s\n", s.Key, value)
		}
	}
}
