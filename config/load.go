package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/teranos/mousemacro/errors"
	"github.com/teranos/mousemacro/logger"
)

// EnvPrefix namespaces environment overrides: macro.x -> MOUSEMACRO_MACRO_X
const EnvPrefix = "MOUSEMACRO"

// ProjectConfigName is searched for from the working directory upward
const ProjectConfigName = "mousemacro.toml"

// SystemConfigPath is the lowest-precedence config file
var SystemConfigPath = "/etc/mousemacro/config.toml"

var (
	mu            sync.Mutex
	globalConfig  *Config
	viperInstance *viper.Viper
	explicitPath  string

	// ConfigSources records, per dotted key, the file that last set it
	ConfigSources = map[string]SourceInfo{}
	loadedFiles   []string
)

// SetConfigFile adds an explicit config file above the project config.
// It clears the cached configuration.
func SetConfigFile(path string) {
	mu.Lock()
	defer mu.Unlock()
	explicitPath = path
	resetLocked()
}

// Load reads the mousemacro configuration using Viper
func Load() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalConfig != nil {
		return globalConfig, nil
	}

	v, err := initViperLocked()
	if err != nil {
		return nil, err
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, err
	}

	globalConfig = cfg
	return globalConfig, nil
}

// GetViper returns the Viper instance for advanced configuration access
func GetViper() (*viper.Viper, error) {
	mu.Lock()
	defer mu.Unlock()
	return initViperLocked()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &cfg, nil
}

// LoadFromFile loads configuration from a specific file path on top of defaults
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	// Defaults only; environment variables do not apply to a single-file load
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", configPath)
	}
	return cfg, nil
}

// Reset clears the cached configuration (useful for testing and reloads)
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	resetLocked()
}

func resetLocked() {
	globalConfig = nil
	viperInstance = nil
	ConfigSources = map[string]SourceInfo{}
	loadedFiles = nil
}

// LoadedFiles lists the config files merged by the last load, lowest precedence first.
func LoadedFiles() []string {
	mu.Lock()
	defer mu.Unlock()
	return append([]string(nil), loadedFiles...)
}

// initViperLocked initializes Viper with configuration sources and defaults
func initViperLocked() (*viper.Viper, error) {
	if viperInstance != nil {
		return viperInstance, nil
	}

	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := mergeConfigFiles(v); err != nil {
		return nil, err
	}

	viperInstance = v
	return v, nil
}

// findProjectConfig searches for mousemacro.toml by walking up the directory tree.
// Returns "" when none is found.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		candidate := filepath.Join(dir, ProjectConfigName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

type layer struct {
	path   string
	source ConfigSource
}

// mergeConfigFiles merges configuration files in precedence order.
// Precedence (lowest to highest): system < user < project < explicit < env vars
func mergeConfigFiles(v *viper.Viper) error {
	layers := []layer{{SystemConfigPath, SourceSystem}}
	if dir := UserDir(); dir != "" {
		layers = append(layers, layer{filepath.Join(dir, "config.toml"), SourceUser})
	}
	if project := findProjectConfig(); project != "" {
		layers = append(layers, layer{project, SourceProject})
	}
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return errors.Wrapf(err, "config file %s", explicitPath)
		}
		layers = append(layers, layer{explicitPath, SourceExplicit})
	}

	for _, l := range layers {
		if _, err := os.Stat(l.path); err != nil {
			continue
		}

		fileViper := viper.New()
		fileViper.SetConfigFile(l.path)
		fileViper.SetConfigType("toml")
		if err := fileViper.ReadInConfig(); err != nil {
			if l.source == SourceExplicit {
				return errors.Wrapf(err, "failed to read config file %s", l.path)
			}
			logger.Warnw("Skipping unreadable config file", logger.FieldPath, l.path, logger.FieldError, err)
			continue
		}

		// Merged into the config layer (not Set) so env vars still win;
		// nested tables merge key by key.
		if err := v.MergeConfigMap(fileViper.AllSettings()); err != nil {
			return errors.Wrapf(err, "failed to merge config file %s", l.path)
		}
		keys := fileViper.AllKeys()
		sort.Strings(keys)
		for _, key := range keys {
			ConfigSources[key] = SourceInfo{Source: l.source, Path: l.path}
		}
		loadedFiles = append(loadedFiles, l.path)
	}
	return nil
}

// WatchPath is the file whose changes should trigger a reload: the
// highest-precedence file that was merged, or "" when only defaults apply.
func WatchPath() string {
	files := LoadedFiles()
	if len(files) == 0 {
		return ""
	}
	return files[len(files)-1]
}
