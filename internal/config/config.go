package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DataFile string    `yaml:"data_file" mapstructure:"data_file"`
	UI       string    `yaml:"ui" mapstructure:"ui"`
	Log      LogConfig `yaml:"log" mapstructure:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	File   string `yaml:"file" mapstructure:"file"`
	Format string `yaml:"format" mapstructure:"format"`
}

const (
	UITerminal = "tui"
	UIPlain    = "plain"
)

var envVarRe = regexp.MustCompile(`\$([A-Z_][A-Z0-9_]*)`)

func expandEnv(s string) string {
	return envVarRe.ReplaceAllStringFunc(s, func(match string) string {
		name := strings.TrimPrefix(match, "$")
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}

// expandHome resolves a leading ~ to the user's home directory.
func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

func DefaultConfig() *Config {
	return &Config{
		DataFile: "phonebook.txt",
		UI:       UITerminal,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// ExpandPath resolves $VARS and a leading ~ the same way Load does for
// paths read from the config file.
func ExpandPath(p string) string {
	return expandHome(expandEnv(p))
}

// Dir returns the per-user configuration directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "phonebook")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "phonebook")
}

// searchDirs lists where Load looks for config.yaml, in order: the working
// directory, $XDG_CONFIG_HOME/phonebook, then ~/.config/phonebook.
func searchDirs() []string {
	dirs := []string{".", Dir()}
	if home, err := os.UserHomeDir(); err == nil {
		if fallback := filepath.Join(home, ".config", "phonebook"); fallback != dirs[1] {
			dirs = append(dirs, fallback)
		}
	}
	return dirs
}

// DefaultPath is where `config init` writes when no path is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads the configuration. An explicit path must exist; otherwise
// config.yaml is searched in the working directory and the user config
// directory, and defaults apply when none is found. PHONEBOOK_* environment
// variables override file values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		for _, dir := range searchDirs() {
			v.AddConfigPath(dir)
		}
	}

	// Defaults must be registered for AutomaticEnv to see nested keys.
	v.SetDefault("data_file", cfg.DataFile)
	v.SetDefault("ui", cfg.UI)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.format", cfg.Log.Format)

	v.SetEnvPrefix("PHONEBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg.DataFile = ExpandPath(cfg.DataFile)
	cfg.Log.File = ExpandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataFile) == "" {
		return fmt.Errorf("config: data_file is required")
	}
	switch c.UI {
	case UITerminal, UIPlain:
	default:
		return fmt.Errorf("config: ui %q is invalid (must be tui or plain)", c.UI)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("config: log.format %q is invalid (must be text or json)", c.Log.Format)
	}
	return nil
}
