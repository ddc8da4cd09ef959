// Package config manages wiz-iac configuration using Viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the default config file written by WriteDefault.
const FileName = ".wiz-iac.yaml"

// Config represents the application configuration.
type Config struct {
	Executable string         `mapstructure:"executable" yaml:"executable"`
	BaseArgs   []string       `mapstructure:"base_args" yaml:"base_args"`
	WorkDir    string         `mapstructure:"workdir" yaml:"workdir,omitempty"`
	Verbose    bool           `mapstructure:"verbose" yaml:"verbose"`
	Options    map[string]any `mapstructure:"options" yaml:"options"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Executable: "wizcli",
		BaseArgs:   []string{"iac", "scan"},
		Options:    map[string]any{"path": []string{"."}},
	}
}

// New returns a Viper instance with defaults and environment binding set up.
// Environment variables override file settings using the prefix WIZ_IAC_,
// e.g. WIZ_IAC_EXECUTABLE.
//
// Config files are looked up by Find in the following order, and only the
// first match is read:
// 1. ./.wiz-iac.{yaml,yml,toml}
// 2. $XDG_CONFIG_HOME/wiz-iac/wiz-iac.{yaml,yml,toml} (or ~/.config/wiz-iac/)
// 3. /etc/wiz-iac/wiz-iac.{yaml,yml,toml}
func New() *viper.Viper {
	v := viper.New()

	def := Default()
	v.SetDefault("executable", def.Executable)
	v.SetDefault("base_args", def.BaseArgs)
	v.SetDefault("workdir", "")
	v.SetDefault("verbose", false)

	v.SetEnvPrefix("WIZ_IAC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load loads configuration from file and environment variables. If file is
// non-empty it is read instead of searching the default locations and must
// exist.
func Load(file string) (*Config, string, error) {
	v := New()

	if file == "" {
		file = Find()
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("read config file: %w", err)
		}
	} else {
		// no file: defaults and env only, including the default --path
		v.SetDefault("options", Default().Options)
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, "", err
	}
	return cfg, v.ConfigFileUsed(), nil
}

// Find returns the first existing config file, or "" if there is none. The
// repository's own file wins over user and system wide files.
func Find() string {
	candidates := []struct{ dir, name string }{
		{".", ".wiz-iac"},
		{getXDGConfigPath(), "wiz-iac"},
		{"/etc/wiz-iac", "wiz-iac"},
	}
	for _, c := range candidates {
		for _, ext := range []string{"yaml", "yml", "toml"} {
			path := filepath.Join(c.dir, c.name+"."+ext)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
	}
	return ""
}

// LoadWithViper loads configuration using a provided Viper instance.
// This is useful for testing or when you want to configure Viper differently.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// WriteDefault writes the default configuration as YAML to dir. An existing
// file is only replaced when force is set.
func WriteDefault(dir string, force bool) (string, error) {
	path := filepath.Join(dir, FileName)
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(Default()); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// getXDGConfigPath returns the XDG config directory for wiz-iac.
func getXDGConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "wiz-iac")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if we can't get home
		return "."
	}

	return filepath.Join(homeDir, ".config", "wiz-iac")
}
