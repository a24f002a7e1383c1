// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper.
//
// Precedence, highest first: command-line flags (applied by the cmd layer),
// MWCLI_* environment variables, the optional TOML config file, built-in
// defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"

	"mwcli/internal/issue"
)

const (
	// AppName is the application name.
	AppName = "mwcli"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
)

// Config holds every global option of the CLI. Field names map 1:1 to the
// global flags and the MWCLI_* environment variables.
type Config struct {
	// Host is the wiki host without scheme. Env: MWCLI_HOST.
	Host string `mapstructure:"host" toml:"host"`
	// Path is the MediaWiki script path with trailing slash. Env: MWCLI_PATH.
	Path string `mapstructure:"path" toml:"path"`
	// Ext is the script extension. Env: MWCLI_EXT.
	Ext string `mapstructure:"ext" toml:"ext"`
	// Scheme is http or https. Env: MWCLI_SCHEME.
	Scheme Scheme `mapstructure:"scheme" toml:"scheme"`
	// Username is the login username. Env: MWCLI_USERNAME.
	Username string `mapstructure:"username" toml:"username"`
	// Password is the login password. Env: MWCLI_PASSWORD.
	Password string `mapstructure:"password" toml:"password"`
	// UserAgent is a custom user-agent prefix. Env: MWCLI_USER_AGENT.
	UserAgent string `mapstructure:"user_agent" toml:"user_agent"`
	// AllowAnon permits unauthenticated write calls.
	AllowAnon bool `mapstructure:"allow_anon" toml:"allow_anon"`
	// NoInit skips the initial siteinfo request.
	NoInit bool `mapstructure:"no_init" toml:"no_init"`
	// Indent pretty-prints JSON output with this many spaces (0 = compact).
	Indent IndentWidth `mapstructure:"indent" toml:"indent"`
	// Markdown converts content-read results to Markdown.
	Markdown bool `mapstructure:"markdown" toml:"markdown"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Path:   "/w/",
		Ext:    ".php",
		Scheme: SchemeHTTPS,
	}
}

// ConfigDir returns the mwcli configuration directory using platform
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application
// Support, and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// ConfigFilePath returns the full path of the config file.
func ConfigFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), nil
}

// Load resolves the configuration from environment variables and the
// optional config file. A missing config file is not an error; an unreadable
// or malformed one is.
func Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("path", defaults.Path)
	v.SetDefault("ext", defaults.Ext)
	v.SetDefault("scheme", string(defaults.Scheme))

	// Explicit bindings: the env names predate the config file and do not
	// all follow the MWCLI_<KEY> derivation (user_agent -> MWCLI_USER_AGENT
	// happens to, but being explicit keeps the contract visible).
	bindings := map[string]string{
		"host":       "MWCLI_HOST",
		"path":       "MWCLI_PATH",
		"ext":        "MWCLI_EXT",
		"scheme":     "MWCLI_SCHEME",
		"username":   "MWCLI_USERNAME",
		"password":   "MWCLI_PASSWORD",
		"user_agent": "MWCLI_USER_AGENT",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	cfgDir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	v.SetConfigName(ConfigFileName)
	v.SetConfigType(ConfigFileExt)
	v.AddConfigPath(cfgDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)).
				WithSuggestion("Check the file for TOML syntax errors").
				WithSuggestion("Run 'mwcli config init' to recreate the default file").
				Wrap(err).
				BuildError()
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, issue.WrapWithOperation(err, "decode configuration")
	}
	return cfg, nil
}

// Validate checks the value-level invariants. A missing host is legal here;
// commands that dispatch a call check it separately via RequireHost.
func (c *Config) Validate() error {
	if err := c.Scheme.Validate(); err != nil {
		return err
	}
	if err := c.Indent.Validate(); err != nil {
		return err
	}
	if (c.Username == "") != (c.Password == "") {
		return ErrCredentialsMismatch
	}
	return nil
}

// RequireHost fails when no host is configured.
func (c *Config) RequireHost() error {
	if c.Host == "" {
		return ErrHostMissing
	}
	return nil
}
