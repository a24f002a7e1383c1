// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"mwcli/internal/config"
)

// configCmd is the `mwcli config` command tree.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage mwcli configuration",
	Long: `Manage mwcli configuration.

Configuration is stored in:
  - Linux: ~/.config/mwcli/config.toml
  - macOS: ~/Library/Application Support/mwcli/config.toml
  - Windows: %APPDATA%\mwcli\config.toml

Environment variables (MWCLI_HOST, MWCLI_PATH, ...) override the file;
command-line flags override both.`,
	RunE: func(cobraCmd *cobra.Command, args []string) error {
		return cobraCmd.Help()
	},
}

func init() {
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return showConfig(cobraCmd)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return initConfigFile(cobraCmd)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file path",
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			path, err := config.ConfigFilePath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cobraCmd.OutOrStdout(), path)
			return nil
		},
	})
}

// showConfig prints the resolved configuration (file + env + flags) as TOML.
// The password is masked.
func showConfig(cobraCmd *cobra.Command) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	if cfg.Password != "" {
		cfg.Password = "********"
	}
	out, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}
	fmt.Fprint(cobraCmd.OutOrStdout(), string(out))
	return nil
}

// initConfigFile writes the default configuration, refusing to overwrite an
// existing file.
func initConfigFile(cobraCmd *cobra.Command) error {
	path, err := config.ConfigFilePath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return &ExitError{Code: exitUsage, Err: fmt.Errorf("config file already exists: %s", path)}
	}

	out, err := toml.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("encode default configuration: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return err
	}
	fmt.Fprintln(cobraCmd.OutOrStdout(), "created", path)
	return nil
}
