// Root command for the larder CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/larder/internal/paths"
	"github.com/mesh-intelligence/larder/pkg/larder"
)

// Exit codes: 0 success, 1 user error, 2 system error.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagProfile   string
	flagJSON      bool
)

// configDataDir and configProfile hold values loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use them.
var (
	configDataDir string
	configProfile string
)

var rootCmd = &cobra.Command{
	Use:     "larder",
	Short:   "Larder is a household shopping list manager",
	Version: larder.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configDataDir = cfg.GetString(cfgKeyDataDir)
		configProfile = cfg.GetString(cfgKeyProfile)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.larder-db)")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "profile the catalog and list belong to (default: from config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(ingredientCmd)
	rootCmd.AddCommand(dishCmd)
	rootCmd.AddCommand(listCmd)
}

// resolveDataDir returns the data directory following the precedence:
// --data-dir flag > config.yaml data_dir > LARDER_DATA_DIR env > $(CWD)/.larder-db.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, configDataDir)
}

// resolveConfigDir returns the configuration directory following the precedence:
// --config-dir flag > LARDER_CONFIG_DIR env > DefaultConfigDir().
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveProfile returns the active profile: --profile flag > config.yaml
// profile > "default".
func resolveProfile() string {
	if flagProfile != "" {
		return flagProfile
	}
	if configProfile != "" {
		return configProfile
	}
	return defaultProfile
}
