// Init command for the larder CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize larder storage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Resolve config directory (flag > env > default) and ensure it
		// exists with a default config.yaml.
		configDir, err := resolveConfigDir()
		if err != nil {
			fatalSys("init", err)
		}
		if err := ensureConfigDir(configDir); err != nil {
			fatalSys("init", err)
		}
		if err := ensureDefaultConfigFile(configDir); err != nil {
			fatalSys("init", err)
		}

		// Opening the storage creates the data directory and schema.
		env, err := openEnv(cmd.Context())
		if err != nil {
			fatalSys("init", err)
		}
		defer env.Close()

		dataDir, err := resolveDataDir()
		if err != nil {
			fatalSys("init", err)
		}

		fmt.Println("Larder initialized successfully")
		fmt.Println("  config:", configDir)
		fmt.Println("  data:  ", dataDir)
		return nil
	},
}
