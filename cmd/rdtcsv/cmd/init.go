/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/rdtcsv/pkg/codeplug"
	"github.com/ssargent/rdtcsv/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file for rdtcsv",
	Long: `Write a configuration file with default values and the given schema.

This command will:
- Check that the schema compiles
- Create the configuration directory
- Write the configuration file

Examples:
	  rdtcsv init --schema ./md380.yaml
	  rdtcsv init --schema ./md380.yaml --config ./rdtcsv.yaml --force`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		schemaPath, _ := cmd.Flags().GetString("schema")
		force, _ := cmd.Flags().GetBool("force")

		cfg, err := initializeConfig(configPath, schemaPath, force)
		if err != nil {
			return err
		}

		cmd.Printf("Configuration written to %s\n", configPath)
		if cfg.Backup.Enabled {
			cmd.Printf("Backups are kept in %s\n", cfg.Backup.Dir)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration file")
}

// initializeConfig writes a default configuration at configPath. The schema,
// when given, must compile.
func initializeConfig(configPath, schemaPath string, force bool) (*config.Config, error) {
	if config.ConfigExists(configPath) && !force {
		return nil, fmt.Errorf("configuration %s already exists, use --force to overwrite", configPath)
	}
	if schemaPath != "" {
		if _, err := codeplug.LoadSchema(schemaPath); err != nil {
			return nil, err
		}
	}
	return config.BootstrapConfig(configPath, schemaPath)
}
