/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gisdevelope/mapdb/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the server configuration",
	Long: `Write a configuration file with a freshly generated API key.

This command will:
- Create the config directory if needed
- Generate a secure random API key
- Write the configuration with restrictive permissions

Examples:
  mapdb init
  mapdb init --config=./mapdb.yaml --path=./data/records.db`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		storePath, _ := cmd.Flags().GetString("path")
		force, _ := cmd.Flags().GetBool("force")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(configPath) && !force {
			cmd.Printf("Config already exists at %s. Use --force to overwrite.\n", configPath)
			return
		}

		cfg, err := config.BootstrapConfig(configPath, storePath)
		if err != nil {
			cmd.Printf("Error initializing config: %v\n", err)
			return
		}

		cmd.Printf("Configuration written to %s\n", configPath)
		cmd.Printf("Store path: %s\n", cfg.Path)
		cmd.Printf("API key: %s\n", cfg.Security.APIKey)
		cmd.Printf("\nYou can now start the server with:\n")
		cmd.Printf("  mapdb serve --config=%s\n", configPath)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().String("config", "", fmt.Sprintf("Config file path (default %s)", config.GetDefaultConfigPath()))
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}
