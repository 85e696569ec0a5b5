/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gisdevelope/mapdb/pkg/api"
	"github.com/gisdevelope/mapdb/pkg/config"
	"github.com/gisdevelope/mapdb/pkg/di"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the record store REST API server.

The server exposes recid-indexed CRUD, transaction boundaries and
maintenance operations under /api/v1, protected by an API key, plus
an unprotected Prometheus /metrics endpoint.

Examples:
  mapdb serve
  mapdb serve --config=./mapdb.yaml
  mapdb serve --api-key=mysecretkey --port=8080`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		var cfg *config.Config
		if config.ConfigExists(configPath) {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				cmd.Printf("Error loading config: %v\n", err)
				return
			}
			cfg = loaded
		} else {
			cfg = config.DefaultConfig()
		}

		// Flag overrides take precedence over the config file.
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind") {
			cfg.Bind, _ = cmd.Flags().GetString("bind")
		}
		if cmd.Flags().Changed("api-key") {
			cfg.Security.APIKey, _ = cmd.Flags().GetString("api-key")
		}
		if cmd.Flags().Changed("path") {
			cfg.Path, _ = cmd.Flags().GetString("path")
		}

		if cfg.Security.APIKey == "" || cfg.Security.APIKey == "auto" {
			key, err := config.GenerateSecureKey(32)
			if err != nil {
				cmd.Printf("Error generating API key: %v\n", err)
				return
			}
			cfg.Security.APIKey = key
			cmd.Printf("Generated API key: %s\n", key)
			cmd.Printf("(run 'mapdb init' to persist a key in %s)\n", configPath)
		}

		container := di.NewContainer(cfg)

		st, err := container.OpenStore()
		if err != nil {
			cmd.Printf("Error opening store at %s: %v\n", cfg.Path, err)
			return
		}
		defer st.Close()

		if err := api.StartServer(st, container.ServerConfig()); err != nil {
			cmd.Printf("Error starting server: %v\n", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("config", "", fmt.Sprintf("Config file path (default %s)", config.GetDefaultConfigPath()))
	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind to")
	serveCmd.Flags().String("api-key", "", "API key protecting /api/v1 (overrides config)")
}
