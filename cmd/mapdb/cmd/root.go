/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gisdevelope/mapdb/pkg/store"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mapdb",
	Short: "mapdb - recid-indexed record store",
	Long: `mapdb is a minimal record-oriented storage engine: small integer
record identifiers (recids) mapped to opaque payloads, with whole-snapshot
persistence and atomic commit/rollback via commit marker files.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global backing path flag
	rootCmd.PersistentFlags().StringP("path", "p", "./data/records.db", "Backing path for the record store")
}

// openStore opens the persistent store at the configured backing path.
// Each command runs against its own short-lived handle; the on-disk
// lock keeps concurrent invocations honest.
func openStore(cmd *cobra.Command) (*store.FileStore, error) {
	path, _ := cmd.Flags().GetString("path")
	return store.OpenFileStore(path, store.DefaultOptions())
}
