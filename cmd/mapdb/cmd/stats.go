package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show store statistics",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		st, err := openStore(cmd)
		if err != nil {
			fmt.Printf("Error opening store: %v\n", err)
			return
		}
		defer st.Close()

		stats := st.Stats()
		fmt.Printf("Records:     %d\n", stats.Records)
		fmt.Printf("Free recids: %d\n", stats.FreeRecids)
		fmt.Printf("Max recid:   %d\n", stats.MaxRecid)
		fmt.Printf("Version:     %d\n", stats.Version)
		for _, f := range st.Files() {
			fmt.Printf("File:        %s\n", f)
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
