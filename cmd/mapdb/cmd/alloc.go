package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// allocCmd represents the alloc command
var allocCmd = &cobra.Command{
	Use:   "alloc",
	Short: "Preallocate a recid holding the null sentinel",
	Long: `Reserve a recid before its payload is known. The slot holds the null
sentinel until a later update fills it.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		st, err := openStore(cmd)
		if err != nil {
			fmt.Printf("Error opening store: %v\n", err)
			return
		}
		defer st.Close()

		recid, err := st.Preallocate()
		if err != nil {
			fmt.Printf("Error preallocating: %v\n", err)
			return
		}
		if err := st.Commit(); err != nil {
			fmt.Printf("Error committing: %v\n", err)
			return
		}

		fmt.Printf("Preallocated recid %d\n", recid)
	},
}

func init() {
	rootCmd.AddCommand(allocCmd)
}
