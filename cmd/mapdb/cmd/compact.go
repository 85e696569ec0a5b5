package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// compactCmd represents the compact command
var compactCmd = &cobra.Command{
	Use:   "compact",
	Short: "Shrink the allocable recid space",
	Long: `Discard free recids above the highest live recid and lower the
high-water mark to it, then commit. Useful after bulk deletions.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		st, err := openStore(cmd)
		if err != nil {
			fmt.Printf("Error opening store: %v\n", err)
			return
		}
		defer st.Close()

		before := st.Stats()
		if err := st.Compact(); err != nil {
			fmt.Printf("Error compacting: %v\n", err)
			return
		}
		if err := st.Commit(); err != nil {
			fmt.Printf("Error committing: %v\n", err)
			return
		}
		after := st.Stats()

		fmt.Printf("Compacted: maxRecid %d -> %d, free recids %d -> %d\n",
			before.MaxRecid, after.MaxRecid, before.FreeRecids, after.FreeRecids)
	},
}

func init() {
	rootCmd.AddCommand(compactCmd)
}
