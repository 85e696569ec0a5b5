package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Audit the store invariants",
	Long: `Run the full consistency audit: every recid up to the high-water mark
must be live or free, never both and never neither. This is an
O(maxRecid) scan meant for diagnostics.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		st, err := openStore(cmd)
		if err != nil {
			fmt.Printf("Error opening store: %v\n", err)
			return
		}
		defer st.Close()

		if err := st.Verify(); err != nil {
			fmt.Printf("Verification FAILED: %v\n", err)
			return
		}
		fmt.Println("Store is consistent")
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
