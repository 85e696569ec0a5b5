package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// recidsCmd represents the recids command
var recidsCmd = &cobra.Command{
	Use:   "recids",
	Short: "List the live recids",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		st, err := openStore(cmd)
		if err != nil {
			fmt.Printf("Error opening store: %v\n", err)
			return
		}
		defer st.Close()

		recids, err := st.Recids()
		if err != nil {
			fmt.Printf("Error listing recids: %v\n", err)
			return
		}
		sort.Slice(recids, func(i, j int) bool { return recids[i] < recids[j] })
		for _, recid := range recids {
			fmt.Println(recid)
		}
	},
}

func init() {
	rootCmd.AddCommand(recidsCmd)
}
