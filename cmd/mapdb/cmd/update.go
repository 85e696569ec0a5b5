package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gisdevelope/mapdb/pkg/serializer"
	"github.com/gisdevelope/mapdb/pkg/store"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update <recid> <value>",
	Short: "Overwrite the value stored under a recid",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		recid, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			fmt.Printf("Error: invalid recid %q\n", args[0])
			return
		}

		st, err := openStore(cmd)
		if err != nil {
			fmt.Printf("Error opening store: %v\n", err)
			return
		}
		defer st.Close()

		if err := st.Update(recid, args[1], serializer.String{}); err != nil {
			if store.IsVoid(err) {
				fmt.Printf("Recid %d does not exist\n", recid)
			} else {
				fmt.Printf("Error updating recid %d: %v\n", recid, err)
			}
			return
		}
		if err := st.Commit(); err != nil {
			fmt.Printf("Error committing: %v\n", err)
			return
		}

		fmt.Printf("Updated recid %d\n", recid)
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
