package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gisdevelope/mapdb/pkg/serializer"
	"github.com/gisdevelope/mapdb/pkg/store"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <recid>",
	Short: "Read the value stored under a recid",
	Long: `Read the value stored under a recid.

A recid holding the null sentinel prints <null>; a recid with no live
record is an error.

Example:
  mapdb get 1`,
	Args: cobra.ExactArgs(1),
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

		value, err := st.Get(recid, serializer.String{})
		if err != nil {
			if store.IsVoid(err) {
				fmt.Printf("Recid %d does not exist\n", recid)
			} else {
				fmt.Printf("Error reading recid %d: %v\n", recid, err)
			}
			return
		}
		if value == nil {
			fmt.Println("<null>")
			return
		}
		fmt.Println(value)
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
