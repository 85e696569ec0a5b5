package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gisdevelope/mapdb/pkg/serializer"
)

var putNull bool

// putCmd represents the put command
var putCmd = &cobra.Command{
	Use:   "put <value>",
	Short: "Store a value under a fresh recid",
	Long: `Store a value under a freshly allocated recid and commit.

Example:
  mapdb put "hello world"
  mapdb put --null`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !putNull && len(args) != 1 {
			fmt.Println("Error: a value is required unless --null is given")
			return
		}

		st, err := openStore(cmd)
		if err != nil {
			fmt.Printf("Error opening store: %v\n", err)
			return
		}
		defer st.Close()

		var value any
		if !putNull {
			value = args[0]
		}
		recid, err := st.Put(value, serializer.String{})
		if err != nil {
			fmt.Printf("Error storing value: %v\n", err)
			return
		}
		if err := st.Commit(); err != nil {
			fmt.Printf("Error committing: %v\n", err)
			return
		}

		fmt.Printf("Stored under recid %d\n", recid)
	},
}

func init() {
	rootCmd.AddCommand(putCmd)
	putCmd.Flags().BoolVar(&putNull, "null", false, "Store the null sentinel instead of a value")
}
