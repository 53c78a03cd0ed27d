package commands

import (
	"fmt"
	"os"
	"yjqy-scraper/internal/dump"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(recordsCmd)
}

var recordsCmd = &cobra.Command{
	Use:   "records <school> <query-id>",
	Short: "Prints the records of one query as json, in the same format the dump writes.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()
		school := resolveSchool(cmd.Context(), client, args[0])
		id := parseQueryId(args[1])

		records, err := client.Records(cmd.Context(), school.Code, id)
		if err != nil {
			fatal("failed to get records", err)
		}
		err = dump.EncodeResultSet(os.Stdout, records)
		if err != nil {
			fatal("failed to encode records", err)
		}
		fmt.Println()
	},
}
