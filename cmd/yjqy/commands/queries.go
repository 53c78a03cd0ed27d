package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(queriesCmd)
}

var queriesCmd = &cobra.Command{
	Use:   "queries <school>",
	Short: "Lists the info queries a school offers, <school> is a code or a name.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()
		school := resolveSchool(cmd.Context(), client, args[0])

		queries, err := client.Queries(cmd.Context(), school.Code)
		if err != nil {
			fatal("failed to list queries", err)
		}

		t := NewTable()
		t.SetTitle(school.Name)
		t.AppendHeader(table.Row{"Id", "Label"})
		for _, q := range queries {
			t.AppendRow(table.Row{q.Id, q.Label})
		}
		t.Render()
	},
}
