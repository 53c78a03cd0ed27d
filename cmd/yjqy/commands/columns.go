package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(columnsCmd)
}

var columnsCmd = &cobra.Command{
	Use:   "columns <school> <query-id>",
	Short: "Lists the identity fields a query asks for.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()
		school := resolveSchool(cmd.Context(), client, args[0])
		id := parseQueryId(args[1])

		columns, err := client.InputColumns(cmd.Context(), school.Code, id)
		if err != nil {
			fatal("failed to get input columns", err)
		}

		t := NewTable()
		t.SetTitle(fmt.Sprintf("%s: %d", school.Name, id))
		t.AppendHeader(table.Row{"Id", "Text"})
		for _, c := range columns {
			t.AppendRow(table.Row{c.Id, c.Text})
		}
		t.Render()
	},
}
