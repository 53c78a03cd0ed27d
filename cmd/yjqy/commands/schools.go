package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(schoolsCmd)
}

var schoolsCmd = &cobra.Command{
	Use:   "schools",
	Short: "Lists the schools of the partner directory.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		schools, err := newClient().Schools(cmd.Context())
		if err != nil {
			fatal("failed to list schools", err)
		}

		t := NewTable()
		t.AppendHeader(table.Row{"Code", "Name"})
		for _, s := range schools {
			t.AppendRow(table.Row{s.Code, s.Name})
		}
		t.Render()
	},
}
