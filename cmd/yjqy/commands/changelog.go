package commands

import (
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(changelogCmd)
}

var changelogCmd = &cobra.Command{
	Use:   "changelog <school>",
	Short: "Prints the version history of a school's query site.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()
		school := resolveSchool(cmd.Context(), client, args[0])

		changelog, err := client.Changelog(cmd.Context(), school.Code)
		if err != nil {
			fatal("failed to get changelog", err)
		}

		t := NewTable()
		t.SetTitle(school.Name)
		t.AppendHeader(table.Row{"Date", "Version", "Text"})
		for _, entry := range changelog {
			t.AppendRow(table.Row{entry.Date.Format(time.DateOnly), entry.Version, entry.Text})
		}
		t.Render()
	},
}
