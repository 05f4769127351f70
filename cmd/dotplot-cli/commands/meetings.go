package commands

import (
	"os"
	"time"

	"dotplot-scraper/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var meetingsBaseUrl *string

func init() {
	meetingsBaseUrl = meetingsCmd.Flags().String("base-url", "", "Override the source site base url.")
	rootCmd.AddCommand(meetingsCmd)
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

var meetingsCmd = &cobra.Command{
	Use:   "meetings",
	Short: "Lists the projection pages discovered on the FOMC calendar.",
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient(*meetingsBaseUrl)

		meetings, err := client.FetchMeetings(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to fetch meetings", err)
		}

		t := newTable()
		t.AppendHeader(table.Row{"Date", "URL"})
		for _, m := range meetings {
			t.AppendRow(table.Row{m.Date.Format(time.DateOnly), m.Url})
		}
		t.Render()
	},
}
