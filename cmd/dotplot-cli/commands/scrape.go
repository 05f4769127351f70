package commands

import (
	"log/slog"
	"os"
	"time"

	"dotplot-scraper/lib/scrapers/fomc"
	"dotplot-scraper/lib/serviceutil"

	"github.com/spf13/cobra"
)

var scrapeBaseUrl *string

func init() {
	scrapeBaseUrl = scrapeCmd.Flags().String("base-url", "", "Override the source site base url.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--base-url <url>]",
	Short: "Scrapes every published dot plot and writes CSV to stdout.",
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient(*scrapeBaseUrl)

		t1 := time.Now()
		rows, err := client.Scrape(cmd.Context())
		if err != nil {
			serviceutil.Fatal("scrape failed", err)
		}
		t2 := time.Now()
		slog.Info("scraping time", "seconds", t2.Sub(t1).Seconds(), "rows", len(rows))

		err = fomc.WriteCSV(os.Stdout, rows)
		if err != nil {
			serviceutil.Fatal("failed to write csv", err)
		}
	},
}
