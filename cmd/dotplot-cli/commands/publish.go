package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"dotplot-scraper/lib/scrapers/fomc"
	"dotplot-scraper/lib/serviceutil"
	"dotplot-scraper/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

var publishBaseUrl *string
var publishOut *string

func init() {
	publishBaseUrl = publishCmd.Flags().String("base-url", "", "Override the source site base url.")
	publishOut = publishCmd.Flags().String("out", "data", "The directory to write artifacts to.")
	rootCmd.AddCommand(publishCmd)
}

var publishCmd = &cobra.Command{
	Use:   "publish [--out <dir>]",
	Short: "Scrapes and writes dotplot.csv plus timestamp.txt, uploading them when credentials are set.",
	Run: func(cmd *cobra.Command, args []string) {
		client := createClient(*publishBaseUrl)

		rows, err := client.Scrape(cmd.Context())
		if err != nil {
			serviceutil.Fatal("scrape failed", err)
		}

		err = os.MkdirAll(*publishOut, 0755)
		if err != nil {
			serviceutil.Fatal("failed to create output directory", err)
		}

		csvPath := filepath.Join(*publishOut, "dotplot.csv")
		f, err := os.Create(csvPath)
		if err != nil {
			serviceutil.Fatal("failed to create csv file", err)
		}
		err = fomc.WriteCSV(f, rows)
		f.Close()
		if err != nil {
			serviceutil.Fatal("failed to write csv", err)
		}

		stampPath := filepath.Join(*publishOut, "timestamp.txt")
		stamp := time.Now().Format("Mon Jan 2 15:04:05 MST 2006")
		err = os.WriteFile(stampPath, []byte(stamp+"\n"), 0644)
		if err != nil {
			serviceutil.Fatal("failed to write timestamp", err)
		}

		slog.Info("artifacts written", "csv", csvPath, "timestamp", stampPath, "rows", len(rows))

		apiKey := os.Getenv("DOTPLOT_API_KEY")
		project := os.Getenv("DOTPLOT_PROJECT")
		if apiKey == "" || project == "" {
			slog.Info("no upload credentials in environment, skipping upload")
			return
		}
		err = upload(cmd.Context(), apiKey, project, csvPath, stampPath)
		if err != nil {
			serviceutil.Fatal("upload failed", err)
		}
	},
}

// pushes the artifacts to the data-hosting endpoint configured in
// config.json5, one multipart request per file.
func upload(ctx context.Context, apiKey, project string, paths ...string) error {
	endpoint := readConfig().UploadUrl
	if endpoint == "" {
		return fmt.Errorf("upload credentials set but no upload_url in config")
	}

	client := resty.New()
	client.SetTimeout(time.Second * 30)
	telemetry.InstrumentResty(client, "dotplot-cli/upload")

	for _, path := range paths {
		res, err := client.R().
			SetContext(ctx).
			SetAuthToken(apiKey).
			SetQueryParam("project", project).
			SetFile("file", path).
			Post(endpoint)
		if err != nil {
			return err
		}
		if res.IsError() {
			return fmt.Errorf("upload %s: status %d", filepath.Base(path), res.StatusCode())
		}
		slog.InfoContext(ctx, "uploaded artifact", "file", filepath.Base(path))
	}
	return nil
}
