package commands

import (
	"context"
	"fmt"
	"os"

	"dotplot-scraper/lib/configutil"
	"dotplot-scraper/lib/scrapers/fomc"
	"dotplot-scraper/lib/serviceutil"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dotplot-cli",
	Short: "dotplot-cli extracts the FOMC dot plot projections as CSV.",
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type Config struct {
	BaseUrl   string `json:"base_url"`
	UploadUrl string `json:"upload_url"`
}

func readConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to read config", err)
	}
	return cfg
}

func createClient(flagBaseUrl string) *fomc.Client {
	baseUrl := readConfig().BaseUrl
	if flagBaseUrl != "" {
		baseUrl = flagBaseUrl
	}

	client, err := fomc.NewClient(fomc.ClientOptions{BaseUrl: baseUrl})
	if err != nil {
		serviceutil.Fatal("failed to initialize scrape client", err)
	}
	return client
}
