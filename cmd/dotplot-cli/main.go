package main

import (
	"dotplot-scraper/cmd/dotplot-cli/commands"
	"dotplot-scraper/lib/serviceutil"
	"dotplot-scraper/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()
	telemetry.InitSlog(false)
	tel, err := telemetry.SetupFromEnv(ctx, "dotplot-cli")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer tel.Shutdown(ctx)
	telemetry.InstrumentPerfStats(ctx)

	commands.ExecuteContext(ctx)
}
