package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment-invoicer/internal/adapters/cli"
	"fulfillment-invoicer/internal/app"
	"fulfillment-invoicer/internal/config"
	"fulfillment-invoicer/internal/core"
	"fulfillment-invoicer/internal/obs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel)

	input := flag.String("input", cfg.InputFile, "path of the order export CSV")
	output := flag.String("output", cfg.OutputFile, "path of the invoice workbook to write")
	tariff := flag.String("tariff", cfg.TariffFile, "path of the tariff TOML file")
	start := flag.String("start", "", "start of the fulfillment window (DD.MM.YYYY)")
	end := flag.String("end", "", "end of the fulfillment window (DD.MM.YYYY)")
	onInvalid := flag.String("on-invalid", cfg.OnInvalid, "how to treat invalid rows: skip or abort")
	watchMode := flag.Bool("watch", cfg.Watch, "re-run when the export or tariff file changes")
	flag.Parse()

	policy, err := core.ParsePolicy(*onInvalid)
	if err != nil {
		log.Fatalf("Invalid -on-invalid value: %v", err)
	}

	opts := cli.Options{
		InputPath:  *input,
		OutputPath: *output,
		TariffPath: *tariff,
		OnInvalid:  policy,
		Watch:      *watchMode,
	}
	if *start != "" {
		opts.StartDate, err = time.Parse(cli.DateLayout, *start)
		if err != nil {
			log.Fatalf("Invalid -start date %q, expected DD.MM.YYYY", *start)
		}
	}
	if *end != "" {
		opts.EndDate, err = time.Parse(cli.DateLayout, *end)
		if err != nil {
			log.Fatalf("Invalid -end date %q, expected DD.MM.YYYY", *end)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := app.NewService(logger)
	if err := cli.Run(ctx, svc, opts, logger); err != nil {
		logger.Fatal().Err(err).Msg("run failed")
	}
}
