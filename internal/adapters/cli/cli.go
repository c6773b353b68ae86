package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"fulfillment-invoicer/internal/adapters/csvin"
	"fulfillment-invoicer/internal/adapters/xlsxout"
	"fulfillment-invoicer/internal/app"
	"fulfillment-invoicer/internal/config"
	"fulfillment-invoicer/internal/core"
	"fulfillment-invoicer/internal/watch"
)

// Options carries everything Run needs besides the service itself.
// Zero-value dates and empty paths are prompted for interactively.
type Options struct {
	InputPath  string
	OutputPath string
	TariffPath string
	StartDate  time.Time
	EndDate    time.Time
	OnInvalid  core.ValidationPolicy
	Watch      bool
}

// Run drives one invoice run, or keeps re-running in watch mode until the
// context is cancelled.
func Run(ctx context.Context, svc app.ApplicationService, opts Options, logger zerolog.Logger) error {
	reader := bufio.NewReader(os.Stdin)

	if opts.InputPath == "" {
		opts.InputPath = promptString(reader, "Enter the path of the order export CSV: ")
		if opts.InputPath == "" {
			return errors.New("no input file given")
		}
	}
	if opts.StartDate.IsZero() {
		start, err := promptDate(reader, "Enter the start date (DD.MM.YYYY): ")
		if err != nil {
			return err
		}
		opts.StartDate = start
	}
	if opts.EndDate.IsZero() {
		end, err := promptDate(reader, "Enter the end date (DD.MM.YYYY): ")
		if err != nil {
			return err
		}
		opts.EndDate = end
	}
	if opts.OutputPath == "" {
		opts.OutputPath = promptOutputPath(reader)
	}
	opts.OutputPath = ensureXLSX(opts.OutputPath)

	if err := runOnce(ctx, svc, opts, logger); err != nil {
		return err
	}
	if !opts.Watch {
		return nil
	}
	return watchAndRerun(ctx, svc, opts, logger)
}

// runOnce reads the export and tariff fresh, processes them, and writes the
// workbook. Watch mode calls this again on every change, so rate edits are
// picked up without restarting.
func runOnce(ctx context.Context, svc app.ApplicationService, opts Options, logger zerolog.Logger) error {
	read, err := csvin.ReadFile(opts.InputPath)
	if err != nil {
		return fmt.Errorf("failed to read export: %w", err)
	}
	logger.Debug().Str("input", opts.InputPath).Int("rows", read.RowsRead).Msg("export read")

	tariffCfg, err := config.LoadTariff(opts.TariffPath)
	if err != nil {
		return fmt.Errorf("failed to load tariff: %w", err)
	}

	result, err := svc.ProcessExport(ctx, app.ProcessRequest{
		Records:          read.Records,
		Tariff:           tariffCfg.Rates(),
		StartDate:        opts.StartDate,
		EndDate:          opts.EndDate,
		ProtectionLabels: tariffCfg.Protection.Labels,
		OnInvalid:        opts.OnInvalid,
	})
	if err != nil {
		return err
	}

	if err := xlsxout.WriteFile(result, opts.OutputPath); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	printRunSummary(result, opts.OutputPath)
	return nil
}

func watchAndRerun(ctx context.Context, svc app.ApplicationService, opts Options, logger zerolog.Logger) error {
	rerun := func(paths []string) {
		logger.Info().Strs("changed", paths).Msg("input changed, re-running")
		if err := runOnce(ctx, svc, opts, logger); err != nil {
			logger.Error().Err(err).Msg("re-run failed")
		}
	}

	w := watch.New([]string{opts.InputPath, opts.TariffPath}, 0, rerun, logger)
	if err := w.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	fmt.Println("Watching for changes. Press Ctrl-C to stop.")

	<-ctx.Done()
	w.Stop()
	return nil
}
