package main

import (
	"context"
	"fmt"

	"github.com/tkaraev/go-progress-tracker/internal/app"
	"github.com/tkaraev/go-progress-tracker/internal/config"
	"github.com/tkaraev/go-progress-tracker/internal/logger"
	"github.com/tkaraev/go-progress-tracker/internal/service"
	"github.com/tkaraev/go-progress-tracker/internal/store"
	"github.com/tkaraev/go-progress-tracker/internal/tui"
	"github.com/tkaraev/go-progress-tracker/internal/utils"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// logs go to a file so they never fight the terminal UI for the screen
	log := logger.NewFileLogger("progress-tracker")

	// every log line of this run carries the same id
	runID := utils.NewUUIDGenerator().Generate()
	runLog := &logger.Logger{Logger: log.With().Str("run_id", runID).Logger()}

	// zerolog's Fatal calls os.Exit, which skips defers; run() owns every
	// deferred cleanup so it unwinds before we exit
	if err := run(runLog); err != nil {
		runLog.Fatal().Err(err).Msg("progress tracker exited with error")
	}
}

func run(runLog *logger.Logger) error {
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}
	runLog.Info().
		Str("version", cfg.App.Version).
		Str("driver", cfg.Storage.DB.Driver).
		Msg("starting progress tracker")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, runLog)
	if err != nil {
		return fmt.Errorf("create storages: %w", err)
	}
	defer storages.Close()

	services := service.NewServices(storages, runLog)

	ui, err := tui.New(services, runLog)
	if err != nil {
		return fmt.Errorf("error creating ui: %w", err)
	}

	application, err := app.NewApp(services, ui, runLog)
	if err != nil {
		return fmt.Errorf("init app error: %w", err)
	}

	return application.Run()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
