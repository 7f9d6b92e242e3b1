package main

import (
	"context"
	"os"

	"github.com/lapenya/quiniela/internal/app"
	"github.com/lapenya/quiniela/internal/config"
	"github.com/lapenya/quiniela/internal/platform/logging"
)

// One pipeline pass per invocation. A scheduler (cron, systemd timer) owns
// the cadence; the process exits non-zero when the pass fails so the
// scheduler can alert.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PipelineRunTimeout)
	defer cancel()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	result, err := application.Pipeline.Run(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "pipeline run failed", "error", err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "pipeline run complete",
		"unchanged", result.Unchanged,
		"match_count", result.MatchCount,
		"skipped_records", result.SkippedRecords,
		"current_round", result.CurrentRound,
		"archived_submissions", result.ArchivedSubmissions,
		"players_ranked", result.PlayersRanked,
		"settlement_error", result.SettlementError,
	)
	if result.SettlementError != "" {
		os.Exit(1)
	}
}
