package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/lapenya/quiniela/internal/domain/match"
	"github.com/lapenya/quiniela/internal/domain/odds"
	"github.com/lapenya/quiniela/internal/domain/prediction"
	"github.com/lapenya/quiniela/internal/domain/snapshot"
	"github.com/lapenya/quiniela/internal/domain/standings"
	"github.com/lapenya/quiniela/internal/platform/logging"
)

// PipelineConfig carries the competition identity and the policy knobs for
// one pipeline instance.
type PipelineConfig struct {
	Competition string
	Season      string
	Pricing     odds.Pricing
	Scoring     prediction.ScorePolicy
}

// RunResult summarizes one pipeline invocation for logging and the manual
// trigger response.
type RunResult struct {
	Unchanged           bool   `json:"unchanged"`
	MatchCount          int    `json:"matchCount"`
	SkippedRecords      int    `json:"skippedRecords"`
	CurrentRound        int    `json:"currentRound"`
	ArchivedSubmissions int    `json:"archivedSubmissions"`
	PlayersRanked       int    `json:"playersRanked"`
	SettlementError     string `json:"settlementError,omitempty"`
}

// PipelineService runs the scheduled ingestion and settlement flow. Each run
// is single threaded end to end; idempotency comes from the conditional fetch,
// the wholesale snapshot publishes and the archive-once guarantee, never from
// locking between runs.
type PipelineService struct {
	provider  MatchProvider
	matches   match.Repository
	snapshots snapshot.Store
	current   prediction.CurrentStore
	archive   prediction.ArchiveRepository
	logger    *logging.Logger
	cfg       PipelineConfig
	now       func() time.Time
}

func NewPipelineService(
	provider MatchProvider,
	matches match.Repository,
	snapshots snapshot.Store,
	current prediction.CurrentStore,
	archive prediction.ArchiveRepository,
	logger *logging.Logger,
	cfg PipelineConfig,
) *PipelineService {
	if logger == nil {
		logger = logging.Default()
	}
	cfg.Pricing = odds.NormalizePricing(cfg.Pricing)
	if cfg.Scoring.Weight <= 0 {
		cfg.Scoring = prediction.DefaultScorePolicy()
	}
	return &PipelineService{
		provider:  provider,
		matches:   matches,
		snapshots: snapshots,
		current:   current,
		archive:   archive,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Run executes one full pipeline pass. A provider or store failure before
// settlement aborts the run with no partial writes beyond already published
// snapshots; settlement failures are reported in the result but never fail
// the run, the next pass retries them.
func (s *PipelineService) Run(ctx context.Context) (RunResult, error) {
	ctx, span := startUsecaseSpan(ctx, "pipeline.run")
	defer span.End()

	token, err := s.current.GetCacheToken(ctx)
	if err != nil {
		return RunResult{}, fmt.Errorf("load cache token: %w", err)
	}

	fetch, err := s.provider.FetchMatches(ctx, token)
	if err != nil {
		return RunResult{}, fmt.Errorf("fetch matches: %w", err)
	}

	result := RunResult{
		Unchanged:      fetch.NotModified,
		SkippedRecords: fetch.SkippedRecords,
	}

	var seasonMatches []match.Match
	if fetch.NotModified {
		stored, found, err := s.matches.ListSeason(ctx)
		if err != nil {
			return RunResult{}, fmt.Errorf("load stored season: %w", err)
		}
		if !found {
			// Unchanged upstream but nothing stored locally. Nothing to
			// publish and nothing to settle.
			s.logger.WarnContext(ctx, "provider unchanged but no stored season, skipping run")
			return result, nil
		}
		seasonMatches = stored
		result.MatchCount = len(seasonMatches)
		result.CurrentRound = match.CurrentRound(seasonMatches)
	} else {
		seasonMatches = fetch.Matches
		result.MatchCount = len(seasonMatches)
		if err := s.publish(ctx, seasonMatches, &result); err != nil {
			return RunResult{}, err
		}
		if fetch.CacheToken != "" && fetch.CacheToken != token {
			// Persisted only after the snapshots landed, so an aborted run
			// never skips reprocessing on the next pass.
			if err := s.current.SaveCacheToken(ctx, fetch.CacheToken); err != nil {
				return RunResult{}, fmt.Errorf("save cache token: %w", err)
			}
		}
	}

	s.settle(ctx, seasonMatches, &result)

	s.logger.InfoContext(ctx, "pipeline run finished",
		"unchanged", result.Unchanged,
		"matches", result.MatchCount,
		"skipped_records", result.SkippedRecords,
		"current_round", result.CurrentRound,
		"archived", result.ArchivedSubmissions,
		"players_ranked", result.PlayersRanked,
	)
	return result, nil
}

// publish stores the canonical season and replaces the read-side documents:
// all matches, the league table and the priced current round.
func (s *PipelineService) publish(ctx context.Context, seasonMatches []match.Match, result *RunResult) error {
	if err := s.matches.ReplaceSeason(ctx, seasonMatches); err != nil {
		return fmt.Errorf("store season: %w", err)
	}

	now := s.now().UTC()
	if err := s.snapshots.PublishAllMatches(ctx, snapshot.BuildAllMatches(s.cfg.Competition, s.cfg.Season, seasonMatches, now)); err != nil {
		return fmt.Errorf("publish all matches: %w", err)
	}

	table := standings.ComputeTable(seasonMatches)
	if err := s.snapshots.PublishLeagueStandings(ctx, snapshot.BuildLeagueStandings(table, now)); err != nil {
		return fmt.Errorf("publish league standings: %w", err)
	}

	round := match.CurrentRound(seasonMatches)
	fixtures := match.ByRound(seasonMatches, round)
	priced := odds.PriceRound(table, fixtures, s.cfg.Pricing)
	if err := s.snapshots.PublishCurrentRound(ctx, snapshot.BuildCurrentRound(round, fixtures, priced, now)); err != nil {
		return fmt.Errorf("publish current round: %w", err)
	}

	result.CurrentRound = round
	return nil
}

// settle archives the open round once it is fully finished and republishes
// the player standings. Failures here are recorded on the result and logged;
// the already published match data stands and the next run retries.
func (s *PipelineService) settle(ctx context.Context, seasonMatches []match.Match, result *RunResult) {
	if err := s.settleOpenRound(ctx, seasonMatches, result); err != nil {
		result.SettlementError = err.Error()
		s.logger.ErrorContext(ctx, "settlement failed, match data stands", "error", err)
		return
	}

	archived, err := s.archive.ListAll(ctx)
	if err != nil {
		result.SettlementError = err.Error()
		s.logger.ErrorContext(ctx, "list archive for player standings failed", "error", err)
		return
	}

	rows := prediction.ComputePlayerStandings(archived)
	if err := s.snapshots.PublishPlayerStandings(ctx, snapshot.BuildPlayerStandings(rows, s.now().UTC())); err != nil {
		result.SettlementError = err.Error()
		s.logger.ErrorContext(ctx, "publish player standings failed", "error", err)
		return
	}
	result.PlayersRanked = len(rows)
}

func (s *PipelineService) settleOpenRound(ctx context.Context, seasonMatches []match.Match, result *RunResult) error {
	open, found, err := s.current.GetOpen(ctx)
	if err != nil {
		return fmt.Errorf("load open round: %w", err)
	}

	currentRound := match.CurrentRound(seasonMatches)
	if !found {
		if currentRound > 0 {
			if err := s.current.ReplaceOpen(ctx, prediction.OpenRound{Round: currentRound}); err != nil {
				return fmt.Errorf("open round %d: %w", currentRound, err)
			}
		}
		return nil
	}

	if len(open.Submissions) == 0 {
		if currentRound > 0 && open.Round != currentRound {
			if err := s.current.ReplaceOpen(ctx, prediction.OpenRound{Round: currentRound}); err != nil {
				return fmt.Errorf("roll open round to %d: %w", currentRound, err)
			}
		}
		return nil
	}

	roundMatches := match.ByRound(seasonMatches, open.Round)
	if !match.IsRoundComplete(roundMatches) {
		return nil
	}

	scored := make([]prediction.RoundSubmission, 0, len(open.Submissions))
	archivedAt := s.now().UTC()
	for _, sub := range open.Submissions {
		out, err := prediction.ScoreSubmission(sub, roundMatches, s.cfg.Scoring)
		if err != nil {
			return fmt.Errorf("score round %d for %s: %w", open.Round, sub.Username, err)
		}
		out.ArchivedAt = &archivedAt
		scored = append(scored, out)
	}

	stored, err := s.archive.AppendBatch(ctx, scored)
	if err != nil {
		return fmt.Errorf("archive round %d: %w", open.Round, err)
	}
	result.ArchivedSubmissions = stored
	if stored < len(scored) {
		s.logger.WarnContext(ctx, "some submissions were already archived",
			"round", open.Round, "scored", len(scored), "stored", stored)
	}

	nextRound := currentRound
	if nextRound == open.Round || nextRound == 0 {
		nextRound = open.Round + 1
	}
	if err := s.current.ReplaceOpen(ctx, prediction.OpenRound{Round: nextRound}); err != nil {
		return fmt.Errorf("clear settled round %d: %w", open.Round, err)
	}
	return nil
}
