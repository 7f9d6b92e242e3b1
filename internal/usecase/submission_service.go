package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lapenya/quiniela/internal/domain/match"
	"github.com/lapenya/quiniela/internal/domain/odds"
	"github.com/lapenya/quiniela/internal/domain/prediction"
	"github.com/lapenya/quiniela/internal/domain/snapshot"
	"github.com/lapenya/quiniela/internal/platform/logging"
)

// fallbackOdds prices a pick whose fixture was never priced, so a submission
// against a fresh round is still accepted with neutral market prices.
var fallbackOdds = odds.Triple{Home: 2.0, Draw: 3.25, Away: 3.5}

// PickInput is one fixture pick in a submission request.
type PickInput struct {
	MatchID int64
	Pick    string
}

// SubmissionInput is one player's entry for the open round.
type SubmissionInput struct {
	Username string
	Round    int
	Picks    []PickInput
}

// SubmissionService accepts round entries. A player submits at most once per
// round; the registry claim is the atomic guard, taken before the slot write
// so two concurrent requests can never both land.
type SubmissionService struct {
	registry  prediction.Registry
	current   prediction.CurrentStore
	snapshots snapshot.Store
	logger    *logging.Logger
	now       func() time.Time
}

func NewSubmissionService(
	registry prediction.Registry,
	current prediction.CurrentStore,
	snapshots snapshot.Store,
	logger *logging.Logger,
) *SubmissionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SubmissionService{
		registry:  registry,
		current:   current,
		snapshots: snapshots,
		logger:    logger,
		now:       time.Now,
	}
}

// Submit validates, prices and stores one entry for the open round.
func (s *SubmissionService) Submit(ctx context.Context, input SubmissionInput) (prediction.RoundSubmission, error) {
	ctx, span := startUsecaseSpan(ctx, "submission.submit")
	defer span.End()

	username := strings.ToLower(strings.TrimSpace(input.Username))
	if username == "" {
		return prediction.RoundSubmission{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if len(input.Picks) == 0 {
		return prediction.RoundSubmission{}, fmt.Errorf("%w: at least one pick is required", ErrInvalidInput)
	}

	open, found, err := s.current.GetOpen(ctx)
	if err != nil {
		return prediction.RoundSubmission{}, fmt.Errorf("load open round: %w", err)
	}
	if !found || open.Round <= 0 {
		return prediction.RoundSubmission{}, fmt.Errorf("%w: no round is accepting submissions", ErrNotFound)
	}
	if input.Round != open.Round {
		return prediction.RoundSubmission{}, fmt.Errorf("%w: round %d is not open, current round is %d", ErrInvalidInput, input.Round, open.Round)
	}

	sub, err := s.buildSubmission(ctx, username, open.Round, input.Picks)
	if err != nil {
		return prediction.RoundSubmission{}, err
	}

	claimed, err := s.registry.Register(ctx, username, open.Round)
	if err != nil {
		return prediction.RoundSubmission{}, fmt.Errorf("register submission: %w", err)
	}
	if !claimed {
		return prediction.RoundSubmission{}, fmt.Errorf("%w: %s already submitted for round %d", ErrDuplicateSubmission, username, open.Round)
	}

	if err := s.current.AppendSubmission(ctx, sub); err != nil {
		switch {
		case errors.Is(err, prediction.ErrNoOpenRound), errors.Is(err, prediction.ErrRoundMismatch):
			// The slot rolled between validation and the write. The registry
			// claim stays; the round it names is settled or settling anyway.
			return prediction.RoundSubmission{}, fmt.Errorf("%w: round %d closed during submission", ErrInvalidInput, open.Round)
		default:
			// The entry was never stored, so the claim must not survive or
			// every retry would be rejected as a duplicate.
			if releaseErr := s.registry.Release(ctx, username, open.Round); releaseErr != nil {
				s.logger.ErrorContext(ctx, "release submission claim after store failure",
					"username", username, "round", open.Round, "error", releaseErr)
			}
			return prediction.RoundSubmission{}, fmt.Errorf("store submission: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "submission accepted",
		"username", username, "round", open.Round, "picks", len(sub.Predictions))
	return sub, nil
}

// HasSubmitted reports whether the player already entered the given round.
func (s *SubmissionService) HasSubmitted(ctx context.Context, username string, round int) (bool, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return false, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if round <= 0 {
		return false, fmt.Errorf("%w: round must be positive", ErrInvalidInput)
	}
	exists, err := s.registry.Exists(ctx, username, round)
	if err != nil {
		return false, fmt.Errorf("check submission: %w", err)
	}
	return exists, nil
}

// GetOpenForUser returns the player's pending entry for the open round.
func (s *SubmissionService) GetOpenForUser(ctx context.Context, username string) (prediction.RoundSubmission, bool, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return prediction.RoundSubmission{}, false, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}

	open, found, err := s.current.GetOpen(ctx)
	if err != nil {
		return prediction.RoundSubmission{}, false, fmt.Errorf("load open round: %w", err)
	}
	if !found {
		return prediction.RoundSubmission{}, false, nil
	}
	for _, sub := range open.Submissions {
		if sub.Username == username {
			return sub, true, nil
		}
	}
	return prediction.RoundSubmission{}, false, nil
}

// buildSubmission validates the picks against the published current round and
// freezes the prices they were made at.
func (s *SubmissionService) buildSubmission(ctx context.Context, username string, round int, picks []PickInput) (prediction.RoundSubmission, error) {
	doc, found, err := s.snapshots.GetCurrentRound(ctx)
	if err != nil {
		return prediction.RoundSubmission{}, fmt.Errorf("load current round snapshot: %w", err)
	}
	if !found || doc.Round != round {
		return prediction.RoundSubmission{}, fmt.Errorf("%w: round %d has no published fixtures", ErrDependencyUnavailable, round)
	}

	byID := make(map[int64]snapshot.MatchView, len(doc.Matches))
	for _, view := range doc.Matches {
		byID[view.ID] = view
	}

	seen := make(map[int64]struct{}, len(picks))
	predictions := make([]prediction.Prediction, 0, len(picks))
	for _, pick := range picks {
		view, ok := byID[pick.MatchID]
		if !ok {
			return prediction.RoundSubmission{}, fmt.Errorf("%w: match %d is not part of round %d", ErrInvalidInput, pick.MatchID, round)
		}
		if _, dup := seen[pick.MatchID]; dup {
			return prediction.RoundSubmission{}, fmt.Errorf("%w: duplicate pick for match %d", ErrInvalidInput, pick.MatchID)
		}
		seen[pick.MatchID] = struct{}{}

		outcome := match.NormalizeOutcome(pick.Pick)
		if !match.ValidOutcome(outcome) {
			return prediction.RoundSubmission{}, fmt.Errorf("%w: invalid pick %q for match %d", ErrInvalidInput, pick.Pick, pick.MatchID)
		}
		if view.Status == match.StatusFinished {
			return prediction.RoundSubmission{}, fmt.Errorf("%w: match %d already finished", ErrInvalidInput, pick.MatchID)
		}

		priced := fallbackOdds
		if view.Odds != nil {
			priced = *view.Odds
		}
		predictions = append(predictions, prediction.Prediction{
			Username: username,
			Round:    round,
			MatchID:  pick.MatchID,
			HomeTeam: view.HomeTeam.Name,
			AwayTeam: view.AwayTeam.Name,
			Pick:     outcome,
			Odds:     priced,
		})
	}

	return prediction.RoundSubmission{
		Username:    username,
		Round:       round,
		Predictions: predictions,
		SubmittedAt: s.now().UTC(),
	}, nil
}
