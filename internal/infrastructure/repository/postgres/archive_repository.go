package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lapenya/quiniela/internal/domain/odds"
	"github.com/lapenya/quiniela/internal/domain/prediction"
	qb "github.com/lapenya/quiniela/internal/platform/querybuilder"
)

// ArchiveRepository stores settled round submissions permanently. The unique
// index on (username, round) plus ON CONFLICT DO NOTHING makes replays of a
// settlement batch harmless.
type ArchiveRepository struct {
	db *sqlx.DB
}

func NewArchiveRepository(db *sqlx.DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

func (r *ArchiveRepository) AppendBatch(ctx context.Context, submissions []prediction.RoundSubmission) (int, error) {
	if len(submissions) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin archive batch: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stored := 0
	for _, sub := range submissions {
		submissionID, inserted, err := insertSubmission(ctx, tx, sub)
		if err != nil {
			return 0, err
		}
		if !inserted {
			continue
		}
		for _, p := range sub.Predictions {
			if err := insertPrediction(ctx, tx, submissionID, p); err != nil {
				return 0, err
			}
		}
		stored++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit archive batch: %w", err)
	}
	return stored, nil
}

func (r *ArchiveRepository) ListAll(ctx context.Context) ([]prediction.RoundSubmission, error) {
	return r.list(ctx, nil)
}

func (r *ArchiveRepository) ListByUsername(ctx context.Context, username string) ([]prediction.RoundSubmission, error) {
	return r.list(ctx, []qb.Condition{qb.Eq("username", username)})
}

func (r *ArchiveRepository) list(ctx context.Context, conditions []qb.Condition) ([]prediction.RoundSubmission, error) {
	builder := qb.Select("*").From("archived_round_submissions")
	if len(conditions) > 0 {
		builder = builder.Where(conditions...)
	}
	query, args, err := builder.OrderBy("round", "username").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list archive query: %w", err)
	}

	var rows []archivedSubmissionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list archive: %w", err)
	}
	if len(rows) == 0 {
		return []prediction.RoundSubmission{}, nil
	}

	predictionsBySubmission, err := r.loadPredictions(ctx, rows)
	if err != nil {
		return nil, err
	}

	out := make([]prediction.RoundSubmission, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapSubmission(row, predictionsBySubmission[row.ID]))
	}
	return out, nil
}

func (r *ArchiveRepository) loadPredictions(ctx context.Context, submissions []archivedSubmissionTableModel) (map[int64][]archivedPredictionTableModel, error) {
	ids := make([]int64, 0, len(submissions))
	for _, row := range submissions {
		ids = append(ids, row.ID)
	}

	query, args, err := sqlx.In("SELECT * FROM archived_predictions WHERE submission_id IN (?) ORDER BY id", ids)
	if err != nil {
		return nil, fmt.Errorf("build list predictions query: %w", err)
	}
	query = r.db.Rebind(query)

	var rows []archivedPredictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list archived predictions: %w", err)
	}

	out := make(map[int64][]archivedPredictionTableModel, len(submissions))
	for _, row := range rows {
		out[row.SubmissionID] = append(out[row.SubmissionID], row)
	}
	return out, nil
}

func insertSubmission(ctx context.Context, tx *sqlx.Tx, sub prediction.RoundSubmission) (int64, bool, error) {
	model := archivedSubmissionInsertModel{
		Username:    sub.Username,
		Round:       sub.Round,
		SubmittedAt: timeToUnix(sub.SubmittedAt),
		ArchivedAt:  nullableUnix(sub.ArchivedAt),
	}
	if sub.Summary != nil {
		model.CorrectCount = sub.Summary.CorrectCount
		model.OddsSum = sub.Summary.OddsSum
		model.Points = sub.Summary.Points
	}

	query, args, err := qb.InsertModel("archived_round_submissions", model,
		"ON CONFLICT (username, round) DO NOTHING RETURNING id")
	if err != nil {
		return 0, false, fmt.Errorf("build insert submission query: %w", err)
	}

	var id int64
	if err := tx.GetContext(ctx, &id, query, args...); err != nil {
		if isNotFound(err) {
			// Already archived, the conflict swallowed the insert.
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("insert archived submission %s round %d: %w", sub.Username, sub.Round, err)
	}
	return id, true, nil
}

func insertPrediction(ctx context.Context, tx *sqlx.Tx, submissionID int64, p prediction.Prediction) error {
	model := archivedPredictionInsertModel{
		SubmissionID: submissionID,
		MatchID:      p.MatchID,
		HomeTeam:     p.HomeTeam,
		AwayTeam:     p.AwayTeam,
		Pick:         p.Pick,
		OddsHome:     p.Odds.Home,
		OddsDraw:     p.Odds.Draw,
		OddsAway:     p.Odds.Away,
		Correct:      p.Correct,
	}
	if p.ActualOutcome != "" {
		outcome := p.ActualOutcome
		model.ActualOutcome = &outcome
	}

	query, args, err := qb.InsertModel("archived_predictions", model, "")
	if err != nil {
		return fmt.Errorf("build insert prediction query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert archived prediction match %d: %w", p.MatchID, err)
	}
	return nil
}

func mapSubmission(row archivedSubmissionTableModel, predictionRows []archivedPredictionTableModel) prediction.RoundSubmission {
	out := prediction.RoundSubmission{
		Username: row.Username,
		Round:    row.Round,
		Summary: &prediction.Summary{
			CorrectCount: row.CorrectCount,
			OddsSum:      row.OddsSum,
			Points:       row.Points,
		},
		SubmittedAt: unixToTime(row.SubmittedAt),
		ArchivedAt:  nullUnixToTimePtr(row.ArchivedAt),
		Predictions: make([]prediction.Prediction, 0, len(predictionRows)),
	}

	for _, p := range predictionRows {
		item := prediction.Prediction{
			Username: row.Username,
			Round:    row.Round,
			MatchID:  p.MatchID,
			HomeTeam: p.HomeTeam,
			AwayTeam: p.AwayTeam,
			Pick:     p.Pick,
			Odds: odds.Triple{
				Home: p.OddsHome,
				Draw: p.OddsDraw,
				Away: p.OddsAway,
			},
		}
		if p.Correct.Valid {
			correct := p.Correct.Bool
			item.Correct = &correct
		}
		if p.ActualOutcome.Valid {
			item.ActualOutcome = p.ActualOutcome.String
		}
		out.Predictions = append(out.Predictions, item)
	}
	return out
}
