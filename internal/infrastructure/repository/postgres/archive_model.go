package postgres

import "database/sql"

type archivedSubmissionTableModel struct {
	ID           int64         `db:"id"`
	Username     string        `db:"username"`
	Round        int           `db:"round"`
	CorrectCount int           `db:"correct_count"`
	OddsSum      float64       `db:"odds_sum"`
	Points       float64       `db:"points"`
	SubmittedAt  int64         `db:"submitted_at"`
	ArchivedAt   sql.NullInt64 `db:"archived_at"`
}

type archivedSubmissionInsertModel struct {
	Username     string  `db:"username"`
	Round        int     `db:"round"`
	CorrectCount int     `db:"correct_count"`
	OddsSum      float64 `db:"odds_sum"`
	Points       float64 `db:"points"`
	SubmittedAt  int64   `db:"submitted_at"`
	ArchivedAt   *int64  `db:"archived_at"`
}

type archivedPredictionTableModel struct {
	ID            int64          `db:"id"`
	SubmissionID  int64          `db:"submission_id"`
	MatchID       int64          `db:"match_id"`
	HomeTeam      string         `db:"home_team"`
	AwayTeam      string         `db:"away_team"`
	Pick          string         `db:"pick"`
	OddsHome      float64        `db:"odds_home"`
	OddsDraw      float64        `db:"odds_draw"`
	OddsAway      float64        `db:"odds_away"`
	Correct       sql.NullBool   `db:"correct"`
	ActualOutcome sql.NullString `db:"actual_outcome"`
}

type archivedPredictionInsertModel struct {
	SubmissionID  int64   `db:"submission_id"`
	MatchID       int64   `db:"match_id"`
	HomeTeam      string  `db:"home_team"`
	AwayTeam      string  `db:"away_team"`
	Pick          string  `db:"pick"`
	OddsHome      float64 `db:"odds_home"`
	OddsDraw      float64 `db:"odds_draw"`
	OddsAway      float64 `db:"odds_away"`
	Correct       *bool   `db:"correct"`
	ActualOutcome *string `db:"actual_outcome"`
}
