package prediction

import (
	"context"
	"errors"
)

var (
	// ErrNoOpenRound reports an append attempted while no round is accepting
	// submissions.
	ErrNoOpenRound = errors.New("no open round")
	// ErrRoundMismatch reports an append targeting a round other than the
	// open one.
	ErrRoundMismatch = errors.New("submission round does not match open round")
)

// ArchiveRepository persists scored round submissions permanently. A round is
// archived exactly once per player; replays of the same (username, round) pair
// are silently dropped.
type ArchiveRepository interface {
	// AppendBatch writes the scored submissions atomically and returns how
	// many were newly stored. Submissions already archived do not count and
	// do not fail the batch.
	AppendBatch(ctx context.Context, submissions []RoundSubmission) (int, error)
	ListAll(ctx context.Context) ([]RoundSubmission, error)
	ListByUsername(ctx context.Context, username string) ([]RoundSubmission, error)
}

// Registry tracks which (username, round) pairs have already submitted. It is
// the atomic duplicate-submission guard: Register claims the pair and reports
// whether the claim was new. Release drops a claim whose submission was never
// stored; releasing an absent claim is a no-op.
type Registry interface {
	Exists(ctx context.Context, username string, round int) (bool, error)
	Register(ctx context.Context, username string, round int) (bool, error)
	Release(ctx context.Context, username string, round int) error
}

// OpenRound is the currently accepting round and its pending submissions.
type OpenRound struct {
	Round       int               `json:"round"`
	Submissions []RoundSubmission `json:"submissions"`
}

// CurrentStore holds the single open-round slot plus the provider cache token
// from the last successful ingestion. GetOpen reports found=false only when
// no slot exists; read failures surface as errors, never as an empty slot.
type CurrentStore interface {
	GetOpen(ctx context.Context) (OpenRound, bool, error)
	ReplaceOpen(ctx context.Context, open OpenRound) error
	// AppendSubmission atomically adds one submission to the open slot.
	// Returns ErrNoOpenRound when no slot exists and ErrRoundMismatch when
	// the submission targets a different round than the slot holds.
	AppendSubmission(ctx context.Context, sub RoundSubmission) error
	GetCacheToken(ctx context.Context) (string, error)
	SaveCacheToken(ctx context.Context, token string) error
}
