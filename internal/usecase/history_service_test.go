package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/lapenya/quiniela/internal/domain/prediction"
	"github.com/lapenya/quiniela/internal/infrastructure/repository/memory"
)

func TestHistoryService_ForPlayer(t *testing.T) {
	t.Parallel()

	archive := memory.NewArchiveRepository()
	ctx := context.Background()
	if _, err := archive.AppendBatch(ctx, []prediction.RoundSubmission{
		{Username: "ana", Round: 1, Summary: &prediction.Summary{CorrectCount: 2, OddsSum: 4.5, Points: 3.0}},
		{Username: "ana", Round: 3, Summary: &prediction.Summary{CorrectCount: 1, OddsSum: 2.0, Points: 1.0}},
		{Username: "bruno", Round: 1, Summary: &prediction.Summary{CorrectCount: 4, OddsSum: 9.0, Points: 9.0}},
	}); err != nil {
		t.Fatalf("seed archive: %v", err)
	}

	service := NewHistoryService(archive)
	history, err := service.ForPlayer(ctx, "Ana")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(history.Rounds) != 2 || history.Rounds[0].Round != 3 {
		t.Fatalf("expected rounds newest first, got %+v", history.Rounds)
	}
	if history.Totals.CorrectCount != 3 || history.Totals.Points != 4.0 {
		t.Fatalf("unexpected totals: %+v", history.Totals)
	}
}

func TestHistoryService_ForPlayer_RequiresUsername(t *testing.T) {
	t.Parallel()

	service := NewHistoryService(memory.NewArchiveRepository())
	if _, err := service.ForPlayer(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestHistoryService_PlayerStandings(t *testing.T) {
	t.Parallel()

	archive := memory.NewArchiveRepository()
	ctx := context.Background()
	if _, err := archive.AppendBatch(ctx, []prediction.RoundSubmission{
		{Username: "ana", Round: 1, Summary: &prediction.Summary{CorrectCount: 2, Points: 3.0}},
		{Username: "bruno", Round: 1, Summary: &prediction.Summary{CorrectCount: 4, Points: 9.0}},
	}); err != nil {
		t.Fatalf("seed archive: %v", err)
	}

	service := NewHistoryService(archive)
	rows, err := service.PlayerStandings(ctx)
	if err != nil {
		t.Fatalf("standings failed: %v", err)
	}
	if len(rows) != 2 || rows[0].Username != "bruno" || rows[0].Position != 1 {
		t.Fatalf("unexpected standings: %+v", rows)
	}
}
