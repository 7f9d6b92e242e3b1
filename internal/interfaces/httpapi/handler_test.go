package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/lapenya/quiniela/internal/domain/match"
	"github.com/lapenya/quiniela/internal/domain/odds"
	"github.com/lapenya/quiniela/internal/domain/prediction"
	"github.com/lapenya/quiniela/internal/domain/snapshot"
	"github.com/lapenya/quiniela/internal/infrastructure/repository/memory"
	"github.com/lapenya/quiniela/internal/usecase"
)

func newTestRouter(t *testing.T, publishRound bool) http.Handler {
	t.Helper()

	snapshots := memory.NewSnapshotStore()
	current := memory.NewCurrentStore()
	registry := memory.NewRegistryRepository()
	archive := memory.NewArchiveRepository()

	if publishRound {
		doc := snapshot.CurrentRoundDoc{
			Version:   snapshot.Version,
			Round:     2,
			UpdatedAt: time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC),
			Matches: []snapshot.MatchView{
				{
					ID:       20,
					Round:    2,
					Status:   match.StatusScheduled,
					HomeTeam: snapshot.TeamView{ID: 1, Name: "Sevilla"},
					AwayTeam: snapshot.TeamView{ID: 2, Name: "Valencia"},
					Odds:     &odds.Triple{Home: 1.9, Draw: 3.2, Away: 4.2},
				},
			},
		}
		if err := snapshots.PublishCurrentRound(context.Background(), doc); err != nil {
			t.Fatalf("publish current round: %v", err)
		}
		if err := current.ReplaceOpen(context.Background(), prediction.OpenRound{Round: 2}); err != nil {
			t.Fatalf("replace open round: %v", err)
		}
	}

	handler := NewHandler(
		usecase.NewSubmissionService(registry, current, snapshots, nil),
		usecase.NewHistoryService(archive),
		usecase.NewBoardService(snapshots),
		nil,
		nil,
	)
	return NewRouter(handler, nil, []string{"*"}, "job-secret")
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	return body
}

func TestRouter_SubmitPredictions(t *testing.T) {
	router := newTestRouter(t, true)

	payload := `{"username":"Ana","matchday":2,"picks":[{"matchId":20,"pick":"HOME"}]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/predictions", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", body)
	}
	if got, _ := data["username"].(string); got != "ana" {
		t.Fatalf("expected normalized username ana, got %v", data["username"])
	}

	// Same entry again must be rejected as a duplicate.
	req = httptest.NewRequest(http.MethodPost, "/v1/predictions", strings.NewReader(payload))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/predictions/check?username=Ana&matchday=2", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body = decodeEnvelope(t, rec)
	data, _ = body["data"].(map[string]any)
	if submitted, _ := data["submitted"].(bool); !submitted {
		t.Fatalf("expected submitted=true, got %v", data)
	}
}

func TestRouter_SubmitPredictions_RejectsUnknownFields(t *testing.T) {
	router := newTestRouter(t, true)

	payload := `{"username":"Ana","matchday":2,"bonus":true,"picks":[{"matchId":20,"pick":"HOME"}]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/predictions", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestRouter_GetCurrentRound_LabelsMatchday(t *testing.T) {
	router := newTestRouter(t, true)

	req := httptest.NewRequest(http.MethodGet, "/v1/rounds/current", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	data, _ := body["data"].(map[string]any)
	if got, _ := data["matchdayLabel"].(string); got != "Regular season - 2" {
		t.Fatalf("unexpected matchday label %v", data["matchdayLabel"])
	}
	if got, _ := data["matchday"].(float64); got != 2 {
		t.Fatalf("unexpected matchday %v", data["matchday"])
	}
}

func TestRouter_UnpublishedDocumentsReturnNotFound(t *testing.T) {
	router := newTestRouter(t, false)

	for _, path := range []string{"/v1/matches", "/v1/rounds/current", "/v1/standings/league", "/v1/standings/players"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected status 404 for %s, got %d", path, rec.Code)
		}
	}
}

func TestRouter_InternalJobTokenGuard(t *testing.T) {
	router := newTestRouter(t, true)

	req := httptest.NewRequest(http.MethodPost, "/internal/jobs/pipeline", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/internal/jobs/pipeline", nil)
	req.Header.Set("X-Internal-Job-Token", "wrong")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 with wrong token, got %d", rec.Code)
	}

	// Correct token reaches the handler, which reports the unconfigured
	// pipeline service as a dependency problem.
	req = httptest.NewRequest(http.MethodPost, "/internal/jobs/pipeline", nil)
	req.Header.Set("X-Internal-Job-Token", "job-secret")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}
