package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/lapenya/quiniela/internal/domain/snapshot"
	"github.com/lapenya/quiniela/internal/platform/logging"
	"github.com/lapenya/quiniela/internal/usecase"
)

type Handler struct {
	submissionService *usecase.SubmissionService
	historyService    *usecase.HistoryService
	boardService      *usecase.BoardService
	pipelineService   *usecase.PipelineService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	submissionService *usecase.SubmissionService,
	historyService *usecase.HistoryService,
	boardService *usecase.BoardService,
	pipelineService *usecase.PipelineService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		submissionService: submissionService,
		historyService:    historyService,
		boardService:      boardService,
		pipelineService:   pipelineService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	doc, err := h.boardService.AllMatches(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, doc)
}

func (h *Handler) GetCurrentRound(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentRound")
	defer span.End()

	doc, err := h.boardService.CurrentRound(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get current round failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, currentRoundDTO{
		Version:   doc.Version,
		Round:     doc.Round,
		Label:     roundLabel(doc.Round),
		UpdatedAt: doc.UpdatedAt,
		Matches:   doc.Matches,
	})
}

func (h *Handler) GetLeagueStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueStandings")
	defer span.End()

	doc, err := h.boardService.LeagueStandings(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get league standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, doc)
}

func (h *Handler) GetPlayerStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerStandings")
	defer span.End()

	doc, err := h.boardService.PlayerStandings(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get player standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, doc)
}

func (h *Handler) GetPlayerHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerHistory")
	defer span.End()

	username := strings.TrimSpace(r.URL.Query().Get("username"))
	history, err := h.historyService.ForPlayer(ctx, username)
	if err != nil {
		h.logger.WarnContext(ctx, "get history failed", "username", username, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, history)
}

func (h *Handler) SubmitPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPredictions")
	defer span.End()

	var req submitPredictionsRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	picks := make([]usecase.PickInput, 0, len(req.Picks))
	for _, pick := range req.Picks {
		picks = append(picks, usecase.PickInput{
			MatchID: pick.MatchID,
			Pick:    pick.Pick,
		})
	}

	sub, err := h.submissionService.Submit(ctx, usecase.SubmissionInput{
		Username: req.Username,
		Round:    req.Matchday,
		Picks:    picks,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit predictions failed", "username", req.Username, "matchday", req.Matchday, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, sub)
}

func (h *Handler) CheckSubmission(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CheckSubmission")
	defer span.End()

	username := strings.TrimSpace(r.URL.Query().Get("username"))
	matchday, err := parseMatchday(r.URL.Query().Get("matchday"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	submitted, err := h.submissionService.HasSubmitted(ctx, username, matchday)
	if err != nil {
		h.logger.WarnContext(ctx, "check submission failed", "username", username, "matchday", matchday, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, checkSubmissionDTO{
		Username:  strings.ToLower(username),
		Matchday:  matchday,
		Submitted: submitted,
	})
}

func (h *Handler) GetCurrentSubmission(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurrentSubmission")
	defer span.End()

	username := strings.TrimSpace(r.URL.Query().Get("username"))
	sub, found, err := h.submissionService.GetOpenForUser(ctx, username)
	if err != nil {
		h.logger.WarnContext(ctx, "get current submission failed", "username", username, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !found {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sub)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func parseMatchday(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: matchday query parameter is required", usecase.ErrInvalidInput)
	}
	matchday, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid matchday %q", usecase.ErrInvalidInput, raw)
	}
	return matchday, nil
}

// roundLabel is the display name the provider uses for league matchdays.
func roundLabel(round int) string {
	return fmt.Sprintf("Regular season - %d", round)
}

type submitPredictionsRequest struct {
	Username string        `json:"username" validate:"required,max=64"`
	Matchday int           `json:"matchday" validate:"required,min=1"`
	Picks    []pickRequest `json:"picks" validate:"required,min=1,dive"`
}

type pickRequest struct {
	MatchID int64  `json:"matchId" validate:"required"`
	Pick    string `json:"pick" validate:"required"`
}

type checkSubmissionDTO struct {
	Username  string `json:"username"`
	Matchday  int    `json:"matchday"`
	Submitted bool   `json:"submitted"`
}

type currentRoundDTO struct {
	Version   string               `json:"version"`
	Round     int                  `json:"matchday"`
	Label     string               `json:"matchdayLabel"`
	UpdatedAt time.Time            `json:"updatedAt"`
	Matches   []snapshot.MatchView `json:"matches"`
}
