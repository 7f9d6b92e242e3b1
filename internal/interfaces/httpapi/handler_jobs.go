package httpapi

import (
	"fmt"
	"net/http"

	"github.com/lapenya/quiniela/internal/usecase"
)

// RunPipelineJob triggers the same fetch-publish-settle pass the scheduler
// runs, so an operator can force a refresh after a provider hiccup.
func (h *Handler) RunPipelineJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunPipelineJob")
	defer span.End()

	if h.pipelineService == nil {
		writeError(ctx, w, fmt.Errorf("%w: pipeline service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	result, err := h.pipelineService.Run(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "manual pipeline run failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
