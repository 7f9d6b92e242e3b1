package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/rounds/current", handler.GetCurrentRound)
	mux.HandleFunc("GET /v1/standings/league", handler.GetLeagueStandings)
	mux.HandleFunc("GET /v1/standings/players", handler.GetPlayerStandings)
	mux.HandleFunc("GET /v1/history", handler.GetPlayerHistory)

	mux.HandleFunc("POST /v1/predictions", handler.SubmitPredictions)
	mux.HandleFunc("GET /v1/predictions/check", handler.CheckSubmission)
	mux.HandleFunc("GET /v1/predictions/current", handler.GetCurrentSubmission)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /internal/jobs/pipeline", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunPipelineJob)))
}
