package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"yuwelongo/internal/app"
	"yuwelongo/internal/domain"
)

// RankingHandler serves leaderboards, play history and total scores as JSON.
type RankingHandler struct {
	ranking   *app.RankingService
	withToken TokenContext
}

func NewRankingHandler(ranking *app.RankingService, withToken TokenContext) *RankingHandler {
	return &RankingHandler{ranking: ranking, withToken: withToken}
}

// Register mounts the read-only routes on mux.
func (h *RankingHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /ranking", h.global)
	mux.HandleFunc("GET /ranking/board/{levelId}", h.board)
	mux.HandleFunc("GET /ranking/levels/{levelId}", h.level)
	mux.HandleFunc("GET /users/{userId}/history", h.history)
	mux.HandleFunc("GET /users/{userId}/total", h.total)
}

type totalResponse struct {
	UserID int64 `json:"userId"`
	Total  int   `json:"total"`
}

func (h *RankingHandler) global(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryLimit(w, r)
	if !ok {
		return
	}
	rows, err := h.ranking.Global(h.context(r), limit)
	respond(w, r, rows, err)
}

func (h *RankingHandler) level(w http.ResponseWriter, r *http.Request) {
	levelID, ok := pathID(w, r, "levelId")
	if !ok {
		return
	}
	limit, ok := queryLimit(w, r)
	if !ok {
		return
	}
	rows, err := h.ranking.ForLevel(h.context(r), levelID, limit)
	respond(w, r, rows, err)
}

func (h *RankingHandler) board(w http.ResponseWriter, r *http.Request) {
	levelID, ok := pathID(w, r, "levelId")
	if !ok {
		return
	}
	limit, ok := queryLimit(w, r)
	if !ok {
		return
	}
	board, err := h.ranking.Board(h.context(r), levelID, limit)
	respond(w, r, board, err)
}

func (h *RankingHandler) history(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	entries, err := h.ranking.History(h.context(r), userID)
	if entries == nil && err == nil {
		entries = []domain.HistoryEntry{}
	}
	respond(w, r, entries, err)
}

func (h *RankingHandler) total(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	total, err := h.ranking.TotalScore(h.context(r), userID)
	respond(w, r, totalResponse{UserID: userID, Total: total}, err)
}

func (h *RankingHandler) context(r *http.Request) context.Context {
	return requestContext(r, h.withToken)
}

func requestContext(r *http.Request, withToken TokenContext) context.Context {
	if token := bearerToken(r); token != "" && withToken != nil {
		return withToken(r.Context(), token)
	}
	return r.Context()
}

func respond(w http.ResponseWriter, r *http.Request, body interface{}, err error) {
	respondStatus(w, r, http.StatusOK, body, err)
}

// respondStatus writes body with status, or maps err onto an error status.
// Client mistakes carry the error text so callers can show it.
func respondStatus(w http.ResponseWriter, r *http.Request, status int, body interface{}, err error) {
	if err == nil {
		writeJSON(w, status, body)
		return
	}
	status = http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrServiceUnavailable):
		status = http.StatusBadGateway
	}
	message := http.StatusText(status)
	switch status {
	case http.StatusNotFound:
	case http.StatusBadRequest, http.StatusConflict:
		message = err.Error()
	default:
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, errorPayload{Message: message})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorPayload{Message: "invalid " + name})
		return 0, false
	}
	return id, true
}

func queryLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		writeJSON(w, http.StatusBadRequest, errorPayload{Message: "invalid limit"})
		return 0, false
	}
	return limit, true
}
