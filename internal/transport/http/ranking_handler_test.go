package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yuwelongo/internal/app"
	"yuwelongo/internal/domain"
	"yuwelongo/internal/infra/memory"
)

func newRankingServer(t *testing.T, history app.HistoryService) (*httptest.Server, *memory.ResultStore) {
	t.Helper()
	store := memory.NewResultStore()
	ctx := context.Background()
	for _, r := range []domain.GameResult{
		{LevelID: 1, UserID: 1, UserName: "Ana", Score: 10, PlayedAt: time.Unix(100, 0)},
		{LevelID: 1, UserID: 2, UserName: "", Score: 25, PlayedAt: time.Unix(200, 0)},
		{LevelID: 2, UserID: 1, UserName: "Ana", Score: 20, PlayedAt: time.Unix(300, 0)},
	} {
		_, err := store.SubmitResult(ctx, r)
		require.NoError(t, err)
	}
	if history == nil {
		history = store
	}

	mux := http.NewServeMux()
	NewRankingHandler(app.NewRankingService(store, history), nil).Register(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, store
}

func getJSON(t *testing.T, url string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestGlobalRankingRoute(t *testing.T) {
	server, _ := newRankingServer(t, nil)

	var rows []domain.RankingRow
	status := getJSON(t, server.URL+"/ranking?limit=5", &rows)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Position)
	assert.Equal(t, "Ana", rows[0].UserName)
	assert.Equal(t, 30, rows[0].Score)
	assert.Equal(t, app.AnonymousName, rows[1].UserName)
}

func TestLevelRankingRoute(t *testing.T) {
	server, _ := newRankingServer(t, nil)

	var rows []domain.RankingRow
	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/ranking/levels/1", &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, int64(2), rows[0].UserID)
	assert.Equal(t, 25, rows[0].Score)

	assert.Equal(t, http.StatusBadRequest, getJSON(t, server.URL+"/ranking/levels/abc", nil))
	assert.Equal(t, http.StatusBadRequest, getJSON(t, server.URL+"/ranking?limit=-1", nil))
}

func TestBoardRoute(t *testing.T) {
	server, _ := newRankingServer(t, nil)

	var board app.Board
	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/ranking/board/2?limit=1", &board))
	require.Len(t, board.Global, 1)
	require.Len(t, board.Level, 1)
	assert.Equal(t, 30, board.Global[0].Score)
	assert.Equal(t, 20, board.Level[0].Score)
}

func TestHistoryAndTotalRoutes(t *testing.T) {
	server, _ := newRankingServer(t, nil)

	var history []domain.HistoryEntry
	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/users/1/history", &history))
	require.Len(t, history, 2)
	assert.Equal(t, int64(2), history[0].LevelID, "newest first")

	var total totalResponse
	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/users/1/total", &total))
	assert.Equal(t, totalResponse{UserID: 1, Total: 30}, total)

	var empty []domain.HistoryEntry
	require.Equal(t, http.StatusOK, getJSON(t, server.URL+"/users/99/history", &empty))
	assert.Empty(t, empty)
}

func TestRankingErrorsMapToStatus(t *testing.T) {
	server, _ := newRankingServer(t, failingHistory{err: domain.UnavailableStatus("yuwelongo-api", 500)})
	assert.Equal(t, http.StatusBadGateway, getJSON(t, server.URL+"/users/1/total", nil))

	server, _ = newRankingServer(t, failingHistory{err: domain.ErrUnauthorized})
	assert.Equal(t, http.StatusUnauthorized, getJSON(t, server.URL+"/users/1/history", nil))
}

type failingHistory struct {
	err error
}

func (f failingHistory) History(context.Context, int64) ([]domain.HistoryEntry, error) {
	return nil, f.err
}

func (f failingHistory) TotalScore(context.Context, int64) (int, error) {
	return 0, f.err
}
