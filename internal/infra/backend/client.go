package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"yuwelongo/internal/domain"
)

const serviceName = "yuwelongo-api"

// Client talks to the YuweLongo REST API and converts every response into
// canonical domain types. It serves the level, question, score and history
// collaborators of the game.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a client rooted at baseURL (e.g. http://host/YuweLongo-Backend/api).
// token is used when the request context carries none.
func New(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

type tokenKey struct{}

// WithToken attaches a per-player bearer token to ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func (c *Client) tokenFor(ctx context.Context) string {
	if t, ok := ctx.Value(tokenKey{}).(string); ok && t != "" {
		return t
	}
	return c.token
}

func (c *Client) Levels(ctx context.Context) ([]domain.Level, error) {
	var raw []levelDTO
	if err := c.do(ctx, http.MethodGet, "/niveles-juego", nil, &raw); err != nil {
		return nil, fmt.Errorf("list levels: %w", err)
	}
	levels := make([]domain.Level, 0, len(raw))
	for _, l := range raw {
		levels = append(levels, l.toDomain())
	}
	return levels, nil
}

// QuestionsForLevel asks the backend for count random questions. A 404 means
// the level has no questions and is reported as domain.ErrNotFound.
func (c *Client) QuestionsForLevel(ctx context.Context, levelID int64, count int) ([]domain.Question, error) {
	q := url.Values{}
	q.Set("aleatorias", "true")
	q.Set("cantidad", strconv.Itoa(count))
	path := fmt.Sprintf("/preguntas-juego/nivel/%d?%s", levelID, q.Encode())

	var raw []questionDTO
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, fmt.Errorf("questions for level %d: %w", levelID, err)
	}
	questions := make([]domain.Question, 0, len(raw))
	for _, dto := range raw {
		questions = append(questions, dto.toDomain(levelID))
	}
	return questions, nil
}

func (c *Client) SubmitResult(ctx context.Context, result domain.GameResult) (domain.ResultAck, error) {
	var raw ackDTO
	if err := c.do(ctx, http.MethodPost, "/juegos", newResultDTO(result), &raw); err != nil {
		return domain.ResultAck{}, fmt.Errorf("submit result: %w", err)
	}
	return raw.toDomain(), nil
}

func (c *Client) GlobalRanking(ctx context.Context, limit int) ([]domain.RankingEntry, error) {
	path := "/juegos/ranking"
	if limit > 0 {
		path += "?limite=" + strconv.Itoa(limit)
	}
	entries, err := c.ranking(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("global ranking: %w", err)
	}
	return entries, nil
}

func (c *Client) LevelRanking(ctx context.Context, levelID int64, limit int) ([]domain.RankingEntry, error) {
	path := fmt.Sprintf("/juegos/mejores/%d", levelID)
	if limit > 0 {
		path += "?limite=" + strconv.Itoa(limit)
	}
	entries, err := c.ranking(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("level %d ranking: %w", levelID, err)
	}
	return entries, nil
}

func (c *Client) ranking(ctx context.Context, path string) ([]domain.RankingEntry, error) {
	var raw []rankingDTO
	if err := c.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	entries := make([]domain.RankingEntry, 0, len(raw))
	for _, r := range raw {
		entries = append(entries, r.toDomain())
	}
	return entries, nil
}

func (c *Client) History(ctx context.Context, userID int64) ([]domain.HistoryEntry, error) {
	var raw []historyDTO
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/juegos/historial/%d", userID), nil, &raw); err != nil {
		return nil, fmt.Errorf("history for user %d: %w", userID, err)
	}
	out := make([]domain.HistoryEntry, 0, len(raw))
	for _, h := range raw {
		out = append(out, h.toDomain())
	}
	return out, nil
}

func (c *Client) TotalScore(ctx context.Context, userID int64) (int, error) {
	var raw totalDTO
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/juegos/total/%d", userID), nil, &raw); err != nil {
		return 0, fmt.Errorf("total score for user %d: %w", userID, err)
	}
	return int(raw), nil
}

// Login exchanges credentials for an account with a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (domain.Account, error) {
	body := loginRequest{Email: email, Password: password}
	var raw loginDTO
	err := c.do(ctx, http.MethodPost, "/login", body, &raw)
	var rejected *rejectedError
	if errors.As(err, &rejected) && rejected.status == http.StatusUnauthorized {
		msg := rejected.message
		if msg == "" {
			msg = "invalid credentials"
		}
		return domain.Account{}, fmt.Errorf("%w: %s", domain.ErrInvalidCredentials, msg)
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("login: %w", err)
	}
	return raw.toDomain(), nil
}

// rejectedError is a 400, 401 or 409 response. It carries the server's
// message and matches the domain error for its status.
type rejectedError struct {
	status  int
	message string
}

func (e *rejectedError) sentinel() error {
	switch e.status {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusConflict:
		return domain.ErrConflict
	default:
		return domain.ErrInvalidInput
	}
}

func (e *rejectedError) Error() string {
	if e.message == "" || e.status == http.StatusUnauthorized {
		return e.sentinel().Error()
	}
	return e.sentinel().Error() + ": " + e.message
}

func (e *rejectedError) Is(target error) bool { return target == e.sentinel() }

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := c.tokenFor(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Unavailable(serviceName, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusConflict:
		var e errorBody
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &rejectedError{status: resp.StatusCode, message: e.message()}
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return domain.UnavailableStatus(serviceName, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Unavailable(serviceName, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return domain.Unavailable(serviceName, fmt.Errorf("decode %s: %w", path, err))
	}
	return nil
}
