package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"yuwelongo/internal/domain"
)

// ResultStore persists level results and derives rankings and history from them.
type ResultStore struct {
	pool *pgxpool.Pool
}

func NewResultStore(pool *pgxpool.Pool) *ResultStore {
	return &ResultStore{pool: pool}
}

func (s *ResultStore) SubmitResult(ctx context.Context, result domain.GameResult) (domain.ResultAck, error) {
	playedAt := result.PlayedAt
	if playedAt.IsZero() {
		playedAt = time.Now()
	}
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO game_results (level_id, user_id, user_name, score, correct_count, total_count, session_id, played_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		result.LevelID, result.UserID, result.UserName, result.Score,
		result.CorrectCount, result.TotalCount, result.SessionID, playedAt).Scan(&id)
	if err != nil {
		return domain.ResultAck{}, domain.Unavailable("postgres", fmt.Errorf("insert result: %w", err))
	}
	return domain.ResultAck{ID: id}, nil
}

// GlobalRanking sums every user's scores.
func (s *ResultStore) GlobalRanking(ctx context.Context, limit int) ([]domain.RankingEntry, error) {
	return s.ranking(ctx, `
		SELECT user_id, MAX(user_name), SUM(score)::int
		FROM game_results
		GROUP BY user_id
		ORDER BY SUM(score) DESC, MIN(id)
		LIMIT NULLIF($1, 0)`, limit)
}

// LevelRanking keeps each user's best score on the level.
func (s *ResultStore) LevelRanking(ctx context.Context, levelID int64, limit int) ([]domain.RankingEntry, error) {
	return s.ranking(ctx, `
		SELECT user_id, MAX(user_name), MAX(score)
		FROM game_results
		WHERE level_id = $2
		GROUP BY user_id
		ORDER BY MAX(score) DESC, MIN(id)
		LIMIT NULLIF($1, 0)`, limit, levelID)
}

func (s *ResultStore) ranking(ctx context.Context, query string, args ...interface{}) ([]domain.RankingEntry, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Unavailable("postgres", fmt.Errorf("ranking: %w", err))
	}
	defer rows.Close()

	var entries []domain.RankingEntry
	for rows.Next() {
		var e domain.RankingEntry
		if err := rows.Scan(&e.UserID, &e.UserName, &e.Score); err != nil {
			return nil, fmt.Errorf("scan ranking: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *ResultStore) History(ctx context.Context, userID int64) ([]domain.HistoryEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT r.id, r.level_id, COALESCE(l.name, ''), r.score, r.correct_count, r.total_count,
		       r.played_at, r.session_id
		FROM game_results r
		LEFT JOIN levels l ON l.id = r.level_id
		WHERE r.user_id = $1
		ORDER BY r.played_at DESC, r.id DESC`, userID)
	if err != nil {
		return nil, domain.Unavailable("postgres", fmt.Errorf("history: %w", err))
	}
	defer rows.Close()

	var history []domain.HistoryEntry
	for rows.Next() {
		var h domain.HistoryEntry
		err := rows.Scan(&h.ID, &h.LevelID, &h.LevelName, &h.Score, &h.CorrectCount,
			&h.TotalCount, &h.PlayedAt, &h.SessionID)
		if err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

func (s *ResultStore) TotalScore(ctx context.Context, userID int64) (int, error) {
	var total int
	err := s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(score), 0)::int FROM game_results WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return 0, domain.Unavailable("postgres", fmt.Errorf("total score: %w", err))
	}
	return total, nil
}
