package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"yuwelongo/internal/domain"
)

// FavoriteStore keeps saved words in the favorites table.
type FavoriteStore struct {
	pool *pgxpool.Pool
}

func NewFavoriteStore(pool *pgxpool.Pool) *FavoriteStore {
	return &FavoriteStore{pool: pool}
}

func (s *FavoriteStore) Favorites(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT f.id, f.user_id, `+wordColumns+`
		FROM favorites f
		JOIN words w ON w.id = f.word_id
		WHERE f.user_id = $1
		ORDER BY f.created_at, f.id`, userID)
	if err != nil {
		return nil, domain.Unavailable("postgres", fmt.Errorf("favorites of user %d: %w", userID, err))
	}
	defer rows.Close()

	out := []domain.Favorite{}
	for rows.Next() {
		fav, err := scanFavorite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, fav)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Unavailable("postgres", err)
	}
	return out, nil
}

// AddFavorite saves the word for the user; saving it again returns the
// existing row. An unknown word yields domain.ErrNotFound.
func (s *FavoriteStore) AddFavorite(ctx context.Context, userID, wordID int64) (domain.Favorite, error) {
	row := s.pool.QueryRow(ctx, `
		WITH saved AS (
			INSERT INTO favorites (user_id, word_id)
			SELECT $1, id FROM words WHERE id = $2
			ON CONFLICT (user_id, word_id) DO UPDATE SET word_id = EXCLUDED.word_id
			RETURNING id, user_id, word_id
		)
		SELECT saved.id, saved.user_id, `+wordColumns+`
		FROM saved
		JOIN words w ON w.id = saved.word_id`, userID, wordID)
	fav, err := scanFavorite(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Favorite{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Favorite{}, domain.Unavailable("postgres", fmt.Errorf("add favorite word %d: %w", wordID, err))
	}
	return fav, nil
}

func (s *FavoriteStore) RemoveFavorite(ctx context.Context, favoriteID int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM favorites WHERE id = $1`, favoriteID)
	if err != nil {
		return domain.Unavailable("postgres", fmt.Errorf("remove favorite %d: %w", favoriteID, err))
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanFavorite(row pgx.Row) (domain.Favorite, error) {
	var (
		f domain.Favorite
		w = &f.Word
	)
	err := row.Scan(&f.ID, &f.UserID, &w.ID, &w.Nasa, &w.Translation, &w.Example, &w.CategoryID, &w.ImageURL, &w.AudioURL)
	if err != nil {
		return domain.Favorite{}, err
	}
	return f, nil
}
