package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"yuwelongo/internal/domain"
)

// Catalog reads levels and questions straight from Postgres.
type Catalog struct {
	pool *pgxpool.Pool
}

func NewCatalog(pool *pgxpool.Pool) *Catalog {
	return &Catalog{pool: pool}
}

func (c *Catalog) Levels(ctx context.Context) ([]domain.Level, error) {
	rows, err := c.pool.Query(ctx, `
		SELECT id, name, description, sort_order, status
		FROM levels
		ORDER BY sort_order, id`)
	if err != nil {
		return nil, domain.Unavailable("postgres", fmt.Errorf("list levels: %w", err))
	}
	defer rows.Close()

	var levels []domain.Level
	for rows.Next() {
		var (
			l      domain.Level
			status string
		)
		if err := rows.Scan(&l.ID, &l.Name, &l.Description, &l.Order, &status); err != nil {
			return nil, fmt.Errorf("scan level: %w", err)
		}
		l.Status = domain.ParseLevelStatus(status)
		levels = append(levels, l)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Unavailable("postgres", err)
	}
	return levels, nil
}

// QuestionsForLevel picks count random questions of the level. A level without
// questions yields domain.ErrNotFound.
func (c *Catalog) QuestionsForLevel(ctx context.Context, levelID int64, count int) ([]domain.Question, error) {
	rows, err := c.pool.Query(ctx, `
		SELECT id, level_id, COALESCE(word_id, 0), prompt, option1, option2, option3, option4,
		       correct_answer, xp, image_url, audio_url
		FROM questions
		WHERE level_id = $1
		ORDER BY random()
		LIMIT NULLIF($2, 0)`, levelID, count)
	if err != nil {
		return nil, domain.Unavailable("postgres", fmt.Errorf("questions for level %d: %w", levelID, err))
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var (
			q                  domain.Question
			imageURL, audioURL string
		)
		err := rows.Scan(&q.ID, &q.LevelID, &q.WordID, &q.Prompt,
			&q.Options[0], &q.Options[1], &q.Options[2], &q.Options[3],
			&q.CorrectAnswer, &q.XP, &imageURL, &audioURL)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.MediaKind, q.MediaURL = domain.MediaFor(imageURL, audioURL)
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Unavailable("postgres", err)
	}
	if len(questions) == 0 {
		return nil, domain.ErrNotFound
	}
	return questions, nil
}

// SeedLevel inserts a level with its questions and returns the new level id.
func (c *Catalog) SeedLevel(ctx context.Context, level domain.Level, questions []domain.Question) (int64, error) {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO levels (name, description, sort_order, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id`, level.Name, level.Description, level.Order, string(level.Status)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert level: %w", err)
	}

	for _, q := range questions {
		var imageURL, audioURL string
		switch q.MediaKind {
		case domain.MediaImage:
			imageURL = q.MediaURL
		case domain.MediaAudio:
			audioURL = q.MediaURL
		}
		_, err := tx.Exec(ctx, `
			INSERT INTO questions (level_id, word_id, prompt, option1, option2, option3, option4,
			                       correct_answer, xp, image_url, audio_url)
			VALUES ($1, NULLIF($2, 0), $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			id, q.WordID, q.Prompt, q.Options[0], q.Options[1], q.Options[2], q.Options[3],
			q.CorrectAnswer, q.XP, imageURL, audioURL)
		if err != nil {
			return 0, fmt.Errorf("insert question: %w", err)
		}
	}
	return id, tx.Commit(ctx)
}
