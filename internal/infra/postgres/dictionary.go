package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"yuwelongo/internal/domain"
)

const wordColumns = `w.id, w.nasa, w.translation, w.example, COALESCE(w.category_id, 0), w.image_url, w.audio_url`

// Dictionary reads categories and words from Postgres.
type Dictionary struct {
	pool *pgxpool.Pool
}

func NewDictionary(pool *pgxpool.Pool) *Dictionary {
	return &Dictionary{pool: pool}
}

func (d *Dictionary) Categories(ctx context.Context) ([]domain.Category, error) {
	rows, err := d.pool.Query(ctx, `SELECT id, name, description, image_url FROM categories ORDER BY id`)
	if err != nil {
		return nil, domain.Unavailable("postgres", fmt.Errorf("list categories: %w", err))
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Description = domain.CleanDescription(c.Description)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Unavailable("postgres", err)
	}
	return out, nil
}

func (d *Dictionary) Category(ctx context.Context, id int64) (domain.Category, error) {
	var c domain.Category
	err := d.pool.QueryRow(ctx, `SELECT id, name, description, image_url FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Category{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Category{}, domain.Unavailable("postgres", fmt.Errorf("category %d: %w", id, err))
	}
	c.Description = domain.CleanDescription(c.Description)
	return c, nil
}

func (d *Dictionary) Words(ctx context.Context) ([]domain.Word, error) {
	return d.words(ctx, `SELECT `+wordColumns+` FROM words w ORDER BY w.id`)
}

// SearchWords matches a case-insensitive substring of the chosen field.
func (d *Dictionary) SearchWords(ctx context.Context, field domain.WordField, query string) ([]domain.Word, error) {
	column := "w.nasa"
	if field == domain.WordFieldTranslation {
		column = "w.translation"
	}
	return d.words(ctx, `
		SELECT `+wordColumns+`
		FROM words w
		WHERE `+column+` ILIKE '%' || $1 || '%'
		ORDER BY w.id`, query)
}

func (d *Dictionary) words(ctx context.Context, query string, args ...interface{}) ([]domain.Word, error) {
	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.Unavailable("postgres", fmt.Errorf("list words: %w", err))
	}
	defer rows.Close()

	var out []domain.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Unavailable("postgres", err)
	}
	return out, nil
}

// SeedCategory inserts a category with its words and returns the new category id.
func (d *Dictionary) SeedCategory(ctx context.Context, category domain.Category, words []domain.Word) (int64, error) {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO categories (name, description, image_url)
		VALUES ($1, $2, $3)
		RETURNING id`, category.Name, category.Description, category.ImageURL).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert category: %w", err)
	}
	for _, w := range words {
		_, err := tx.Exec(ctx, `
			INSERT INTO words (category_id, nasa, translation, example, image_url, audio_url)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			id, w.Nasa, w.Translation, w.Example, w.ImageURL, w.AudioURL)
		if err != nil {
			return 0, fmt.Errorf("insert word %q: %w", w.Nasa, err)
		}
	}
	return id, tx.Commit(ctx)
}

func scanWord(row pgx.Row) (domain.Word, error) {
	var w domain.Word
	if err := row.Scan(&w.ID, &w.Nasa, &w.Translation, &w.Example, &w.CategoryID, &w.ImageURL, &w.AudioURL); err != nil {
		return domain.Word{}, fmt.Errorf("scan word: %w", err)
	}
	return w, nil
}
