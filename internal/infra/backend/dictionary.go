package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"yuwelongo/internal/domain"
)

func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var raw []categoryDTO
	if err := c.do(ctx, http.MethodGet, "/categorias", nil, &raw); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]domain.Category, 0, len(raw))
	for _, d := range raw {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (c *Client) Category(ctx context.Context, id int64) (domain.Category, error) {
	var raw categoryDTO
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/categorias/%d", id), nil, &raw); err != nil {
		return domain.Category{}, fmt.Errorf("category %d: %w", id, err)
	}
	return raw.toDomain(), nil
}

// SearchCategories looks categories up by name. No match is an empty list.
func (c *Client) SearchCategories(ctx context.Context, name string) ([]domain.Category, error) {
	var raw oneOrMany[categoryDTO]
	err := c.do(ctx, http.MethodGet, "/categorias?nombre="+url.QueryEscape(name), nil, &raw)
	if err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("search categories %q: %w", name, err)
	}
	out := make([]domain.Category, 0, len(raw))
	for _, d := range raw {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (c *Client) Words(ctx context.Context) ([]domain.Word, error) {
	var raw []wordDTO
	if err := c.do(ctx, http.MethodGet, "/palabras", nil, &raw); err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	return toWords(raw), nil
}

// SearchWords queries /palabras?palabraNasa= or ?traduccion=. No match is an
// empty list.
func (c *Client) SearchWords(ctx context.Context, field domain.WordField, query string) ([]domain.Word, error) {
	param := "palabraNasa"
	if field == domain.WordFieldTranslation {
		param = "traduccion"
	}
	var raw oneOrMany[wordDTO]
	err := c.do(ctx, http.MethodGet, "/palabras?"+param+"="+url.QueryEscape(query), nil, &raw)
	if err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("search words %s=%q: %w", param, query, err)
	}
	return toWords(raw), nil
}

func toWords(raw []wordDTO) []domain.Word {
	out := make([]domain.Word, 0, len(raw))
	for _, d := range raw {
		out = append(out, d.toDomain())
	}
	return out
}
