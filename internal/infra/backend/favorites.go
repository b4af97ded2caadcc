package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"yuwelongo/internal/domain"
)

// Favorites lists the words userID saved. A 404 means none.
func (c *Client) Favorites(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	var raw []favoriteDTO
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/favoritos/usuario/%d", userID), nil, &raw)
	if isNotFound(err) {
		return []domain.Favorite{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("favorites of user %d: %w", userID, err)
	}
	out := make([]domain.Favorite, 0, len(raw))
	for _, d := range raw {
		out = append(out, d.toDomain(userID))
	}
	return out, nil
}

func (c *Client) AddFavorite(ctx context.Context, userID, wordID int64) (domain.Favorite, error) {
	path := fmt.Sprintf("/favoritos?idUsuario=%d&idPalabra=%d", userID, wordID)
	var raw favoriteDTO
	if err := c.do(ctx, http.MethodPost, path, nil, &raw); err != nil {
		return domain.Favorite{}, fmt.Errorf("add favorite word %d: %w", wordID, err)
	}
	fav := raw.toDomain(userID)
	if fav.Word.ID == 0 {
		fav.Word.ID = wordID
	}
	return fav, nil
}

func (c *Client) RemoveFavorite(ctx context.Context, favoriteID int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/favoritos/%d", favoriteID), nil, nil); err != nil {
		return fmt.Errorf("remove favorite %d: %w", favoriteID, err)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
