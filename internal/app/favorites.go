package app

import (
	"context"
	"fmt"

	"yuwelongo/internal/domain"
)

// FavoritesService manages the words a player saved.
type FavoritesService struct {
	store FavoriteStore
}

func NewFavoritesService(store FavoriteStore) *FavoritesService {
	return &FavoritesService{store: store}
}

// List returns userID's favorites whose word matches filter (all when blank).
func (s *FavoritesService) List(ctx context.Context, userID int64, filter string) ([]domain.Favorite, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id required", domain.ErrInvalidInput)
	}
	favs, err := s.store.Favorites(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Favorite, 0, len(favs))
	for _, f := range favs {
		if f.Word.Matches(filter) {
			out = append(out, f)
		}
	}
	return out, nil
}

// Add saves wordID for userID. Saving a word twice returns the existing favorite.
func (s *FavoritesService) Add(ctx context.Context, userID, wordID int64) (domain.Favorite, error) {
	if userID <= 0 || wordID <= 0 {
		return domain.Favorite{}, fmt.Errorf("%w: user and word ids required", domain.ErrInvalidInput)
	}
	favs, err := s.store.Favorites(ctx, userID)
	if err != nil {
		return domain.Favorite{}, err
	}
	for _, f := range favs {
		if f.Word.ID == wordID {
			return f, nil
		}
	}
	return s.store.AddFavorite(ctx, userID, wordID)
}

func (s *FavoritesService) Remove(ctx context.Context, favoriteID int64) error {
	if favoriteID <= 0 {
		return fmt.Errorf("%w: favorite id required", domain.ErrInvalidInput)
	}
	return s.store.RemoveFavorite(ctx, favoriteID)
}
