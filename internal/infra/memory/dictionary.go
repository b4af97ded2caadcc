package memory

import (
	"context"
	"strings"
	"sync"

	"yuwelongo/internal/domain"
)

// StaticDictionary serves categories and words from memory.
type StaticDictionary struct {
	categories []domain.Category
	words      []domain.Word
}

func NewStaticDictionary(categories []domain.Category, words []domain.Word) *StaticDictionary {
	return &StaticDictionary{categories: categories, words: words}
}

func (d *StaticDictionary) Categories(_ context.Context) ([]domain.Category, error) {
	return append([]domain.Category(nil), d.categories...), nil
}

func (d *StaticDictionary) Category(_ context.Context, id int64) (domain.Category, error) {
	for _, c := range d.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Category{}, domain.ErrNotFound
}

func (d *StaticDictionary) Words(_ context.Context) ([]domain.Word, error) {
	return append([]domain.Word(nil), d.words...), nil
}

func (d *StaticDictionary) SearchWords(_ context.Context, field domain.WordField, query string) ([]domain.Word, error) {
	query = strings.ToLower(query)
	var out []domain.Word
	for _, w := range d.words {
		text := w.Nasa
		if field == domain.WordFieldTranslation {
			text = w.Translation
		}
		if strings.Contains(strings.ToLower(text), query) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (d *StaticDictionary) word(id int64) (domain.Word, bool) {
	for _, w := range d.words {
		if w.ID == id {
			return w, true
		}
	}
	return domain.Word{}, false
}

// FavoriteStore keeps favorites in memory, resolving words from a dictionary.
type FavoriteStore struct {
	dict *StaticDictionary

	mu     sync.Mutex
	nextID int64
	favs   []domain.Favorite
}

func NewFavoriteStore(dict *StaticDictionary) *FavoriteStore {
	return &FavoriteStore{dict: dict}
}

func (s *FavoriteStore) Favorites(_ context.Context, userID int64) ([]domain.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Favorite{}
	for _, f := range s.favs {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *FavoriteStore) AddFavorite(_ context.Context, userID, wordID int64) (domain.Favorite, error) {
	word, ok := s.dict.word(wordID)
	if !ok {
		return domain.Favorite{}, domain.ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	fav := domain.Favorite{ID: s.nextID, UserID: userID, Word: word}
	s.favs = append(s.favs, fav)
	return fav, nil
}

func (s *FavoriteStore) RemoveFavorite(_ context.Context, favoriteID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, f := range s.favs {
		if f.ID == favoriteID {
			s.favs = append(s.favs[:i], s.favs[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
