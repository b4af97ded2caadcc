package app

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"yuwelongo/internal/domain"
)

// DictionaryService is the read side of the public Nasa Yuwe dictionary.
type DictionaryService struct {
	words WordCatalog
}

func NewDictionaryService(words WordCatalog) *DictionaryService {
	return &DictionaryService{words: words}
}

// CategoryPage is a category together with its words.
type CategoryPage struct {
	Category domain.Category `json:"category"`
	Words    []domain.Word   `json:"words"`
}

// Categories returns every category sorted by name.
func (s *DictionaryService) Categories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.words.Categories(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return strings.ToLower(categories[i].Name) < strings.ToLower(categories[j].Name)
	})
	return categories, nil
}

// Category loads a category and its words concurrently.
func (s *DictionaryService) Category(ctx context.Context, id int64) (CategoryPage, error) {
	var (
		page CategoryPage
		all  []domain.Word
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := s.words.Category(gctx, id)
		page.Category = c
		return err
	})
	g.Go(func() error {
		w, err := s.words.Words(gctx)
		all = w
		return err
	})
	if err := g.Wait(); err != nil {
		return CategoryPage{}, err
	}

	page.Words = []domain.Word{}
	for _, w := range all {
		if w.CategoryID == id {
			page.Words = append(page.Words, w)
		}
	}
	sortWords(page.Words)
	return page, nil
}

// Search finds words by their Nasa form or translation. A blank query lists
// every word.
func (s *DictionaryService) Search(ctx context.Context, field domain.WordField, query string) ([]domain.Word, error) {
	if field != domain.WordFieldNasa && field != domain.WordFieldTranslation {
		return nil, fmt.Errorf("%w: unknown search field %q", domain.ErrInvalidInput, field)
	}
	query = strings.TrimSpace(query)

	var (
		words []domain.Word
		err   error
	)
	if query == "" {
		words, err = s.words.Words(ctx)
	} else {
		words, err = s.words.SearchWords(ctx, field, query)
	}
	if err != nil {
		return nil, err
	}
	if words == nil {
		words = []domain.Word{}
	}
	sortWords(words)
	return words, nil
}

func sortWords(words []domain.Word) {
	sort.SliceStable(words, func(i, j int) bool {
		return strings.ToLower(words[i].Nasa) < strings.ToLower(words[j].Nasa)
	})
}
