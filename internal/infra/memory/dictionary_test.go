package memory

import (
	"context"
	"errors"
	"testing"

	"yuwelongo/internal/domain"
)

func sampleDictionary() *StaticDictionary {
	return NewStaticDictionary(
		[]domain.Category{{ID: 1, Name: "Naturaleza"}},
		[]domain.Word{
			{ID: 1, Nasa: "kiwe", Translation: "territorio", CategoryID: 1},
			{ID: 2, Nasa: "yu'", Translation: "agua", CategoryID: 1},
		},
	)
}

func TestStaticDictionarySearch(t *testing.T) {
	dict := sampleDictionary()
	ctx := context.Background()

	got, _ := dict.SearchWords(ctx, domain.WordFieldNasa, "KI")
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("unexpected nasa search %+v", got)
	}
	got, _ = dict.SearchWords(ctx, domain.WordFieldTranslation, "agu")
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("unexpected translation search %+v", got)
	}
	if _, err := dict.Category(ctx, 99); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestFavoriteStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewFavoriteStore(sampleDictionary())

	fav, err := store.AddFavorite(ctx, 4, 2)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if fav.Word.Nasa != "yu'" || fav.UserID != 4 {
		t.Fatalf("unexpected favorite %+v", fav)
	}
	if _, err := store.AddFavorite(ctx, 4, 99); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected unknown word to be rejected, got %v", err)
	}

	favs, _ := store.Favorites(ctx, 4)
	if len(favs) != 1 {
		t.Fatalf("expected one favorite, got %+v", favs)
	}
	if other, _ := store.Favorites(ctx, 5); other == nil || len(other) != 0 {
		t.Fatalf("expected empty non-nil list for another user, got %#v", other)
	}

	if err := store.RemoveFavorite(ctx, fav.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := store.RemoveFavorite(ctx, fav.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected second remove to report not found, got %v", err)
	}
}
