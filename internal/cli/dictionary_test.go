package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"yuwelongo/internal/config"
	"yuwelongo/internal/domain"
)

func TestSampleWordsBelongToCategories(t *testing.T) {
	categories := make(map[int64]bool)
	for _, c := range sampleCategories() {
		categories[c.ID] = true
	}
	for _, w := range sampleWords() {
		if !categories[w.CategoryID] {
			t.Fatalf("sample word %q references unknown category %d", w.Nasa, w.CategoryID)
		}
	}
}

func TestSampleDictionaryPrints(t *testing.T) {
	ctx := context.Background()
	svc, err := buildServices(ctx, config.Config{})
	if err != nil {
		t.Fatalf("build services: %v", err)
	}
	defer svc.Close()

	var out bytes.Buffer
	if err := printCategory(ctx, &out, svc.dictionary(), 2); err != nil {
		t.Fatalf("print category: %v", err)
	}
	if !strings.Contains(out.String(), "Cielo") || !strings.Contains(out.String(), "a'te") || strings.Contains(out.String(), "kiwe") {
		t.Fatalf("unexpected category output:\n%s", out.String())
	}

	out.Reset()
	if err := printSearch(ctx, &out, svc.dictionary(), domain.WordFieldTranslation, "territorio"); err != nil {
		t.Fatalf("print search: %v", err)
	}
	if !strings.Contains(out.String(), "Words (1)") || !strings.Contains(out.String(), "kiwe") {
		t.Fatalf("unexpected search output:\n%s", out.String())
	}
}

func TestSampleFavorites(t *testing.T) {
	ctx := context.Background()
	svc, err := buildServices(ctx, config.Config{})
	if err != nil {
		t.Fatalf("build services: %v", err)
	}
	defer svc.Close()

	favorites := svc.favoriteService()
	if _, err := favorites.Add(ctx, 3, 4); err != nil {
		t.Fatalf("add favorite: %v", err)
	}
	var out bytes.Buffer
	if err := printFavorites(ctx, &out, favorites, 3, "LUNA"); err != nil {
		t.Fatalf("print favorites: %v", err)
	}
	if !strings.Contains(out.String(), "a'te") {
		t.Fatalf("unexpected favorites output:\n%s", out.String())
	}

	out.Reset()
	if err := printFavorites(ctx, &out, favorites, 3, "sol"); err != nil {
		t.Fatalf("print favorites: %v", err)
	}
	if !strings.Contains(out.String(), "No favorite words.") {
		t.Fatalf("expected empty filtered list, got:\n%s", out.String())
	}
}

func TestAccountCommandsNeedBackend(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"register", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "--name", "Ana", "--email", "ana@example.com", "--password", "secreto"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); !errors.Is(err, errNoAccounts) {
		t.Fatalf("expected errNoAccounts, got %v", err)
	}
}

func TestDictionaryCommandRejectsUnknownField(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"dictionary", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "--search", "yu", "--by", "color"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "--by") {
		t.Fatalf("expected --by error, got %v", err)
	}
}
