package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"yuwelongo/internal/app"
	"yuwelongo/internal/config"
	"yuwelongo/internal/domain"
)

// NewDictionaryCmd browses categories and searches words.
func NewDictionaryCmd(configPath *string) *cobra.Command {
	var (
		categoryID int64
		search     string
		by         string
	)
	cmd := &cobra.Command{
		Use:   "dictionary",
		Short: "List dictionary categories, a category's words or search words",
		RunE: func(cmd *cobra.Command, args []string) error {
			field, ok := domain.ParseWordField(by)
			if !ok {
				return fmt.Errorf("--by must be nasa or translation, got %q", by)
			}
			ctx := cmd.Context()
			svc, err := loadServices(ctx, *configPath)
			if err != nil {
				return err
			}
			defer svc.Close()

			dictionary := svc.dictionary()
			w := cmd.OutOrStdout()
			switch {
			case categoryID > 0:
				return printCategory(ctx, w, dictionary, categoryID)
			case cmd.Flags().Changed("search"):
				return printSearch(ctx, w, dictionary, field, search)
			default:
				return printCategories(ctx, w, dictionary)
			}
		},
	}
	cmd.Flags().Int64Var(&categoryID, "category", 0, "show the words of this category")
	cmd.Flags().StringVar(&search, "search", "", "search words; an empty value lists them all")
	cmd.Flags().StringVar(&by, "by", string(domain.WordFieldNasa), "field to search: nasa or translation")
	return cmd
}

// NewFavoritesCmd lists, adds and removes a player's saved words.
func NewFavoritesCmd(configPath *string) *cobra.Command {
	var (
		userID int64
		add    int64
		remove int64
		filter string
	)
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage a player's favorite words",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := loadServices(ctx, *configPath)
			if err != nil {
				return err
			}
			defer svc.Close()

			favorites := svc.favoriteService()
			w := cmd.OutOrStdout()
			if add > 0 {
				fav, err := favorites.Add(ctx, userID, add)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "Saved %s (%s) as favorite %d\n", fav.Word.Nasa, fav.Word.Translation, fav.ID)
				return nil
			}
			if remove > 0 {
				if err := favorites.Remove(ctx, remove); err != nil {
					return err
				}
				fmt.Fprintf(w, "Removed favorite %d\n", remove)
				return nil
			}
			return printFavorites(ctx, w, favorites, userID, filter)
		},
	}
	cmd.Flags().Int64Var(&userID, "user", 0, "player id")
	cmd.Flags().Int64Var(&add, "add", 0, "save this word id")
	cmd.Flags().Int64Var(&remove, "remove", 0, "remove this favorite id")
	cmd.Flags().StringVar(&filter, "filter", "", "only list favorites matching this text")
	return cmd
}

func loadServices(ctx context.Context, configPath string) (*services, error) {
	cfg, err := config.LoadOptional(configPath)
	if err != nil {
		return nil, err
	}
	return buildServices(ctx, cfg)
}

func printCategories(ctx context.Context, w io.Writer, dictionary *app.DictionaryService) error {
	categories, err := dictionary.Categories(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, headingStyle.Render("Categories"))
	if len(categories) == 0 {
		fmt.Fprintln(w, "No categories yet.")
		return nil
	}
	t := table.New().Border(lipgloss.NormalBorder()).Headers("ID", "Name", "Description")
	for _, c := range categories {
		t.Row(strconv.FormatInt(c.ID, 10), c.Name, c.Description)
	}
	fmt.Fprintln(w, t.Render())
	return nil
}

func printCategory(ctx context.Context, w io.Writer, dictionary *app.DictionaryService, id int64) error {
	page, err := dictionary.Category(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, headingStyle.Render(page.Category.Name))
	if page.Category.Description != "" {
		fmt.Fprintln(w, page.Category.Description)
	}
	fmt.Fprintln(w, wordTable(page.Words))
	return nil
}

func printSearch(ctx context.Context, w io.Writer, dictionary *app.DictionaryService, field domain.WordField, query string) error {
	words, err := dictionary.Search(ctx, field, query)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("Words (%d)", len(words))))
	fmt.Fprintln(w, wordTable(words))
	return nil
}

func printFavorites(ctx context.Context, w io.Writer, favorites *app.FavoritesService, userID int64, filter string) error {
	favs, err := favorites.List(ctx, userID, filter)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("Favorites of user %d", userID)))
	if len(favs) == 0 {
		fmt.Fprintln(w, "No favorite words.")
		return nil
	}
	t := table.New().Border(lipgloss.NormalBorder()).Headers("Favorite", "Word", "Nasa Yuwe", "Translation")
	for _, f := range favs {
		t.Row(strconv.FormatInt(f.ID, 10), strconv.FormatInt(f.Word.ID, 10), f.Word.Nasa, f.Word.Translation)
	}
	fmt.Fprintln(w, t.Render())
	return nil
}

func wordTable(words []domain.Word) string {
	if len(words) == 0 {
		return "No words found."
	}
	t := table.New().Border(lipgloss.NormalBorder()).Headers("ID", "Nasa Yuwe", "Translation", "Example")
	for _, word := range words {
		t.Row(strconv.FormatInt(word.ID, 10), word.Nasa, word.Translation, word.Example)
	}
	return t.Render()
}
