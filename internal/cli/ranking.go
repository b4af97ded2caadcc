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

// NewRankingCmd prints leaderboards and, with --user, a player's history.
func NewRankingCmd(configPath *string) *cobra.Command {
	var (
		levelID int64
		userID  int64
		limit   int
	)
	cmd := &cobra.Command{
		Use:   "ranking",
		Short: "Print the global leaderboard, a level's best scores or a player's history",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.LoadOptional(*configPath)
			if err != nil {
				return err
			}
			svc, err := buildServices(ctx, cfg)
			if err != nil {
				return err
			}
			defer svc.Close()
			return printRanking(ctx, cmd.OutOrStdout(), svc.ranking(), levelID, userID, limit)
		},
	}
	cmd.Flags().Int64Var(&levelID, "level", 0, "also show the best scores of this level")
	cmd.Flags().Int64Var(&userID, "user", 0, "show this user's play history and total score instead")
	cmd.Flags().IntVar(&limit, "limit", app.DefaultRankingLimit, "number of rows per leaderboard")
	return cmd
}

var headingStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)

func printRanking(ctx context.Context, w io.Writer, ranking *app.RankingService, levelID, userID int64, limit int) error {
	if userID > 0 {
		return printHistory(ctx, w, ranking, userID)
	}
	if levelID > 0 {
		board, err := ranking.Board(ctx, levelID, limit)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, headingStyle.Render("Global ranking"))
		fmt.Fprintln(w, rankingTable(board.Global))
		fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("Best scores of level %d", levelID)))
		fmt.Fprintln(w, rankingTable(board.Level))
		return nil
	}
	rows, err := ranking.Global(ctx, limit)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, headingStyle.Render("Global ranking"))
	fmt.Fprintln(w, rankingTable(rows))
	return nil
}

func printHistory(ctx context.Context, w io.Writer, ranking *app.RankingService, userID int64) error {
	history, err := ranking.History(ctx, userID)
	if err != nil {
		return err
	}
	total, err := ranking.TotalScore(ctx, userID)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("History of user %d (total %d)", userID, total)))
	if len(history) == 0 {
		fmt.Fprintln(w, "No games played yet.")
		return nil
	}
	t := table.New().Border(lipgloss.NormalBorder()).Headers("Level", "Score", "Correct", "Date")
	for _, h := range history {
		t.Row(levelLabel(h), strconv.Itoa(h.Score), fmt.Sprintf("%d/%d", h.CorrectCount, h.TotalCount), playedAt(h))
	}
	fmt.Fprintln(w, t.Render())
	return nil
}

func rankingTable(rows []domain.RankingRow) string {
	if len(rows) == 0 {
		return "No scores to show yet."
	}
	t := table.New().Border(lipgloss.NormalBorder()).Headers("#", "Player", "Score")
	for _, r := range rows {
		t.Row(strconv.Itoa(r.Position), r.UserName, strconv.Itoa(r.Score))
	}
	return t.Render()
}

func levelLabel(h domain.HistoryEntry) string {
	if h.LevelName != "" {
		return h.LevelName
	}
	if h.LevelID != 0 {
		return fmt.Sprintf("Level %d", h.LevelID)
	}
	return "Unknown level"
}

func playedAt(h domain.HistoryEntry) string {
	if h.PlayedAt.IsZero() {
		return "Date not available"
	}
	return h.PlayedAt.Local().Format("2006-01-02 15:04")
}
