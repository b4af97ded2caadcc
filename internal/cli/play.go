package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"yuwelongo/internal/app"
	"yuwelongo/internal/config"
	"yuwelongo/internal/infra/backend"
	"yuwelongo/internal/tui"
)

// NewPlayCmd runs the game in the terminal against the configured collaborators.
func NewPlayCmd(configPath *string) *cobra.Command {
	var (
		email    string
		password string
		clientID string
		name     string
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the vocabulary game in the terminal",
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

			player := app.Player{Name: name}
			if email != "" {
				if svc.api == nil {
					return fmt.Errorf("login requires backend.url to be configured")
				}
				account, err := svc.api.Login(ctx, email, password)
				if err != nil {
					return err
				}
				player = app.Player{ID: account.UserID, Name: account.Name}
				ctx = backend.WithToken(ctx, account.Token)
			}

			game := svc.gameFactory(cfg).NewGame(clientID, player)
			_, err = tea.NewProgram(tui.New(ctx, game, player.Name), tea.WithAltScreen()).Run()
			game.Wait()
			return err
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "log in with this email before playing")
	cmd.Flags().StringVar(&password, "password", os.Getenv("YUWELONGO_PASSWORD"), "password for --email")
	cmd.Flags().StringVar(&clientID, "client", "terminal", "session slot key; reuse it to resume an unfinished game")
	cmd.Flags().StringVar(&name, "name", "", "display name when playing without login")
	return cmd
}
