package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	port       string
	configPath string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envPort := os.Getenv("PORT")
	if envPort == "" {
		envPort = "8080"
	}
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:          "yuwelongo",
		Short:        "YuweLongo vocabulary game: server, terminal client, leaderboards and dictionary",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(NewStartCmd(&configPath, &port, envPort))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	cmd.AddCommand(NewPlayCmd(&configPath))
	cmd.AddCommand(NewRankingCmd(&configPath))
	cmd.AddCommand(NewDictionaryCmd(&configPath))
	cmd.AddCommand(NewFavoritesCmd(&configPath))
	cmd.AddCommand(NewRegisterCmd(&configPath))
	cmd.AddCommand(NewProfileCmd(&configPath))
	return cmd
}
