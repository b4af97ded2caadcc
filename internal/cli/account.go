package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"yuwelongo/internal/domain"
)

// NewRegisterCmd creates a player account in the YuweLongo API.
func NewRegisterCmd(configPath *string) *cobra.Command {
	var reg domain.Registration
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a player account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := loadServices(ctx, *configPath)
			if err != nil {
				return err
			}
			defer svc.Close()

			accounts := svc.accountService()
			if accounts == nil {
				return errNoAccounts
			}
			user, err := accounts.Register(ctx, reg)
			if err != nil {
				return err
			}
			printUser(cmd.OutOrStdout(), "Registered", user)
			return nil
		},
	}
	cmd.Flags().StringVar(&reg.Name, "name", "", "display name")
	cmd.Flags().StringVar(&reg.Email, "email", "", "login email")
	cmd.Flags().StringVar(&reg.Password, "password", os.Getenv("YUWELONGO_PASSWORD"), "account password")
	return cmd
}

// NewProfileCmd shows a player's profile, updating it first when any of
// --name, --email or --password is given.
func NewProfileCmd(configPath *string) *cobra.Command {
	var update domain.ProfileUpdate
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or edit a player profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := loadServices(ctx, *configPath)
			if err != nil {
				return err
			}
			defer svc.Close()

			accounts := svc.accountService()
			if accounts == nil {
				return errNoAccounts
			}
			if update.Name == "" && update.Email == "" && update.Password == "" {
				user, err := accounts.Profile(ctx, update.ID)
				if err != nil {
					return err
				}
				printUser(cmd.OutOrStdout(), "Profile", user)
				return nil
			}
			user, err := accounts.UpdateProfile(ctx, update)
			if err != nil {
				return err
			}
			printUser(cmd.OutOrStdout(), "Updated", user)
			return nil
		},
	}
	cmd.Flags().Int64Var(&update.ID, "user", 0, "player id")
	cmd.Flags().StringVar(&update.Name, "name", "", "new display name")
	cmd.Flags().StringVar(&update.Email, "email", "", "new email")
	cmd.Flags().StringVar(&update.Password, "password", "", "new password")
	return cmd
}

func printUser(w io.Writer, heading string, user domain.User) {
	fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("%s: %s", heading, user.Name)))
	fmt.Fprintf(w, "id:    %d\nemail: %s\nrole:  %s\n", user.ID, user.Email, user.Role)
	if !user.RegisteredAt.IsZero() {
		fmt.Fprintf(w, "since: %s\n", user.RegisteredAt.Local().Format("2006-01-02"))
	}
}
