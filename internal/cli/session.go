package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/99minutos/backoffice/internal/client/console"
	"github.com/99minutos/backoffice/internal/client/forms"
	"github.com/99minutos/backoffice/internal/core/ports"
)

const revokeTimeout = 5 * time.Second

// errOfflineRegister is returned by register without API_URL: the
// in-process store is reseeded by every command, so the new account would
// be gone before the next one runs.
var errOfflineRegister = errors.New("register needs API_URL: accounts created without a server do not outlive the command")

func newLoginCommand(a *app) *cobra.Command {
	var in ports.LoginInput
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withConsole(cmd.Context(), func(c *console.Controller) error {
				user, err := c.Login(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s <%s> (%s)\n", user.Name, user.Email, user.Role)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "account password")
	return cmd
}

func newRegisterCommand(a *app) *cobra.Command {
	var in ports.RegisterInput
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a viewer account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.Client.APIURL == "" {
				return errOfflineRegister
			}
			if in.ConfirmPassword == "" {
				in.ConfirmPassword = in.Password
			}
			return a.withConsole(cmd.Context(), func(c *console.Controller) error {
				user, err := c.Register(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Registered %s <%s> (%s)\n", user.Name, user.Email, user.Role)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "display name")
	cmd.Flags().StringVar(&in.Email, "email", "", "account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "account password")
	cmd.Flags().StringVar(&in.ConfirmPassword, "confirm", "", "password confirmation (defaults to --password)")
	return cmd
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session and revoke its token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withConsole(cmd.Context(), func(c *console.Controller) error {
				revoked := c.Logout(cmd.Context())
				select {
				case err := <-revoked:
					if err != nil {
						a.log.Warn().Err(err).Msg("token revocation failed")
					}
				case <-time.After(revokeTimeout):
					a.log.Warn().Msg("token revocation timed out")
				}
				return nil
			})
		},
	}
}

func newWhoamiCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in operator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withConsole(cmd.Context(), func(c *console.Controller) error {
				user, err := c.Whoami(cmd.Context())
				if err != nil {
					return err
				}
				w := newTable(cmd.OutOrStdout())
				fmt.Fprintf(w, "ID\t%s\n", user.ID)
				fmt.Fprintf(w, "Name\t%s\n", user.Name)
				fmt.Fprintf(w, "Email\t%s\n", user.Email)
				fmt.Fprintf(w, "Role\t%s\n", user.Role)
				return w.Flush()
			})
		},
	}
}

func newProfileCommand(a *app) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Change the signed-in operator's display name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withConsole(cmd.Context(), func(c *console.Controller) error {
				user, err := c.UpdateProfile(cmd.Context(), name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Name is now %s\n", user.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new display name")
	return cmd
}

func newPasswordCommand(a *app) *cobra.Command {
	var in forms.PasswordChange
	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the signed-in operator's password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withConsole(cmd.Context(), func(c *console.Controller) error {
				return c.ChangePassword(cmd.Context(), in)
			})
		},
	}
	cmd.Flags().StringVar(&in.CurrentPassword, "current", "", "current password")
	cmd.Flags().StringVar(&in.NewPassword, "new", "", "new password")
	cmd.Flags().StringVar(&in.ConfirmPassword, "confirm", "", "new password again")
	return cmd
}
