package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/99minutos/backoffice/internal/client/console"
	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

func newUsersCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "Manage operator accounts (admin only)",
	}
	cmd.AddCommand(
		newUsersListCommand(a),
		newUsersGetCommand(a),
		newUsersCreateCommand(a),
		newUsersUpdateCommand(a),
		newUsersDeleteCommand(a),
	)
	return cmd
}

func newUsersListCommand(a *app) *cobra.Command {
	f := console.UserFilter{Role: console.All, Status: console.All}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withConsole(cmd.Context(), func(c *console.Controller) error {
				users, err := c.ListUsers(cmd.Context(), f)
				if err != nil {
					return err
				}
				return printUsers(cmd.OutOrStdout(), users)
			})
		},
	}
	cmd.Flags().StringVar(&f.Search, "search", "", "match name or email")
	cmd.Flags().StringVar(&f.Role, "role", console.All, "admin, editor or viewer")
	cmd.Flags().StringVar(&f.Status, "status", console.All, "active or inactive")
	return cmd
}

func newUsersGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withConsole(cmd.Context(), func(c *console.Controller) error {
				u, err := c.User(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printUser(cmd.OutOrStdout(), u)
			})
		},
	}
}

func userFlags(fs *pflag.FlagSet, in *ports.UserInput) {
	fs.StringVar(&in.Name, "name", "", "display name")
	fs.StringVar(&in.Email, "email", "", "account email")
	fs.StringVar((*string)(&in.Role), "role", string(domain.RoleViewer), "admin, editor or viewer")
	fs.StringVar((*string)(&in.Status), "status", string(domain.UserActive), "active or inactive")
	fs.StringVar(&in.Password, "password", "", "account password")
}

func newUsersCreateCommand(a *app) *cobra.Command {
	var in ports.UserInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withConsole(cmd.Context(), func(c *console.Controller) error {
				u, err := c.CreateUser(cmd.Context(), in)
				if err != nil {
					return err
				}
				return printUser(cmd.OutOrStdout(), u)
			})
		},
	}
	userFlags(cmd.Flags(), &in)
	return cmd
}

func newUsersUpdateCommand(a *app) *cobra.Command {
	var in ports.UserInput
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a user; an empty password keeps the current one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withConsole(cmd.Context(), func(c *console.Controller) error {
				cur, err := c.User(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				form := ports.UserInput{Name: cur.Name, Email: cur.Email, Role: cur.Role, Status: cur.Status}
				fs := cmd.Flags()
				if fs.Changed("name") {
					form.Name = in.Name
				}
				if fs.Changed("email") {
					form.Email = in.Email
				}
				if fs.Changed("role") {
					form.Role = in.Role
				}
				if fs.Changed("status") {
					form.Status = in.Status
				}
				form.Password = in.Password

				u, err := c.UpdateUser(cmd.Context(), args[0], form)
				if err != nil {
					return err
				}
				return printUser(cmd.OutOrStdout(), u)
			})
		},
	}
	userFlags(cmd.Flags(), &in)
	return cmd
}

func newUsersDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withConsole(cmd.Context(), func(c *console.Controller) error {
				return c.DeleteUser(cmd.Context(), args[0])
			})
		},
	}
}
