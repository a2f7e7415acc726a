// Package cli holds the backoffice command tree.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/99minutos/backoffice/internal/pkg/config"
	"github.com/99minutos/backoffice/pkg/logger"
)

// app is shared by every command once the root pre-run has loaded it.
type app struct {
	cfg *config.Config
	log zerolog.Logger
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "backoffice",
		Short:         "E-commerce back office: API server and operator console",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logger.Init(logger.Options{
				Level:   cfg.LogLevel,
				Pretty:  cfg.IsDevelopment(),
				Output:  os.Stderr,
				Service: "backoffice",
			})
			return nil
		},
	}

	root.AddCommand(
		newServeCommand(a),
		newLoginCommand(a),
		newRegisterCommand(a),
		newLogoutCommand(a),
		newWhoamiCommand(a),
		newProfileCommand(a),
		newPasswordCommand(a),
		newDashboardCommand(a),
		newProductsCommand(a),
		newUsersCommand(a),
		newOrdersCommand(a),
		newActivityCommand(a),
	)
	return root
}
