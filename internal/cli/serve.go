package cli

import (
	"github.com/spf13/cobra"

	"resume-review/internal/bootstrap"
	"resume-review/internal/shared/server"
)

func newServeCmd(opts Options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(app *bootstrap.App) error {
				if addr == "" {
					addr = server.Addr(app.Config.Port)
				}
				return server.Run(cmd.Context(), addr, app.Router)
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default :$PORT)")
	return cmd
}
