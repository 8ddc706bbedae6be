package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ayase-dev/otodoke/internal/httpapi"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the edge delivery API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = app.Config.Addr
			}

			srv := httpapi.NewServer(app.Catalog, app.Cal, app.Logger)
			if err := srv.Run(addr); err != nil {
				return fmt.Errorf("serving on %s: %w", addr, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to OTODOKE_ADDR)")

	return cmd
}
