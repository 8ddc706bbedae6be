package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ayase-dev/otodoke/internal/service"
)

func newSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load a small demo catalog into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := service.SeedDemo(context.Background(), app.Repo, app.Cal); err != nil {
				return fmt.Errorf("seeding demo catalog: %w", err)
			}
			fmt.Println("Seeded demo catalog.")
			return nil
		},
	}
}
