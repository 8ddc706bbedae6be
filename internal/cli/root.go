// Package cli wires the otodoke subcommands: the API server, operator
// reports, schedule imports, demo seeding, and the terminal widget.
package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ayase-dev/otodoke/internal/config"
	"github.com/ayase-dev/otodoke/internal/domain"
	"github.com/ayase-dev/otodoke/internal/repository"
	"github.com/ayase-dev/otodoke/internal/service"
)

// App holds everything the subcommands need. Catalog and Imports are
// nil when the binary runs in widget mode against a remote API.
type App struct {
	Config  *config.Config
	Cal     *domain.Calendar
	Repo    repository.CatalogRepo
	Catalog service.CatalogService
	Imports service.ImportService
	Logger  *zap.Logger

	// IsInteractive gates the terminal widget on a real TTY.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "otodoke" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "otodoke",
		Short:         "Delivery schedule and variant resolution engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(app),
		newReportCmd(app),
		newImportCmd(app),
		newSeedCmd(app),
		newWidgetCmd(app),
	)

	return root
}
