package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/ayase-dev/otodoke/internal/client"
	"github.com/ayase-dev/otodoke/internal/domain"
)

func newWidgetCmd(app *App) *cobra.Command {
	var productID, apiURL, locale string

	cmd := &cobra.Command{
		Use:   "widget [PRODUCT_ID]",
		Short: "Interactive delivery widget against a running API",
		Long: `Widget renders one product page in the terminal: variant and SKU
selectors with the live delivery estimate, exactly as the storefront
embed would show it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("widget requires an interactive terminal")
			}
			if apiURL == "" {
				apiURL = app.Config.APIBaseURL
			}

			tag := domain.MatchLocale(locale)
			c := client.New(apiURL, tag)

			if len(args) > 0 {
				productID = args[0]
			}
			if productID == "" {
				picked, err := pickProduct(c)
				if err != nil {
					return err
				}
				productID = picked
			}

			loader := client.NewLoader(c, app.Config.RetryInterval)
			m := newWidgetModel(loader, app.Cal, tag, productID)
			_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&apiURL, "api", "", "Edge API base URL (defaults to OTODOKE_API_URL)")
	cmd.Flags().StringVar(&locale, "locale", "", "Locale for schedule text (e.g. ja, en)")

	return cmd
}

// pickProduct lists products from the API and asks the operator to choose.
func pickProduct(c *client.Client) (string, error) {
	summaries, err := c.FetchProducts(context.Background())
	if err != nil {
		return "", fmt.Errorf("listing products: %w", err)
	}
	if len(summaries) == 0 {
		return "", fmt.Errorf("no products available; run 'otodoke seed' first")
	}

	options := make([]huh.Option[string], 0, len(summaries))
	for _, s := range summaries {
		options = append(options, huh.NewOption(
			fmt.Sprintf("%s (%d variants)", s.Title, s.VariantCount), s.ProductID))
	}

	var picked string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Product").
				Options(options...).
				Value(&picked),
		),
	).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return "", err
	}
	return picked, nil
}
