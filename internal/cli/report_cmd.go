package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ayase-dev/otodoke/internal/cli/formatter"
	"github.com/ayase-dev/otodoke/internal/domain"
)

func newReportCmd(app *App) *cobra.Command {
	var all bool
	var locale string

	cmd := &cobra.Command{
		Use:   "report PRODUCT_ID",
		Short: "Show the delivery report for a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			tag := domain.MatchLocale(locale)

			report, err := app.Catalog.DeliveryReport(ctx, args[0], tag, !all)
			if err != nil {
				return err
			}

			fmt.Printf("Baseline: %s\n\n", report.Current.Text)

			if len(report.SKUs) == 0 {
				fmt.Println("No delaying SKUs.")
				return nil
			}

			headers := []string{"CODE", "NAME", "SCHEDULE", "STATUS"}
			rows := make([][]string, 0, len(report.SKUs))
			for _, line := range report.SKUs {
				status := formatter.Dim("on time")
				if line.Delaying {
					status = formatter.StyleYellow.Render("delaying")
				}
				rows = append(rows, []string{
					line.Code,
					line.Name,
					line.Schedule.Text,
					status,
				})
			}

			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include SKUs that are not delaying")
	cmd.Flags().StringVar(&locale, "locale", "", "Locale for schedule text (e.g. ja, en)")

	return cmd
}
