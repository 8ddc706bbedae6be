package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ayase-dev/otodoke/internal/cli/formatter"
)

func newImportCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import PRODUCT_ID",
		Short: "Import SKU schedule overrides from CSV",
		Long: `Import reads "code,numeric" rows and sets each SKU's schedule
override. An empty numeric column clears the override. Rows whose code
is unknown are reported but do not abort the run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := os.Stdin
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("opening %s: %w", file, err)
				}
				defer f.Close()
				in = f
			}

			result, err := app.Imports.ImportSchedules(context.Background(), args[0], in)
			if err != nil {
				return err
			}

			fmt.Printf("Read %d lines, updated %d SKUs\n", result.Lines, result.Updated)
			if len(result.Missing) > 0 {
				fmt.Println(formatter.Dim("Unknown codes: " + strings.Join(result.Missing, ", ")))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "CSV file to read (defaults to stdin)")

	return cmd
}
