package csv

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gastos/cmd/client/cmd/types"
	"gastos/internal/app/client"
)

var ImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import expenses from a CSV file",
	Long: `Import expenses from a CSV file with the columns Producto, Precio,
Categoria and Timestamp. Invalid rows are skipped and reported, valid
rows are imported.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok {
			return fmt.Errorf("application is not initialized")
		}

		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer file.Close()

		result, err := app.ImportCSV(file)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("Imported %d expenses", len(result.Imported))
		if result.Skipped > 0 {
			color.Yellow("Skipped %d invalid rows", result.Skipped)
		}
		return nil
	},
}
