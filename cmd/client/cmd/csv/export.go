package csv

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gastos/cmd/client/cmd/types"
	"gastos/internal/app/client"
	"gastos/internal/domain/expense"
)

var exportCategory string

var ExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export expenses to a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok {
			return fmt.Errorf("application is not initialized")
		}

		file, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("create %s: %w", args[0], err)
		}
		defer file.Close()

		count, err := app.ExportCSV(file, expense.Filter{Category: exportCategory})
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		color.Green("Exported %d expenses to %s", count, args[0])
		return nil
	},
}

func init() {
	ExportCmd.Flags().StringVarP(&exportCategory, "category", "c", "", "only this category")
}
