package expense

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gastos/cmd/client/cmd/types"
	"gastos/internal/app/client"
	"gastos/internal/domain/expense"
)

var (
	addCategory string
	addWhen     string
)

var AddCmd = &cobra.Command{
	Use:   "add <product> <price>",
	Short: "Record a new expense",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok {
			return fmt.Errorf("application is not initialized")
		}

		price, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid price %q: %w", args[1], err)
		}

		ts, err := parseWhen(addWhen)
		if err != nil {
			return err
		}

		e, err := app.AddExpense(args[0], price, addCategory, ts)
		if err != nil {
			return err
		}

		color.Green("Added %s (%.2f, %s)", e.Product, e.Price, e.Category)
		return nil
	},
}

func init() {
	AddCmd.Flags().StringVarP(&addCategory, "category", "c", expense.DefaultCategory, "expense category")
	AddCmd.Flags().StringVarP(&addWhen, "when", "w", "", "timestamp of the expense (default: now)")
}
