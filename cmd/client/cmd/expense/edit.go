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
	editProduct  string
	editPrice    string
	editCategory string
	editWhen     string
)

var EditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an existing expense",
	Long: `Overwrite fields of an existing expense. The identifier is kept, so
the server updates the same row on the next sync. Unset flags keep the
current value.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok {
			return fmt.Errorf("application is not initialized")
		}

		id := args[0]
		var current *expense.Expense
		for _, e := range app.ListExpenses(expense.Filter{}) {
			if e.ID == id {
				e := e
				current = &e
				break
			}
		}
		if current == nil {
			return fmt.Errorf("expense %s not found", id)
		}

		product := current.Product
		if editProduct != "" {
			product = editProduct
		}

		price := current.Price
		if editPrice != "" {
			parsed, err := strconv.ParseFloat(editPrice, 64)
			if err != nil {
				return fmt.Errorf("invalid price %q: %w", editPrice, err)
			}
			price = parsed
		}

		category := current.Category
		if editCategory != "" {
			category = editCategory
		}

		ts := current.Timestamp
		if editWhen != "" {
			parsed, err := parseWhen(editWhen)
			if err != nil {
				return err
			}
			ts = parsed
		}

		updated, err := app.UpdateExpense(id, product, price, category, ts)
		if err != nil {
			return err
		}

		color.Green("Updated %s (%.2f, %s)", updated.Product, updated.Price, updated.Category)
		return nil
	},
}

func init() {
	EditCmd.Flags().StringVarP(&editProduct, "product", "p", "", "new product name")
	EditCmd.Flags().StringVar(&editPrice, "price", "", "new price")
	EditCmd.Flags().StringVarP(&editCategory, "category", "c", "", "new category")
	EditCmd.Flags().StringVarP(&editWhen, "when", "w", "", "new timestamp")
}
