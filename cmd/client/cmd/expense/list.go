package expense

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gastos/cmd/client/cmd/types"
	"gastos/internal/app/client"
	"gastos/internal/domain/expense"
)

var (
	listCategory string
	listProduct  string
	listFrom     string
	listTo       string
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List expenses, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok {
			return fmt.Errorf("application is not initialized")
		}

		f := expense.Filter{
			Product:  listProduct,
			Category: listCategory,
		}
		if listFrom != "" {
			from, err := parseWhen(listFrom)
			if err != nil {
				return err
			}
			f.From = expense.StartOfDay(from)
		}
		if listTo != "" {
			to, err := parseWhen(listTo)
			if err != nil {
				return err
			}
			f.To = expense.EndOfDay(to)
		}

		expenses := app.ListExpenses(f)
		if len(expenses) == 0 {
			fmt.Println("No expenses found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPRODUCT\tPRICE\tCATEGORY\tDATE")
		for _, e := range expenses {
			fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\n",
				e.ID, e.Product, e.Price, e.Category, e.Timestamp.Format("2006-01-02 15:04"))
		}
		w.Flush()

		color.Cyan("Total: %.2f (%d expenses)", expense.Sum(expenses), len(expenses))
		return nil
	},
}

func init() {
	ListCmd.Flags().StringVarP(&listCategory, "category", "c", "", "only this category")
	ListCmd.Flags().StringVarP(&listProduct, "product", "p", "", "product name contains (case-insensitive)")
	ListCmd.Flags().StringVar(&listFrom, "from", "", "start date (inclusive)")
	ListCmd.Flags().StringVar(&listTo, "to", "", "end date (inclusive)")
}
