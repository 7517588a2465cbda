package expense

import (
	"fmt"

	"github.com/spf13/cobra"

	"gastos/cmd/client/cmd/types"
	"gastos/internal/app/client"
)

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an expense",
	Long: `Remove an expense from the local store. If the server already knows
it, the deletion is queued and applied on the next sync.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok {
			return fmt.Errorf("application is not initialized")
		}

		if err := app.DeleteExpense(args[0]); err != nil {
			return err
		}

		fmt.Println("Expense deleted.")
		return nil
	},
}
