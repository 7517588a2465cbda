package category

import (
	"fmt"

	"github.com/spf13/cobra"

	"gastos/cmd/client/cmd/types"
	"gastos/internal/app/client"
)

// CategoryCmd is the parent command for category operations.
var CategoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage the category registry",
}

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all categories",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok {
			return fmt.Errorf("application is not initialized")
		}

		for _, name := range app.Categories() {
			fmt.Println(name)
		}
		return nil
	},
}

var DeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a category and every expense in it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok {
			return fmt.Errorf("application is not initialized")
		}

		removed, err := app.DeleteCategory(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Category deleted (%d expenses removed).\n", removed)
		return nil
	},
}
