package sync

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gastos/cmd/client/cmd/types"
	"gastos/internal/app/client"
	syncdomain "gastos/internal/domain/sync"
)

var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize with the server",
	Long: `Push the complete local expense set to the server, then pull the
server's authoritative state and replace the local store with it. The
server's version wins; on any failure local data is left untouched.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok {
			return fmt.Errorf("application is not initialized")
		}

		result, err := app.Sync(cmd.Context())
		if err != nil {
			switch {
			case errors.Is(err, syncdomain.ErrNotAuthenticated):
				return fmt.Errorf("not logged in. Run: gastos auth login")
			case errors.Is(err, syncdomain.ErrInProgress):
				return fmt.Errorf("a synchronization is already running")
			}

			var pushErr *syncdomain.PushError
			if errors.As(err, &pushErr) {
				color.Red("Push failed: %v", pushErr)
				fmt.Println("Local data is unchanged; retry when the server is reachable.")
				return err
			}
			var pullErr *syncdomain.PullError
			if errors.As(err, &pullErr) {
				color.Red("Pull failed: %v", pullErr)
				fmt.Println("Local data is unchanged; retry when the server is reachable.")
				return err
			}
			return err
		}

		color.Green("Sync complete")
		fmt.Printf("  pushed:  %d (%d created, %d updated)\n", result.Pushed, result.Created, result.Updated)
		fmt.Printf("  pulled:  %d\n", result.Pulled)
		if result.Dropped > 0 {
			color.Yellow("  dropped: %d malformed server records", result.Dropped)
		}
		fmt.Printf("  server time: %s\n", result.ServerTimestamp.Local().Format("2006-01-02 15:04:05"))
		return nil
	},
}
