package cmd

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/exp/slog"

	"gastos/cmd/client/cmd/types"
	"gastos/internal/app/client"
	"gastos/internal/app/client/config"
	"gastos/internal/utils/logger"

	"github.com/spf13/cobra"
)

var (
	cfg       *config.Config
	log       *slog.Logger
	app       *client.App
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "gastos",
	Short: "Gastos - offline-first personal expense tracker",
	Long: `Gastos keeps your expenses on this device and synchronizes them
with the server on demand. Everything works offline; run "gastos sync"
when you are back online to exchange state with the server.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg = config.MustLoad()

	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}

	log = logger.New(cfg.Env)
	app = client.New(cfg, log)

	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, app))
	return nil
}

func init() {
	cobra.OnInitialize()

	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "sync server address")
}
