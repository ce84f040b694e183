package main

import (
	"os/signal"
	"syscall"

	"github.com/IT-Nick/vocational-profile/internal/app"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the Telegram bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := resolveConfigPath(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		application, err := app.NewApp(ctx, configPath)
		if err != nil {
			return err
		}
		defer application.Close()

		if migrate, _ := cmd.Flags().GetBool("migrate"); migrate {
			if err := application.Migrate(ctx); err != nil {
				return err
			}
		}

		return application.ListenAndServe(ctx)
	},
}

func init() {
	serveCmd.Flags().Bool("migrate", false, "Apply database migrations before serving")
}
