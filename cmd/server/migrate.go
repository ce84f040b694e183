package main

import (
	"github.com/IT-Nick/vocational-profile/internal/app"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := resolveConfigPath(cmd)
		if err != nil {
			return err
		}

		application, err := app.NewApp(cmd.Context(), configPath)
		if err != nil {
			return err
		}
		defer application.Close()

		return application.Migrate(cmd.Context())
	},
}
