package main

import (
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}

			storage, closeFn, err := openStorage(cfg, log)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := storage.Migrate(cmd.Context()); err != nil {
				return err
			}
			log.Info("migrations applied", "driver", cfg.DB.Driver)
			return nil
		},
	}
}
