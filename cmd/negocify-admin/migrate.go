package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/negocify-api/internal/infrastructure/postgres"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Crea las tablas y los roles de referencia (idempotente)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := postgres.Migrate(cmd.Context(), a.tx); err != nil {
				return err
			}
			a.log.Info().Msg("esquema aplicado")
			return nil
		},
	}
}
