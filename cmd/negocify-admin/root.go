package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/negocify-api/internal/infrastructure/postgres"
	"github.com/jhoicas/negocify-api/pkg/config"
	"github.com/jhoicas/negocify-api/pkg/logger"
)

// app dependencias compartidas por los subcomandos; se abren en PersistentPreRunE.
type app struct {
	cfg  *config.Config
	log  *logger.Logger
	pool *pgxpool.Pool
	tx   *postgres.TxRunner
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "negocify-admin",
		Short:        "Herramientas de administración de Negocify",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.Context())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.pool != nil {
				a.pool.Close()
			}
		},
	}
	root.AddCommand(
		newMigrateCmd(a),
		newGrantAdminCmd(a),
		newRevokeAdminCmd(a),
		newImportWarehousesCmd(a),
	)
	return root
}

func (a *app) open(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	a.cfg = cfg
	a.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	a.pool = pool
	a.tx = postgres.NewTxRunner(pool)
	return nil
}
