package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/negocify-api/internal/domain/repository"
	"github.com/jhoicas/negocify-api/internal/infrastructure/csvimport"
)

func newImportWarehousesCmd(a *app) *cobra.Command {
	var (
		encoding string
		dryRun   bool
	)
	cmd := &cobra.Command{
		Use:   "import-warehouses <archivo.csv>",
		Short: "Crea almacenes desde un CSV con columnas nombre y direccion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("abrir csv: %w", err)
			}
			defer f.Close()

			list, err := csvimport.ReadWarehouses(f, encoding)
			if err != nil {
				return err
			}
			if dryRun {
				for _, w := range list {
					fmt.Fprintln(cmd.OutOrStdout(), w.Name)
				}
				return nil
			}
			return a.tx.RunAdmin(cmd.Context(), func(_ repository.UserRepository, warehouses repository.WarehouseRepository, _ repository.AccessRepository) error {
				for i := range list {
					if err := warehouses.Create(cmd.Context(), &list[i]); err != nil {
						return fmt.Errorf("crear %q: %w", list[i].Name, err)
					}
				}
				a.log.Info().Int("almacenes", len(list)).Str("archivo", args[0]).Msg("importación completada")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&encoding, "encoding", csvimport.EncodingAuto, "auto | utf-8 | latin1")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "solo lista los almacenes leídos")
	return cmd
}
