// negocify-admin tareas de operación que no se exponen por HTTP: migraciones,
// alta/baja de administradores del sistema e importación de almacenes.
//
// Uso: go run ./cmd/negocify-admin <comando> [flags]
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
