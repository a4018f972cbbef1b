package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jhoicas/biocat-api/internal/bootstrap"
)

// NewDemoCommand crea el comando demo.
func NewDemoCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "demo",
		Short:         "Reemplaza inventario, clientes y órdenes con datos de ejemplo",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			return withEngine(ctx, opts, func(app *bootstrap.App) error {
				if err := app.Backup.LoadDemoData(ctx); err != nil {
					return WrapExitError(ExitFailure, "cargar datos de ejemplo", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "datos de ejemplo cargados")
				return nil
			})
		},
	}
}

// NewThresholdCommand crea el comando threshold.
func NewThresholdCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "threshold <n>",
		Short:         "Fija el umbral de stock bajo",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := strconv.ParseFloat(args[0], 64); err != nil {
				return WrapExitError(ExitCommandError, fmt.Sprintf("umbral %q no es un número", args[0]), nil)
			}
			ctx := context.Background()
			return withEngine(ctx, opts, func(app *bootstrap.App) error {
				saved, err := app.Settings.SetLowStockThreshold(ctx, args[0])
				if err != nil {
					return WrapExitError(ExitFailure, "guardar umbral", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "umbral de stock bajo: %d\n", saved)
				return nil
			})
		},
	}
}
