package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/jhoicas/biocat-api/internal/bootstrap"
)

// RestoreOptions flags de restore.
type RestoreOptions struct {
	*RootOptions
	Format string
}

// NewRestoreCommand crea el comando restore.
func NewRestoreCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RestoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "restore <archivo>",
		Short: "Reemplaza el agregado con un respaldo",
		Long: `Reemplaza inventario, clientes y órdenes con el contenido del respaldo.
Un archivo inválido no modifica nada. El formato se deduce de la extensión
(.yaml/.yml) salvo que se indique --format.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(cmd, opts, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.Format, "format", "", "formato del archivo (json|yaml)")
	return cmd
}

func runRestore(cmd *cobra.Command, opts *RestoreOptions, path string) error {
	data, err := afero.ReadFile(opts.Fs, path)
	if err != nil {
		return WrapExitError(ExitCommandError, "leer "+path, err)
	}
	format := strings.ToLower(opts.Format)
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			format = FormatYAML
		default:
			format = FormatJSON
		}
	}
	if format == FormatYAML {
		if data, err = yamlToJSON(data); err != nil {
			return WrapExitError(ExitFailure, "archivo inválido", err)
		}
	}

	ctx := context.Background()
	return withEngine(ctx, opts.RootOptions, func(app *bootstrap.App) error {
		res, err := app.Backup.Restore(ctx, data)
		if err != nil {
			return WrapExitError(ExitFailure, "restaurar", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "restaurado: %d productos, %d clientes, %d órdenes\n",
			res.Products, res.Clients, res.Orders)
		return nil
	})
}
