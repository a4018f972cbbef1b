package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/biocat-api/internal/bootstrap"
)

// Formatos de respaldo soportados.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ExportOptions flags de export.
type ExportOptions struct {
	*RootOptions
	Out    string
	Format string
}

// NewExportCommand crea el comando export.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporta el respaldo completo (sin el tema)",
		Long: `Exporta inventario, clientes, órdenes, credenciales y configuración.

Ejemplos:
  biocatctl export > respaldo.json
  biocatctl export --out respaldo.yaml --format yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "archivo de salida (por defecto stdout)")
	cmd.Flags().StringVar(&opts.Format, "format", FormatJSON, "formato (json|yaml)")
	return cmd
}

func runExport(cmd *cobra.Command, opts *ExportOptions) error {
	format := strings.ToLower(opts.Format)
	if format != FormatJSON && format != FormatYAML {
		return WrapExitError(ExitCommandError, fmt.Sprintf("formato %q no soportado", opts.Format), nil)
	}
	ctx := context.Background()
	return withEngine(ctx, opts.RootOptions, func(app *bootstrap.App) error {
		backup, err := app.Backup.Export(ctx)
		if err != nil {
			return WrapExitError(ExitFailure, "exportar", err)
		}
		data, err := json.MarshalIndent(backup, "", "  ")
		if err != nil {
			return WrapExitError(ExitFailure, "codificar respaldo", err)
		}
		if format == FormatYAML {
			if data, err = jsonToYAML(data); err != nil {
				return WrapExitError(ExitFailure, "codificar YAML", err)
			}
		} else {
			data = append(data, '\n')
		}
		if opts.Out == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := afero.WriteFile(opts.Fs, opts.Out, data, 0o600); err != nil {
			return WrapExitError(ExitCommandError, "escribir "+opts.Out, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "respaldo escrito en %s (%d productos, %d clientes, %d órdenes)\n",
			opts.Out, len(backup.Inventory), len(backup.Clients), len(backup.Orders))
		return nil
	})
}

// jsonToYAML reescribe un documento JSON como YAML en bloque conservando el orden de
// las claves y los tipos (los montos siguen siendo texto).
func jsonToYAML(data []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	resetStyle(&node)
	return yaml.Marshal(&node)
}

func resetStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		resetStyle(c)
	}
}

// yamlToJSON convierte un respaldo YAML al JSON que entiende Restore.
func yamlToJSON(data []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}
