// Package cli implementa biocatctl: mantenimiento del agregado sin levantar la API.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/jhoicas/biocat-api/internal/bootstrap"
	"github.com/jhoicas/biocat-api/pkg/config"
	"github.com/jhoicas/biocat-api/pkg/logger"
)

// Códigos de salida.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // la operación falló (respaldo inválido, etc.)
	ExitCommandError = 2 // error de uso o de configuración
)

// ExitError error con código de salida.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

// WrapExitError envuelve err con un código de salida.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extrae el código de salida; ExitFailure si err no es un ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// EngineFactory abre el motor. Los tests inyectan uno en memoria.
type EngineFactory func(ctx context.Context) (*bootstrap.App, error)

// RootOptions opciones compartidas por todos los comandos.
type RootOptions struct {
	Verbose bool
	Fs      afero.Fs
	Engine  EngineFactory
}

// NewRootCommand crea el comando raíz. opts nil usa la configuración del entorno y el
// sistema de archivos real.
func NewRootCommand(opts *RootOptions) *cobra.Command {
	if opts == nil {
		opts = &RootOptions{}
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Engine == nil {
		opts.Engine = func(ctx context.Context) (*bootstrap.App, error) {
			return openFromEnv(ctx, opts.Verbose)
		}
	}

	cmd := &cobra.Command{
		Use:   "biocatctl",
		Short: "biocatctl - mantenimiento del inventario Biocat",
		Long:  "Exporta y restaura respaldos, carga datos de ejemplo y ajusta la configuración usando el mismo store que la API.",
	}
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "logs detallados en stderr")

	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewRestoreCommand(opts))
	cmd.AddCommand(NewDemoCommand(opts))
	cmd.AddCommand(NewThresholdCommand(opts))
	return cmd
}

func openFromEnv(ctx context.Context, verbose bool) (*bootstrap.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "cargar configuración", err)
	}
	level := "warn"
	if verbose {
		level = "debug"
	}
	log := logger.New(logger.Config{Env: "development", Level: level, Output: os.Stderr})
	app, err := bootstrap.New(ctx, cfg, log, bootstrap.Options{})
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "abrir store", err)
	}
	return app, nil
}

// withEngine abre el motor, ejecuta fn y espera a que los cambios queden guardados.
func withEngine(ctx context.Context, opts *RootOptions, fn func(app *bootstrap.App) error) (err error) {
	app, err := opts.Engine(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(ctx); cerr != nil && err == nil {
			err = WrapExitError(ExitFailure, "guardar cambios", cerr)
		}
	}()
	if err := fn(app); err != nil {
		return err
	}
	return app.Flush(ctx)
}
