// Package bootstrap arma el motor completo (persistencia, workspace y casos de uso)
// a partir de la configuración. Lo comparten la API y biocatctl.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/jhoicas/biocat-api/internal/application/analytics"
	"github.com/jhoicas/biocat-api/internal/application/auth"
	"github.com/jhoicas/biocat-api/internal/application/backup"
	"github.com/jhoicas/biocat-api/internal/application/orders"
	"github.com/jhoicas/biocat-api/internal/application/usecase"
	"github.com/jhoicas/biocat-api/internal/domain/entity"
	"github.com/jhoicas/biocat-api/internal/domain/ledger"
	"github.com/jhoicas/biocat-api/internal/domain/repository"
	"github.com/jhoicas/biocat-api/internal/infrastructure/filestore"
	"github.com/jhoicas/biocat-api/internal/infrastructure/memory"
	"github.com/jhoicas/biocat-api/internal/infrastructure/pdf"
	"github.com/jhoicas/biocat-api/internal/infrastructure/postgres"
	"github.com/jhoicas/biocat-api/internal/infrastructure/redisstore"
	"github.com/jhoicas/biocat-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/biocat-api/pkg/config"
	"github.com/jhoicas/biocat-api/pkg/logger"
)

const persisterBuffer = 64

// App motor armado.
type App struct {
	Config    *config.Config
	Log       *logger.Logger
	Workspace *memory.Workspace
	Sessions  *memory.SessionStore

	Auth      *auth.AuthUseCase
	Products  *usecase.ProductUseCase
	Clients   *usecase.ClientUseCase
	Orders    *orders.OrderUseCase
	Receipts  *orders.ReceiptUseCase
	Settings  *usecase.SettingsUseCase
	Backup    *backup.BackupUseCase
	Dashboard *analytics.DashboardUseCase

	closeStore func() error
}

// Options dependencias reemplazables (tests).
type Options struct {
	Repository repository.SnapshotRepository
	IDs        ledger.IDGenerator
	Clock      ledger.Clock
}

// New abre el store elegido por STORE_DRIVER, carga (o siembra) el agregado y arma los
// casos de uso.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger, opts Options) (*App, error) {
	if opts.IDs == nil {
		opts.IDs = ledger.UUIDGenerator{}
	}
	if opts.Clock == nil {
		opts.Clock = ledger.SystemClock{}
	}

	closeStore := func() error { return nil }
	repo := opts.Repository
	if repo == nil {
		var err error
		repo, closeStore, err = OpenRepository(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
	}

	initial, seeded, err := InitialSnapshot(ctx, repo, cfg.Ledger, opts.Clock)
	if err != nil {
		_ = closeStore()
		return nil, err
	}
	if seeded {
		if err := repo.Save(ctx, initial); err != nil {
			_ = closeStore()
			return nil, fmt.Errorf("guardar snapshot inicial: %w", err)
		}
		log.Info().Bool("demo", cfg.Ledger.SeedDemo).Msg("snapshot inicial sembrado")
	}

	persister := memory.NewPersister(repo, log, persisterBuffer)
	ws := memory.NewWorkspace(initial, persister, log)
	sessions := memory.NewSessionStore(time.Now().UnixNano())

	app := &App{
		Config:    cfg,
		Log:       log,
		Workspace: ws,
		Sessions:  sessions,
		Auth: auth.NewAuthUseCase(ws, sessions, opts.Clock, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}, log),
		Products:   usecase.NewProductUseCase(ws, opts.IDs, opts.Clock, log),
		Clients:    usecase.NewClientUseCase(ws, opts.IDs, opts.Clock, log),
		Orders:     orders.NewOrderUseCase(ws, opts.IDs, opts.Clock, log),
		Receipts:   orders.NewReceiptUseCase(ws, pdf.NewReceiptGenerator(), opts.Clock, cfg.Ledger.BusinessName),
		Settings:   usecase.NewSettingsUseCase(ws, log),
		Backup:     backup.NewBackupUseCase(ws, sessions, opts.IDs, opts.Clock, log),
		Dashboard:  analytics.NewDashboardUseCase(ws),
		closeStore: closeStore,
	}
	return app, nil
}

// Flush espera a que todo lo confirmado esté guardado.
func (a *App) Flush(ctx context.Context) error {
	return a.Workspace.Flush(ctx)
}

// Close drena el persister y cierra el store.
func (a *App) Close(ctx context.Context) error {
	err := a.Workspace.Close(ctx)
	if cerr := a.closeStore(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	return err
}

// OpenRepository abre el SnapshotRepository del driver configurado. La función
// devuelta libera conexiones.
func OpenRepository(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.SnapshotRepository, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Store.Driver {
	case config.DriverMemory:
		return memory.NewSnapshotRepository(), noop, nil

	case config.DriverFile:
		repo := filestore.NewSnapshotRepository(afero.NewOsFs(), cfg.Store.FileDir, cfg.Store.Name)
		log.Info().Str("path", repo.Path()).Msg("store de archivo")
		return repo, noop, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		repo := postgres.NewSnapshotRepository(pool, cfg.Store.Name)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info().Msg("store PostgreSQL")
		return repo, func() error { pool.Close(); return nil }, nil

	case config.DriverSQLite:
		repo, err := sqlite.Open(cfg.Store.SQLitePath, cfg.Store.Name)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("path", cfg.Store.SQLitePath).Msg("store SQLite")
		return repo, repo.Close, nil

	case config.DriverRedis:
		rdb, err := redisstore.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("addr", cfg.Redis.Address).Msg("store Redis")
		return redisstore.NewSnapshotRepository(rdb, cfg.Store.Name), rdb.Close, nil
	}
	return nil, nil, fmt.Errorf("STORE_DRIVER desconocido: %q", cfg.Store.Driver)
}

// InitialSnapshot carga el agregado guardado y lo normaliza, o siembra uno nuevo si no
// hay nada (seeded = true).
func InitialSnapshot(ctx context.Context, repo repository.SnapshotRepository, cfg config.LedgerConfig, clock ledger.Clock) (*entity.Snapshot, bool, error) {
	loaded, err := repo.Load(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("cargar snapshot: %w", err)
	}
	if loaded != nil {
		if err := normalize(loaded, cfg); err != nil {
			return nil, false, err
		}
		return loaded, false, nil
	}

	hash, err := auth.HashPassword(cfg.DefaultPassword)
	if err != nil {
		return nil, false, err
	}
	s := &entity.Snapshot{
		Inventory: []entity.Product{},
		Clients:   []entity.Client{},
		Orders:    []entity.Order{},
		Auth:      entity.Auth{Credentials: entity.Credentials{Username: cfg.DefaultUsername, PasswordHash: hash}},
		Theme:     entity.Theme{Mode: entity.ThemeSystem},
		Settings:  entity.Settings{LowStockThreshold: ledger.SanitizeThreshold(cfg.LowStockThreshold, entity.DefaultLowStockThreshold)},
	}
	if cfg.SeedDemo {
		s.Inventory, s.Clients, s.Orders = backup.DemoData(clock.Now())
	}
	return s, true, nil
}

// normalize completa un documento cargado: secciones nulas, tema inválido, credenciales
// heredadas en texto plano o ausentes.
func normalize(s *entity.Snapshot, cfg config.LedgerConfig) error {
	if s.Inventory == nil {
		s.Inventory = []entity.Product{}
	}
	if s.Clients == nil {
		s.Clients = []entity.Client{}
	}
	if s.Orders == nil {
		s.Orders = []entity.Order{}
	}
	s.Theme.Mode = strings.ToLower(strings.TrimSpace(s.Theme.Mode))
	if !entity.IsValidThemeMode(s.Theme.Mode) {
		s.Theme.Mode = entity.ThemeSystem
	}
	if s.Settings.LowStockThreshold < 0 {
		s.Settings.LowStockThreshold = entity.DefaultLowStockThreshold
	}

	creds := &s.Auth.Credentials
	if err := auth.NormalizeCredentials(creds); err != nil {
		return err
	}
	if strings.TrimSpace(creds.Username) == "" || creds.PasswordHash == "" {
		hash, err := auth.HashPassword(cfg.DefaultPassword)
		if err != nil {
			return err
		}
		*creds = entity.Credentials{Username: cfg.DefaultUsername, PasswordHash: hash}
	}
	return nil
}
