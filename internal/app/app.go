// Package app wires adapters and services for both the HTTP server and the
// command line tool.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"salary-bias-service/internal/adapters/secondary/dataset"
	"salary-bias-service/internal/adapters/secondary/filestore"
	"salary-bias-service/internal/adapters/secondary/plotrender"
	"salary-bias-service/internal/adapters/secondary/postgres"
	"salary-bias-service/internal/adapters/secondary/sqlite"
	"salary-bias-service/internal/config"
	"salary-bias-service/internal/core/domain"
	"salary-bias-service/internal/core/ports/output"
	"salary-bias-service/internal/core/services"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type App struct {
	Config *config.Config
	Store  ports.ArtifactStore

	Generation     *services.GenerationService
	Survey         *services.SurveyService
	Clusters       *services.ClusterService
	ClusterVisuals *services.ClusterVisualService
	Analysis       *services.BiasAnalysisService
	Regression     *services.RegressionService
	ETL            *services.ETLService

	ping  func(ctx context.Context) error
	close func()
}

type repositories struct {
	employees   ports.EmployeeRepository
	predictions ports.PredictionRepository
	sessions    ports.SurveyRepository
	loader      ports.TableLoader
}

// New connects to the configured database and builds every service. Callers
// must Close the returned App.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{Config: cfg}

	var repos repositories
	switch cfg.Database.Driver {
	case DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		repos = postgresRepositories(pool, cfg.Database.EmployeeTable)
		a.ping = pool.Ping
		a.close = pool.Close
	case DriverSQLite:
		db, err := sqlite.Open(cfg.Database.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := sqlite.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		repos = sqliteRepositories(db, cfg.Database.EmployeeTable)
		a.ping = db.PingContext
		a.close = func() { db.Close() }
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	log.WithField("driver", cfg.Database.Driver).Info("database connection established")

	store, err := filestore.NewStore(cfg.Artifacts.Root)
	if err != nil {
		a.close()
		return nil, err
	}
	a.Store = store

	renderer := plotrender.NewRenderer(services.NewRand(cfg.Sampling.Seed))
	sampler := services.NewSampleGenerator(services.NewRand(cfg.Sampling.Seed))
	opts := RenderOptions(cfg.Render)

	a.Generation = services.NewGenerationService(repos.employees, store, renderer, sampler, opts)
	a.Survey = services.NewSurveyService(repos.sessions, store)
	a.Clusters = services.NewClusterService(repos.employees, store)
	a.ClusterVisuals = services.NewClusterVisualService(repos.employees, store, renderer, opts, cfg.Sampling.Seed)
	a.Analysis = services.NewBiasAnalysisService(repos.employees, store)
	a.Regression = services.NewRegressionService(repos.employees, repos.predictions, renderer)
	a.ETL = services.NewETLService(dataset.NewSource(), repos.loader)
	return a, nil
}

func postgresRepositories(pool *pgxpool.Pool, table string) repositories {
	return repositories{
		employees:   postgres.NewEmployeeRepository(pool, table),
		predictions: postgres.NewPredictionRepository(pool),
		sessions:    postgres.NewSurveyRepository(pool),
		loader:      postgres.NewTableLoader(pool),
	}
}

func sqliteRepositories(db *sql.DB, table string) repositories {
	return repositories{
		employees:   sqlite.NewEmployeeRepository(db, table),
		predictions: sqlite.NewPredictionRepository(db),
		sessions:    sqlite.NewSurveyRepository(db),
		loader:      sqlite.NewTableLoader(db),
	}
}

// Ping checks the database connection.
func (a *App) Ping(ctx context.Context) error {
	return a.ping(ctx)
}

func (a *App) Close() {
	if a.close != nil {
		a.close()
	}
}

// RenderOptions converts render settings, falling back to the defaults for
// unset values.
func RenderOptions(cfg config.RenderConfig) domain.RenderOptions {
	opts := domain.DefaultRenderOptions()
	if cfg.ScaleFactor > 0 {
		opts.ScaleFactor = cfg.ScaleFactor
	}
	if cfg.MinSize > 0 {
		opts.MinSize = cfg.MinSize
	}
	if cfg.Jitter >= 0 {
		opts.Jitter = cfg.Jitter
	}
	if cfg.MarginX >= 0 {
		opts.MarginX = cfg.MarginX
	}
	if cfg.MarginY >= 0 {
		opts.MarginY = cfg.MarginY
	}
	if cfg.Layout == string(domain.LayoutOverlay) {
		opts.Layout = domain.LayoutOverlay
	}
	if cfg.WidthInch > 0 {
		opts.WidthInch = cfg.WidthInch
	}
	if cfg.HeightInch > 0 {
		opts.HeightInch = cfg.HeightInch
	}
	if cfg.DPI > 0 {
		opts.DPI = cfg.DPI
	}
	return opts
}

// InitLogger applies the configured level and format to the standard logger.
func InitLogger(cfg config.LoggerConfig) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
