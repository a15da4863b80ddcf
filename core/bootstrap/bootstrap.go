package bootstrap

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	coreconfig "github.com/babelpass/babelpass/core/config"
	coredatabase "github.com/babelpass/babelpass/core/database"
	"github.com/babelpass/babelpass/core/logger"
	"github.com/babelpass/babelpass/internal/profile"
)

// Options control the generic bootstrap pipeline.
type Options struct {
	Config *coreconfig.Config

	LoggerInit func(*coreconfig.Config) error
	Connect    func(coredatabase.Config) (*sqlx.DB, error)
	Migrate    func(coredatabase.Config) error
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
type Result struct {
	Store profile.Store
	DB    *sqlx.DB
}

// Run initializes the logger and opens the profile store selected by
// storage.driver. For the postgres driver it connects to the database and
// applies migrations first; the memory driver needs neither.
func Run(opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	if opts.Config.Storage.Driver != coreconfig.StoragePostgres {
		return &Result{Store: profile.NewMemoryStore()}, nil
	}

	dbCfg := databaseConfig(opts.Config)

	connect := opts.Connect
	if connect == nil {
		connect = coredatabase.Connect
	}
	db, err := connect(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: database initialization failed: %w", err)
	}

	migrate := opts.Migrate
	if migrate == nil {
		migrate = coredatabase.RunMigrations
	}
	if err := migrate(dbCfg); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: migrations failed: %w", err)
	}

	return &Result{Store: profile.NewPostgresStore(db), DB: db}, nil
}

func databaseConfig(cfg *coreconfig.Config) coredatabase.Config {
	d := cfg.Storage.Database
	return coredatabase.Config{
		Host:           d.Host,
		Port:           d.Port,
		User:           d.User,
		Password:       d.Password,
		Name:           d.Name,
		SSLMode:        d.SSLMode,
		MaxConnections: d.MaxConnections,
	}
}
