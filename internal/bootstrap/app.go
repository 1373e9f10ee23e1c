package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"filevault/internal/files"
	"filevault/internal/services/health"
	"filevault/internal/shared/config"
	"filevault/internal/shared/server"
	"filevault/internal/shared/storage/db"
	"filevault/internal/shared/storage/object"
	localstore "filevault/internal/shared/storage/object/local"
	s3store "filevault/internal/shared/storage/object/s3"
	"filevault/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config        config.Config
	Router        *gin.Engine
	DB            *sql.DB
	Store         object.ObjectStore
	FilesRepo     files.Repo
	FilesService  *files.Service
	FilesHandler  *files.Handler
	HealthService *health.Service
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if strings.TrimSpace(cfg.MetadataStore) == "" {
		cfg.MetadataStore = "sqlite"
	}
	if cfg.MetadataStore == "sqlite" && strings.TrimSpace(cfg.SQLitePath) == "" {
		cfg.SQLitePath = "./filevault.db"
	}
	if strings.TrimSpace(cfg.LogLevel) != "" {
		if err := telemetry.SetLevel(cfg.LogLevel); err != nil {
			telemetry.Warn("bootstrap.log_level_invalid", map[string]any{"level": cfg.LogLevel})
		}
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, &cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}
	if err := buildServices(app); err != nil {
		_ = app.Close()
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:       app.Config,
		FilesHandler: app.FilesHandler,
		Health:       app.HealthService,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":            cfg.Env,
		"metadata_store": cfg.MetadataStore,
		"object_store":   cfg.ObjectStoreType,
	})
	return app, nil
}

// Close releases the database handle, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

// buildDB opens and migrates the configured metadata store. In dev-like
// environments a failure degrades to the in-memory repository.
func buildDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	var (
		sqlDB   *sql.DB
		dialect db.Dialect
		err     error
	)
	switch cfg.MetadataStore {
	case "postgres":
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			err = fmt.Errorf("DATABASE_URL is required for the postgres metadata store")
			break
		}
		dialect = db.DialectPostgres
		if db.IsLambdaRuntime() {
			sqlDB, err = db.SharedPostgres(ctx, cfg.DatabaseURL, db.LambdaPool().FromEnv())
		} else {
			sqlDB, err = db.OpenPostgres(ctx, cfg.DatabaseURL, db.ServerPool().FromEnv())
		}
	case "sqlite":
		dialect = db.DialectSQLite
		sqlDB, err = db.OpenSQLite(ctx, cfg.SQLitePath)
	default:
		telemetry.Info("bootstrap.metadata_store.memory", nil)
		return nil, nil
	}

	if err == nil {
		if err = db.RunMigrations(ctx, sqlDB, dialect); err != nil {
			err = fmt.Errorf("run migrations: %w", err)
		}
	}
	if err != nil {
		if sqlDB != nil && !db.IsLambdaRuntime() {
			_ = sqlDB.Close()
		}
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.database_unavailable", map[string]any{
				"metadata_store": cfg.MetadataStore,
				"error":          err.Error(),
			})
			cfg.MetadataStore = "memory"
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, s3store.Options{
			Region:          cfg.AWSRegion,
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			KMSKeyID:        cfg.SSEKMSKeyID,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
	default:
		return localstore.New(cfg.LocalStoreDir)
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var repo files.Repo
	var pinger health.Pinger
	switch {
	case app.DB == nil:
		repo = files.NewMemoryRepo()
	case app.Config.MetadataStore == "sqlite":
		repo = &files.SQLiteRepo{DB: app.DB}
		pinger = app.DB
	default:
		repo = &files.PGRepo{DB: app.DB}
		pinger = app.DB
	}

	svc := &files.Service{
		Store:          app.Store,
		Repo:           repo,
		MaxUploadBytes: app.Config.MaxUploadBytes,
	}

	app.FilesRepo = repo
	app.FilesService = svc
	app.FilesHandler = files.NewHandler(svc)
	app.HealthService = health.NewService(pinger, app.Config.MetadataStore, app.Config.ObjectStoreType)

	if app.FilesHandler == nil {
		return errors.New("failed to initialize handlers")
	}
	return nil
}
