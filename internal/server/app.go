// Package server initializes and runs the authentication service: it
// opens the database, runs migrations, builds the token codec and
// password hasher, and starts the HTTP server with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/reacademix/authd/internal/common"
	"github.com/reacademix/authd/internal/dbx"
	"github.com/reacademix/authd/internal/logging"
	"github.com/reacademix/authd/internal/server/auth"
	"github.com/reacademix/authd/internal/server/config"
	"github.com/reacademix/authd/internal/server/httpapi"
	"github.com/reacademix/authd/internal/server/models"
	"github.com/reacademix/authd/internal/server/password"
	"github.com/reacademix/authd/internal/server/repositories/repomanager"
	"github.com/reacademix/authd/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repos       repomanager.RepositoryManager
	hasher      *password.Hasher
	authService *services.AuthService
	tokenCodec  *auth.TokenCodec
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	repos := repomanager.NewPostgresRepositoryManager()
	if err := repos.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	// the codec validates the signing key once here; the process refuses
	// to start with a weak secret
	codec, err := auth.NewTokenCodec(cfg.SecretKey, cfg.TokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("token codec init error: %w", err)
	}

	hasher := password.NewHasher(cfg.BcryptCost)
	authService := services.NewAuthService(db, repos, hasher, codec, logger)

	app := &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		repos:       repos,
		hasher:      hasher,
		authService: authService,
		tokenCodec:  codec,
	}

	if cfg.SeedDemoAccount {
		if err := app.seedDemoAccount(context.Background()); err != nil {
			return nil, fmt.Errorf("seed error: %w", err)
		}
	}

	return app, nil
}

// seedDemoAccount inserts the development demo account if it is absent.
// Runs inside a transaction so a partial seed never persists.
func (app *App) seedDemoAccount(ctx context.Context) error {
	return dbx.WithTx(ctx, app.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := app.repos.Accounts(tx)

		_, err := repo.FindByEmail(ctx, "test@academy.com")
		if err == nil {
			return nil
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		hash, err := app.hasher.Hash("SecurePass123!")
		if err != nil {
			return err
		}

		_, err = repo.Create(ctx, &models.Account{
			Email:        "test@academy.com",
			PasswordHash: hash,
			Name:         "Test User",
			Role:         models.RoleStandard,
			Status:       models.StatusActive,
		})
		if err != nil {
			return err
		}

		app.logger.Info(ctx, "seeded demo account", "email", "test@academy.com")
		return nil
	})
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.authService, app.tokenCodec)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
}
