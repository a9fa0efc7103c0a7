// Package server initializes and runs the evote server: it selects the
// storage backend, wires the services and runs the gRPC and public HTTP
// APIs until a shutdown signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/evote/internal/cryptox"
	"github.com/dmitrijs2005/evote/internal/dbx"
	"github.com/dmitrijs2005/evote/internal/logging"
	"github.com/dmitrijs2005/evote/internal/server/config"
	"github.com/dmitrijs2005/evote/internal/server/httpapi"
	"github.com/dmitrijs2005/evote/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/evote/internal/server/services"
	"github.com/dmitrijs2005/evote/internal/timex"

	gs "github.com/dmitrijs2005/evote/internal/server/grpc"
)

const accessTokenTTL = 24 * time.Hour

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	grpcSvc   gs.Services
	elections *services.ElectionService
	tally     *services.TallyService
	publisher *services.PublishService
}

// openStorage returns the transactor and repository manager for the
// configured DSN, running migrations on PostgreSQL.
var openStorage = func(ctx context.Context, c *config.Config) (*sql.DB, dbx.Transactor, repomanager.RepositoryManager, error) {
	if c.InMemory() {
		return nil, dbx.NoTx{}, repomanager.NewMemoryRepositoryManager(), nil
	}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("db open error: %w", err)
	}

	rm := &repomanager.PostgresRepositoryManager{}
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, nil, fmt.Errorf("migration error: %w", err)
	}

	return db, dbx.NewSQLTransactor(db, nil), rm, nil
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, tx, rm, err := openStorage(context.Background(), c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	deps := services.Deps{
		Tx:          tx,
		RepoManager: rm,
		Clock:       timex.SystemClock{},
		Log:         logger,
	}
	sealer := cryptox.NewKeySealer(c.KeySealSecret, nil)
	if !sealer.Enabled() {
		logger.Warn(context.Background(), "key seal secret not set, election private keys are stored unsealed")
	}

	store := services.NewS3Store(services.S3Settings{
		RootUser:     c.S3RootUser,
		RootPassword: c.S3RootPassword,
		Bucket:       c.S3Bucket,
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
	})

	es := services.NewElectionService(deps, sealer)
	ts := services.NewTallyService(deps, sealer)
	ps := services.NewPublishService(deps, ts, store, c.ResultsURLTTL)

	app := &App{
		config:    c,
		logger:    logger,
		db:        db,
		elections: es,
		tally:     ts,
		publisher: ps,
		grpcSvc: gs.Services{
			Elections: es,
			Voting:    services.NewVotingService(deps),
			Tally:     ts,
			Publisher: ps,
			Users:     services.NewUserService(deps, c.SecretKey, accessTokenTTL),
			Notifier:  services.NewLogNotifier(logger),
		},
	}
	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.grpcSvc, app.config.SecretKey)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.elections, app.tally, app.publisher)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "in_memory", app.config.InMemory())

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, "db close failed", "error", err.Error())
		}
	}
	app.logger.Info(ctx, "App stopped")
}
