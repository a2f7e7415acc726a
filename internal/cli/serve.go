package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/99minutos/backoffice/internal/api"
	"github.com/99minutos/backoffice/internal/api/handler"
	"github.com/99minutos/backoffice/internal/core/ports"
	"github.com/99minutos/backoffice/internal/core/service"
	"github.com/99minutos/backoffice/internal/infrastructure/db/memory"
	mongodb "github.com/99minutos/backoffice/internal/infrastructure/db/mongo"
	redisdb "github.com/99minutos/backoffice/internal/infrastructure/db/redis"
	"github.com/99minutos/backoffice/internal/infrastructure/queue"
	"github.com/99minutos/backoffice/internal/pkg/config"
	"github.com/99minutos/backoffice/pkg/logger"
)

const (
	shutdownTimeout  = 10 * time.Second
	readinessTimeout = 2 * time.Second
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the back office API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

type repositories struct {
	users    ports.UserRepository
	products ports.ProductRepository
	orders   ports.OrderRepository
	activity ports.ActivityRepository
}

func (a *app) serve(ctx context.Context) error {
	log := logger.Component("server")
	readiness := map[string]handler.PingFunc{}

	demoHash, err := service.HashPassword(a.cfg.DemoPassword)
	if err != nil {
		return err
	}

	var repos repositories
	switch a.cfg.StoreDriver {
	case config.StoreMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: a.cfg.Mongo.URI, Database: a.cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		store := mongodb.NewStore(db)
		if err := store.EnsureIndexes(ctx); err != nil {
			return err
		}
		if err := store.EnsureSeed(ctx, demoHash); err != nil {
			return err
		}
		readiness["mongo"] = store.Ping
		repos = repositories{store.Users, store.Products, store.Orders, store.Activity}
	default:
		store := memory.New(time.Now().UTC(), demoHash)
		repos = repositories{store.Users(), store.Products(), store.Orders(), store.Activity()}
	}

	var denylist ports.TokenDenylist = memory.NewDenylist()
	if a.cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: a.cfg.Redis.Addr, DB: a.cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()
		readiness["redis"] = redisdb.Ping(rdb, readinessTimeout)
		denylist = redisdb.NewDenylist(rdb)
	}

	workerCtx, stopWorkers := context.WithCancel(context.WithoutCancel(ctx))
	defer stopWorkers()
	dispatcher := queue.NewDispatcher(a.cfg.ActivityWorkers, repos.activity, log)
	dispatcher.Start(workerCtx)

	e := api.NewRouter(api.Dependencies{
		Auth:      service.NewAuthService(repos.users, denylist, dispatcher, a.cfg.JWTSecret, a.cfg.TokenTTL, log),
		Users:     service.NewUserService(repos.users, dispatcher, demoHash, log),
		Products:  service.NewProductService(repos.products, dispatcher, log),
		Orders:    service.NewOrderService(repos.orders, dispatcher, log),
		Activity:  service.NewActivityService(repos.activity),
		Readiness: readiness,
		Log:       log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", a.cfg.Port).Str("store", a.cfg.StoreDriver).Msg("listening")
		if err := e.Start(":" + a.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
