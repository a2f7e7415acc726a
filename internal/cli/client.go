package cli

import (
	"context"
	"os"
	"os/user"

	"github.com/99minutos/backoffice/internal/client/console"
	"github.com/99minutos/backoffice/internal/client/demo"
	"github.com/99minutos/backoffice/internal/client/session"
	"github.com/99minutos/backoffice/internal/client/state"
	"github.com/99minutos/backoffice/internal/client/transport"
	"github.com/99minutos/backoffice/internal/core/service"
	redisdb "github.com/99minutos/backoffice/internal/infrastructure/db/redis"
	"github.com/99minutos/backoffice/internal/pkg/config"
	"github.com/99minutos/backoffice/pkg/logger"
)

// console builds the operator controller. With API_URL set it talks to a
// running server; otherwise it runs against a freshly seeded in-process
// store, so changes last for one command only.
func (a *app) console(ctx context.Context) (*console.Controller, func(), error) {
	store, closeStore, err := a.sessionStorage(ctx)
	if err != nil {
		return nil, nil, err
	}
	cleanup := closeStore
	tokens := session.TokenSource(store)

	var client *transport.Client
	if a.cfg.Client.APIURL != "" {
		client = transport.NewHTTP(a.cfg.Client.APIURL, tokens, nil).Client()
	} else {
		hash, err := service.HashPassword(a.cfg.DemoPassword)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		demoCtx, stop := context.WithCancel(context.WithoutCancel(ctx))
		cleanup = func() { stop(); closeStore() }
		backend := demo.New(demoCtx, demo.Options{
			PasswordHash: hash,
			JWTSecret:    a.cfg.JWTSecret,
			TokenTTL:     a.cfg.TokenTTL,
			Workers:      a.cfg.ActivityWorkers,
			Log:          a.log,
		})
		var delay transport.Delay
		if a.cfg.Client.LatencyMax > 0 {
			delay = transport.RandomDelay(a.cfg.Client.LatencyMin, a.cfg.Client.LatencyMax)
		}
		client = backend.Client(tokens, delay)
	}

	log := logger.Component("console")
	auth := state.NewAuth(ctx, client.Auth, store, log)
	return console.New(client, auth, console.NewWriterNotifier(os.Stderr), log), cleanup, nil
}

func (a *app) sessionStorage(ctx context.Context) (session.Storage, func(), error) {
	if a.cfg.Session.Backend == config.SessionRedis {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: a.cfg.Redis.Addr, DB: a.cfg.Redis.DB})
		if err != nil {
			return nil, nil, err
		}
		return session.NewRedis(rdb, sessionNamespace(), a.cfg.TokenTTL), func() { _ = rdb.Close() }, nil
	}

	path := a.cfg.Session.File
	if path == "" {
		p, err := session.DefaultPath()
		if err != nil {
			return nil, nil, err
		}
		path = p
	}
	return session.NewFile(path), func() {}, nil
}

func sessionNamespace() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "default"
}

// withConsole runs fn with a controller and releases it afterwards.
func (a *app) withConsole(ctx context.Context, fn func(*console.Controller) error) error {
	ctl, cleanup, err := a.console(ctx)
	if err != nil {
		return err
	}
	defer cleanup()
	return fn(ctl)
}
