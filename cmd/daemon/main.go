package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/genricoloni/wallsync/internal/alarm"
	"github.com/genricoloni/wallsync/internal/api"
	"github.com/genricoloni/wallsync/internal/app"
	"github.com/genricoloni/wallsync/internal/bus"
	"github.com/genricoloni/wallsync/internal/domain"
	"github.com/genricoloni/wallsync/internal/library"
	"github.com/genricoloni/wallsync/internal/scheduler"
	"github.com/genricoloni/wallsync/internal/shuffle"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// AppOptions is the background context: persistence, the scheduler, the
// request bus and the page bridge.
var AppOptions = fx.Options(
	fx.Provide(newLogger),
	app.Core,
	fx.Provide(
		func(s *library.Store) scheduler.State { return s },
		func(e *shuffle.Engine) scheduler.Shuffler { return e },
		alarm.NewManager,
		scheduler.NewScheduler,
		func(s *scheduler.Scheduler) domain.RequestHandler { return s },
		bus.NewServer,
		api.NewServer,
	),
	fx.Invoke(registerHooks),
)

func main() {
	daemon := fx.New(
		// Logger configuration
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		AppOptions,
	)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Start the application
	if err := daemon.Start(ctx); err != nil {
		panic(err)
	}

	// Wait for interrupt signal
	<-ctx.Done()

	// Stop the application gracefully
	if err := daemon.Stop(context.Background()); err != nil {
		panic(err)
	}
}

// newLogger creates a new zap logger instance
func newLogger() (*zap.Logger, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return logger, nil
}

type hookParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Logger    *zap.Logger
	Scheduler *scheduler.Scheduler
	Alarms    *alarm.Manager
	Bus       *bus.Server
	Client    *bus.Client
	Pages     *api.Server
}

// registerHooks sets up application lifecycle hooks
func registerHooks(p hookParams) {
	// Changes go out on the bus; the relay below forwards them to pages,
	// including changes made by foreground contexts.
	p.Scheduler.AddNotifier(p.Bus)

	var stopRelay context.CancelFunc

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := p.Bus.Start(ctx); err != nil {
				return err
			}
			if err := p.Pages.Start(ctx); err != nil {
				return err
			}

			var relayCtx context.Context
			relayCtx, stopRelay = context.WithCancel(context.Background())
			notifications, err := p.Client.Subscribe(relayCtx)
			if err != nil {
				return err
			}
			go p.Pages.Relay(relayCtx, notifications)

			if err := p.Scheduler.Start(ctx); err != nil {
				return err
			}
			p.Logger.Info("Wallsync daemon started", zap.String("pages", p.Pages.Addr()))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Logger.Info("Shutting down")
			err := p.Scheduler.Stop(ctx)
			if stopRelay != nil {
				stopRelay()
			}
			err = multierr.Append(err, p.Pages.Stop(ctx))
			err = multierr.Append(err, p.Bus.Stop(ctx))
			p.Alarms.Close()
			return err
		},
	})
}
