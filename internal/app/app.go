package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/boklen/rentals/internal/config"
	"github.com/boklen/rentals/internal/domain/repository"
	"github.com/boklen/rentals/internal/metrics"
	"github.com/boklen/rentals/internal/usecase"
	"github.com/boklen/rentals/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewRentalFacade,
		newHTTPServer,
		newSnapshotWriter,
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type writerParams struct {
	fx.In

	Config  *config.Config
	Store   repository.KeyValueStore
	Worker  *worker.WriteBehind
	Metrics *metrics.Metrics `optional:"true"`
}

// newSnapshotWriter picks where store mutations are written: straight to the
// backend in sync mode, through the write-behind buffer otherwise.
func newSnapshotWriter(p writerParams) repository.SnapshotWriter {
	if p.Config.PersistMode == config.PersistSync {
		if p.Metrics == nil {
			return p.Store
		}
		return &countingWriter{next: p.Store, recorder: p.Metrics}
	}
	return p.Worker
}

// countingWriter records the outcome of each direct write. The write-behind
// worker records its own flushes.
type countingWriter struct {
	next     repository.SnapshotWriter
	recorder interface{ PersistResult(error) }
}

func (w *countingWriter) SetMany(ctx context.Context, entries ...repository.Entry) error {
	err := w.next.SetMany(ctx, entries...)
	w.recorder.PersistResult(err)
	return err
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Worker     *worker.WriteBehind
	Cart       *usecase.CartStore
	User       *usecase.UserStore
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	async := p.Config.PersistMode != config.PersistSync

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := p.Cart.Load(ctx); err != nil {
				return err
			}
			if err := p.User.Load(ctx); err != nil {
				return err
			}
			if async {
				// the start context ends with OnStart, the worker must outlive it
				p.Worker.Start(context.Background())
			}

			p.Logger.Info("starting boklen state service",
				slog.String("addr", p.Server.Addr),
				slog.String("storage", p.Config.StorageDriver),
				slog.String("persist", p.Config.PersistMode),
			)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			var errs []error
			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs = append(errs, err)
			}
			if async {
				if err := p.Worker.Stop(shutdownCtx); err != nil {
					p.Logger.Error("final flush failed", slog.String("error", err.Error()))
					errs = append(errs, err)
				}
			}
			p.Logger.Info("boklen state service stopped")
			return errors.Join(errs...)
		},
	})
}
