package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	cataloginadapter "leadtrack/internal/modules/catalog/adapter/in"
	catalogoutadapter "leadtrack/internal/modules/catalog/adapter/out"
	catalogin "leadtrack/internal/modules/catalog/port/in"
	catalogservice "leadtrack/internal/modules/catalog/service"
	catalogusecase "leadtrack/internal/modules/catalog/usecase"
	shiftinadapter "leadtrack/internal/modules/shift/adapter/in"
	shiftoutadapter "leadtrack/internal/modules/shift/adapter/out"
	shiftservice "leadtrack/internal/modules/shift/service"
	shiftusecase "leadtrack/internal/modules/shift/usecase"
	"leadtrack/internal/platform/clock"
	"leadtrack/internal/platform/config"
	"leadtrack/internal/platform/id"
	uiapp "leadtrack/internal/ui/app"
)

type App struct {
	Config     config.Config
	Log        zerolog.Logger
	ShiftCLI   shiftinadapter.CLIHandler
	ShiftHTTP  shiftinadapter.HTTPHandler
	CatalogCLI cataloginadapter.CLIHandler

	catalog catalogin.Usecase
	shift   *shiftusecase.Manager
	closers []io.Closer
}

// New wires the workspace, seeds default dropdowns into an empty database,
// and loads shift history.
func New(ctx context.Context, cfg config.Config, log zerolog.Logger) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.Timestamped{}

	catalogStore, err := catalogoutadapter.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new catalog store: %w", err)
	}
	sessionStore, err := shiftoutadapter.NewSQLiteSessionStore(cfg.DBPath)
	if err != nil {
		_ = catalogStore.Close()
		return nil, fmt.Errorf("new session store: %w", err)
	}
	app := &App{Config: cfg, Log: log, closers: []io.Closer{catalogStore, sessionStore}}

	catalogUC := catalogusecase.NewInteractor(
		catalogservice.NewCatalogService(clk, ids, catalogStore, catalogStore),
		catalogoutadapter.NewFSNotifier(cfg.DBPath, 0, log.With().Str("component", "catalog").Logger()),
		log.With().Str("component", "catalog").Logger(),
	)
	if _, err := catalogUC.SeedDefaults(ctx); err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	manager := shiftusecase.NewManager(
		shiftservice.NewSessionService(clk, ids),
		shiftoutadapter.NewCatalogSource(catalogUC),
		sessionStore,
		shiftoutadapter.NewVaultSessionNotes(cfg.NotesPath),
		catalogoutadapter.NewFSNotifier(cfg.DBPath, 0, log.With().Str("component", "shift").Logger()),
		log.With().Str("component", "shift").Logger(),
	)
	if err := manager.Load(ctx); err != nil {
		_ = app.Close()
		return nil, err
	}

	app.catalog = catalogUC
	app.shift = manager
	app.ShiftCLI = shiftinadapter.NewCLIHandler(manager)
	app.ShiftHTTP = shiftinadapter.NewHTTPHandler(manager, log.With().Str("component", "http").Logger())
	app.CatalogCLI = cataloginadapter.NewCLIHandler(catalogUC)
	return app, nil
}

func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// Watch keeps the catalog view and shift history in sync with writes from
// other processes until ctx is done.
func (a *App) Watch(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.catalog.Watch(gctx) })
	g.Go(func() error { return a.shift.Watch(gctx) })
	return g.Wait()
}

func RunTUI(ctx context.Context, app *App) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := app.Watch(ctx); err != nil {
			app.Log.Warn().Err(err).Msg("workspace watcher stopped")
		}
	}()

	model := uiapp.NewModel(app.Config.WorkspacePath, app.Config.Operator, app.ShiftCLI, app.CatalogCLI, time.Now)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// Router mounts the HTTP API.
func Router(app *App) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(app.Log))
	app.ShiftHTTP.Routes(r)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

// Serve runs the HTTP API and the workspace watcher until ctx is done.
func Serve(ctx context.Context, app *App, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           Router(app),
		ReadHeaderTimeout: 5 * time.Second,
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		app.Log.Info().Str("addr", addr).Msg("http api listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return app.Watch(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("took", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}
