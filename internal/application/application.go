package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/eugenenazirov/binpack/internal/api"
	"github.com/eugenenazirov/binpack/internal/config"
	"github.com/eugenenazirov/binpack/internal/experiment"
	"github.com/eugenenazirov/binpack/internal/instance"
	"github.com/eugenenazirov/binpack/internal/packing"
	"github.com/eugenenazirov/binpack/internal/storage"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	storage storage.Storage
	closer  io.Closer
	handler *api.Handler
	router  http.Handler
	logger  *zap.Logger
	server  *http.Server
}

// New initializes the application with all dependencies from the provided configuration.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	store, closer, err := OpenStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	handler := api.NewHandler(store)
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	return &App{
		storage: store,
		closer:  closer,
		handler: handler,
		router:  apiRouter,
		logger:  logger,
		server:  NewServer(cfg, BuildRootHandler(apiRouter)),
	}, nil
}

// OpenStorage returns PostgreSQL-backed storage when a database URL is
// configured and in-memory storage otherwise. The closer is nil for memory storage.
func OpenStorage(ctx context.Context, cfg config.Config, logger *zap.Logger) (storage.Storage, io.Closer, error) {
	if cfg.DatabaseURL == "" {
		logger.Debug("using in-memory result storage")
		return storage.NewMemoryStorage(), nil, nil
	}

	pg, err := storage.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open result storage: %w", err)
	}
	if err := pg.Migrate(ctx); err != nil {
		_ = pg.Close()
		return nil, nil, fmt.Errorf("failed to migrate result storage: %w", err)
	}
	logger.Info("using postgres result storage")
	return pg, pg, nil
}

// BuildRootHandler routes API requests and answers everything else with 404.
func BuildRootHandler(apiHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/api/heuristics", http.StatusTemporaryRedirect)
	}))
	return mux
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// Close releases the storage backend, if it holds any resources.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// RunExperiment loads the configured instance files, runs every configured
// heuristic over them and writes the report (and optional summary) to out.
func RunExperiment(ctx context.Context, cfg config.Config, logger *zap.Logger, out io.Writer) error {
	constructors, err := packing.LookupAll(cfg.Heuristics)
	if err != nil {
		return err
	}

	instances, err := instance.LoadFiles(cfg.InstanceFiles)
	if err != nil {
		return fmt.Errorf("load instances: %w", err)
	}
	logger.Info("instances loaded",
		zap.Int("instances", len(instances)),
		zap.Strings("files", cfg.InstanceFiles),
		zap.Strings("heuristics", cfg.Heuristics),
	)

	var opts []experiment.RunnerOption
	if cfg.DatabaseURL != "" {
		store, closer, err := OpenStorage(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer closer.Close()
		opts = append(opts, experiment.WithSink(store))
	}

	results, runErr := experiment.NewRunner(constructors, logger, opts...).Run(ctx, instances)
	if err := experiment.Write(out, cfg.OutputFormat, results); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if cfg.Summary {
		if _, err := fmt.Fprintln(out); err != nil {
			return err
		}
		if err := experiment.WriteSummary(out, experiment.Summarize(results)); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	if runErr != nil {
		return fmt.Errorf("run experiment: %w", runErr)
	}

	logger.Info("experiment finished", zap.Int("runs", len(results)))
	return nil
}
