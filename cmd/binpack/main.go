package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/eugenenazirov/binpack/internal/application"
	"github.com/eugenenazirov/binpack/internal/config"
	"github.com/eugenenazirov/binpack/internal/logging"
	"github.com/eugenenazirov/binpack/internal/packing"
)

var signalNotify = signal.Notify

type cli struct {
	app *kingpin.Application

	run   *kingpin.CmdClause
	serve *kingpin.CmdClause

	configFile     *string
	logLevel       *string
	databaseURL    *string
	heuristics     *[]string
	format         *string
	summary        *bool
	instanceFiles  *[]string
	port           *string
	rateLimitRPS   *float64
	rateLimitBurst *int
}

func newCLI() *cli {
	c := &cli{
		app: kingpin.New("binpack", "Greedy one-dimensional bin packing heuristics for OR-Library benchmark instances"),
	}
	c.configFile = c.app.Flag("config", "Path to YAML configuration file").String()
	c.logLevel = c.app.Flag("log-level", "Log level (debug, info, warn, error)").String()
	c.databaseURL = c.app.Flag("database-url", "PostgreSQL URL for storing results").String()

	c.run = c.app.Command("run", "Run heuristics over benchmark instance files and print the results").Default()
	c.heuristics = c.run.Flag("heuristic", fmt.Sprintf("Heuristic to run, repeatable (%v or ff, bf, ffd, bfd)", packing.Names())).Short('H').Strings()
	c.format = c.run.Flag("format", "Report format: tsv, csv or json").Short('f').String()
	c.summary = c.run.Flag("summary", "Append a per-heuristic summary").Bool()
	c.instanceFiles = c.run.Arg("files", "OR-Library or JSON instance files").Strings()

	c.serve = c.app.Command("serve", "Serve the heuristics over HTTP")
	c.port = c.serve.Flag("port", "HTTP port exposed by the service").String()
	c.rateLimitRPS = c.serve.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	c.rateLimitBurst = c.serve.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()
	return c
}

// overrides converts parsed flags into config overrides. Unset flags are left nil.
func (c *cli) overrides() *config.CLIOverrides {
	o := &config.CLIOverrides{
		ConfigFile:    *c.configFile,
		InstanceFiles: *c.instanceFiles,
		Heuristics:    *c.heuristics,
	}
	if *c.logLevel != "" {
		o.LogLevel = c.logLevel
	}
	if *c.databaseURL != "" {
		o.DatabaseURL = c.databaseURL
	}
	if *c.format != "" {
		o.OutputFormat = c.format
	}
	if *c.summary {
		o.Summary = c.summary
	}
	if *c.port != "" {
		o.Port = c.port
	}
	if *c.rateLimitRPS >= 0 {
		o.RateLimitRPS = c.rateLimitRPS
	}
	if *c.rateLimitBurst >= 0 {
		o.RateLimitBurst = c.rateLimitBurst
	}
	return o
}

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	c := newCLI()
	command := kingpin.MustParse(c.app.Parse(os.Args[1:]))

	cfg, err := config.Load(c.overrides())
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	switch command {
	case c.run.FullCommand():
		if err := runExperiment(cfg, logger, os.Stdout); err != nil {
			logger.Fatal("experiment failed", zap.Error(err))
		}
	case c.serve.FullCommand():
		serve(cfg, logger)
	}
}

func runExperiment(cfg config.Config, logger *zap.Logger, out io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return application.RunExperiment(ctx, cfg, logger, out)
}

func serve(cfg config.Config, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	app, err := application.New(ctx, cfg, logger)
	cancel()
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("failed to close storage", zap.Error(err))
		}
	}()

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
