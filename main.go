// Command cityair downloads the US cities demographics dataset, enriches every
// city with its current air quality and writes the result to a CSV file.
//
// Usage:
//
//	cityair [-v] [run|verify|serve]
//
// run (the default) performs one pass, verify additionally checks the pinned
// regression scenarios, and serve repeats the run on a daily schedule while
// exposing /health, /metrics and /runs/latest.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/giygas/city-airquality/config"
	"github.com/giygas/city-airquality/data"
	"github.com/giygas/city-airquality/health"
	"github.com/giygas/city-airquality/logging"
	"github.com/giygas/city-airquality/pipeline"
	"github.com/giygas/city-airquality/regression"
	"github.com/giygas/city-airquality/scheduler"
	"github.com/giygas/city-airquality/server"
	"github.com/joho/godotenv"
)

const (
	cmdRun    = "run"
	cmdVerify = "verify"
	cmdServe  = "serve"
)

var errUsage = errors.New("usage: cityair [-v] [run|verify|serve]")

func main() {
	os.Exit(realMain(os.Args[1:], os.Stderr))
}

func realMain(args []string, stderr io.Writer) int {
	command, verbose, err := parseArgs(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	// Missing .env is fine, the environment may already be set
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(stderr, "No .env file loaded:", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, "Invalid configuration:", err)
		return 1
	}

	opts := logging.OptionsFromConfig(cfg)
	opts.Verbose = verbose
	logging.InitLogger(opts)
	defer logging.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, command, cfg); err != nil {
		logging.Error("Command failed", "command", command, "error", err)
		return 1
	}
	return 0
}

// parseArgs returns the subcommand, defaulting to run
func parseArgs(args []string, stderr io.Writer) (string, bool, error) {
	fs := flag.NewFlagSet("cityair", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "verbose console logging")

	if err := fs.Parse(args); err != nil {
		return "", false, errUsage
	}

	switch fs.NArg() {
	case 0:
		return cmdRun, *verbose, nil
	case 1:
		switch command := fs.Arg(0); command {
		case cmdRun, cmdVerify, cmdServe:
			return command, *verbose, nil
		}
	}
	return "", false, errUsage
}

func execute(ctx context.Context, command string, cfg *config.Config) error {
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}
	p := pipeline.FromConfig(cfg)

	switch command {
	case cmdVerify:
		if err := regression.Verify(ctx, p, cfg.DemographicsDigest); err != nil {
			return err
		}
		logging.Info("All regression scenarios passed", "output", cfg.OutputFile)
		return nil

	case cmdServe:
		return serve(ctx, cfg, p)

	default:
		_, err := p.Run(ctx)
		return err
	}
}

// serve runs the scheduler and the status server until ctx is cancelled
func serve(ctx context.Context, cfg *config.Config, p *pipeline.Pipeline) error {
	store := data.NewRunContainer()
	store.SetServerStartTime(time.Now())

	sched := scheduler.NewScheduler(store, p, cfg.Schedule)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	srv := server.NewServer(cfg, store, health.NewHealthChecker(store, sched.NextRun))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		logging.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
