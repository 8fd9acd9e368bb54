package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/labstack/echo/v4"
	"github.com/lithictech/go-fieldcheck/api"
	"github.com/lithictech/go-fieldcheck/config"
	"github.com/lithictech/go-fieldcheck/descriptor"
	"github.com/lithictech/go-fieldcheck/logctx"
	"github.com/lithictech/go-fieldcheck/parallel"
	"github.com/lithictech/go-fieldcheck/stopwatch"
	"github.com/urfave/cli/v3"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	exitInvalid = 1
	exitConfig  = 2
)

type app struct {
	stdout io.Writer
	stderr io.Writer
	cfg    config.Config
	logger *slog.Logger

	logLevel    string
	logFormat   string
	logFile     string
	jsonOutput  bool
	parallelism int
	address     string
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	a := &app{stdout: stdout, stderr: stderr}
	return &cli.Command{
		Name:      "fieldcheck",
		Usage:     "Validate HTML form field values against their constraints",
		UsageText: "fieldcheck [global options] command [command options]",
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		// Exit codes are decided in main, so tests can run commands in-process.
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error) (overrides FIELDCHECK_LOG_LEVEL)",
				Destination: &a.logLevel,
			},
			&cli.StringFlag{
				Name:        "log-format",
				Usage:       "log format (json, text, console) (overrides FIELDCHECK_LOG_FORMAT)",
				Destination: &a.logFormat,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file, instead of stderr (overrides FIELDCHECK_LOG_FILE)",
				Destination: &a.logFile,
			},
		},
		Before: a.before,
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "Check the fields described in one or more JSON or YAML files",
				UsageText: "fieldcheck check [--json] [--parallelism N] FILE...",
				Description: `Each file holds a single field descriptor or a list of them.
Prints one line per field, or a JSON document with --json.

Exits 1 if any field is invalid, and 2 if a file cannot be loaded
or a descriptor is malformed.`,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output results as JSON",
						Destination: &a.jsonOutput,
					},
					&cli.IntFlag{
						Name:        "parallelism",
						Usage:       "number of fields to check at once (overrides FIELDCHECK_PARALLELISM)",
						Destination: &a.parallelism,
					},
				},
				Action: a.check,
			},
			{
				Name:      "serve",
				Usage:     "Serve field checks over HTTP",
				UsageText: "fieldcheck serve [--address ADDR]",
				Description: `Configuration is read from FIELDCHECK_* environment variables.
Routes are mounted under /v1.`,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "address",
						Usage:       "address to listen on (overrides FIELDCHECK_ADDRESS)",
						Destination: &a.address,
					},
				},
				Action: a.serve,
			},
		},
	}
}

// before loads the environment configuration, applies the global flags that were given,
// and sets up the logger.
func (a *app) before(ctx context.Context, c *cli.Command) (context.Context, error) {
	cfg, err := config.Load()
	if err != nil {
		return ctx, cli.Exit(err.Error(), exitConfig)
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if c.IsSet("log-format") {
		cfg.LogFormat = a.logFormat
	}
	if c.IsSet("log-file") {
		cfg.LogFile = a.logFile
	}
	logger, err := cfg.NewLogger(a.stderr)
	if err != nil {
		return ctx, cli.Exit(fmt.Sprintf("setup logger: %s", err), exitConfig)
	}
	a.cfg = cfg
	a.logger = logger
	return logctx.WithLogger(ctx, logger), nil
}

func (a *app) check(ctx context.Context, c *cli.Command) error {
	paths := c.Args().Slice()
	if len(paths) == 0 {
		return cli.Exit("check: at least one descriptor file is required", exitConfig)
	}
	parallelism := a.cfg.Parallelism
	if c.IsSet("parallelism") {
		parallelism = a.parallelism
	}
	if parallelism <= 0 {
		return cli.Exit(parallel.ErrInvalidParallelism.Error(), exitConfig)
	}
	var descriptors []descriptor.Descriptor
	for _, p := range paths {
		ds, err := descriptor.LoadFile(p)
		if err != nil {
			return cli.Exit(err.Error(), exitConfig)
		}
		descriptors = append(descriptors, ds...)
	}

	ctx = logctx.WithTracingLogger(logctx.WithTraceId(logctx.WithLogger(ctx, a.logger), logctx.CheckTraceIdKey))
	sw := stopwatch.Start(logctx.Logger(ctx), "check")
	results, err := descriptor.CheckAll(ctx, descriptors, parallelism)
	if err != nil {
		return cli.Exit(err.Error(), exitConfig)
	}
	valid := descriptor.AllValid(results)
	sw.Finish("field_count", len(results), "valid", valid)

	if a.jsonOutput {
		err = writeJSON(a.stdout, results, valid)
	} else {
		err = writeText(a.stdout, results)
	}
	if err != nil {
		return err
	}
	if !valid {
		return cli.Exit("", exitInvalid)
	}
	return nil
}

func (a *app) serve(ctx context.Context, _ *cli.Command) error {
	cfg := a.cfg
	if a.address != "" {
		cfg.Address = a.address
	}
	e := api.New(api.Config{
		Logger:         a.logger,
		CorsOrigins:    cfg.CorsOrigins,
		StatusResponse: map[string]interface{}{"version": version},
	})
	api.RegisterFieldRoutes(e.Group("/v1"), api.FieldRoutesConfig{Parallelism: cfg.Parallelism})
	return runServer(ctx, a.logger, e, cfg.Address)
}

func runServer(ctx context.Context, logger *slog.Logger, e *echo.Echo, address string) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("server_shutdown_error", "error", err)
		}
	}()
	logger.Info("server_starting", "address", address)
	if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("server_stopped")
	return nil
}

// writeText writes a line for each result, like "qty: ok" or "qty: not a number".
func writeText(w io.Writer, results []descriptor.Result) error {
	for _, r := range results {
		status := "ok"
		if !r.Valid {
			status = strings.Join(r.Errors, "; ")
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", r.Name, status); err != nil {
			return err
		}
	}
	return nil
}

// writeJSON writes the same document the check_batch endpoint returns.
func writeJSON(w io.Writer, results []descriptor.Result, valid bool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]interface{}{
		"results": results,
		"valid":   valid,
	})
}

// exitCode reports err to w and returns the process exit code for it.
// Errors without an explicit code, like bad flags, are configuration errors.
func exitCode(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	if msg := err.Error(); msg != "" {
		_, _ = fmt.Fprintln(w, msg)
	}
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return exitConfig
}
