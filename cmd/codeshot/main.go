// Package main provides the CLI entry point for codeshot.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/codeshot/pkg/adapters/chromacode"
	"github.com/user/codeshot/pkg/adapters/chromecapture"
	"github.com/user/codeshot/pkg/adapters/logger"
	"github.com/user/codeshot/pkg/adapters/memstore"
	"github.com/user/codeshot/pkg/adapters/playwrightcapture"
	"github.com/user/codeshot/pkg/config"
	"github.com/user/codeshot/pkg/ports"
	"github.com/user/codeshot/pkg/server"
	"github.com/user/codeshot/pkg/snapshot"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "codeshot",
		Usage:   l10n.T("Serve a web UI that turns source files into syntax-highlighted PNG screenshots"),
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   l10n.T("Path to a YAML config file"),
			},
			&cli.StringFlag{
				Name:    "address",
				Aliases: []string{"a"},
				Usage:   l10n.T("HTTP listen address (overrides config)"),
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: l10n.T("Capture backend: webkit or chrome (overrides config)"),
			},
			&cli.StringFlag{
				Name:  "chrome-path",
				Usage: l10n.T("Path to Chrome executable for the chrome backend (falls back to CHROME_PATH env, then system default)"),
			},
			&cli.StringFlag{
				Name:  "style",
				Usage: l10n.T("Chroma style name for highlighting (overrides config)"),
			},
			&cli.BoolFlag{
				Name:  "caption",
				Usage: l10n.T("Append a filename caption bar under each screenshot"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   l10n.T("Log level (debug, info, warn, error)"),
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"Q"},
				Usage:   l10n.T("Suppress all log output"),
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	// CLI flags win over config file and environment
	if c.IsSet("address") {
		cfg.Address = c.String("address")
	}
	if c.IsSet("backend") {
		cfg.Backend = c.String("backend")
	}
	if c.IsSet("chrome-path") {
		cfg.ChromePath = c.String("chrome-path")
	}
	if c.IsSet("style") {
		cfg.Style = c.String("style")
	}
	if c.IsSet("caption") {
		cfg.Caption = c.Bool("caption")
	}

	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(c.String("log-level")))
	}

	var capturer ports.Capturer
	switch cfg.Backend {
	case config.BackendChrome:
		capturer = chromecapture.New(cfg.ChromePath, log)
	case config.BackendWebKit:
		capturer = playwrightcapture.New(log)
	default:
		return fmt.Errorf("unknown capture backend %q", cfg.Backend)
	}

	generator := snapshot.NewGenerator(
		chromacode.New(cfg.Style),
		capturer,
		snapshot.Options{
			Timeout: cfg.RenderTimeout(),
			Caption: cfg.Caption,
			Logger:  log,
		},
	)

	srv := server.New(server.Options{
		SecretKey: cfg.SecretKey,
		Store:     memstore.New(),
		Generator: generator,
		Logger:    log,
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Shutdown failed: %s", err)
		}
	}()

	if err := srv.Start(cfg.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
