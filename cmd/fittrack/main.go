package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/meltforce/fittrack/internal/config"
	"github.com/meltforce/fittrack/internal/logging"
	"github.com/meltforce/fittrack/internal/mcp"
	"github.com/meltforce/fittrack/internal/registry"
	"github.com/meltforce/fittrack/internal/shell"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	serveMCP := flag.Bool("mcp", false, "serve MCP over stdio instead of the interactive shell")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("fittrack", Version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr; stdout belongs to the shell or the MCP stream.
	log := logging.New(cfg.Log, os.Stderr)
	log.Debug("fittrack starting", "version", Version, "mcp", *serveMCP)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := registry.New(log)

	if *serveMCP {
		err = mcp.Serve(ctx, mcp.New(reg, cfg.MCP.Name, Version, log), os.Stdin, os.Stdout, log)
	} else {
		err = runShell(ctx, reg, cfg, log)
	}
	if err != nil && ctx.Err() == nil {
		log.Error("fittrack stopped", "error", err)
		stop()
		os.Exit(1)
	}
}

// runShell runs the interactive shell until it exits or ctx is cancelled.
// A read on stdin cannot be interrupted, so a signal abandons the shell
// goroutine instead of waiting for the next line.
func runShell(ctx context.Context, reg *registry.Registry, cfg *config.Config, log *slog.Logger) error {
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	sh := shell.New(reg, os.Stdin, os.Stdout, log,
		shell.WithPrompts(cfg.Shell.Prompts && interactive),
	)

	done := make(chan error, 1)
	go func() { done <- sh.Run(ctx) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		log.Info("interrupted")
		return nil
	}
}
