package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/Makepad-fr/tada/internal/actions"
	"github.com/Makepad-fr/tada/internal/cli"
	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/storage"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.Usage = func() { cli.PrintHelp(os.Stderr) }

	cfg, err := config.Load(fs, os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		ui.Fail(os.Stderr, "config: "+err.Error())
		return 2
	}

	logger := logging.New(os.Stderr, logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	ui.SetTheme(cfg.UI.Theme)
	if len(cfg.Files) > 0 {
		logger.Debug("config loaded", "files", cfg.Files)
	}

	// Hand the remaining args to the CLI runner.
	args := fs.Args()
	if len(args) == 0 {
		cli.PrintHelp(os.Stdout)
		return 2
	}

	backend, err := storage.Open(storage.Options{
		Driver:     storage.Driver(cfg.Storage.Driver),
		Dir:        cfg.Storage.Dir,
		SQLitePath: cfg.Storage.SQLitePath,
	})
	if err != nil {
		ui.Fail(os.Stderr, "storage: "+err.Error())
		return 1
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Warn("close storage", "err", err)
		}
	}()

	provider := actions.Provide(
		todo.NewStore(nil),
		jsonstore.New(backend, logger),
		cfg.Storage.Key,
		logger,
	)

	code := cli.Run(args, cli.Options{
		Actions: provider,
		View:    provider,
		Group:   cfg.UI.Group,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	return code
}
