// Package main implements the main entry point for a CHIP-8 virtual machine
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/chip8vm/internal/app"
	"github.com/retroenv/chip8vm/internal/cli"
	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/frontend/terminal"
	"github.com/retroenv/chip8vm/internal/frontend/window"
	"github.com/retroenv/chip8vm/internal/keypad"
	"github.com/retroenv/chip8vm/internal/options"
	retroapp "github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := retroapp.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			app.PrintBanner(logger, opts, version, commit, date)
			if msg := usageErr.Error(); msg != "" {
				logger.Error(msg)
			}
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug || opts.Trace, opts.Quiet)
	app.PrintBanner(logger, opts, version, commit, date)

	newFrontend := func(opts options.Program, keys *keypad.Keypad, frames <-chan display.Frame) (app.Frontend, error) {
		return createFrontend(logger, opts, keys, frames)
	}

	if err := app.Run(ctx, logger, opts, newFrontend); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Running failed", log.Err(err))
		os.Exit(1)
	}
}

// createFrontend creates the frontend selected in the options.
func createFrontend(logger *log.Logger, opts options.Program, keys *keypad.Keypad,
	frames <-chan display.Frame) (app.Frontend, error) {

	switch opts.Frontend {
	case options.FrontendWindow:
		return window.New(window.Config{
			Title:  app.Title(opts),
			Scale:  opts.Scale,
			Width:  display.DefaultWidth,
			Height: display.DefaultHeight,
		}, keys, frames), nil

	case options.FrontendTerminal:
		return terminal.New(terminal.Config{
			Title:  app.Title(opts),
			Width:  display.DefaultWidth,
			Height: display.DefaultHeight,
		}, keys, frames), nil

	case options.FrontendHeadless:
		return app.NewHeadless(logger, frames), nil

	default:
		return nil, fmt.Errorf("unsupported frontend '%s'", opts.Frontend)
	}
}
