// Package config handles application configuration and setup
package config

import (
	"time"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// Machine returns the machine configuration for the given program options.
func Machine(opts options.Program) vm.Config {
	cfg := vm.DefaultConfig()
	if opts.Cycles > 0 {
		cfg.CyclesPerTick = opts.Cycles
	}
	if opts.Rate > 0 {
		cfg.TickPeriod = time.Second / time.Duration(opts.Rate)
	}
	cfg.Trace = opts.Trace
	cfg.Seed = opts.Seed
	return cfg
}
