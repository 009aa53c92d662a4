// Package app runs ROM files on the virtual machine and connects the machine
// to a frontend.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/detector"
	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/keypad"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/vm"
	archsys "github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// Frontend presents the machine to the user.
type Frontend interface {
	// Run blocks until the user quits or the context is done.
	Run(ctx context.Context) error
	// Halted is called from the machine goroutine when a fatal error stopped the machine.
	Halted(err error)
}

// FrontendFactory creates the frontend selected in the options.
type FrontendFactory func(opts options.Program, keys *keypad.Keypad, frames <-chan display.Frame) (Frontend, error)

// Output is the destination of the disassembly listing.
var Output io.Writer = os.Stdout

// PrintBanner prints application version information.
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("chip8vm", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}

// PrintInfo prints the information about the input file.
func PrintInfo(logger *log.Logger, opts options.Program, system archsys.System, size int) {
	if opts.Quiet {
		return
	}

	logger.Info("Loaded ROM",
		log.Stringer("system", system),
		log.String("file", opts.Input),
		log.Int("size", size),
	)
}

// Run loads the ROM file given in the options and either prints its
// disassembly or runs it until the frontend quits, the context is done or
// the machine halts on a fatal error.
func Run(ctx context.Context, logger *log.Logger, opts options.Program, newFrontend FrontendFactory) error {
	cfg := config.Machine(opts)

	system, err := detector.New(logger).Detect(opts)
	if err != nil {
		return fmt.Errorf("detecting file type: %w", err)
	}

	program, err := loader.New(cfg.MemorySize - int(cfg.EntryPoint)).Load(opts)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}
	PrintInfo(logger, opts, system, len(program))

	if opts.Disassemble {
		if err := chip8.WriteListing(Output, program, cfg.EntryPoint); err != nil {
			return fmt.Errorf("writing disassembly: %w", err)
		}
		return nil
	}

	pad := keypad.New()
	machine, err := vm.New(cfg, logger, pad)
	if err != nil {
		return fmt.Errorf("creating machine: %w", err)
	}
	if err := machine.Load(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	fe, err := newFrontend(opts, pad, machine.Frames())
	if err != nil {
		return fmt.Errorf("creating frontend: %w", err)
	}

	return execute(ctx, logger, machine, pad, fe)
}

// execute runs the machine in a separate goroutine while the frontend runs
// on the calling goroutine. Quitting the frontend stops the machine.
func execute(ctx context.Context, logger *log.Logger, machine *vm.VM, pad *keypad.Keypad, fe Frontend) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errVM    error
		errFront error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := machine.Run(runCtx); err != nil {
			errVM = err
			fe.Halted(err)
		}
	}()

	errFront = fe.Run(runCtx)
	cancel()
	pad.Close()
	wg.Wait()

	logger.Debug("Machine stopped", log.Stringer("state", machine.State()))

	switch {
	case errFront != nil:
		return errFront
	case errVM != nil:
		return fmt.Errorf("running machine: %w", errVM)
	default:
		return ctx.Err()
	}
}

// Title returns the frontend title for a ROM file.
func Title(opts options.Program) string {
	return "chip8vm - " + filepath.Base(opts.Input)
}
