// Package detector handles ROM file type detection.
package detector

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// ErrUnsupportedFile is returned for input files that are not recognized as CHIP-8 ROMs.
var ErrUnsupportedFile = errors.New("unsupported file type")

// Extensions lists the file extensions of CHIP-8 ROM files.
var Extensions = []string{".ch8", ".rom"}

// Detector handles system detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new system detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines whether the input file can be run. Files are accepted
// by their extension, or unconditionally when binary mode is enabled.
func (d *Detector) Detect(opts options.Program) (arch.System, error) {
	if opts.Binary {
		d.logger.Debug("Loading input as raw binary", log.String("file", opts.Input))
		return arch.CHIP8System, nil
	}

	ext := strings.ToLower(filepath.Ext(opts.Input))
	for _, supported := range Extensions {
		if ext == supported {
			d.logger.Debug("Detected system",
				log.Stringer("system", arch.CHIP8System),
				log.String("file", opts.Input))
			return arch.CHIP8System, nil
		}
	}

	return "", fmt.Errorf("%w: '%s', expected one of %s or the -binary flag",
		ErrUnsupportedFile, opts.Input, strings.Join(Extensions, ", "))
}
