// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8vm/internal/options"
)

var (
	// ErrEmpty is returned for ROM files without any content.
	ErrEmpty = errors.New("ROM file is empty")
	// ErrTooLarge is returned for ROM files that do not fit into program memory.
	ErrTooLarge = errors.New("ROM file too large")
)

// Loader handles loading ROM files from disk.
type Loader struct {
	maxSize int
}

// New creates a new ROM loader that accepts files of up to maxSize bytes.
func New(maxSize int) *Loader {
	return &Loader{
		maxSize: maxSize,
	}
}

// Load reads the ROM file given in the options. The file content is returned
// as is, ROM files have no header.
func (l *Loader) Load(opts options.Program) ([]byte, error) {
	file, err := os.Open(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", opts.Input, err)
	}
	defer func() { _ = file.Close() }()

	// one byte beyond the limit is enough to detect oversized files
	data, err := io.ReadAll(io.LimitReader(file, int64(l.maxSize)+1))
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", opts.Input, err)
	}

	switch {
	case len(data) == 0:
		return nil, fmt.Errorf("%w: %s", ErrEmpty, opts.Input)
	case len(data) > l.maxSize:
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, opts.Input, l.maxSize)
	}
	return data, nil
}
