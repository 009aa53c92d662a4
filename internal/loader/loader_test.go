package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

const maxSize = 0x1000 - 0x200

func TestLoad(t *testing.T) {
	t.Run("load ROM file", func(t *testing.T) {
		data := []byte{0x60, 0x05, 0x70, 0x05, 0x12, 0x00}
		opts := programOptions(createTempFile(t, data))

		rom, err := New(maxSize).Load(opts)
		assert.NoError(t, err)
		if diff := cmp.Diff(data, rom); diff != "" {
			t.Errorf("ROM content mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("load maximum size", func(t *testing.T) {
		opts := programOptions(createTempFile(t, make([]byte, maxSize)))

		rom, err := New(maxSize).Load(opts)
		assert.NoError(t, err)
		assert.Len(t, rom, maxSize)
	})

	t.Run("file too large", func(t *testing.T) {
		opts := programOptions(createTempFile(t, make([]byte, maxSize+1)))

		_, err := New(maxSize).Load(opts)
		assert.True(t, errors.Is(err, ErrTooLarge))
	})

	t.Run("empty file", func(t *testing.T) {
		opts := programOptions(createTempFile(t, nil))

		_, err := New(maxSize).Load(opts)
		assert.True(t, errors.Is(err, ErrEmpty))
	})

	t.Run("missing file", func(t *testing.T) {
		opts := programOptions(filepath.Join(t.TempDir(), "missing.ch8"))

		_, err := New(maxSize).Load(opts)
		assert.True(t, errors.Is(err, os.ErrNotExist))
		assert.ErrorContains(t, err, "opening file")
	})
}

func programOptions(input string) options.Program {
	return options.Program{
		Parameters: options.Parameters{Input: input},
	}
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "test.ch8")
	assert.NoError(t, os.WriteFile(name, data, 0o600))
	return name
}
