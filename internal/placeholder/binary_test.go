package placeholder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBinary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"empty", nil, false},
		{"text", []byte("#!/bin/sh\necho hi\r\n\tdone\f\v"), false},
		{"utf8", []byte("héllo ✓"), false},
		{"escape sequences", []byte("\x1b[31mred\x1b[0m"), false},
		{"nul", []byte("a\x00b"), true},
		{"bell", []byte{0x07}, true},
		{"shift out", []byte{0x0E}, true},
		{"0x19", []byte{0x19}, true},
		{"sub is text", []byte{0x1A}, false},
		{"elf header", []byte{0x7f, 'E', 'L', 'F', 0x02, 0x01, 0x01, 0x00}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsBinary(tt.data))
		})
	}
}

func TestIsBinaryFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	text := filepath.Join(dir, "hook")
	bin := filepath.Join(dir, "blob")
	require.NoError(t, os.WriteFile(text, []byte("#!/bin/sh\necho ${X?\"x\"}\n"), 0o755))
	require.NoError(t, os.WriteFile(bin, []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00}, 0o644))

	got, err := IsBinaryFile(text)
	require.NoError(t, err)
	assert.False(t, got)

	got, err = IsBinaryFile(bin)
	require.NoError(t, err)
	assert.True(t, got)

	_, err = IsBinaryFile(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
