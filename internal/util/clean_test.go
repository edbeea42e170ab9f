package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanFileContent(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"plain text untouched", []byte("Hello, world."), "Hello, world."},
		{"bom stripped", append([]byte{0xEF, 0xBB, 0xBF}, "text"...), "text"},
		{"smart quotes folded", []byte("“Hi” ‘there’"), "\"Hi\" 'there'"},
		{"dashes and ellipsis", []byte("a–b—c…"), "a-b--c..."},
		{"crlf normalized", []byte("one\r\ntwo"), "one\ntwo"},
		{"invalid utf8 repaired", []byte{'a', 0xff, 'b'}, "a\uFFFDb"},
		{"accents kept", []byte("café"), "café"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanFileContent(tt.in, "test")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsLikelyBinary(t *testing.T) {
	dir := t.TempDir()

	text := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(text, []byte("just words\n"), 0o644))
	binary := filepath.Join(dir, "blob.bin")
	require.NoError(t, os.WriteFile(binary, []byte{0x89, 'P', 'N', 'G', 0x00, 0x01}, 0o644))
	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))

	got, err := IsLikelyBinary(text)
	require.NoError(t, err)
	assert.False(t, got)

	got, err = IsLikelyBinary(binary)
	require.NoError(t, err)
	assert.True(t, got)

	got, err = IsLikelyBinary(empty)
	require.NoError(t, err)
	assert.False(t, got)

	_, err = IsLikelyBinary(filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
