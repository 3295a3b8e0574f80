package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setanarut/satisimg"
)

func TestParseArgs(t *testing.T) {
	cfg, err := parseArgs([]string{"pic.png"})
	require.NoError(t, err)
	assert.Equal(t, "pic.png", cfg.InputPath)
	assert.False(t, cfg.DecodeInput)
	assert.Equal(t, "output.cbp", cfg.Output())

	cfg, err = parseArgs([]string{"bp.cbp", "--decode-input"})
	require.NoError(t, err)
	assert.True(t, cfg.DecodeInput)
	assert.Equal(t, "input.json", cfg.Output())

	cfg, err = parseArgs([]string{"bp.cbp", "--decode-input", "--out-path=dump.json"})
	require.NoError(t, err)
	assert.Equal(t, "dump.json", cfg.Output())

	cfg, err = parseArgs([]string{"pic.png", "--out-path=wall.cbp", "--colors=8", "--palette-method=kmeans", "--verbose"})
	require.NoError(t, err)
	assert.Equal(t, "wall.cbp", cfg.Output())
	assert.Equal(t, 8, cfg.Colors)
	assert.Equal(t, "kmeans", cfg.PaletteMethod)
	assert.True(t, cfg.Verbose)
}

func TestParseArgsUsageErrors(t *testing.T) {
	tests := [][]string{
		nil,
		{""},
		{"pic.png", "--nope"},
		{"pic.png", "extra"},
		{"pic.png", "--colors=-2"},
		{"pic.png", "--palette-method=octree"},
		{"--decode-input"},
		{"--out-path=x.cbp", "pic.png"},
		{"-colors", "4", "pic.png"},
	}
	for _, args := range tests {
		_, err := parseArgs(args)
		assert.ErrorIs(t, err, satisimg.ErrUsage, "args %q", args)
	}
}

func TestParseArgsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "satisimg.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
colors: 12
palette_method: kmeans
first_id: 1000
out_path: from-file.cbp
preview_path: preview.png
verbose: true
`), 0o644))

	cfg, err := parseArgs([]string{"pic.png", "--config=" + path})
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Colors)
	assert.Equal(t, "kmeans", cfg.PaletteMethod)
	assert.Equal(t, 1000, cfg.FirstID)
	assert.Equal(t, "from-file.cbp", cfg.Output())
	assert.Equal(t, "preview.png", cfg.PreviewPath)
	assert.True(t, cfg.Verbose)

	// flags win over the file
	cfg, err = parseArgs([]string{"pic.png", "--config=" + path, "--colors=3", "--out-path=flag.cbp"})
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Colors)
	assert.Equal(t, "flag.cbp", cfg.Output())
}

func TestParseArgsConfigFileErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := parseArgs([]string{"pic.png", "--config=" + filepath.Join(dir, "missing.yaml")})
	var ioErr *satisimg.IOError
	assert.ErrorAs(t, err, &ioErr)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("colors: [1, 2"), 0o644))
	_, err = parseArgs([]string{"pic.png", "--config=" + bad})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, satisimg.ErrUsage)
}
