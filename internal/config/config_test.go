package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blacktop/go-imgcat"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("XDG_CONFIG_DIRS", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return home
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	enc, err := cfg.EncodeOptions()
	require.NoError(t, err)
	assert.Equal(t, imgcat.EncodeOptions{}, enc)
}

func TestLoadUserAndExplicit(t *testing.T) {
	home := isolate(t)
	writeConfig(t, filepath.Join(home, RelPath), `
width = "40"
format = "jpeg"
quality = 85
passthrough = "tmux"
`)
	explicit := filepath.Join(t.TempDir(), "override.toml")
	writeConfig(t, explicit, `
width = "50%"
preserve_aspect_ratio = false
colors = 16
dither = true
chunk_size = 4096
interpolation = "lanczos3"
`)

	cfg, err := Load(explicit)
	require.NoError(t, err)
	assert.Equal(t, "50%", cfg.Width, "explicit file wins")
	assert.Equal(t, "tmux", cfg.Passthrough, "user file still applies")

	enc, err := cfg.EncodeOptions()
	require.NoError(t, err)
	assert.Equal(t, imgcat.Percent(50), enc.Width)
	assert.Equal(t, imgcat.FormatJPEG, enc.Format)
	assert.Equal(t, 85, enc.Quality)
	require.NotNil(t, enc.PreserveAspectRatio)
	assert.False(t, *enc.PreserveAspectRatio)
	assert.Equal(t, 16, enc.Colors)
	assert.True(t, enc.Dither)
	assert.Equal(t, 4096, enc.ChunkSize)

	norm, err := cfg.NormalizeOptions()
	require.NoError(t, err)
	assert.Equal(t, imgcat.InterpLanczos3, norm.Interpolation)

	term, err := cfg.Terminal(imgcat.Terminal{Program: "iTerm.app"})
	require.NoError(t, err)
	assert.Equal(t, imgcat.MuxTmux, term.Multiplexer)
}

func TestLoadErrors(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.toml")
	writeConfig(t, bad, "width = [")
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "width", cfg: Config{Width: "-3"}},
		{name: "height", cfg: Config{Height: "tall"}},
		{name: "format", cfg: Config{Format: "gif"}},
		{name: "colors", cfg: Config{Colors: 300}},
		{name: "negative colors", cfg: Config{Colors: -1}},
		{name: "chunk size", cfg: Config{ChunkSize: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.EncodeOptions()
			assert.Error(t, err)
		})
	}

	_, err := (&Config{Interpolation: "mitchell"}).NormalizeOptions()
	assert.Error(t, err)

	_, err = (&Config{Passthrough: "screen"}).Terminal(imgcat.Terminal{})
	assert.Error(t, err)
}
