package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"

	"github.com/blacktop/go-imgcat"
)

// RelPath is the config file location relative to the XDG config dirs.
var RelPath = filepath.Join("imgcat", "config.toml")

type Config struct {
	Width               string `koanf:"width"`  // "40", "40px", "50%" or "auto"
	Height              string `koanf:"height"` // same as width
	PreserveAspectRatio *bool  `koanf:"preserve_aspect_ratio"`

	Format        string `koanf:"format"`        // "png" or "jpeg"
	Quality       int    `koanf:"quality"`       // jpeg quality, 1-100
	Colors        int    `koanf:"colors"`        // palette size, 0 keeps all colors
	Dither        bool   `koanf:"dither"`        // error diffusion with colors
	ChunkSize     int    `koanf:"chunk_size"`    // multipart chunk size in bytes, 0 disables
	Interpolation string `koanf:"interpolation"` // nearest, bilinear, bicubic, lanczos3

	Passthrough          string `koanf:"passthrough"`            // "auto", "tmux" or "none"
	TmuxAllowPassthrough bool   `koanf:"tmux_allow_passthrough"` // run tmux set -p allow-passthrough on
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Format:        "png",
		Interpolation: "bilinear",
		Passthrough:   "auto",
	}
}

// Load reads the user config file from the XDG config dirs, then explicit
// if it is not empty (later files win). A missing user file is fine; a
// missing explicit file is an error.
func Load(explicit string) (*Config, error) {
	k := koanf.New(".")

	var paths []string
	if path, err := xdg.SearchConfigFile(RelPath); err == nil {
		paths = append(paths, path)
	}
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return nil, errors.Wrap(err, "config file")
		}
		paths = append(paths, explicit)
	}

	for _, path := range paths {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to load %s", path)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	return cfg, nil
}

// NormalizeOptions returns the resize filter settings. Resize targets only
// come from the command line.
func (c *Config) NormalizeOptions() (imgcat.NormalizeOptions, error) {
	interp, err := imgcat.ParseInterpolation(c.Interpolation)
	if err != nil {
		return imgcat.NormalizeOptions{}, err
	}
	return imgcat.NormalizeOptions{Interpolation: interp}, nil
}

// EncodeOptions converts the config into encoder options.
func (c *Config) EncodeOptions() (imgcat.EncodeOptions, error) {
	var opts imgcat.EncodeOptions
	var err error

	if opts.Width, err = imgcat.ParseDimension(c.Width); err != nil {
		return opts, errors.Wrap(err, "width")
	}
	if opts.Height, err = imgcat.ParseDimension(c.Height); err != nil {
		return opts, errors.Wrap(err, "height")
	}
	if opts.Format, err = imgcat.ParseFormat(c.Format); err != nil {
		return opts, err
	}
	if c.Colors < 0 || c.Colors > imgcat.MaxColors {
		return opts, errors.Errorf("colors must be between 0 and %d, got %d", imgcat.MaxColors, c.Colors)
	}
	if c.ChunkSize < 0 {
		return opts, errors.Errorf("chunk_size must not be negative, got %d", c.ChunkSize)
	}

	opts.PreserveAspectRatio = c.PreserveAspectRatio
	opts.Quality = c.Quality
	opts.Colors = c.Colors
	opts.Dither = c.Dither
	opts.ChunkSize = c.ChunkSize
	return opts, nil
}

// Terminal applies the passthrough override to a detected terminal.
func (c *Config) Terminal(detected imgcat.Terminal) (imgcat.Terminal, error) {
	return detected.WithPassthrough(c.Passthrough)
}
