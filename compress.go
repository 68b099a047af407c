package imgcat

import (
	"bytes"
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/pkg/errors"
)

// Format is the transport format raw pixels are compressed to
type Format int

const (
	// FormatPNG is lossless and the default
	FormatPNG Format = iota
	FormatJPEG
)

func (f Format) String() string {
	if f == FormatJPEG {
		return "jpeg"
	}
	return "png"
}

// ParseFormat maps "png", "jpeg" or "jpg" to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	default:
		return FormatPNG, errors.Errorf("unknown format %q", name)
	}
}

// Compress returns the bytes to transmit for c. Already encoded images are
// returned as is; raw pixels are compressed according to opts. The output is
// deterministic for identical input.
func Compress(c *Canonical, opts EncodeOptions) ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if len(c.Encoded) > 0 {
		return c.Encoded, nil
	}

	img, err := c.Image()
	if err != nil {
		return nil, err
	}
	if opts.Colors > 0 {
		img = quantize(img, opts.Colors, opts.Dither)
	}

	var buf bytes.Buffer
	switch opts.Format {
	case FormatJPEG:
		quality := opts.Quality
		if quality <= 0 {
			quality = jpeg.DefaultQuality
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: min(quality, 100)}); err != nil {
			return nil, errors.Wrap(err, "failed to encode jpeg")
		}
	default:
		enc := png.Encoder{CompressionLevel: opts.Compression}
		if err := enc.Encode(&buf, img); err != nil {
			return nil, errors.Wrap(err, "failed to encode png")
		}
	}
	return buf.Bytes(), nil
}
