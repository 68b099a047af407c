package imgcat

import (
	"os"

	"github.com/pkg/errors"
)

// NormalizeOptions controls Normalize.
type NormalizeOptions struct {
	// Resize scales the image when set. Proportional unless Exact is set, in
	// which case both axes must be positive. For a proportional resize one
	// axis may be 0 and is then derived from the other; negative values and
	// 0x0 fail with ErrInvalidDimension before the source is read.
	Resize *Size
	// Exact scales to exactly Resize, ignoring the aspect ratio.
	Exact bool
	// Interpolation is the filter used for resizing.
	Interpolation Interpolation
}

// Normalize converts src into a Canonical image. Encoded inputs (files, byte
// buffers, rasterized plots) are passed through verbatim unless a resize is
// requested; pixel arrays and images become raw pixels and are compressed
// later by the encoder.
func Normalize(src Source, opts NormalizeOptions) (*Canonical, error) {
	if opts.Resize != nil {
		if err := opts.Resize.validate(opts.Exact); err != nil {
			return nil, err
		}
	}

	c, err := load(src)
	if err != nil {
		return nil, err
	}
	if opts.Resize == nil {
		return c, nil
	}

	img, err := c.Image()
	if err != nil {
		return nil, err
	}
	resized, err := resizeImage(img, *opts.Resize, opts.Exact, opts.Interpolation)
	if err != nil {
		return nil, err
	}
	return imageToCanonical(resized)
}

func load(src Source) (*Canonical, error) {
	switch src.kind {
	case SourceFile:
		return loadFile(src.path)
	case SourceBytes:
		return loadBytes(src.data)
	case SourcePixels:
		return pixelsToCanonical(src.pixels)
	case SourceImage:
		return imageToCanonical(src.img)
	case SourcePlot:
		return loadPlot(src)
	default:
		return nil, errors.Wrap(ErrEmptyInput, "no image source configured")
	}
}

func loadFile(path string) (*Canonical, error) {
	if path == "" {
		return nil, errors.Wrap(ErrNotFound, "path cannot be empty")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(ErrNotFound, "%s: %v", path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, errors.Wrapf(ErrNotFound, "%s: not a regular file", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(ErrNotFound, "%s: %v", path, err)
	}
	c, err := loadBytes(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return c, nil
}

func loadBytes(data []byte) (*Canonical, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	c := &Canonical{Encoded: data}
	sniff(c)
	return c, nil
}

func loadPlot(src Source) (*Canonical, error) {
	switch {
	case src.raster != nil:
		data, err := src.raster.Rasterize()
		if err != nil {
			return nil, errors.Wrap(err, "failed to rasterize handle")
		}
		return loadBytes(data)
	case src.pixelRaster != nil:
		arr, err := src.pixelRaster.RasterizePixels()
		if err != nil {
			return nil, errors.Wrap(err, "failed to rasterize handle")
		}
		return pixelsToCanonical(arr)
	default:
		return nil, ErrUnsupportedHandle
	}
}
