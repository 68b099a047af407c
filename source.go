package imgcat

import (
	"bytes"
	"image"
	"io"

	"github.com/pkg/errors"
)

// SourceKind identifies which variant of a Source is populated
type SourceKind int

const (
	SourceNone SourceKind = iota
	SourceFile
	SourceBytes
	SourcePixels
	SourcePlot
	SourceImage
)

func (k SourceKind) String() string {
	switch k {
	case SourceFile:
		return "file"
	case SourceBytes:
		return "bytes"
	case SourcePixels:
		return "pixels"
	case SourcePlot:
		return "plot"
	case SourceImage:
		return "image"
	default:
		return "none"
	}
}

// Rasterizer is implemented by plotting handles that can serialize themselves
// into encoded image bytes (PNG, JPEG, ...).
type Rasterizer interface {
	Rasterize() ([]byte, error)
}

// PixelRasterizer is implemented by handles that expose their rendered raster
// as a pixel array instead of encoded bytes.
type PixelRasterizer interface {
	RasterizePixels() (PixelArray, error)
}

// Source is an image input of one of several kinds. Build it with FromFile,
// FromBytes, FromPixels, FromPlot or FromImage. A Source is immutable.
type Source struct {
	kind   SourceKind
	path   string
	data   []byte
	pixels PixelArray
	img    image.Image

	// resolved plot capability; both nil means the handle is unsupported
	raster      Rasterizer
	pixelRaster PixelRasterizer
}

// FromFile returns a Source reading the image at path.
func FromFile(path string) Source {
	return Source{kind: SourceFile, path: path}
}

// FromBytes returns a Source over already encoded image bytes. data is copied.
func FromBytes(data []byte) Source {
	return Source{kind: SourceBytes, data: bytes.Clone(data)}
}

// FromReader drains r into a byte buffer Source.
func FromReader(r io.Reader) (Source, error) {
	if r == nil {
		return Source{}, errors.Wrap(ErrEmptyInput, "nil reader")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Source{}, errors.Wrap(err, "failed to read image")
	}
	return Source{kind: SourceBytes, data: data}, nil
}

// FromPixels returns a Source over a numeric pixel array.
func FromPixels(arr PixelArray) Source {
	return Source{kind: SourcePixels, pixels: arr}
}

// FromImage returns a Source over a decoded image.
func FromImage(img image.Image) Source {
	return Source{kind: SourceImage, img: img}
}

// FromPlot returns a Source over a plotting or ML handle. The handle must
// implement Rasterizer or PixelRasterizer; Rasterizer wins when both are
// implemented. Anything else normalizes to ErrUnsupportedHandle.
func FromPlot(handle any) Source {
	src := Source{kind: SourcePlot}
	switch h := handle.(type) {
	case Rasterizer:
		src.raster = h
	case PixelRasterizer:
		src.pixelRaster = h
	}
	return src
}

// Kind returns the populated variant.
func (s Source) Kind() SourceKind { return s.kind }

// Path returns the file path of a SourceFile, or "".
func (s Source) Path() string { return s.path }
