package imgcat

import (
	"image"
	"image/color"
	"math"

	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
)

// PixelArray is the numeric-array capability the normalizer reads pixels
// through. Values are addressed by flat row-major index.
type PixelArray interface {
	// Shape returns (H, W) or (H, W, C).
	Shape() []int
	// Len returns the number of elements.
	Len() int
	// At returns the element at flat index i.
	At(i int) float64
	// IsFloat reports whether elements are floating point, in which case
	// [0, 1] maps onto [0, 255].
	IsFloat() bool
}

// Uint8Pixels is a PixelArray backed by a byte slice.
type Uint8Pixels struct {
	Data []uint8
	Dims []int
}

func (p Uint8Pixels) Shape() []int     { return p.Dims }
func (p Uint8Pixels) Len() int         { return len(p.Data) }
func (p Uint8Pixels) At(i int) float64 { return float64(p.Data[i]) }
func (p Uint8Pixels) IsFloat() bool    { return false }

// Float32Pixels is a PixelArray of float32 values in [0, 1].
type Float32Pixels struct {
	Data []float32
	Dims []int
}

func (p Float32Pixels) Shape() []int     { return p.Dims }
func (p Float32Pixels) Len() int         { return len(p.Data) }
func (p Float32Pixels) At(i int) float64 { return float64(p.Data[i]) }
func (p Float32Pixels) IsFloat() bool    { return true }

// Float64Pixels is a PixelArray of float64 values in [0, 1].
type Float64Pixels struct {
	Data []float64
	Dims []int
}

func (p Float64Pixels) Shape() []int     { return p.Dims }
func (p Float64Pixels) Len() int         { return len(p.Data) }
func (p Float64Pixels) At(i int) float64 { return p.Data[i] }
func (p Float64Pixels) IsFloat() bool    { return true }

// checkShape validates a (H,W), (H,W,3) or (H,W,4) shape.
func checkShape(shape []int) (h, w, channels int, err error) {
	switch len(shape) {
	case 2:
		h, w, channels = shape[0], shape[1], 1
	case 3:
		h, w, channels = shape[0], shape[1], shape[2]
		if channels != 3 && channels != 4 {
			return 0, 0, 0, errors.Wrapf(ErrShape, "shape %v: expected 3 or 4 channels, got %d", shape, channels)
		}
	default:
		return 0, 0, 0, errors.Wrapf(ErrShape, "shape %v: expected rank 2 or 3, got %d", shape, len(shape))
	}
	if h <= 0 || w <= 0 {
		return 0, 0, 0, errors.Wrapf(ErrShape, "shape %v: height and width must be positive", shape)
	}
	return h, w, channels, nil
}

// toByte converts one element to 0-255. Floats are scaled by 255 and rounded
// half away from zero; everything is then clamped. NaN becomes 0.
func toByte(v float64, scale bool) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	if scale {
		v *= 255
	}
	v = math.Round(v)
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}

func pixelsToCanonical(arr PixelArray) (*Canonical, error) {
	if arr == nil {
		return nil, errors.Wrap(ErrEmptyInput, "nil pixel array")
	}
	shape := arr.Shape()
	h, w, channels, err := checkShape(shape)
	if err != nil {
		return nil, err
	}
	n := h * w * channels
	if arr.Len() != n {
		return nil, errors.Wrapf(ErrShape, "shape %v needs %d elements, array has %d", shape, n, arr.Len())
	}

	scale := arr.IsFloat()
	pix := make([]byte, n)
	for i := range pix {
		pix[i] = toByte(arr.At(i), scale)
	}
	return &Canonical{Width: w, Height: h, Channels: channels, Pix: pix}, nil
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return false
}

func isGray(img image.Image) bool {
	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		return true
	}
	return false
}

func imageToCanonical(img image.Image) (*Canonical, error) {
	if img == nil {
		return nil, errors.Wrap(ErrEmptyInput, "nil image")
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, errors.Wrapf(ErrEmptyInput, "image has empty bounds %v", bounds)
	}

	if isGray(img) {
		gray := image.NewGray(image.Rect(0, 0, w, h))
		xdraw.Draw(gray, gray.Bounds(), img, bounds.Min, xdraw.Src)
		return &Canonical{Width: w, Height: h, Channels: 1, Pix: gray.Pix}, nil
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, xdraw.Src)
	if !isOpaque(img) {
		return &Canonical{Width: w, Height: h, Channels: 4, Pix: nrgba.Pix}, nil
	}

	// drop the alpha channel
	pix := make([]byte, 0, w*h*3)
	for i := 0; i < len(nrgba.Pix); i += 4 {
		pix = append(pix, nrgba.Pix[i], nrgba.Pix[i+1], nrgba.Pix[i+2])
	}
	return &Canonical{Width: w, Height: h, Channels: 3, Pix: pix}, nil
}
