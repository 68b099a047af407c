package imgcat

import (
	"image"
	"math"
	"strings"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// Size is a target size in pixels. A zero axis is derived from the other one
// when resizing proportionally.
type Size struct {
	Width  int
	Height int
}

// Interpolation selects the resampling filter used when resizing
type Interpolation int

const (
	// InterpBilinear is the default
	InterpBilinear Interpolation = iota
	InterpNearest
	InterpBicubic
	InterpLanczos3
)

// ParseInterpolation maps a name ("nearest", "bilinear", "bicubic",
// "lanczos3") to an Interpolation.
func ParseInterpolation(name string) (Interpolation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "bilinear":
		return InterpBilinear, nil
	case "nearest":
		return InterpNearest, nil
	case "bicubic":
		return InterpBicubic, nil
	case "lanczos3", "lanczos":
		return InterpLanczos3, nil
	default:
		return InterpBilinear, errors.Errorf("unknown interpolation %q", name)
	}
}

func (i Interpolation) function() resize.InterpolationFunction {
	switch i {
	case InterpNearest:
		return resize.NearestNeighbor
	case InterpBicubic:
		return resize.Bicubic
	case InterpLanczos3:
		return resize.Lanczos3
	default:
		return resize.Bilinear
	}
}

// validate rejects negative sizes, 0x0, and exact sizes missing an axis.
func (s Size) validate(exact bool) error {
	if s.Width < 0 || s.Height < 0 {
		return errors.Wrapf(ErrInvalidDimension, "resize %dx%d: negative size", s.Width, s.Height)
	}
	if s.Width == 0 && s.Height == 0 {
		return errors.Wrap(ErrInvalidDimension, "resize 0x0")
	}
	if exact && (s.Width == 0 || s.Height == 0) {
		return errors.Wrapf(ErrInvalidDimension, "exact resize %dx%d needs both dimensions", s.Width, s.Height)
	}
	return nil
}

// targetSize computes the output size for a srcW x srcH image. Without exact
// the result fits inside target keeping the aspect ratio, and a zero on one
// axis is derived from the other.
func targetSize(srcW, srcH int, target Size, exact bool) (int, int, error) {
	if err := target.validate(exact); err != nil {
		return 0, 0, err
	}
	if exact {
		return target.Width, target.Height, nil
	}

	ratio := math.Inf(1)
	if target.Width > 0 {
		ratio = float64(target.Width) / float64(srcW)
	}
	if target.Height > 0 {
		ratio = min(ratio, float64(target.Height)/float64(srcH))
	}
	w := max(1, int(math.Round(float64(srcW)*ratio)))
	h := max(1, int(math.Round(float64(srcH)*ratio)))
	return w, h, nil
}

// resizeImage scales img according to target.
func resizeImage(img image.Image, target Size, exact bool, interp Interpolation) (image.Image, error) {
	bounds := img.Bounds()
	w, h, err := targetSize(bounds.Dx(), bounds.Dy(), target, exact)
	if err != nil {
		return nil, err
	}

	// Skip resize if already correct size
	if bounds.Dx() == w && bounds.Dy() == h {
		return img, nil
	}

	return resize.Resize(uint(w), uint(h), img, interp.function()), nil
}
