/*
Package tensorimg exposes gorgonia dense tensors as imgcat pixel arrays.

Tensors laid out as (H, W), (H, W, C) or (C, H, W) are supported, optionally
with a leading batch dimension of 1. Channel-first tensors are read as
channel-last without copying.
*/
package tensorimg

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/blacktop/go-imgcat"
)

// ErrDtype is returned for tensors whose element type is not numeric.
var ErrDtype = errors.New("unsupported tensor dtype")

// Layout is the memory order of a rank 3 tensor
type Layout int

const (
	// HWC is channel-last, as produced by image decoders
	HWC Layout = iota
	// CHW is channel-first, as consumed by most vision models
	CHW
)

// Array is an imgcat.PixelArray view over a tensor.
type Array struct {
	shape  []int
	layout Layout
	value  func(i int) float64
	float  bool
	n      int
}

var _ imgcat.PixelArray = (*Array)(nil)

// FromDense wraps t. The tensor is not copied unless it is a non-contiguous
// view, which is materialized first.
func FromDense(t *tensor.Dense, layout Layout) (*Array, error) {
	if t == nil {
		return nil, errors.New("nil tensor")
	}
	if t.IsScalar() {
		return nil, errors.Wrap(imgcat.ErrShape, "scalar tensor")
	}
	if t.RequiresIterator() {
		m, ok := t.Materialize().(*tensor.Dense)
		if !ok {
			return nil, errors.New("failed to materialize tensor view")
		}
		t = m
	}

	a := &Array{layout: layout}
	if err := a.bind(t.Data()); err != nil {
		return nil, errors.Wrapf(err, "dtype %v", t.Dtype())
	}

	shape := []int(t.Shape().Clone())
	// drop a leading batch dimension of 1
	if len(shape) == 4 && shape[0] == 1 {
		shape = shape[1:]
	}
	if len(shape) == 3 && layout == CHW {
		c, h, w := shape[0], shape[1], shape[2]
		if c == 1 {
			shape = []int{h, w}
			a.layout = HWC
		} else {
			shape = []int{h, w, c}
		}
	}
	a.shape = shape
	return a, nil
}

// Source is a shortcut for imgcat.FromPixels over FromDense.
func Source(t *tensor.Dense, layout Layout) (imgcat.Source, error) {
	a, err := FromDense(t, layout)
	if err != nil {
		return imgcat.Source{}, err
	}
	return imgcat.FromPixels(a), nil
}

func (a *Array) bind(data any) error {
	switch d := data.(type) {
	case []uint8:
		a.n, a.value = len(d), func(i int) float64 { return float64(d[i]) }
	case []uint16:
		a.n, a.value = len(d), func(i int) float64 { return float64(d[i]) }
	case []int8:
		a.n, a.value = len(d), func(i int) float64 { return float64(d[i]) }
	case []int16:
		a.n, a.value = len(d), func(i int) float64 { return float64(d[i]) }
	case []int32:
		a.n, a.value = len(d), func(i int) float64 { return float64(d[i]) }
	case []int64:
		a.n, a.value = len(d), func(i int) float64 { return float64(d[i]) }
	case []int:
		a.n, a.value = len(d), func(i int) float64 { return float64(d[i]) }
	case []float32:
		a.n, a.value, a.float = len(d), func(i int) float64 { return float64(d[i]) }, true
	case []float64:
		a.n, a.value, a.float = len(d), func(i int) float64 { return d[i] }, true
	default:
		return ErrDtype
	}
	return nil
}

// Shape returns the channel-last shape.
func (a *Array) Shape() []int { return a.shape }

// Len returns the number of elements.
func (a *Array) Len() int { return a.n }

// IsFloat reports whether the tensor holds floating point values.
func (a *Array) IsFloat() bool { return a.float }

// At returns the element at channel-last flat index i.
func (a *Array) At(i int) float64 {
	if a.layout == CHW && len(a.shape) == 3 {
		h, w, c := a.shape[0], a.shape[1], a.shape[2]
		y, x, ch := i/(w*c), (i/c)%w, i%c
		i = ch*h*w + y*w + x
	}
	return a.value(i)
}
