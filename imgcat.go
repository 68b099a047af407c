package imgcat

import (
	"image"
	"io"
	"os"
)

// Image is a fluent builder around a Source and its options
type Image struct {
	src  Source
	err  error
	norm NormalizeOptions
	enc  EncodeOptions
	term *Terminal
}

// Open creates a new Image from a file path
func Open(path string) *Image {
	return &Image{src: FromFile(path)}
}

// New creates a new Image from an image.Image
func New(img image.Image) *Image {
	return &Image{src: FromImage(img)}
}

// From creates a new Image from encoded bytes read from r. Read errors are
// reported by the terminal operations.
func From(r io.Reader) *Image {
	src, err := FromReader(r)
	return &Image{src: src, err: err}
}

// FromArray creates a new Image from a pixel array
func FromArray(arr PixelArray) *Image {
	return &Image{src: FromPixels(arr)}
}

// FromHandle creates a new Image from a plotting handle
func FromHandle(handle any) *Image {
	return &Image{src: FromPlot(handle)}
}

// Width sets the display width hint
func (i *Image) Width(d Dimension) *Image {
	i.enc.Width = d
	return i
}

// Height sets the display height hint
func (i *Image) Height(d Dimension) *Image {
	i.enc.Height = d
	return i
}

// Size sets both display hints
func (i *Image) Size(w, h Dimension) *Image {
	i.enc.Width, i.enc.Height = w, h
	return i
}

// Name sets the file name sent with the image
func (i *Image) Name(name string) *Image {
	i.enc.Name = name
	return i
}

// PreserveAspectRatio sets the preserveAspectRatio flag
func (i *Image) PreserveAspectRatio(v bool) *Image {
	i.enc.PreserveAspectRatio = &v
	return i
}

// Resize scales the pixels to fit within w x h before sending
func (i *Image) Resize(w, h int) *Image {
	i.norm.Resize = &Size{Width: w, Height: h}
	return i
}

// Exact makes Resize ignore the aspect ratio
func (i *Image) Exact(v bool) *Image {
	i.norm.Exact = v
	return i
}

// Interpolation sets the resize filter
func (i *Image) Interpolation(interp Interpolation) *Image {
	i.norm.Interpolation = interp
	return i
}

// Format sets the transport format for raw pixels
func (i *Image) Format(f Format) *Image {
	i.enc.Format = f
	return i
}

// Quality sets the JPEG quality
func (i *Image) Quality(q int) *Image {
	i.enc.Quality = q
	return i
}

// Colors limits raw pixels to a palette of n colors
func (i *Image) Colors(n int) *Image {
	i.enc.Colors = n
	return i
}

// Dither enables error diffusion when Colors is set
func (i *Image) Dither(d bool) *Image {
	i.enc.Dither = d
	return i
}

// ChunkSize enables multipart transfers above n bytes
func (i *Image) ChunkSize(n int) *Image {
	i.enc.ChunkSize = n
	return i
}

// Terminal sets the terminal configuration instead of detecting it
func (i *Image) Terminal(t Terminal) *Image {
	i.term = &t
	return i
}

// Options returns the normalize and encode options built so far
func (i *Image) Options() (NormalizeOptions, EncodeOptions) {
	return i.norm, i.enc
}

// Normalize runs the normalizer over the configured source
func (i *Image) Normalize() (*Canonical, error) {
	if i.err != nil {
		return nil, i.err
	}
	return Normalize(i.src, i.norm)
}

// Render generates the escape sequence for the image
func (i *Image) Render() ([]byte, error) {
	c, err := i.Normalize()
	if err != nil {
		return nil, err
	}
	return Render(c, i.enc, i.terminal())
}

// WriteTo writes the escape sequence to w in a single write and flushes w
// if it has a Flush method
func (i *Image) WriteTo(w io.Writer) (int64, error) {
	out, err := i.Render()
	if err != nil {
		return 0, err
	}
	n, err := writeFrame(w, out)
	return int64(n), err
}

// Print outputs the image to stdout
func (i *Image) Print() error {
	c, err := i.Normalize()
	if err != nil {
		return err
	}
	return NewEncoder(os.Stdout, i.terminal()).Encode(c, i.enc)
}

func (i *Image) terminal() Terminal {
	if i.term != nil {
		return *i.term
	}
	return DetectTerminal(os.Getenv)
}

// Print prints an image with default settings
func Print(img image.Image) error {
	return New(img).Print()
}

// PrintFile prints an image file with default settings
func PrintFile(path string) error {
	return Open(path).Print()
}
