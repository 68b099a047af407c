package imgcat

import (
	"image"

	"github.com/pkg/errors"
)

// Canonical is the single in-memory image every Source normalizes to. It is
// built by Normalize, read by the encoder and then dropped.
type Canonical struct {
	Width    int
	Height   int
	// Channels is 1, 3 or 4. For Encoded-only images it is read from the
	// header and is a best-effort guess.
	Channels int

	// Pix holds Width*Height*Channels bytes, row-major, channels interleaved.
	Pix []byte

	// Encoded holds an already compressed image (PNG, JPEG, ...). When set it
	// is transmitted verbatim.
	Encoded []byte
	// Format is the format name of Encoded as reported by image.DecodeConfig,
	// or "" when unknown.
	Format string
}

// Validate checks the Canonical invariants.
func (c *Canonical) Validate() error {
	if c == nil || (len(c.Pix) == 0 && len(c.Encoded) == 0) {
		return ErrNoImageData
	}
	if len(c.Pix) == 0 {
		return nil
	}
	switch c.Channels {
	case 1, 3, 4:
	default:
		return errors.Wrapf(ErrShape, "unsupported channel count %d", c.Channels)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Wrapf(ErrInvalidDimension, "%dx%d", c.Width, c.Height)
	}
	if want := c.Width * c.Height * c.Channels; len(c.Pix) != want {
		return errors.Wrapf(ErrShape, "%dx%dx%d needs %d bytes, have %d", c.Height, c.Width, c.Channels, want, len(c.Pix))
	}
	return nil
}

// Image returns the raw pixels as an image.Image: *image.Gray for one
// channel, *image.NRGBA otherwise. The pixel buffer is copied.
func (c *Canonical) Image() (image.Image, error) {
	if len(c.Pix) == 0 {
		return decodeImage(c.Encoded)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	rect := image.Rect(0, 0, c.Width, c.Height)
	switch c.Channels {
	case 1:
		gray := image.NewGray(rect)
		copy(gray.Pix, c.Pix)
		return gray, nil
	case 4:
		nrgba := image.NewNRGBA(rect)
		copy(nrgba.Pix, c.Pix)
		return nrgba, nil
	default:
		nrgba := image.NewNRGBA(rect)
		for i, j := 0, 0; i < len(c.Pix); i, j = i+3, j+4 {
			nrgba.Pix[j] = c.Pix[i]
			nrgba.Pix[j+1] = c.Pix[i+1]
			nrgba.Pix[j+2] = c.Pix[i+2]
			nrgba.Pix[j+3] = 0xff
		}
		return nrgba, nil
	}
}
