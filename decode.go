package imgcat

import (
	"bytes"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// decodeImage decodes encoded bytes with any registered format.
func decodeImage(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(ErrDecode, "%v", err)
	}
	return img, nil
}

// sniff fills width, height, channels and format from the image header.
// Unknown formats leave c untouched: validating the payload is the
// terminal's job.
func sniff(c *Canonical) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(c.Encoded))
	if err != nil {
		return
	}
	c.Width, c.Height, c.Format = cfg.Width, cfg.Height, format
	c.Channels = channelsOf(cfg.ColorModel, format)
}

// channelsOf guesses the channel count from a header color model. image/png
// reports RGBA models only for truecolor without alpha; other decoders use
// them for any RGB data, so those count as 4.
func channelsOf(m color.Model, format string) int {
	switch m {
	case color.GrayModel, color.Gray16Model:
		return 1
	case color.YCbCrModel, color.CMYKModel:
		return 3
	case color.RGBAModel, color.RGBA64Model:
		if format == "png" {
			return 3
		}
	}
	return 4
}
