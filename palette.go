package imgcat

import (
	"image"
	"image/color"

	"github.com/makeworld-the-better-one/dither/v2"
	"github.com/soniakeys/quant/median"
	xdraw "golang.org/x/image/draw"
)

// MaxColors is the largest palette a paletted PNG can hold.
const MaxColors = 256

// quantize reduces img to at most colors colors using a median cut palette.
// With diffuse set, the quantization error is spread with Floyd-Steinberg.
func quantize(img image.Image, colors int, diffuse bool) image.Image {
	colors = min(max(colors, 2), MaxColors)

	palette := median.Quantizer(colors).Palette(img).ColorPalette()
	if len(palette) == 0 {
		return img
	}

	if diffuse {
		ditherer := dither.NewDitherer(palette)
		ditherer.Matrix = dither.FloydSteinberg
		return ditherer.Dither(img)
	}

	return toPaletted(img, palette)
}

func toPaletted(img image.Image, palette color.Palette) *image.Paletted {
	bounds := img.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, bounds.Dx(), bounds.Dy()), palette)
	xdraw.Draw(dst, dst.Bounds(), img, bounds.Min, xdraw.Src)
	return dst
}
