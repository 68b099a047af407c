package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"
	"os"
	"strings"

	"gorgonia.org/tensor"

	"github.com/blacktop/go-imgcat"
	"github.com/blacktop/go-imgcat/pkg/dotplot"
	"github.com/blacktop/go-imgcat/pkg/tensorimg"
)

func main() {
	if len(os.Args) > 1 {
		// If a file is provided, render it
		renderFile(os.Args[1])
	} else {
		// Otherwise, render every kind of source
		renderSources()
	}
}

func renderFile(path string) {
	fmt.Printf("Rendering image: %s\n\n", path)

	// Simple one-liner to render a file
	if err := imgcat.PrintFile(path); err != nil {
		log.Fatalf("Error rendering file: %v", err)
	}

	fmt.Println("\n\nUsing fluent API with custom settings:")

	err := imgcat.Open(path).
		Width(imgcat.Cells(80)).
		Height(imgcat.Cells(40)).
		Resize(800, 800).
		Interpolation(imgcat.InterpLanczos3).
		Print()
	if err != nil {
		log.Fatalf("Error rendering with fluent API: %v", err)
	}
	fmt.Println()
}

func renderSources() {
	term := imgcat.DetectTerminal(os.Getenv)
	fmt.Printf("Terminal: %q (multiplexer: %s, inline images: %v)\n", term.Program, term.Multiplexer, term.InlineImages)
	if !term.InlineImages {
		fmt.Println("❌ inline images are not known to work in this terminal, output may be garbage")
	}

	pattern := createTestPattern()

	examples := []struct {
		name string
		img  *imgcat.Image
	}{
		{"Test pattern", imgcat.New(pattern).Width(imgcat.Cells(40))},
		{"Resized to 50x50 pixels", imgcat.New(pattern).Resize(50, 50).Interpolation(imgcat.InterpNearest)},
		{"Stretched by the terminal", imgcat.New(pattern).Size(imgcat.Cells(60), imgcat.Cells(10)).PreserveAspectRatio(false)},
		{"JPEG transport", imgcat.New(pattern).Format(imgcat.FormatJPEG).Quality(60).Width(imgcat.Percent(25))},
		{"16 colors with FloydSteinberg dithering", imgcat.New(pattern).Colors(16).Dither(true).Width(imgcat.Cells(40))},
		{"Float pixel array", imgcat.FromArray(createGradient(64, 256)).Width(imgcat.Cells(40))},
		{"Grayscale pixel array", imgcat.FromArray(createCheckerboard(64)).Width(imgcat.Pixels(128))},
		{"Channel-first tensor", tensorExample()},
		{"Graphviz graph", imgcat.FromHandle(dotplot.New([]byte(`digraph G { rankdir=LR; file -> normalize; bytes -> normalize; pixels -> normalize; normalize -> encode -> terminal }`)))},
		{"Multipart transfer", imgcat.New(pattern).ChunkSize(4096).Width(imgcat.Cells(20))},
	}

	for _, ex := range examples {
		fmt.Printf("\n=== %s ===\n", ex.name)
		if err := ex.img.Terminal(term).Print(); err != nil {
			fmt.Printf("Error with %s: %v\n", ex.name, err)
		} else {
			fmt.Println()
		}
		fmt.Print(strings.Repeat("-", 50) + "\n")
	}
}

func tensorExample() *imgcat.Image {
	const h, w = 48, 96
	backing := make([]float32, 3*h*w)
	for y := range h {
		for x := range w {
			// one plane per channel
			i := y*w + x
			backing[i] = float32(x) / w
			backing[h*w+i] = float32(y) / h
			backing[2*h*w+i] = float32(0.5 + 0.5*math.Sin(float64(x+y)/8))
		}
	}
	arr, err := tensorimg.FromDense(tensor.New(tensor.WithShape(3, h, w), tensor.WithBacking(backing)), tensorimg.CHW)
	if err != nil {
		log.Fatalf("Error wrapping tensor: %v", err)
	}
	return imgcat.FromArray(arr).Width(imgcat.Cells(40))
}

func createGradient(h, w int) imgcat.PixelArray {
	data := make([]float64, h*w*3)
	for y := range h {
		for x := range w {
			i := (y*w + x) * 3
			data[i] = float64(x) / float64(w-1)
			data[i+1] = 1 - float64(x)/float64(w-1)
			data[i+2] = float64(y) / float64(h-1)
		}
	}
	return imgcat.Float64Pixels{Data: data, Dims: []int{h, w, 3}}
}

func createCheckerboard(size int) imgcat.PixelArray {
	data := make([]uint8, size*size)
	for y := range size {
		for x := range size {
			if (x/8+y/8)%2 == 0 {
				data[y*size+x] = 255
			}
		}
	}
	return imgcat.Uint8Pixels{Data: data, Dims: []int{size, size}}
}

func createTestPattern() image.Image {
	const size = 200
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	// Create a gradient pattern
	for y := range size {
		for x := range size {
			r := uint8((x * 255) / size)
			g := uint8((y * 255) / size)
			b := uint8(((x + y) * 255) / (2 * size))
			img.Set(x, y, color.RGBA{r, g, b, 255})
		}
	}

	// Red square
	draw.Draw(img, image.Rect(20, 20, 60, 60),
		&image.Uniform{color.RGBA{255, 0, 0, 255}},
		image.Point{}, draw.Src)

	// Green square
	draw.Draw(img, image.Rect(140, 20, 180, 60),
		&image.Uniform{color.RGBA{0, 255, 0, 255}},
		image.Point{}, draw.Src)

	// Blue square
	draw.Draw(img, image.Rect(20, 140, 60, 180),
		&image.Uniform{color.RGBA{0, 0, 255, 255}},
		image.Point{}, draw.Src)

	// White square
	draw.Draw(img, image.Rect(140, 140, 180, 180),
		&image.Uniform{color.RGBA{255, 255, 255, 255}},
		image.Point{}, draw.Src)

	return img
}
