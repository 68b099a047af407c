package imgcat

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageFluentAPI(t *testing.T) {
	img := New(createTestImage(40, 20)).
		Width(Cells(20)).
		Height(Auto).
		Name("chart.png").
		PreserveAspectRatio(false).
		Resize(20, 20).
		Interpolation(InterpNearest).
		Format(FormatJPEG).
		Quality(80).
		Colors(16).
		Dither(true).
		ChunkSize(1024).
		Terminal(Terminal{})

	norm, enc := img.Options()
	require.NotNil(t, norm.Resize)
	assert.Equal(t, Size{Width: 20, Height: 20}, *norm.Resize)
	assert.False(t, norm.Exact)
	assert.Equal(t, InterpNearest, norm.Interpolation)
	assert.Equal(t, Cells(20), enc.Width)
	assert.Equal(t, Auto, enc.Height)
	assert.Equal(t, "chart.png", enc.Name)
	require.NotNil(t, enc.PreserveAspectRatio)
	assert.False(t, *enc.PreserveAspectRatio)
	assert.Equal(t, FormatJPEG, enc.Format)
	assert.Equal(t, 80, enc.Quality)
	assert.Equal(t, 16, enc.Colors)
	assert.True(t, enc.Dither)
	assert.Equal(t, 1024, enc.ChunkSize)

	c, err := img.Normalize()
	require.NoError(t, err)
	assert.Equal(t, 20, c.Width)
	assert.Equal(t, 10, c.Height)

	img.Size(Pixels(5), Pixels(6)).Exact(true)
	norm, enc = img.Options()
	assert.True(t, norm.Exact)
	assert.Equal(t, Pixels(5), enc.Width)
	assert.Equal(t, Pixels(6), enc.Height)
}

func TestImageRender(t *testing.T) {
	out, err := FromArray(Uint8Pixels{Data: make([]uint8, 12), Dims: []int{2, 2, 3}}).
		Width(Cells(4)).
		Terminal(Terminal{}).
		Render()
	require.NoError(t, err)

	meta, payload := splitFrame(t, out)
	assert.True(t, strings.HasPrefix(meta, "size="))
	assert.True(t, strings.HasSuffix(meta, ";inline=1;width=4"))
	assert.Equal(t, len(payload), declaredSize(t, meta))

	tmuxOut, err := FromArray(Uint8Pixels{Data: make([]uint8, 12), Dims: []int{2, 2, 3}}).
		Width(Cells(4)).
		Terminal(Terminal{Multiplexer: MuxTmux}).
		Render()
	require.NoError(t, err)
	assert.Equal(t, Wrap(out), tmuxOut)
}

func TestImageWriteTo(t *testing.T) {
	data := encodePNG(t, createTestImage(4, 4))

	t.Run("buffer", func(t *testing.T) {
		var buf bytes.Buffer
		n, err := From(bytes.NewReader(data)).Terminal(Terminal{}).WriteTo(&buf)
		require.NoError(t, err)
		assert.Equal(t, int64(buf.Len()), n)

		_, payload := splitFrame(t, buf.Bytes())
		assert.Equal(t, data, payload)
	})

	t.Run("buffered writer is flushed", func(t *testing.T) {
		var buf bytes.Buffer
		bw := bufio.NewWriter(&buf)
		n, err := From(bytes.NewReader(data)).Terminal(Terminal{}).WriteTo(bw)
		require.NoError(t, err)
		assert.Zero(t, bw.Buffered())
		assert.Equal(t, int64(buf.Len()), n)

		_, payload := splitFrame(t, buf.Bytes())
		assert.Equal(t, data, payload)
	})

	t.Run("short write", func(t *testing.T) {
		_, err := From(bytes.NewReader(data)).Terminal(Terminal{}).WriteTo(shortWriter{})
		assert.ErrorIs(t, err, ErrWrite)
		assert.ErrorIs(t, err, io.ErrShortWrite)
	})

	t.Run("flush fails", func(t *testing.T) {
		w := &flushWriter{err: assert.AnError}
		_, err := From(bytes.NewReader(data)).Terminal(Terminal{}).WriteTo(w)
		assert.ErrorIs(t, err, ErrWrite)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, 1, w.flushed)
	})
}

func TestImageErrors(t *testing.T) {
	tests := []struct {
		name   string
		img    *Image
		target error
	}{
		{name: "missing file", img: Open("/nonexistent/file.png"), target: ErrNotFound},
		{name: "nil reader", img: From(nil), target: ErrEmptyInput},
		{name: "empty reader", img: From(bytes.NewReader(nil)), target: ErrEmptyInput},
		{name: "bad array", img: FromArray(Uint8Pixels{Data: make([]uint8, 8), Dims: []int{2, 2, 2}}), target: ErrShape},
		{name: "bad handle", img: FromHandle(42), target: ErrUnsupportedHandle},
		{name: "bad resize", img: New(createTestImage(2, 2)).Resize(-1, 2), target: ErrInvalidDimension},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			_, err := tt.img.Terminal(Terminal{}).WriteTo(&buf)
			assert.ErrorIs(t, err, tt.target)
			assert.Zero(t, buf.Len())
		})
	}
}

func TestImageWriteError(t *testing.T) {
	_, err := New(createTestImage(2, 2)).Terminal(Terminal{}).WriteTo(failWriter{err: assert.AnError})
	assert.ErrorIs(t, err, ErrWrite)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestSourceKinds(t *testing.T) {
	assert.Equal(t, SourceFile, FromFile("a.png").Kind())
	assert.Equal(t, "a.png", FromFile("a.png").Path())
	assert.Equal(t, SourceBytes, FromBytes([]byte{1}).Kind())
	assert.Equal(t, SourcePixels, FromPixels(Uint8Pixels{}).Kind())
	assert.Equal(t, SourceImage, FromImage(nil).Kind())
	assert.Equal(t, SourcePlot, FromPlot(nil).Kind())
	assert.Equal(t, SourceNone, Source{}.Kind())
	assert.Equal(t, "plot", SourcePlot.String())
	assert.Equal(t, "none", SourceNone.String())
}
