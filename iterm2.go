package imgcat

import (
	"bytes"
	"image/png"
	"io"
	"os"
)

// EncodeOptions controls how a Canonical image is compressed and framed.
type EncodeOptions struct {
	// Name is shown by the terminal for downloads; sent base64 encoded.
	Name string
	// Width and Height are display hints for the terminal.
	Width  Dimension
	Height Dimension
	// PreserveAspectRatio is sent only when set.
	PreserveAspectRatio *bool

	// Format, Quality and Compression apply only to raw pixels.
	Format      Format
	Quality     int
	Compression png.CompressionLevel
	// Colors reduces raw pixels to a median cut palette of that many colors
	// before compression. Zero keeps all colors.
	Colors int
	// Dither diffuses the error introduced by Colors.
	Dither bool

	// ChunkSize switches to a multipart transfer for payloads larger than
	// it. Zero always sends a single File= sequence.
	ChunkSize int
}

type flusher interface {
	Flush() error
}

// Encoder writes inline image escape sequences to an output sink.
type Encoder struct {
	w    io.Writer
	term Terminal
}

// NewEncoder returns an Encoder writing to w, or to os.Stdout when w is nil.
func NewEncoder(w io.Writer, term Terminal) *Encoder {
	if w == nil {
		w = os.Stdout
	}
	return &Encoder{w: w, term: term}
}

// Terminal returns the terminal configuration the encoder frames for.
func (e *Encoder) Terminal() Terminal { return e.term }

// Encode compresses c if needed, frames it and writes the complete frame in
// a single write, flushing the sink when it supports it. Write failures are
// returned as *WriteError without any retry.
func (e *Encoder) Encode(c *Canonical, opts EncodeOptions) error {
	out, err := Render(c, opts, e.term)
	if err != nil {
		return err
	}

	_, err = writeFrame(e.w, out)
	return err
}

// writeFrame writes out in a single call and flushes w when it can.
func writeFrame(w io.Writer, out []byte) (int, error) {
	n, err := w.Write(out)
	if err != nil {
		return n, &WriteError{Op: "write", Err: err}
	}
	if n != len(out) {
		return n, &WriteError{Op: "write", Err: io.ErrShortWrite}
	}
	if f, ok := w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return n, &WriteError{Op: "flush", Err: err}
		}
	}
	return n, nil
}

// Render returns the bytes Encode would write for c.
func Render(c *Canonical, opts EncodeOptions, term Terminal) ([]byte, error) {
	payload, err := Compress(c, opts)
	if err != nil {
		return nil, err
	}

	seqs, err := NewFrame(payload, opts).Sequences(opts.ChunkSize)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	for _, seq := range seqs {
		if term.Multiplexer == MuxTmux {
			seq = Wrap(seq)
		}
		buf.Write(seq)
	}
	return buf.Bytes(), nil
}
