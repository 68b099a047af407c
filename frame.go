package imgcat

import (
	"bytes"
	"encoding/base64"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	oscStart      = "\x1b]1337;"
	bel           = "\x07"
	fileKey       = "File="
	multipartKey  = "MultipartFile="
	filePartKey   = "FilePart="
	fileEndMarker = "FileEnd"
)

// Dimension is an iTerm2 width or height hint: "N" character cells, "Npx"
// pixels, "N%" of the session, or "auto".
type Dimension string

// Auto lets the terminal pick the size from the image.
const Auto Dimension = "auto"

// Cells returns a dimension of n character cells.
func Cells(n int) Dimension { return Dimension(strconv.Itoa(n)) }

// Pixels returns a dimension of n pixels.
func Pixels(n int) Dimension { return Dimension(strconv.Itoa(n) + "px") }

// Percent returns a dimension of n percent of the session width or height.
func Percent(n int) Dimension { return Dimension(strconv.Itoa(n) + "%") }

// ParseDimension parses "40", "40px", "50%" or "auto". The empty string is
// the unset dimension.
func ParseDimension(s string) (Dimension, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	d := Dimension(s)
	if err := d.Validate(); err != nil {
		return "", err
	}
	return d, nil
}

// Validate reports ErrInvalidDimension unless d is unset, auto, or a
// positive count.
func (d Dimension) Validate() error {
	if d == "" || d == Auto {
		return nil
	}
	num := string(d)
	if strings.HasSuffix(num, "px") {
		num = strings.TrimSuffix(num, "px")
	} else {
		num = strings.TrimSuffix(num, "%")
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return errors.Wrapf(ErrInvalidDimension, "%q", string(d))
	}
	if n <= 0 {
		return errors.Wrapf(ErrInvalidDimension, "%q must be positive", string(d))
	}
	return nil
}

// Frame is one inline image transfer.
type Frame struct {
	// Size is the byte length of Payload before base64 encoding.
	Size                int
	Name                string
	Inline              bool
	Width               Dimension
	Height              Dimension
	PreserveAspectRatio *bool
	Payload             []byte
}

// NewFrame builds an inline frame declaring the exact size of payload.
func NewFrame(payload []byte, opts EncodeOptions) Frame {
	return Frame{
		Size:                len(payload),
		Name:                opts.Name,
		Inline:              true,
		Width:               opts.Width,
		Height:              opts.Height,
		PreserveAspectRatio: opts.PreserveAspectRatio,
		Payload:             payload,
	}
}

func (f Frame) validate() error {
	if f.Size != len(f.Payload) {
		return errors.Wrapf(ErrSizeMismatch, "size=%d, payload is %d bytes", f.Size, len(f.Payload))
	}
	if err := f.Width.Validate(); err != nil {
		return errors.Wrap(err, "width")
	}
	if err := f.Height.Validate(); err != nil {
		return errors.Wrap(err, "height")
	}
	return nil
}

// params returns the key=value metadata in wire order.
func (f Frame) params() string {
	params := []string{"size=" + strconv.Itoa(f.Size)}
	if f.Name != "" {
		params = append(params, "name="+base64.StdEncoding.EncodeToString([]byte(f.Name)))
	}
	if f.Inline {
		params = append(params, "inline=1")
	} else {
		params = append(params, "inline=0")
	}
	if f.Width != "" {
		params = append(params, "width="+string(f.Width))
	}
	if f.Height != "" {
		params = append(params, "height="+string(f.Height))
	}
	if f.PreserveAspectRatio != nil {
		if *f.PreserveAspectRatio {
			params = append(params, "preserveAspectRatio=1")
		} else {
			params = append(params, "preserveAspectRatio=0")
		}
	}
	return strings.Join(params, ";")
}

// MarshalBinary returns the single File= escape sequence for f.
func (f Frame) MarshalBinary() ([]byte, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	params := f.params()

	var buf bytes.Buffer
	buf.Grow(len(oscStart) + len(fileKey) + len(params) + 1 + base64.StdEncoding.EncodedLen(len(f.Payload)) + len(bel))
	buf.WriteString(oscStart)
	buf.WriteString(fileKey)
	buf.WriteString(params)
	buf.WriteByte(':')
	buf.Write(appendBase64(nil, f.Payload))
	buf.WriteString(bel)
	return buf.Bytes(), nil
}

// Sequences splits f into escape sequences. With chunkSize <= 0, or a payload
// that fits in one chunk, it is the single File= sequence. Otherwise it is a
// MultipartFile header, one FilePart per chunk and a FileEnd marker.
func (f Frame) Sequences(chunkSize int) ([][]byte, error) {
	if chunkSize <= 0 || len(f.Payload) <= chunkSize {
		seq, err := f.MarshalBinary()
		if err != nil {
			return nil, err
		}
		return [][]byte{seq}, nil
	}
	if err := f.validate(); err != nil {
		return nil, err
	}

	seqs := [][]byte{[]byte(oscStart + multipartKey + f.params() + bel)}
	for chunk := range slices.Chunk(f.Payload, chunkSize) {
		seq := append([]byte(oscStart+filePartKey), appendBase64(nil, chunk)...)
		seqs = append(seqs, append(seq, bel...))
	}
	seqs = append(seqs, []byte(oscStart+fileEndMarker+bel))
	return seqs, nil
}
