package imgcat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDimension(t *testing.T) {
	tests := []struct {
		in      string
		want    Dimension
		wantErr bool
	}{
		{in: "", want: ""},
		{in: "auto", want: Auto},
		{in: "AUTO", want: Auto},
		{in: "40", want: "40"},
		{in: "40px", want: "40px"},
		{in: " 7PX ", want: "7px"},
		{in: "50%", want: "50%"},
		{in: "0", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "0px", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "5px%", wantErr: true},
		{in: "px", wantErr: true},
		{in: "%", wantErr: true},
		{in: "1.5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDimension(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDimension)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDimensionHelpers(t *testing.T) {
	assert.Equal(t, Dimension("12"), Cells(12))
	assert.Equal(t, Dimension("300px"), Pixels(300))
	assert.Equal(t, Dimension("25%"), Percent(25))
	assert.ErrorIs(t, Cells(0).Validate(), ErrInvalidDimension)
}

func TestFrameMarshal(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		name string
		opts EncodeOptions
		want string
	}{
		{
			name: "bare",
			want: "\x1b]1337;File=size=3;inline=1:YWJj\x07",
		},
		{
			name: "all keys in order",
			opts: EncodeOptions{
				Name:                "cat.gif",
				Width:               Cells(10),
				Height:              Percent(50),
				PreserveAspectRatio: &no,
			},
			want: "\x1b]1337;File=size=3;name=Y2F0LmdpZg==;inline=1;width=10;height=50%;preserveAspectRatio=0:YWJj\x07",
		},
		{
			name: "height only",
			opts: EncodeOptions{Height: Pixels(20), PreserveAspectRatio: &yes},
			want: "\x1b]1337;File=size=3;inline=1;height=20px;preserveAspectRatio=1:YWJj\x07",
		},
		{
			name: "utf-8 name",
			opts: EncodeOptions{Name: "ü.png", Width: Auto},
			want: "\x1b]1337;File=size=3;name=w7wucG5n;inline=1;width=auto:YWJj\x07",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewFrame([]byte("abc"), tt.opts).MarshalBinary()
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestFrameSizeMismatch(t *testing.T) {
	f := NewFrame([]byte("abc"), EncodeOptions{})
	f.Size = 4

	_, err := f.MarshalBinary()
	assert.ErrorIs(t, err, ErrSizeMismatch)

	_, err = f.Sequences(1)
	assert.ErrorIs(t, err, ErrSizeMismatch)
}

func TestFrameSequences(t *testing.T) {
	f := NewFrame([]byte("abcdefg"), EncodeOptions{})

	seqs, err := f.Sequences(0)
	require.NoError(t, err)
	require.Len(t, seqs, 1)

	seqs, err = f.Sequences(3)
	require.NoError(t, err)
	require.Len(t, seqs, 5)
	assert.Equal(t, "\x1b]1337;MultipartFile=size=7;inline=1\x07", string(seqs[0]))
	assert.Equal(t, "\x1b]1337;FilePart=YWJj\x07", string(seqs[1]))
	assert.Equal(t, "\x1b]1337;FilePart=ZGVm\x07", string(seqs[2]))
	assert.Equal(t, "\x1b]1337;FilePart=Zw==\x07", string(seqs[3]))
	assert.Equal(t, "\x1b]1337;FileEnd\x07", string(seqs[4]))
}
