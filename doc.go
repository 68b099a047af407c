/*
Package imgcat displays images in terminal emulators that implement the iTerm2
inline images protocol (iTerm2, WezTerm, mintty, VS Code, rio, Warp, ...).

Images come from files, encoded byte buffers, decoded image.Image values,
numeric pixel arrays, or plotting handles that can rasterize themselves. Every
input is first normalized into a Canonical image, which the Encoder then
frames as an OSC 1337 File sequence:

	ESC ] 1337 ; File=size=N;name=<b64>;inline=1;width=W;height=H;preserveAspectRatio=1 : <b64 payload> BEL

Inside tmux the whole sequence is wrapped once in the tmux passthrough
envelope, with every ESC byte doubled.

Basic Usage:

	// Simple one-liner
	imgcat.PrintFile("image.png")

	// With configuration
	err := imgcat.Open("image.png").
	    Width(imgcat.Cells(80)).
	    Name("image.png").
	    Print()
	if err != nil {
	    log.Fatal(err)
	}

Pixel arrays:

	arr := imgcat.Float32Pixels{Data: data, Dims: []int{h, w, 3}}
	err := imgcat.FromArray(arr).Resize(200, 0).Print()

Float values in [0, 1] are scaled to [0, 255] and rounded; out of range values
are clamped rather than rejected.

Lower level:

	term := imgcat.DetectTerminal(os.Getenv)
	c, err := imgcat.Normalize(imgcat.FromFile("plot.png"), imgcat.NormalizeOptions{})
	if err != nil {
	    return err
	}
	err = imgcat.NewEncoder(os.Stdout, term).Encode(c, imgcat.EncodeOptions{})

The package never prints or logs on its own; every failure is returned to the
caller. Normalizer failures match ErrNotFound, ErrEmptyInput, ErrShape,
ErrUnsupportedHandle, ErrInvalidDimension or ErrDecode with errors.Is, and
output failures match ErrWrite.
*/
package imgcat
