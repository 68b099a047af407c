package imgcat

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/pkg/errors"
)

const (
	tmuxStart = "\x1bPtmux;"
	tmuxEnd   = "\x1b\\"
)

// Wrap puts seq inside the tmux passthrough envelope:
//
//	ESC P tmux; <seq with every ESC doubled> ESC \
//
// Wrapping is not idempotent: a second call escapes the first envelope
// again. Sequences that do not start with ESC are returned unchanged.
func Wrap(seq []byte) []byte {
	if len(seq) == 0 || seq[0] != '\x1b' {
		return seq
	}
	escaped := bytes.ReplaceAll(seq, []byte{'\x1b'}, []byte{'\x1b', '\x1b'})

	out := make([]byte, 0, len(tmuxStart)+len(escaped)+len(tmuxEnd))
	out = append(out, tmuxStart...)
	out = append(out, escaped...)
	return append(out, tmuxEnd...)
}

// EnableTmuxPassthrough turns on allow-passthrough for the current tmux pane.
// tmux 3.3 and newer drop passthrough sequences unless this is set.
func EnableTmuxPassthrough(ctx context.Context) error {
	// -p sets the option for the current pane only
	cmd := exec.CommandContext(ctx, "tmux", "set", "-p", "allow-passthrough", "on")
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.Wrapf(err, "tmux set allow-passthrough: %s", bytes.TrimSpace(out))
	}
	return nil
}
