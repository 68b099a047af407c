package imgcat

import (
	"strings"

	"github.com/pkg/errors"
)

// Multiplexer is the terminal multiplexer the process runs under
type Multiplexer int

const (
	// MuxNone means escape sequences reach the terminal unmodified
	MuxNone Multiplexer = iota
	// MuxTmux means sequences need the tmux passthrough envelope
	MuxTmux
)

func (m Multiplexer) String() string {
	if m == MuxTmux {
		return "tmux"
	}
	return "none"
}

// Terminal describes the output terminal. It is computed once at startup
// and handed to the encoder; nothing is cached globally.
type Terminal struct {
	Multiplexer Multiplexer
	// Program is the terminal emulator name, when it can be told.
	Program string
	// InlineImages reports whether the emulator is known to speak the iTerm2
	// inline image protocol.
	InlineImages bool
}

// DetectTerminal inspects the environment through getenv (usually
// os.Getenv). Nested tmux sessions still report a single MuxTmux.
func DetectTerminal(getenv func(string) string) Terminal {
	t := Terminal{Program: getenv("TERM_PROGRAM")}

	if getenv("TMUX") != "" || t.Program == "tmux" || strings.HasPrefix(getenv("TERM"), "tmux") {
		t.Multiplexer = MuxTmux
		// tmux overwrites TERM_PROGRAM; LC_TERMINAL survives ssh and tmux
		t.Program = getenv("LC_TERMINAL")
	}

	t.InlineImages = inlineImagesSupported(getenv, t.Program)
	return t
}

// inlineImagesSupported checks environment variables for emulators that
// implement OSC 1337 File.
func inlineImagesSupported(getenv func(string) string, program string) bool {
	switch {
	case program == "iTerm.app", program == "iTerm2":
		return true
	case program == "vscode" && getenv("TERM_PROGRAM_VERSION") != "":
		return true
	case program == "WezTerm", program == "mintty", program == "rio", program == "WarpTerminal":
		return true
	case strings.Contains(strings.ToLower(getenv("LC_TERMINAL")), "iterm"):
		return true
	case getenv("ITERM_SESSION_ID") != "":
		return true
	case getenv("TERM") == "mintty":
		return true
	}
	return false
}

// WithPassthrough overrides multiplexer detection: "auto" keeps t, "tmux"
// forces the tmux envelope and "none" disables it.
func (t Terminal) WithPassthrough(mode string) (Terminal, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
	case "tmux":
		t.Multiplexer = MuxTmux
	case "none", "off":
		t.Multiplexer = MuxNone
	default:
		return t, errors.Errorf("unknown passthrough mode %q", mode)
	}
	return t, nil
}
