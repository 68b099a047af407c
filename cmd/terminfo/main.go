package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/blacktop/go-imgcat"
)

var envVars = []string{
	"TERM",
	"TERM_PROGRAM",
	"TERM_PROGRAM_VERSION",
	"LC_TERMINAL",
	"ITERM_SESSION_ID",
	"TMUX",
}

func main() {
	fmt.Println("=== Terminal Detection Utility ===")
	fmt.Println()

	// Display environment information
	fmt.Println("Terminal Environment:")
	for _, key := range envVars {
		fmt.Printf("  %s: %s\n", key, os.Getenv(key))
	}
	fmt.Printf("  stdout is a TTY: %v\n", term.IsTerminal(int(os.Stdout.Fd())))
	fmt.Println()

	t := imgcat.DetectTerminal(os.Getenv)

	fmt.Println("Detected:")
	fmt.Printf("  Program: %s\n", t.Program)
	fmt.Printf("  Multiplexer: %s\n", t.Multiplexer)
	fmt.Printf("  Inline images: %v\n", t.InlineImages)

	fmt.Println()
	fmt.Println("=== Summary ===")
	showRecommendations(t)
}

// showRecommendations explains what imgcat will do in this terminal
func showRecommendations(t imgcat.Terminal) {
	if t.InlineImages {
		fmt.Println("✓ iTerm2 inline image protocol is available")
	} else {
		fmt.Println("• Inline images not detected - output may be ignored or shown as garbage")
	}

	if t.Multiplexer == imgcat.MuxTmux {
		fmt.Println("• Running in tmux - images are wrapped in passthrough sequences")
		fmt.Println("  tmux 3.3+ also needs: tmux set -p allow-passthrough on (or imgcat --tmux-allow-passthrough)")
	}

	if t.Multiplexer == imgcat.MuxTmux && t.Program == "" {
		fmt.Println("• LC_TERMINAL is unset inside tmux - the outer terminal cannot be identified")
	}
}
