/*
Copyright © 2024 blacktop

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/apex/log"
	clihander "github.com/apex/log/handlers/cli"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/blacktop/go-imgcat"
	"github.com/blacktop/go-imgcat/internal/config"
	"github.com/blacktop/go-imgcat/pkg/dotplot"
)

func init() {
	log.SetHandler(clihander.Default)
}

type rootFlags struct {
	verbose    bool
	configPath string

	width      string
	height     string
	name       string
	resize     string
	exact      bool
	noPreserve bool

	format        string
	quality       int
	colors        int
	dither        bool
	chunkSize     int
	interpolation string

	passthrough      string
	allowPassthrough bool
	dot              bool
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	var f rootFlags

	cmd := &cobra.Command{
		Use:   "imgcat [FILE...]",
		Short: "Display images in your terminal.",
		Long: `Display images inline in terminals that support the iTerm2 image protocol.

Reads images from the given files, or from standard input when no file is given.
Inside tmux the output is wrapped for passthrough automatically.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.verbose {
				log.SetLevel(log.DebugLevel)
			}
			return run(cmd, args, &f)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&f.verbose, "verbose", "V", false, "Enable verbose logging")
	flags.StringVar(&f.configPath, "config", "", "Config file (default is $XDG_CONFIG_HOME/imgcat/config.toml)")
	flags.StringVarP(&f.width, "width", "W", "", "Display width: N cells, Npx, N% or auto")
	flags.StringVarP(&f.height, "height", "H", "", "Display height: N cells, Npx, N% or auto")
	flags.StringVarP(&f.name, "name", "n", "", "File name sent to the terminal (default is the file's base name)")
	flags.StringVar(&f.resize, "resize", "", "Resize pixels to fit WxH before sending (e.g. 640x480, 640x, x480)")
	flags.BoolVar(&f.exact, "exact", false, "Resize to exactly WxH, ignoring the aspect ratio")
	flags.BoolVar(&f.noPreserve, "no-preserve-aspect", false, "Let the terminal stretch the image to width and height")
	flags.StringVar(&f.format, "format", "", "Transport format for pixel data: png or jpeg")
	flags.IntVar(&f.quality, "quality", 0, "JPEG quality (1-100)")
	flags.IntVar(&f.colors, "colors", 0, "Reduce to a palette of N colors (2-256)")
	flags.BoolVar(&f.dither, "dither", false, "Dither when reducing colors")
	flags.IntVar(&f.chunkSize, "chunk-size", 0, fmt.Sprintf("Send payloads above N bytes as a multipart transfer (suggested %d)", imgcat.DefaultChunkSize))
	flags.StringVar(&f.interpolation, "interpolation", "", "Resize filter: nearest, bilinear, bicubic or lanczos3")
	flags.StringVar(&f.passthrough, "passthrough", "", "Multiplexer passthrough: auto, tmux or none")
	flags.BoolVar(&f.allowPassthrough, "tmux-allow-passthrough", false, "Run 'tmux set -p allow-passthrough on' first")
	flags.BoolVar(&f.dot, "dot", false, "Treat inputs as Graphviz DOT and render them")

	return cmd
}

// mergeFlags overrides cfg with every flag set on the command line.
func mergeFlags(cmd *cobra.Command, f *rootFlags, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("width") {
		cfg.Width = f.width
	}
	if changed("height") {
		cfg.Height = f.height
	}
	if changed("no-preserve-aspect") {
		preserve := !f.noPreserve
		cfg.PreserveAspectRatio = &preserve
	}
	if changed("format") {
		cfg.Format = f.format
	}
	if changed("quality") {
		cfg.Quality = f.quality
	}
	if changed("colors") {
		cfg.Colors = f.colors
	}
	if changed("dither") {
		cfg.Dither = f.dither
	}
	if changed("chunk-size") {
		cfg.ChunkSize = f.chunkSize
	}
	if changed("interpolation") {
		cfg.Interpolation = f.interpolation
	}
	if changed("passthrough") {
		cfg.Passthrough = f.passthrough
	}
	if changed("tmux-allow-passthrough") {
		cfg.TmuxAllowPassthrough = f.allowPassthrough
	}
}

// parseSize parses WxH, Wx or xH.
func parseSize(s string) (*imgcat.Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return nil, fmt.Errorf("invalid size %q: expected WxH", s)
	}
	var size imgcat.Size
	var err error
	if w != "" {
		if size.Width, err = strconv.Atoi(w); err != nil {
			return nil, fmt.Errorf("invalid width in %q: %w", s, err)
		}
	}
	if h != "" {
		if size.Height, err = strconv.Atoi(h); err != nil {
			return nil, fmt.Errorf("invalid height in %q: %w", s, err)
		}
	}
	return &size, nil
}

type input struct {
	label string
	src   imgcat.Source
}

func collectInputs(cmd *cobra.Command, args []string, dot bool) ([]input, error) {
	if len(args) == 0 {
		in := cmd.InOrStdin()
		if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return nil, fmt.Errorf("no input: pass an image file or pipe one to stdin")
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		if dot {
			return []input{{label: "<stdin>", src: imgcat.FromPlot(dotplot.New(data))}}, nil
		}
		return []input{{label: "<stdin>", src: imgcat.FromBytes(data)}}, nil
	}

	inputs := make([]input, 0, len(args))
	for _, arg := range args {
		if dot {
			g, err := dotplot.Load(arg)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", arg, err)
			}
			inputs = append(inputs, input{label: arg, src: imgcat.FromPlot(g)})
			continue
		}
		inputs = append(inputs, input{label: arg, src: imgcat.FromFile(arg)})
	}
	return inputs, nil
}

func run(cmd *cobra.Command, args []string, f *rootFlags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	mergeFlags(cmd, f, cfg)

	normOpts, err := cfg.NormalizeOptions()
	if err != nil {
		return err
	}
	if f.resize != "" {
		if normOpts.Resize, err = parseSize(f.resize); err != nil {
			return err
		}
		normOpts.Exact = f.exact
	}
	encOpts, err := cfg.EncodeOptions()
	if err != nil {
		return err
	}

	tty, err := cfg.Terminal(imgcat.DetectTerminal(os.Getenv))
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"program":     tty.Program,
		"multiplexer": tty.Multiplexer,
		"inline":      tty.InlineImages,
	}).Debug("Terminal")
	if !tty.InlineImages {
		log.Debug("terminal is not known to support inline images")
	}
	if cfg.TmuxAllowPassthrough && tty.Multiplexer == imgcat.MuxTmux {
		if err := imgcat.EnableTmuxPassthrough(cmd.Context()); err != nil {
			log.WithError(err).Warn("failed to enable tmux passthrough")
		}
	}

	inputs, err := collectInputs(cmd, args, f.dot)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	enc := imgcat.NewEncoder(out, tty)
	for _, in := range inputs {
		c, err := imgcat.Normalize(in.src, normOpts)
		if err != nil {
			return fmt.Errorf("%s: %w", in.label, err)
		}
		log.WithFields(log.Fields{
			"source":   in.label,
			"width":    c.Width,
			"height":   c.Height,
			"channels": c.Channels,
			"format":   c.Format,
			"encoded":  humanize.Bytes(uint64(len(c.Encoded))),
		}).Debug("Image Info")

		opts := encOpts
		switch {
		case f.name != "":
			opts.Name = f.name
		case in.src.Kind() == imgcat.SourceFile:
			opts.Name = filepath.Base(in.label)
		}

		if err := enc.Encode(c, opts); err != nil {
			return fmt.Errorf("%s: %w", in.label, err)
		}
		if _, err := io.WriteString(out, "\n"); err != nil {
			return &imgcat.WriteError{Op: "write", Err: err}
		}
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
