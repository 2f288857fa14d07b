package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// defaultWidth is used when no --width is given and the output is not a
// terminal whose size can be queried.
const defaultWidth = 150

var opts struct {
	font       string
	alphabet   string
	metric     string
	out        string
	width      int
	threads    int
	noColor    bool
	noEdge     bool
	verbose    bool
	brightness float64
	noise      float64
	fps        float64
}

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "img2ascii [flags] <url-or-path>",
	Short: "Convert images and GIFs to character art",
	Long: `img2ascii partitions an image into glyph-sized tiles and picks, for
each tile, the font character whose pixel pattern best matches it. The
resulting character grid is printed to the terminal, or written as a
bitmap, animated GIF, or JSON string sequence via --out.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetOutput(os.Stderr)
		if opts.verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := generate(args[0]); err != nil {
			log.Error(err)
			return err
		}
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.font, "font", "7x13",
		"built-in font name or path to a .ttf file")
	pf.StringVar(&opts.alphabet, "alphabet", "alphabet",
		"built-in alphabet name or path to a file of characters")
	pf.IntVar(&opts.width, "width", 0,
		"output column count (0 = terminal width, or 150)")
	pf.StringVar(&opts.metric, "metric", "grad",
		"similarity metric (grad, fill)")
	pf.IntVar(&opts.threads, "threads", 0,
		"worker count for tile conversion (0 = number of CPUs)")
	pf.BoolVar(&opts.noColor, "no-color", false,
		"disable per-cell color sampling")
	pf.Float64Var(&opts.brightness, "brightness-offset", 0,
		"additive luminance bias before matching")
	pf.Float64Var(&opts.noise, "noise-scale", 0,
		"dither perturbation magnitude")
	pf.Float64Var(&opts.fps, "fps", 30,
		"frame rate for animated output and playback")
	pf.BoolVar(&opts.noEdge, "no-edge-detection", false,
		"disable gradient-biased matching")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false,
		"enable debug logging")

	rootCmd.Flags().StringVarP(&opts.out, "out", "o", "",
		"output path (.json, .gif, .png, .jpg); empty prints to the terminal")
}

// resolveWidth applies the width default chain: explicit flag, then the
// terminal width, then defaultWidth.
func resolveWidth() int {
	if opts.width > 0 {
		return opts.width
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}
