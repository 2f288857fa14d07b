package img2ascii

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"io"
	"math"
	"os"
	"time"

	"github.com/soniakeys/quant/median"
)

// gifPaletteSize is the full GIF palette; median-cut quantization maps
// each rendered frame into it.
const gifPaletteSize = 256

// AssembleGIF encodes rendered frames into an animated GIF with a
// uniform per-frame delay of 1/fps seconds, rounded to GIF's centisecond
// units. Frame order is preserved and the animation loops forever.
func AssembleGIF(frames []*image.RGBA, fps float64) (*gif.GIF, error) {
	if fps <= 0 {
		return nil, &InvalidConfigurationError{
			Option: "fps",
			Reason: fmt.Sprintf("frame rate must be > 0, got %g", fps),
		}
	}
	if len(frames) == 0 {
		return nil, &InvalidConfigurationError{
			Option: "frames",
			Reason: "no frames to assemble",
		}
	}

	delay := int(math.Round(100 / fps))
	if delay < 1 {
		delay = 1
	}

	out := &gif.GIF{LoopCount: 0}
	q := median.Quantizer(gifPaletteSize)
	for _, frame := range frames {
		paletted := q.Paletted(frame)
		draw.Draw(paletted, frame.Bounds(), frame, image.Point{}, draw.Src)
		out.Image = append(out.Image, paletted)
		out.Delay = append(out.Delay, delay)
	}

	return out, nil
}

// WriteGIF assembles frames and writes the animation to a file.
func WriteGIF(path string, frames []*image.RGBA, fps float64) error {
	g, err := AssembleGIF(frames, fps)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	return gif.EncodeAll(f, g)
}

// clearScreen homes the cursor and clears the terminal before each
// playback frame.
const clearScreen = "\x1b[2J\x1b[H"

// Play loops forever over pre-rendered frame strings, clearing the
// terminal and printing each frame at the given rate. Playback is
// frame-rate-locked, not render-time-locked: each frame sleeps for
// whatever remains of its 1/fps slot after writing, and a slow frame
// eats only into its own slot. There is no drift correction across loop
// iterations and no exit condition; the caller kills the process.
func Play(w io.Writer, frames []string, fps float64) error {
	if fps <= 0 {
		return &InvalidConfigurationError{
			Option: "fps",
			Reason: fmt.Sprintf("frame rate must be > 0, got %g", fps),
		}
	}
	if len(frames) == 0 {
		return &InvalidConfigurationError{
			Option: "frames",
			Reason: "no frames to play",
		}
	}

	interval := time.Duration(float64(time.Second) / fps)
	for {
		for _, frame := range frames {
			start := time.Now()
			fmt.Fprint(w, clearScreen, frame, "\n")
			if remaining := interval - time.Since(start); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
}
