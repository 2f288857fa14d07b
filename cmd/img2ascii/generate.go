package main

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"github.com/asciigen/img2ascii"
	"github.com/asciigen/img2ascii/imageutil"
)

// outputKind is the closed set of output targets, resolved once from the
// --out extension.
type outputKind int

const (
	outTerminal outputKind = iota
	outJSON
	outGIF
	outImage
)

// resolveOutput maps an output path to its target kind.
func resolveOutput(path string) outputKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case "":
		return outTerminal
	case ".json":
		return outJSON
	case ".gif":
		return outGIF
	default:
		return outImage
	}
}

// generate runs the whole pipeline for one source image:
// fetch -> decode -> convert per frame -> render to the resolved target.
func generate(src string) error {
	alphabet, err := img2ascii.LoadAlphabet(opts.alphabet)
	if err != nil {
		return err
	}
	font, err := img2ascii.LoadFont(opts.font, alphabet)
	if err != nil {
		return err
	}
	metric, err := img2ascii.GetMetric(opts.metric)
	if err != nil {
		return err
	}

	width := resolveWidth()
	threads := opts.threads
	if threads == 0 {
		threads = runtime.NumCPU()
	}

	log.WithFields(logrus.Fields{
		"font":           opts.font,
		"alphabet":       opts.alphabet,
		"width":          width,
		"metric":         metric.Name(),
		"threads":        threads,
		"color":          !opts.noColor,
		"brightness":     opts.brightness,
		"noise scale":    opts.noise,
		"fps":            opts.fps,
		"edge detection": !opts.noEdge,
	}).Info("resolved configuration")

	data, err := fetchImage(src)
	if err != nil {
		return err
	}

	frames, err := decodeFrames(src, data)
	if err != nil {
		return err
	}
	log.Infof("decoded %d frame(s)", len(frames))

	conv := img2ascii.NewConverter(font,
		img2ascii.WithMetric(metric),
		img2ascii.WithWidth(width),
		img2ascii.WithThreads(threads),
		img2ascii.WithBrightnessOffset(opts.brightness),
		img2ascii.WithNoiseScale(opts.noise),
		img2ascii.WithEdgeDetection(!opts.noEdge),
	)

	bar := progressbar.Default(int64(len(frames)), "converting frames")
	grids := make([]*img2ascii.CharGrid, 0, len(frames))
	for _, frame := range frames {
		grid, err := conv.Convert(frame)
		if err != nil {
			return err
		}
		grids = append(grids, grid)
		bar.Add(1)
	}

	switch resolveOutput(opts.out) {
	case outJSON:
		return writeJSON(opts.out, grids)
	case outGIF:
		return writeAnimated(opts.out, grids, font)
	case outImage:
		return writeStill(opts.out, grids[0], font)
	default:
		return writeTerminal(grids)
	}
}

// decodeFrames decodes the raw bytes into one frame per source frame:
// all frames for a .gif source, a single frame for anything else.
func decodeFrames(src string, data []byte) ([]*imageutil.RGBAImage, error) {
	if strings.EqualFold(filepath.Ext(src), ".gif") {
		return imageutil.DecodeGIF(data)
	}
	frame, err := imageutil.Decode(data)
	if err != nil {
		return nil, err
	}
	return []*imageutil.RGBAImage{frame}, nil
}

// writeJSON writes a JSON array with one rendered string per frame.
func writeJSON(path string, grids []*img2ascii.CharGrid) error {
	rendered := make([]string, len(grids))
	for i, grid := range grids {
		if opts.noColor {
			rendered[i] = grid.String()
		} else {
			rendered[i] = img2ascii.RenderHTML(grid)
		}
	}

	payload, err := json.Marshal(rendered)
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

// writeAnimated renders every grid to a bitmap and assembles a GIF.
func writeAnimated(path string, grids []*img2ascii.CharGrid, font *img2ascii.Font) error {
	log.Info("rendering frames to bitmaps")
	bar := progressbar.Default(int64(len(grids)), "rendering frames")
	bitmaps := make([]*image.RGBA, len(grids))
	for i, grid := range grids {
		if opts.noColor {
			bitmaps[i] = img2ascii.RenderBitmap(grid, font)
		} else {
			bitmaps[i] = img2ascii.RenderColorBitmap(grid, font)
		}
		bar.Add(1)
	}
	return img2ascii.WriteGIF(path, bitmaps, opts.fps)
}

// writeStill renders the first frame's grid to a bitmap file.
func writeStill(path string, grid *img2ascii.CharGrid, font *img2ascii.Font) error {
	var bitmap *image.RGBA
	if opts.noColor {
		bitmap = img2ascii.RenderBitmap(grid, font)
	} else {
		bitmap = img2ascii.RenderColorBitmap(grid, font)
	}
	return imageutil.SaveImage(bitmap, path)
}

// writeTerminal prints to stdout: a single frame directly, multiple
// frames as a looping fps-locked playback.
func writeTerminal(grids []*img2ascii.CharGrid) error {
	rendered := make([]string, len(grids))
	for i, grid := range grids {
		if opts.noColor {
			rendered[i] = grid.String()
		} else {
			rendered[i] = img2ascii.RenderANSI(grid)
		}
	}

	if len(rendered) == 1 {
		fmt.Println(rendered[0])
		return nil
	}
	return img2ascii.Play(os.Stdout, rendered, opts.fps)
}
