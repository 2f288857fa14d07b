package main

import (
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/asciigen/img2ascii"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the conversion pipeline over HTTP",
	Long: `serve starts an HTTP endpoint where GET /<image-host-and-path> fetches
https://<image-host-and-path>, converts it with the configured options,
and responds with the HTML-colored character grid of the first frame.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := newServer()
		if err != nil {
			return err
		}
		log.Infof("listening on %s", serveAddr)
		return http.ListenAndServe(serveAddr, srv)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

// server carries the pipeline state resolved once at startup; requests
// share the immutable font catalog and converter configuration.
type server struct {
	font *img2ascii.Font
	conv *img2ascii.Converter
}

func newServer() (*server, error) {
	alphabet, err := img2ascii.LoadAlphabet(opts.alphabet)
	if err != nil {
		return nil, err
	}
	font, err := img2ascii.LoadFont(opts.font, alphabet)
	if err != nil {
		return nil, err
	}
	metric, err := img2ascii.GetMetric(opts.metric)
	if err != nil {
		return nil, err
	}

	width := opts.width
	if width == 0 {
		width = defaultWidth
	}
	threads := opts.threads
	if threads == 0 {
		threads = runtime.NumCPU()
	}

	conv := img2ascii.NewConverter(font,
		img2ascii.WithMetric(metric),
		img2ascii.WithWidth(width),
		img2ascii.WithThreads(threads),
		img2ascii.WithBrightnessOffset(opts.brightness),
		img2ascii.WithNoiseScale(opts.noise),
		img2ascii.WithEdgeDetection(!opts.noEdge),
	)
	return &server{font: font, conv: conv}, nil
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	target := strings.TrimPrefix(r.URL.Path, "/")
	if target == "" {
		fmt.Fprintln(w, "img2ascii api")
		return
	}

	start := time.Now()
	data, err := fetchImage("https://" + target)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}

	frame, err := decodeFrames(target, data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	grid, err := s.conv.Convert(frame[0])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if opts.noColor {
		fmt.Fprint(w, grid.String())
	} else {
		fmt.Fprint(w, img2ascii.RenderHTML(grid))
	}
	log.Infof("converted %s in %s", target, time.Since(start).Round(time.Millisecond))
}
