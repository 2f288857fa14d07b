// Command img2ascii converts images and animated GIFs into character
// art: colored terminal output, PNG/JPEG stills, animated GIFs, or JSON
// string sequences. It also embeds a small web wrapper (img2ascii serve)
// exposing the same pipeline over HTTP.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
