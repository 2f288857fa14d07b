package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// maxFetchBytes caps remote image downloads.
const maxFetchBytes = 64 << 20

// fetchImage loads the source either over HTTP(S) or from disk; anything
// without a URL scheme prefix is treated as a local file path.
func fetchImage(src string) ([]byte, error) {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("failed to read image file: %w", err)
		}
		return data, nil
	}

	log.Infof("downloading image from %s", src)
	resp, err := http.Get(src)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: %s returned %s", src, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	return data, nil
}
