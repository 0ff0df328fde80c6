package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Downloader fetches the bytes behind an asset's source URL.
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// maxAssetSize bounds a single asset download. Videos are the largest
// assets the manifest can declare.
const maxAssetSize = 100 * 1024 * 1024

// httpDownloader is the production Downloader.
type httpDownloader struct {
	client *http.Client
}

func NewHTTPDownloader() Downloader {
	return &httpDownloader{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (d *httpDownloader) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read: %w", err)
	}

	return data, nil
}
