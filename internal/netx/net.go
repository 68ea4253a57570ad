// Package netx contains plain-HTTP helpers for endpoints that live outside
// the JSON envelope, such as raw image and file downloads.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/parishportal/parishportal/internal/common"
)

// FetchBinary downloads the resource at url and returns the raw bytes.
// A 404 maps to common.ErrorNotFound; other non-200 responses are reported
// as errors with the status line.
func FetchBinary(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", common.ErrorNotFound, url)
	}
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	return io.ReadAll(resp.Body)
}

// DownloadToFile fetches url and writes the payload to path.
func DownloadToFile(ctx context.Context, client *http.Client, url, path string) error {
	data, err := FetchBinary(ctx, client, url)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o660)
}
