// Package netx holds plain HTTP helpers that do not belong to the API
// client, such as fetching presigned object-storage links.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// maxDownloadBytes caps a presigned download.
const maxDownloadBytes = 64 << 20

// DownloadPresignedURL fetches the object behind a presigned GET link. The
// link carries its own credentials, so no auth header is sent.
func DownloadPresignedURL(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxDownloadBytes {
		return nil, fmt.Errorf("download exceeds %d bytes", maxDownloadBytes)
	}
	return data, nil
}
