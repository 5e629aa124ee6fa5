// Package fetch downloads remote world-book files. Network and parse
// failures are returned at this boundary; nothing partial is applied.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"lumia/internal/worldbook"
)

// maxBodyBytes caps how much of a response is read; world-book files are
// text and anything larger is not one.
const maxBodyBytes = 20 << 20

// WorldBook fetches a world-book JSON file and decodes its entries. A nil
// client falls back to http.DefaultClient.
func WorldBook(ctx context.Context, client *http.Client, url string) ([]worldbook.Entry, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching world book: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching world book: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching world book: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("fetching world book: %w", err)
	}

	entries, err := worldbook.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("fetching world book: %w", err)
	}
	return entries, nil
}
