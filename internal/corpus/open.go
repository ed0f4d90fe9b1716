// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/pdiddy/rich-context/internal/httputil"
)

// Open returns a reader for source, which is either a local path or an
// http(s) URL. URLs are fetched with retry on HTTP 429.
func Open(ctx context.Context, client *http.Client, source string) (io.ReadCloser, error) {
	if !isURL(source) {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("opening corpus: %w", err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("building corpus request: %w", err)
	}
	req.Header.Set("Accept", "application/ld+json, application/json")
	req.Header.Set("User-Agent", httputil.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("fetching corpus %s: %w", source, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetching corpus %s: HTTP %d", source, resp.StatusCode)
	}
	return resp.Body, nil
}

// LoadSource opens source and parses it as a corpus.
func LoadSource(ctx context.Context, client *http.Client, source string) (*Store, error) {
	rc, err := Open(ctx, client, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Load(rc)
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
