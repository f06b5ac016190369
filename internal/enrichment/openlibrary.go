package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
)

// Language looks up the language codes recorded for an ISBN via the Open
// Library search API. Zero results or any failure degrade to ErrUnavailable.
func (c *Client) Language(ctx context.Context, isbn string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	reqURL := fmt.Sprintf("%s/search.json?q=%s&fields=language", c.openLibraryURL, url.QueryEscape(isbn))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.httpDo(req)
	if err != nil {
		slog.Warn("Open Library request failed", "isbn", isbn, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("Open Library returned non-200 status", "isbn", isbn, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var payload struct {
		NumFound int `json:"numFound"`
		Docs     []struct {
			Language []string `json:"language"`
		} `json:"docs"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if payload.NumFound == 0 || len(payload.Docs) == 0 {
		return nil, fmt.Errorf("%w: no docs for isbn %s", ErrUnavailable, isbn)
	}

	return payload.Docs[0].Language, nil
}
