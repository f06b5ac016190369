package enrichment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
)

// Metadata looks up authors, publisher and publish date for an ISBN via the
// Google Books volumes API. Zero results or any transport/parse failure
// degrade to ErrUnavailable.
func (c *Client) Metadata(ctx context.Context, isbn string) (Metadata, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return Metadata{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	reqURL := fmt.Sprintf("%s/books/v1/volumes?q=isbn:%s", c.googleBooksURL, url.QueryEscape(isbn))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Metadata{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.httpDo(req)
	if err != nil {
		slog.Warn("Google Books request failed", "isbn", isbn, "error", err)
		return Metadata{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("Google Books returned non-200 status", "isbn", isbn, "status", resp.StatusCode)
		return Metadata{}, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var payload struct {
		TotalItems int `json:"totalItems"`
		Items      []struct {
			VolumeInfo struct {
				Authors       []string `json:"authors"`
				Publisher     string   `json:"publisher"`
				PublishedDate string   `json:"publishedDate"`
			} `json:"volumeInfo"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Metadata{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if payload.TotalItems == 0 || len(payload.Items) == 0 {
		return Metadata{}, fmt.Errorf("%w: no items for isbn %s", ErrUnavailable, isbn)
	}

	info := payload.Items[0].VolumeInfo
	return Metadata{
		Authors:       info.Authors,
		Publisher:     info.Publisher,
		PublishedDate: info.PublishedDate,
	}, nil
}
