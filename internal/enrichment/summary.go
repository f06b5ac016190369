package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
)

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

// Summarize asks the Gemini API for a short book summary. It never fails the
// caller: an unreachable or unconfigured backend yields SummaryUnavailable.
func (c *Client) Summarize(ctx context.Context, title, authors string) string {
	if c.geminiAPIKey == "" {
		return SummaryUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return SummaryUnavailable
	}

	prompt := fmt.Sprintf("Summarize the book %s by %s in 5 sentences or less.", title, authors)
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return SummaryUnavailable
	}

	reqURL := fmt.Sprintf("%s/v1beta/models/gemini-pro:generateContent?key=%s",
		c.geminiAPIURL, url.QueryEscape(c.geminiAPIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return SummaryUnavailable
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpDo(req)
	if err != nil {
		slog.Warn("Summary request failed", "title", title, "error", err)
		return SummaryUnavailable
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("Summary backend returned non-200 status", "title", title, "status", resp.StatusCode)
		return SummaryUnavailable
	}

	var payload struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return SummaryUnavailable
	}
	if len(payload.Candidates) == 0 || len(payload.Candidates[0].Content.Parts) == 0 {
		return SummaryUnavailable
	}

	return payload.Candidates[0].Content.Parts[0].Text
}
