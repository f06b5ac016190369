package enrichment

import (
	"errors"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// ErrUnavailable signals that an external provider could not be reached or
// returned no usable result. Callers substitute placeholder values and keep
// going; it is never surfaced as a request failure.
var ErrUnavailable = errors.New("enrichment provider unavailable")

// SummaryUnavailable is returned in place of a generated summary when the
// summarization backend cannot be reached or is unconfigured.
const SummaryUnavailable = "summary service unavailable"

// Metadata holds what the book-metadata provider knows about an ISBN. Absent
// fields stay zero-valued; the caller decides on placeholders.
type Metadata struct {
	Authors       []string
	Publisher     string
	PublishedDate string
}

type Config struct {
	GoogleBooksURL    string
	OpenLibraryURL    string
	GeminiAPIURL      string
	GeminiAPIKey      string
	Timeout           time.Duration
	RequestsPerSecond int
}

type Client struct {
	googleBooksURL string
	openLibraryURL string
	geminiAPIURL   string
	geminiAPIKey   string
	timeout        time.Duration
	limiter        *rate.Limiter

	// replaceable in tests
	httpDo func(*http.Request) (*http.Response, error)
}

func NewClient(cfg Config) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 1
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		googleBooksURL: cfg.GoogleBooksURL,
		openLibraryURL: cfg.OpenLibraryURL,
		geminiAPIURL:   cfg.GeminiAPIURL,
		geminiAPIKey:   cfg.GeminiAPIKey,
		timeout:        timeout,
		limiter:        rate.NewLimiter(rate.Limit(rps), rps),
		httpDo: func(req *http.Request) (*http.Response, error) {
			return http.DefaultClient.Do(req)
		},
	}
}
