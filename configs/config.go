package configs

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	MongoURI            string
	DBName              string
	GoogleBooksURL      string
	OpenLibraryURL      string
	GeminiAPIURL        string
	GeminiAPIKey        string
	EnrichTimeoutSecs   int
	EnrichRPS           int
	AuditExportInterval int
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var enrichTimeout, enrichRPS, auditInterval int

	fmt.Sscanf(os.Getenv("ENRICH_TIMEOUT_SECONDS"), "%d", &enrichTimeout)
	fmt.Sscanf(os.Getenv("ENRICH_RPS"), "%d", &enrichRPS)
	fmt.Sscanf(os.Getenv("AUDIT_EXPORT_INTERVAL_SECONDS"), "%d", &auditInterval)

	if enrichTimeout == 0 {
		enrichTimeout = 5
	}
	if enrichRPS == 0 {
		enrichRPS = 2
	}
	if auditInterval == 0 {
		auditInterval = 30
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	googleBooksURL := os.Getenv("GOOGLE_BOOKS_URL")
	if googleBooksURL == "" {
		googleBooksURL = "https://www.googleapis.com"
	}
	openLibraryURL := os.Getenv("OPEN_LIBRARY_URL")
	if openLibraryURL == "" {
		openLibraryURL = "https://openlibrary.org"
	}
	geminiAPIURL := os.Getenv("GEMINI_API_URL")
	if geminiAPIURL == "" {
		geminiAPIURL = "https://generativelanguage.googleapis.com"
	}

	return Config{
		Port:                port,
		MongoURI:            os.Getenv("MONGO_URI"),
		DBName:              os.Getenv("DB_NAME"),
		GoogleBooksURL:      googleBooksURL,
		OpenLibraryURL:      openLibraryURL,
		GeminiAPIURL:        geminiAPIURL,
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		EnrichTimeoutSecs:   enrichTimeout,
		EnrichRPS:           enrichRPS,
		AuditExportInterval: auditInterval,
	}
}
