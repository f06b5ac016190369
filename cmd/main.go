package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"

	"library-catalog/configs"
	"library-catalog/internal/daemon"
	"library-catalog/internal/db"
	"library-catalog/internal/enrichment"
	"library-catalog/internal/handlers"
	"library-catalog/internal/middleware"
	"library-catalog/internal/store"
	"library-catalog/internal/utils"
)

func main() {
	cfg := configs.LoadConfig()
	db.Connect(cfg.MongoURI)

	r := mux.NewRouter()
	r.Use(middleware.JSONMiddleware)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "OK")
	})

	auditCol := db.GetCollection(cfg.DBName, "audit_logs")
	auditLogger := utils.Logger{Collection: auditCol}

	bookColl := db.GetCollection(cfg.DBName, "books")
	ratingColl := db.GetCollection(cfg.DBName, "ratings")
	loanColl := db.GetCollection(cfg.DBName, "loans")

	enricher := enrichment.NewClient(enrichment.Config{
		GoogleBooksURL:    cfg.GoogleBooksURL,
		OpenLibraryURL:    cfg.OpenLibraryURL,
		GeminiAPIURL:      cfg.GeminiAPIURL,
		GeminiAPIKey:      cfg.GeminiAPIKey,
		Timeout:           time.Duration(cfg.EnrichTimeoutSecs) * time.Second,
		RequestsPerSecond: cfg.EnrichRPS,
	})

	bookStore := store.NewBookStore(bookColl, ratingColl, enricher)
	ratingStore := store.NewRatingStore(ratingColl)
	loanStore := store.NewLoanStore(loanColl, bookColl)

	bookHandler := handlers.NewBookHandler(bookStore, auditLogger)

	r.HandleFunc("/books", bookHandler.CreateBook).Methods("POST")
	r.HandleFunc("/books", bookHandler.GetBooks).Methods("GET")
	r.HandleFunc("/books/{id}", bookHandler.GetBook).Methods("GET")
	r.HandleFunc("/books/{id}", bookHandler.UpdateBook).Methods("PUT")
	r.HandleFunc("/books/{id}", bookHandler.DeleteBook).Methods("DELETE")

	ratingHandler := handlers.NewRatingHandler(ratingStore, auditLogger)

	r.HandleFunc("/ratings", ratingHandler.GetRatings).Methods("GET")
	r.HandleFunc("/ratings/{id}", ratingHandler.GetRating).Methods("GET")
	r.HandleFunc("/ratings/{id}/values", ratingHandler.AddRatingValue).Methods("POST")
	r.HandleFunc("/top", ratingHandler.GetTop).Methods("GET")

	loanHandler := handlers.NewLoanHandler(loanStore, auditLogger)

	r.HandleFunc("/loans", loanHandler.CreateLoan).Methods("POST")
	r.HandleFunc("/loans", loanHandler.GetLoans).Methods("GET")
	r.HandleFunc("/loans/{id}", loanHandler.GetLoan).Methods("GET")
	r.HandleFunc("/loans/{id}", loanHandler.DeleteLoan).Methods("DELETE")

	exporter := daemon.LogExporter{
		Coll:     auditCol,
		Interval: time.Duration(cfg.AuditExportInterval) * time.Second,
	}
	exporter.Start()

	var server = http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		log.Fatal(server.ListenAndServe())
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	slog.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exporter.Stop()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}
	if err := db.Disconnect(ctx); err != nil {
		slog.Warn("MongoDB disconnect failed", "error", err)
	}
	slog.Info("Server shut down.")
}
