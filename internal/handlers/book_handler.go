package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"library-catalog/internal/constants"
	"library-catalog/internal/models"
	"library-catalog/internal/store"
	"library-catalog/internal/utils"
)

type BookHandler struct {
	Store       *store.BookStore
	AuditLogger utils.Logger
}

func NewBookHandler(s *store.BookStore, logger utils.Logger) *BookHandler {
	return &BookHandler{
		Store:       s,
		AuditLogger: logger,
	}
}

// writeStoreError maps store errors to the HTTP contract: validation
// failures are 422, unknown ids 404, anything else 500.
func writeStoreError(w http.ResponseWriter, err error) {
	if store.IsValidationError(err) {
		utils.JSONError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		utils.JSONError(w, "id is not a recognized id", http.StatusNotFound)
		return
	}
	utils.JSONError(w, err.Error(), http.StatusInternalServerError)
}

func queryParams(r *http.Request) map[string]string {
	params := map[string]string{}
	for key, values := range r.URL.Query() {
		params[key] = values[0]
	}
	return params
}

// POST /books
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
		ISBN  string `json:"ISBN"`
		Genre string `json:"genre"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "malformed JSON payload", http.StatusUnprocessableEntity)
		return
	}

	// insert calls out to the enrichment providers, so it gets a longer
	// budget than the plain store operations
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	id, err := h.Store.Insert(ctx, req.Title, req.ISBN, req.Genre)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	h.AuditLogger.Log(ctx, models.BookEntity, constants.Create, id)

	utils.JSON(w, http.StatusCreated, map[string]string{"ID": id})
}

// GET /books
func (h *BookHandler) GetBooks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	books, err := h.Store.Query(ctx, queryParams(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, books)
}

// GET /books/{id}
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	book, err := h.Store.GetByID(ctx, id)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, book)
}

// PUT /books/{id}
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var patch models.BookPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.JSONError(w, "malformed JSON payload", http.StatusUnprocessableEntity)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.Store.Update(ctx, id, patch); err != nil {
		writeStoreError(w, err)
		return
	}

	h.AuditLogger.Log(ctx, models.BookEntity, constants.Update, id)

	utils.JSON(w, http.StatusOK, map[string]string{"ID": id})
}

// DELETE /books/{id}
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.Store.Delete(ctx, id); err != nil {
		writeStoreError(w, err)
		return
	}

	h.AuditLogger.Log(ctx, models.BookEntity, constants.Delete, id)

	utils.JSON(w, http.StatusOK, map[string]string{"ID": id})
}
