package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"library-catalog/internal/constants"
	"library-catalog/internal/models"
	"library-catalog/internal/store"
	"library-catalog/internal/utils"
)

type RatingHandler struct {
	Store       *store.RatingStore
	AuditLogger utils.Logger
}

func NewRatingHandler(s *store.RatingStore, logger utils.Logger) *RatingHandler {
	return &RatingHandler{
		Store:       s,
		AuditLogger: logger,
	}
}

// GET /ratings
func (h *RatingHandler) GetRatings(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ratings, err := h.Store.GetAll(ctx, queryParams(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, ratings)
}

// GET /ratings/{id}
func (h *RatingHandler) GetRating(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rating, err := h.Store.GetByBookID(ctx, id)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, rating)
}

// POST /ratings/{id}/values
func (h *RatingHandler) AddRatingValue(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		Value *float64 `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Value == nil {
		utils.JSONError(w, "value field is required", http.StatusUnprocessableEntity)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	average, err := h.Store.Rate(ctx, id, *req.Value)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	h.AuditLogger.Log(ctx, models.RatingEntity, constants.Rate, id)

	utils.JSON(w, http.StatusCreated, map[string]any{
		"ID":      id,
		"average": average,
	})
}

// GET /top
func (h *RatingHandler) GetTop(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	top, err := h.Store.TopRanked(ctx)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, top)
}
