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

type LoanHandler struct {
	Store       *store.LoanStore
	AuditLogger utils.Logger
}

func NewLoanHandler(s *store.LoanStore, logger utils.Logger) *LoanHandler {
	return &LoanHandler{
		Store:       s,
		AuditLogger: logger,
	}
}

// POST /loans
func (h *LoanHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberName string `json:"memberName"`
		ISBN       string `json:"ISBN"`
		LoanDate   string `json:"loanDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, "malformed JSON payload", http.StatusUnprocessableEntity)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := h.Store.Insert(ctx, req.MemberName, req.ISBN, req.LoanDate)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	h.AuditLogger.Log(ctx, models.LoanEntity, constants.Create, id)

	utils.JSON(w, http.StatusCreated, map[string]string{"ID": id})
}

// GET /loans
func (h *LoanHandler) GetLoans(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	loans, err := h.Store.Query(ctx, queryParams(r))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, loans)
}

// GET /loans/{id}
func (h *LoanHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	loan, err := h.Store.GetByID(ctx, id)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, loan)
}

// DELETE /loans/{id}
func (h *LoanHandler) DeleteLoan(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.Store.Delete(ctx, id); err != nil {
		writeStoreError(w, err)
		return
	}

	h.AuditLogger.Log(ctx, models.LoanEntity, constants.Delete, id)

	utils.JSON(w, http.StatusOK, map[string]string{"ID": id})
}
