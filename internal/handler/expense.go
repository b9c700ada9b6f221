package handler

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/Juanchoszs/StarWash/internal/domain"
	"github.com/Juanchoszs/StarWash/internal/store"
	"github.com/Juanchoszs/StarWash/internal/workflow"
	"github.com/go-chi/chi/v5"
)

type ExpenseHandler struct {
	Store *store.Store
	Sync  workflow.Notifier
}

func (h ExpenseHandler) RegisterRoutes(r chi.Router) {
	r.Get("/expenses", h.list)
	r.Post("/expenses", h.create)
	r.Delete("/expenses/{id}", h.delete)
}

func (h ExpenseHandler) list(w http.ResponseWriter, r *http.Request) {
	expenses := h.Store.Expenses()
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Date.After(expenses[j].Date)
	})
	writeJSON(w, http.StatusOK, expenses)
}

func (h ExpenseHandler) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string `json:"description"`
		Amount      int64  `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Description == "" {
		writeError(w, http.StatusBadRequest, "description is required")
		return
	}
	if req.Amount < 0 {
		writeError(w, http.StatusBadRequest, "amount must be non-negative")
		return
	}
	e := domain.Expense{
		ID:          store.NewID(),
		Description: req.Description,
		Amount:      req.Amount,
		Date:        time.Now(),
	}
	h.Store.AddExpense(e)
	h.Sync.Enqueue(domain.CollectionExpenses)
	writeJSON(w, http.StatusCreated, e)
}

func (h ExpenseHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteExpense(chi.URLParam(r, "id")); err != nil {
		writeWorkflowError(w, err)
		return
	}
	h.Sync.Enqueue(domain.CollectionExpenses)
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}
