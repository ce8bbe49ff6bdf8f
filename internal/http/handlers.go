package http

import (
	"net/http"

	"github.com/Ramon98292347/financeiro-igreja/internal/core"
	"github.com/Ramon98292347/financeiro-igreja/internal/ledger"
)

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	store, ok := s.ownerStore(w, r)
	if !ok {
		return
	}

	var tx core.Transaction
	if !decodeJSON(w, r, &tx) {
		return
	}

	created, err := store.AddTransaction(r.Context(), tx)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.invalidateReports()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	store, ok := s.ownerStore(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, store.Transactions())
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	store, ok := s.ownerStore(w, r)
	if !ok {
		return
	}

	var req struct {
		Type        *core.TransactionType `json:"type"`
		Category    *string               `json:"category"`
		Amount      *core.Money           `json:"amount"`
		Description *string               `json:"description"`
		Date        *core.Date            `json:"date"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	patch := ledger.TransactionPatch{
		Type:        req.Type,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
	}
	if err := store.UpdateTransaction(r.Context(), r.PathValue("id"), patch); err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.invalidateReports()
	// Unknown ids fall through here as a no-op.
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	store, ok := s.ownerStore(w, r)
	if !ok {
		return
	}
	if err := store.DeleteTransaction(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.invalidateReports()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateCashCount(w http.ResponseWriter, r *http.Request) {
	store, ok := s.ownerStore(w, r)
	if !ok {
		return
	}

	var cc core.CashCount
	if !decodeJSON(w, r, &cc) {
		return
	}

	created, err := store.SaveCashCount(r.Context(), cc)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.invalidateReports()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListCashCounts(w http.ResponseWriter, r *http.Request) {
	store, ok := s.ownerStore(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, store.CashCounts())
}

func (s *Server) handleDeleteCashCount(w http.ResponseWriter, r *http.Request) {
	store, ok := s.ownerStore(w, r)
	if !ok {
		return
	}
	if err := store.DeleteCashCount(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.invalidateReports()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	store, ok := s.ownerStore(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, store.Categories())
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	store, ok := s.ownerStore(w, r)
	if !ok {
		return
	}

	var cat core.ExpenseCategory
	if !decodeJSON(w, r, &cat) {
		return
	}

	created, err := store.AddCategory(r.Context(), cat)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	store, ok := s.ownerStore(w, r)
	if !ok {
		return
	}

	var req struct {
		Name  string `json:"name"`
		Color string `json:"color"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := store.UpdateCategory(r.Context(), r.PathValue("id"), req.Name, req.Color); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	store, ok := s.ownerStore(w, r)
	if !ok {
		return
	}
	if err := store.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
