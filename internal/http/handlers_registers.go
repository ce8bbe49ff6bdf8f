package http

import (
	"net/http"

	"github.com/Ramon98292347/financeiro-igreja/internal/core"
)

func (s *Server) handleCreateSavedEntry(w http.ResponseWriter, r *http.Request) {
	var entry core.SavedEntry
	if !decodeJSON(w, r, &entry) {
		return
	}

	created, err := s.registers.AddSavedEntry(r.Context(), entry)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.invalidateReports()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListSavedEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.registers.SavedEntries(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleDeleteSavedEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.registers.DeleteSavedEntry(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.invalidateReports()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateDailyRecord(w http.ResponseWriter, r *http.Request) {
	var rec core.DailyRecord
	if !decodeJSON(w, r, &rec) {
		return
	}

	created, err := s.registers.AddDailyRecord(r.Context(), rec)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.invalidateReports()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListDailyRecords(w http.ResponseWriter, r *http.Request) {
	// The list folds saved counting entries into the explicit records,
	// the same view the monthly sheet shows.
	records, err := s.registers.MergedDailyRecords(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleDeleteDailyRecord(w http.ResponseWriter, r *http.Request) {
	if err := s.registers.DeleteDailyRecord(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.invalidateReports()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetPriorTransfer(w http.ResponseWriter, r *http.Request) {
	amount, err := s.registers.PriorTransfer(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]core.Money{"amount": amount})
}

func (s *Server) handleSetPriorTransfer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount core.Money `json:"amount"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := s.registers.SetPriorTransfer(r.Context(), req.Amount); err != nil {
		writeDomainError(w, r, err)
		return
	}
	s.invalidateReports()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetMonthlySheet(w http.ResponseWriter, r *http.Request) {
	sheet, err := s.registers.MonthlySheet(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}

func (s *Server) handleSetMonthlySheet(w http.ResponseWriter, r *http.Request) {
	var sheet core.MonthlySheet
	if !decodeJSON(w, r, &sheet) {
		return
	}

	if err := s.registers.SetMonthlySheet(r.Context(), sheet); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.invalidateReports()
	w.WriteHeader(http.StatusNoContent)
}
