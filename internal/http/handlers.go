package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"fintrack/internal/charts"
	"fintrack/internal/core"
)

// createTransactionRequest is the JSON body of POST /api/transactions.
// The amount is kept raw so both JSON numbers and strings are accepted;
// either way it goes through the same decimal parse.
type createTransactionRequest struct {
	Amount      json.RawMessage `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Kind        string          `json:"kind"`
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	owner := ownerFromContext(r.Context())

	list, err := s.ledger.List(r.Context(), owner)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	owner := ownerFromContext(r.Context())

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.WarnContext(r.Context(), "Malformed create request", "error", err)
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	draft, err := core.NewDraft(
		rawAmountString(req.Amount),
		sanitizeInput(req.Description),
		sanitizeInput(req.Category),
		sanitizeInput(req.Kind),
	)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}

	created, err := s.ledger.Create(r.Context(), owner, draft)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	owner := ownerFromContext(r.Context())

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction id")
		return
	}

	if err := s.ledger.Delete(r.Context(), owner, id); err != nil {
		writeLedgerError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	owner := ownerFromContext(r.Context())

	list, err := s.ledger.List(r.Context(), owner)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, core.Summarize(list))
}

func (s *Server) handleSummaryChart(w http.ResponseWriter, r *http.Request) {
	owner := ownerFromContext(r.Context())

	list, err := s.ledger.List(r.Context(), owner)
	if err != nil {
		writeLedgerError(w, r, err)
		return
	}

	png, err := charts.CategoryExpensesPNG(core.ExpensesByCategory(list))
	if err != nil {
		slog.ErrorContext(r.Context(), "Chart rendering failed", "error", err)
		writeError(w, http.StatusInternalServerError, "chart rendering failed")
		return
	}
	if png == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// rawAmountString unwraps a JSON amount value: quoted strings lose their
// quotes, numbers pass through verbatim.
func rawAmountString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	}
	return string(raw)
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
