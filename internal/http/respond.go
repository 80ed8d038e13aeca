package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/storage"
)

// errorBody is the JSON shape of every API failure. Field is only set for
// validation failures.
type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

// writeLedgerError maps the ledger error taxonomy onto HTTP statuses.
// Validation failures are the caller's to fix and are not logged as
// system errors; store failures are.
func writeLedgerError(w http.ResponseWriter, r *http.Request, err error) {
	var ve core.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: ve.Error(), Field: ve.Field})
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "transaction not found")
	case errors.Is(err, storage.ErrStoreUnavailable):
		slog.ErrorContext(r.Context(), "Ledger store unavailable", "error", err)
		writeError(w, http.StatusServiceUnavailable, "ledger store unavailable")
	case errors.Is(err, storage.ErrStoreRejected):
		slog.ErrorContext(r.Context(), "Ledger store rejected operation", "error", err)
		writeError(w, http.StatusConflict, "ledger store rejected the operation")
	case errors.Is(err, ledger.ErrNoOwner):
		writeError(w, http.StatusUnauthorized, "no authenticated owner")
	default:
		slog.ErrorContext(r.Context(), "Unexpected ledger error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
