package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"driversdash/internal/core"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// decodeJSON reads the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// validationMessage maps domain validation errors to the user-facing text.
func validationMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidDate):
		return "Data inválida."
	case errors.Is(err, core.ErrInvalidTime):
		return "Horário inválido."
	case errors.Is(err, core.ErrInvalidAmount):
		return "Valor inválido."
	case errors.Is(err, core.ErrInvalidCategory):
		return "Categoria inválida."
	case errors.Is(err, core.ErrInvalidEntryType):
		return "Tipo de lançamento inválido."
	case errors.Is(err, core.ErrInvalidGoal):
		return "Meta inválida."
	default:
		return "Dados inválidos."
	}
}
