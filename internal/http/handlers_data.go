package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"driversdash/internal/core"
	"driversdash/internal/repo"
)

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	snapshot := s.repo.Snapshot()

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to encode backup", "error", err)
		writeError(w, http.StatusInternalServerError, "Falha ao gerar o backup.")
		return
	}

	filename := fmt.Sprintf("drivers_dash_backup_%s.json", core.Today(s.now()))
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// importRequest uses pointers so a backup missing either array is told apart
// from one with empty arrays. Both must be present.
type importRequest struct {
	Entries *[]core.Entry `json:"entries"`
	Goals   *[]core.Goal  `json:"goals"`
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Arquivo de backup inválido.")
		return
	}
	if req.Entries == nil || req.Goals == nil {
		writeError(w, http.StatusUnprocessableEntity, "Arquivo de backup inválido.")
		return
	}

	s.repo.Replace(r.Context(), repo.Backup{Entries: *req.Entries, Goals: *req.Goals})
	slog.InfoContext(r.Context(), "Backup imported",
		"entries", len(*req.Entries),
		"goals", len(*req.Goals))

	writeJSON(w, http.StatusOK, map[string]int{
		"entries": len(*req.Entries),
		"goals":   len(*req.Goals),
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.repo.Reset(r.Context())
	slog.InfoContext(r.Context(), "All data reset")
	w.WriteHeader(http.StatusNoContent)
}
