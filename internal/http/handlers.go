package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"driversdash/internal/core"
)

// amountField accepts the amount as either a JSON string ("25,50") or a
// number (25.5); parsing to cents happens later.
type amountField string

func (a *amountField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = amountField(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*a = amountField(n.String())
		return nil
	}
	return fmt.Errorf("amount must be a string or a number")
}

type createEntryRequest struct {
	Type        string      `json:"type"`
	Date        string      `json:"date"`
	Category    string      `json:"category"`
	Amount      amountField `json:"amount"`
	Description string      `json:"description"`
	StartTime   string      `json:"startTime"`
	EndTime     string      `json:"endTime"`
}

func (s *Server) handleListEntries(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.repo.Entries())
}

func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	var req createEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Formato de requisição inválido.")
		return
	}

	e := core.Entry{
		Type:        core.EntryType(req.Type),
		Date:        strings.TrimSpace(req.Date),
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		StartTime:   strings.TrimSpace(req.StartTime),
		EndTime:     strings.TrimSpace(req.EndTime),
	}
	if e.Date == "" {
		e.Date = core.Today(s.now())
	}

	switch e.Type {
	case core.EntryEarning, core.EntryExpense:
		cents, err := core.ParseDecimalToCents(string(req.Amount))
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "Valor inválido.")
			return
		}
		e.Amount = core.Money{Cents: cents}
	case core.EntryShift:
		dur, err := core.ShiftDuration(e.StartTime, e.EndTime)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "Horário inválido.")
			return
		}
		e.DurationMinutes = dur
	}

	if err := e.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, validationMessage(err))
		return
	}

	created := s.repo.AddEntry(r.Context(), e)
	slog.InfoContext(r.Context(), "Entry created",
		"entry_id", created.ID,
		"type", string(created.Type),
		"date", created.Date)

	if s.events != nil {
		if err := s.events.PublishEntryCreated(r.Context(), created.ID); err != nil {
			slog.WarnContext(r.Context(), "Failed to publish entry-created event",
				"entry_id", created.ID, "error", err)
		}
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.repo.DeleteEntry(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

type createGoalRequest struct {
	Type        string  `json:"type"`
	Period      string  `json:"period"`
	Target      float64 `json:"target"`
	Description string  `json:"description"`
}

func (s *Server) handleListGoals(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.repo.Goals())
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Formato de requisição inválido.")
		return
	}

	g := core.Goal{
		Type:        core.GoalType(req.Type),
		Period:      core.GoalPeriod(req.Period),
		Target:      req.Target,
		Description: strings.TrimSpace(req.Description),
	}
	if err := g.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, validationMessage(err))
		return
	}

	created := s.repo.AddGoal(r.Context(), g)
	slog.InfoContext(r.Context(), "Goal created",
		"goal_id", created.ID,
		"type", string(created.Type),
		"period", string(created.Period))
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.repo.DeleteGoal(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}
