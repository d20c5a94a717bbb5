package http

import (
	"net/http"

	"driversdash/internal/core"
)

// metricsDTO carries aggregated totals with money already in reais; the
// frontend formats, it does not compute.
type metricsDTO struct {
	TotalEarnings float64 `json:"totalEarnings"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetProfit     float64 `json:"netProfit"`
	TotalHours    float64 `json:"totalHours"`
	AvgPerHour    float64 `json:"avgPerHour"`
}

func toMetricsDTO(m core.Metrics) metricsDTO {
	return metricsDTO{
		TotalEarnings: m.TotalEarnings.Reais(),
		TotalExpenses: m.TotalExpenses.Reais(),
		NetProfit:     m.NetProfit.Reais(),
		TotalHours:    m.TotalHours,
		AvgPerHour:    m.AvgPerHour,
	}
}

type goalProgressDTO struct {
	Goal    core.Goal `json:"goal"`
	Current float64   `json:"current"`
	Percent float64   `json:"percent"`
}

type dashboardResponse struct {
	Date      string            `json:"date"`
	WeekStart string            `json:"weekStart"`
	Today     metricsDTO        `json:"today"`
	Week      metricsDTO        `json:"week"`
	Goals     []goalProgressDTO `json:"goals"`
}

// handleDashboard recomputes every figure from the live collections; nothing
// on this page is cached.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	today := core.Today(now)
	weekStart := core.WeekStart(now)

	entries := s.repo.Entries()
	goals := s.repo.Goals()

	resp := dashboardResponse{
		Date:      today,
		WeekStart: weekStart,
		Today:     toMetricsDTO(core.ComputeMetrics(core.FilterDay(entries, today))),
		Week:      toMetricsDTO(core.ComputeMetrics(core.FilterRange(entries, weekStart, today))),
		Goals:     make([]goalProgressDTO, 0, len(goals)),
	}
	for _, g := range goals {
		p := core.ComputeGoalProgress(g, core.EntriesForPeriod(entries, g.Period, now))
		resp.Goals = append(resp.Goals, goalProgressDTO{Goal: g, Current: p.Current, Percent: p.Percent})
	}

	writeJSON(w, http.StatusOK, resp)
}

type dayTotalsDTO struct {
	Date     string  `json:"date"`
	Earnings float64 `json:"earnings"`
	Expenses float64 `json:"expenses"`
}

type categoryAmountDTO struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type chartsResponse struct {
	Days             []dayTotalsDTO      `json:"days"`
	ExpenseBreakdown []categoryAmountDTO `json:"expenseBreakdown"`
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	entries := s.repo.Entries()

	resp := chartsResponse{
		Days:             make([]dayTotalsDTO, 0, 7),
		ExpenseBreakdown: make([]categoryAmountDTO, 0),
	}
	for _, d := range core.LastNDays(entries, s.now(), 7) {
		resp.Days = append(resp.Days, dayTotalsDTO{
			Date:     d.Date,
			Earnings: d.Earnings.Reais(),
			Expenses: d.Expenses.Reais(),
		})
	}
	for _, c := range core.ExpensesByCategory(entries) {
		resp.ExpenseBreakdown = append(resp.ExpenseBreakdown, categoryAmountDTO{
			Category: c.Category,
			Amount:   c.Amount.Reais(),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleInsights always answers 200; degraded situations are reported in the
// text itself, not as transport errors.
func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	text := s.insights.RequestInsights(r.Context(), s.repo.Entries())
	writeJSON(w, http.StatusOK, map[string]string{"insights": text})
}
