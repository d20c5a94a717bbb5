package core

import (
	"testing"
	"time"
)

func TestComputeMetricsEmpty(t *testing.T) {
	m := ComputeMetrics(nil)
	if m.TotalEarnings.Cents != 0 || m.TotalExpenses.Cents != 0 || m.NetProfit.Cents != 0 {
		t.Fatalf("expected zero totals, got %+v", m)
	}
	if m.TotalHours != 0 || m.AvgPerHour != 0 {
		t.Fatalf("expected zero hours and rate, got %+v", m)
	}
}

func TestComputeMetricsScenario(t *testing.T) {
	entries := []Entry{
		{Type: EntryEarning, Date: "2025-06-01", Category: EarningUber, Amount: Money{Cents: 10000}},
		{Type: EntryExpense, Date: "2025-06-01", Category: ExpenseFuel, Amount: Money{Cents: 3000}},
		{Type: EntryShift, Date: "2025-06-01", StartTime: "08:00", EndTime: "10:00", DurationMinutes: 120},
	}
	m := ComputeMetrics(entries)
	if m.TotalEarnings.Cents != 10000 {
		t.Fatalf("earnings: got %d", m.TotalEarnings.Cents)
	}
	if m.TotalExpenses.Cents != 3000 {
		t.Fatalf("expenses: got %d", m.TotalExpenses.Cents)
	}
	if m.NetProfit.Cents != 7000 {
		t.Fatalf("net profit: got %d", m.NetProfit.Cents)
	}
	if m.TotalHours != 2 {
		t.Fatalf("hours: got %v", m.TotalHours)
	}
	if m.AvgPerHour != 35 {
		t.Fatalf("avg per hour: got %v", m.AvgPerHour)
	}
}

func TestComputeMetricsNetProfitIdentity(t *testing.T) {
	entries := []Entry{
		{Type: EntryEarning, Amount: Money{Cents: 1234}},
		{Type: EntryEarning, Amount: Money{Cents: 4321}},
		{Type: EntryExpense, Amount: Money{Cents: 999}},
		{Type: EntryExpense, Amount: Money{Cents: 5000}},
		{Type: EntryShift, DurationMinutes: 90},
	}
	m := ComputeMetrics(entries)
	if m.NetProfit.Cents != m.TotalEarnings.Cents-m.TotalExpenses.Cents {
		t.Fatalf("net profit %d != %d - %d", m.NetProfit.Cents, m.TotalEarnings.Cents, m.TotalExpenses.Cents)
	}
}

func TestComputeGoalProgress(t *testing.T) {
	entries := []Entry{
		{Type: EntryEarning, Amount: Money{Cents: 50000}}, // R$500
		{Type: EntryShift, DurationMinutes: 360},          // 6h
	}

	cases := []struct {
		name        string
		goal        Goal
		wantCurrent float64
		wantPercent float64
	}{
		{"earning halfway", Goal{Type: GoalEarning, Target: 1000}, 500, 50},
		{"earning overshoot clamps", Goal{Type: GoalEarning, Target: 250}, 500, 100},
		{"hours", Goal{Type: GoalHours, Target: 12}, 6, 50},
		{"zero target", Goal{Type: GoalEarning, Target: 0}, 500, 0},
		{"negative target", Goal{Type: GoalHours, Target: -4}, 6, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := ComputeGoalProgress(tc.goal, entries)
			if p.Current != tc.wantCurrent {
				t.Fatalf("current: got %v, want %v", p.Current, tc.wantCurrent)
			}
			if p.Percent != tc.wantPercent {
				t.Fatalf("percent: got %v, want %v", p.Percent, tc.wantPercent)
			}
			if p.Percent < 0 || p.Percent > 100 {
				t.Fatalf("percent out of range: %v", p.Percent)
			}
		})
	}
}

func TestWindows(t *testing.T) {
	// 2025-06-18 is a Wednesday.
	now := time.Date(2025, 6, 18, 15, 30, 0, 0, time.Local)
	if got := Today(now); got != "2025-06-18" {
		t.Fatalf("today: got %s", got)
	}
	if got := WeekStart(now); got != "2025-06-15" {
		t.Fatalf("week start: got %s", got)
	}
	if got := MonthStart(now); got != "2025-06-01" {
		t.Fatalf("month start: got %s", got)
	}

	// A Sunday anchors to itself.
	sunday := time.Date(2025, 6, 15, 8, 0, 0, 0, time.Local)
	if got := WeekStart(sunday); got != "2025-06-15" {
		t.Fatalf("sunday week start: got %s", got)
	}
}

func TestEntriesForPeriod(t *testing.T) {
	now := time.Date(2025, 6, 18, 12, 0, 0, 0, time.Local)
	entries := []Entry{
		{ID: "a", Date: "2025-06-18"},
		{ID: "b", Date: "2025-06-16"},
		{ID: "c", Date: "2025-06-14"}, // Saturday before the week start
		{ID: "d", Date: "2025-06-02"},
		{ID: "e", Date: "2025-05-30"},
	}

	ids := func(list []Entry) string {
		s := ""
		for _, e := range list {
			s += e.ID
		}
		return s
	}

	if got := ids(EntriesForPeriod(entries, PeriodDaily, now)); got != "a" {
		t.Fatalf("daily: got %q", got)
	}
	if got := ids(EntriesForPeriod(entries, PeriodWeekly, now)); got != "ab" {
		t.Fatalf("weekly: got %q", got)
	}
	if got := ids(EntriesForPeriod(entries, PeriodMonthly, now)); got != "abcd" {
		t.Fatalf("monthly: got %q", got)
	}
}

func TestLastNDays(t *testing.T) {
	now := time.Date(2025, 6, 18, 12, 0, 0, 0, time.Local)
	entries := []Entry{
		{Type: EntryEarning, Date: "2025-06-18", Amount: Money{Cents: 1000}},
		{Type: EntryEarning, Date: "2025-06-18", Amount: Money{Cents: 500}},
		{Type: EntryExpense, Date: "2025-06-17", Amount: Money{Cents: 200}},
		{Type: EntryEarning, Date: "2025-06-11", Amount: Money{Cents: 999}}, // outside the window
	}
	days := LastNDays(entries, now, 7)
	if len(days) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(days))
	}
	if days[0].Date != "2025-06-12" || days[6].Date != "2025-06-18" {
		t.Fatalf("unexpected range: %s .. %s", days[0].Date, days[6].Date)
	}
	if days[6].Earnings.Cents != 1500 {
		t.Fatalf("today earnings: got %d", days[6].Earnings.Cents)
	}
	if days[5].Expenses.Cents != 200 {
		t.Fatalf("yesterday expenses: got %d", days[5].Expenses.Cents)
	}
}

func TestExpensesByCategory(t *testing.T) {
	entries := []Entry{
		{Type: EntryExpense, Category: ExpenseFuel, Amount: Money{Cents: 5000}},
		{Type: EntryExpense, Category: ExpenseFuel, Amount: Money{Cents: 2500}},
		{Type: EntryExpense, Category: ExpenseFood, Amount: Money{Cents: 1200}},
		{Type: EntryEarning, Category: EarningUber, Amount: Money{Cents: 9999}},
	}
	got := ExpensesByCategory(entries)
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got))
	}
	if got[0].Category != ExpenseFuel || got[0].Amount.Cents != 7500 {
		t.Fatalf("fuel: got %+v", got[0])
	}
	if got[1].Category != ExpenseFood || got[1].Amount.Cents != 1200 {
		t.Fatalf("food: got %+v", got[1])
	}
}
