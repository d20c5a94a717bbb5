package core

import "time"

// Metrics are the aggregated totals over a set of entries. The caller picks
// the entries (usually via one of the window helpers below); no date
// filtering happens here.
type Metrics struct {
	TotalEarnings Money
	TotalExpenses Money
	NetProfit     Money
	TotalHours    float64
	AvgPerHour    float64 // R$ per hour, 0 when no hours were worked
}

// GoalProgress is the live position against a goal, recomputed on every read.
type GoalProgress struct {
	Current float64 // R$ for earning goals, hours for hours goals
	Percent float64 // clamped to [0, 100]
}

// DayTotals is one bucket of the earnings-vs-expenses chart series.
type DayTotals struct {
	Date     string
	Earnings Money
	Expenses Money
}

// CategoryAmount is an expense total aggregated by category.
type CategoryAmount struct {
	Category string
	Amount   Money
}

// ComputeMetrics reduces entries into financial and time totals in a single
// pass. Amounts are trusted as given; validation happens at entry creation.
func ComputeMetrics(entries []Entry) Metrics {
	var m Metrics
	minutes := 0
	for _, e := range entries {
		switch e.Type {
		case EntryEarning:
			m.TotalEarnings.Cents += e.Amount.Cents
		case EntryExpense:
			m.TotalExpenses.Cents += e.Amount.Cents
		case EntryShift:
			minutes += e.DurationMinutes
		}
	}
	m.TotalHours = float64(minutes) / 60.0
	m.NetProfit.Cents = m.TotalEarnings.Cents - m.TotalExpenses.Cents
	if m.TotalHours > 0 {
		m.AvgPerHour = m.NetProfit.Reais() / m.TotalHours
	}
	return m
}

// ComputeGoalProgress measures entriesForPeriod against the goal's target.
// The caller selects entriesForPeriod with the window matching goal.Period.
// A non-positive target yields zero progress rather than NaN or Inf, and
// overshooting the target still reports at most 100%.
func ComputeGoalProgress(goal Goal, entriesForPeriod []Entry) GoalProgress {
	m := ComputeMetrics(entriesForPeriod)
	var current float64
	switch goal.Type {
	case GoalEarning:
		current = m.TotalEarnings.Reais()
	case GoalHours:
		current = m.TotalHours
	}
	p := GoalProgress{Current: current}
	if goal.Target > 0 {
		p.Percent = current / goal.Target * 100
		if p.Percent > 100 {
			p.Percent = 100
		}
		if p.Percent < 0 {
			p.Percent = 0
		}
	}
	return p
}

// Today returns the local calendar date of now in YYYY-MM-DD form.
func Today(now time.Time) string {
	return now.Format(time.DateOnly)
}

// WeekStart returns the most recent Sunday on or before now. The week anchor
// is fixed to Sunday; existing weekly goals depend on it staying put.
func WeekStart(now time.Time) string {
	return now.AddDate(0, 0, -int(now.Weekday())).Format(time.DateOnly)
}

// MonthStart returns the first day of now's month.
func MonthStart(now time.Time) string {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(time.DateOnly)
}

// FilterDay selects entries dated exactly on date.
func FilterDay(entries []Entry, date string) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

// FilterRange selects entries with from <= date <= to, comparing the
// YYYY-MM-DD strings directly.
func FilterRange(entries []Entry, from, to string) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Date >= from && e.Date <= to {
			out = append(out, e)
		}
	}
	return out
}

// EntriesForPeriod selects the entries relevant to a goal period as of now.
func EntriesForPeriod(entries []Entry, period GoalPeriod, now time.Time) []Entry {
	today := Today(now)
	switch period {
	case PeriodDaily:
		return FilterDay(entries, today)
	case PeriodWeekly:
		return FilterRange(entries, WeekStart(now), today)
	case PeriodMonthly:
		return FilterRange(entries, MonthStart(now), today)
	default:
		return nil
	}
}

// LastNDays buckets earnings and expenses per day for the n days ending at
// now, oldest first.
func LastNDays(entries []Entry, now time.Time, n int) []DayTotals {
	out := make([]DayTotals, 0, n)
	for i := n - 1; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format(time.DateOnly)
		d := DayTotals{Date: date}
		for _, e := range entries {
			if e.Date != date {
				continue
			}
			switch e.Type {
			case EntryEarning:
				d.Earnings.Cents += e.Amount.Cents
			case EntryExpense:
				d.Expenses.Cents += e.Amount.Cents
			}
		}
		out = append(out, d)
	}
	return out
}

// ExpensesByCategory totals expense entries per category, in the category
// display order, omitting categories without expenses.
func ExpensesByCategory(entries []Entry) []CategoryAmount {
	sums := make(map[string]int64)
	for _, e := range entries {
		if e.Type == EntryExpense {
			sums[e.Category] += e.Amount.Cents
		}
	}
	var out []CategoryAmount
	for _, cat := range ExpenseCategories() {
		if cents, ok := sums[cat]; ok {
			out = append(out, CategoryAmount{Category: cat, Amount: Money{Cents: cents}})
		}
	}
	return out
}
