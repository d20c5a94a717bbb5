package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	EntryEarning EntryType = "earning"
	EntryExpense EntryType = "expense"
	EntryShift   EntryType = "shift"
)

const (
	EarningUber       = "Uber"
	Earning99         = "99"
	EarningParticular = "Particular"
)

const (
	ExpenseFuel        = "Combustível"
	ExpenseRental      = "Aluguel"
	ExpenseFood        = "Alimentação"
	ExpenseMaintenance = "Manutenção"
	ExpenseFines       = "Multas"
	ExpenseOther       = "Outros"
)

const (
	GoalEarning GoalType = "earning"
	GoalHours   GoalType = "hours"
)

const (
	PeriodDaily   GoalPeriod = "daily"
	PeriodWeekly  GoalPeriod = "weekly"
	PeriodMonthly GoalPeriod = "monthly"
)

type (
	EntryType  string
	GoalType   string
	GoalPeriod string

	Money struct {
		Cents int64 `json:"cents"`
	}

	// Entry is one recorded event: an earning, an expense or a work shift.
	// Which fields are meaningful depends on Type; Validate enforces that.
	Entry struct {
		ID   string    `json:"id"`
		Type EntryType `json:"type"`
		Date string    `json:"date"` // YYYY-MM-DD

		// earning / expense
		Category    string `json:"category,omitempty"`
		Amount      Money  `json:"amount"`
		Description string `json:"description,omitempty"`

		// shift
		StartTime       string `json:"startTime,omitempty"` // HH:MM
		EndTime         string `json:"endTime,omitempty"`   // HH:MM
		DurationMinutes int    `json:"durationMinutes,omitempty"`
	}

	Goal struct {
		ID          string     `json:"id"`
		Type        GoalType   `json:"type"`
		Period      GoalPeriod `json:"period"`
		Target      float64    `json:"target"` // R$ for earning goals, hours for hours goals
		Description string     `json:"description"`
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidTime      = errors.New("invalid time")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidEntryType = errors.New("invalid entry type")
	ErrInvalidGoal      = errors.New("invalid goal")
)

// EarningCategories lists the accepted earning sources, in display order.
func EarningCategories() []string {
	return []string{EarningUber, Earning99, EarningParticular}
}

// ExpenseCategories lists the accepted expense categories, in display order.
func ExpenseCategories() []string {
	return []string{ExpenseFuel, ExpenseRental, ExpenseFood, ExpenseMaintenance, ExpenseFines, ExpenseOther}
}

// ValidateDate checks that s is a real calendar date in YYYY-MM-DD form.
// All date comparisons in this package are lexicographic on that form, which
// matches chronological order exactly.
func ValidateDate(s string) error {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil || t.Format(time.DateOnly) != s {
		return ErrInvalidDate
	}
	return nil
}

// ParseClock converts an HH:MM time of day to minutes since midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, ErrInvalidTime
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, ErrInvalidTime
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, ErrInvalidTime
	}
	return h*60 + m, nil
}

// ShiftDuration returns the minutes between start and end, wrapping past
// midnight: a shift ending before its nominal start crossed into the next
// day, never a negative duration.
func ShiftDuration(start, end string) (int, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, fmt.Errorf("start time: %w", err)
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, fmt.Errorf("end time: %w", err)
	}
	return ((e - s) + 24*60) % (24 * 60), nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Entry) Validate() error {
	if err := ValidateDate(e.Date); err != nil {
		return err
	}
	switch e.Type {
	case EntryEarning:
		if !contains(EarningCategories(), e.Category) {
			return ErrInvalidCategory
		}
		return e.Amount.Validate()
	case EntryExpense:
		if !contains(ExpenseCategories(), e.Category) {
			return ErrInvalidCategory
		}
		if len(e.Description) > 200 {
			return errors.New("description too long (max 200 characters)")
		}
		return e.Amount.Validate()
	case EntryShift:
		dur, err := ShiftDuration(e.StartTime, e.EndTime)
		if err != nil {
			return err
		}
		if e.DurationMinutes != dur {
			return fmt.Errorf("duration mismatch: have %d, want %d", e.DurationMinutes, dur)
		}
		return nil
	default:
		return ErrInvalidEntryType
	}
}

func (g Goal) Validate() error {
	if g.Type != GoalEarning && g.Type != GoalHours {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidGoal, g.Type)
	}
	switch g.Period {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
	default:
		return fmt.Errorf("%w: unknown period %q", ErrInvalidGoal, g.Period)
	}
	if g.Target <= 0 {
		return fmt.Errorf("%w: target must be positive", ErrInvalidGoal)
	}
	if strings.TrimSpace(g.Description) == "" {
		return fmt.Errorf("%w: empty description", ErrInvalidGoal)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
