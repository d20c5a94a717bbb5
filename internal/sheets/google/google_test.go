package google

import (
	"context"
	"testing"

	"driversdash/internal/core"
)

func TestEntryRowEarning(t *testing.T) {
	row := EntryRow(core.Entry{
		ID: "e1", Type: core.EntryEarning, Date: "2025-06-01",
		Category: core.EarningUber, Amount: core.Money{Cents: 2550},
	})
	if len(row) != 7 {
		t.Fatalf("expected 7 columns, got %d", len(row))
	}
	if row[0] != "e1" || row[1] != "2025-06-01" || row[2] != "earning" || row[3] != "Uber" {
		t.Fatalf("unexpected row: %v", row)
	}
	if row[4] != 25.50 {
		t.Fatalf("amount column: got %v", row[4])
	}
}

func TestEntryRowShift(t *testing.T) {
	row := EntryRow(core.Entry{
		ID: "s1", Type: core.EntryShift, Date: "2025-06-01",
		StartTime: "08:00", EndTime: "02:00", DurationMinutes: 1080,
	})
	if row[3] != "" || row[4] != "" {
		t.Fatalf("shift row should have no category or amount: %v", row)
	}
	if row[6] != 1080 {
		t.Fatalf("minutes column: got %v", row[6])
	}
}

func TestNewFromEnvRequiresSpreadsheet(t *testing.T) {
	t.Setenv("GOOGLE_SPREADSHEET_ID", "")
	if _, err := NewFromEnv(context.Background()); err == nil {
		t.Fatalf("expected error without spreadsheet id")
	}
}
