package insight

import (
	"context"
	"errors"
	"strings"
	"testing"

	"driversdash/internal/core"
)

type fakeProvider struct {
	calls    int
	lastUser string
	reply    string
	err      error
}

func (f *fakeProvider) Generate(_ context.Context, system, user string) (string, error) {
	f.calls++
	f.lastUser = user
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func someEntries(n int) []core.Entry {
	out := make([]core.Entry, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, core.Entry{
			Type: core.EntryEarning, Date: "2025-06-01",
			Category: core.EarningUber, Amount: core.Money{Cents: 1000},
		})
	}
	return out
}

func TestInsufficientDataSkipsProvider(t *testing.T) {
	p := &fakeProvider{reply: "ok"}
	s := New(p)

	got := s.RequestInsights(context.Background(), someEntries(3))
	if got != InsufficientDataMessage {
		t.Fatalf("got %q", got)
	}
	if p.calls != 0 {
		t.Fatalf("provider contacted with insufficient data")
	}
}

func TestProviderReplyPassedThrough(t *testing.T) {
	p := &fakeProvider{reply: "dirija mais aos sábados"}
	s := New(p)

	got := s.RequestInsights(context.Background(), someEntries(5))
	if got != "dirija mais aos sábados" {
		t.Fatalf("got %q", got)
	}
	if p.calls != 1 {
		t.Fatalf("expected one provider call, got %d", p.calls)
	}
}

func TestProviderFailureReturnsFallback(t *testing.T) {
	p := &fakeProvider{err: errors.New("timeout")}
	s := New(p)

	if got := s.RequestInsights(context.Background(), someEntries(5)); got != FallbackMessage {
		t.Fatalf("got %q", got)
	}
}

func TestNilProviderReturnsFallback(t *testing.T) {
	s := New(nil)
	if got := s.RequestInsights(context.Background(), someEntries(10)); got != FallbackMessage {
		t.Fatalf("got %q", got)
	}
}

func TestPromptCapsAtHundredEntries(t *testing.T) {
	p := &fakeProvider{reply: "ok"}
	s := New(p)

	s.RequestInsights(context.Background(), someEntries(150))
	if got := strings.Count(p.lastUser, "Ganho:"); got != 100 {
		t.Fatalf("expected 100 entry lines, got %d", got)
	}
}

func TestFormatEntryLines(t *testing.T) {
	cases := []struct {
		entry core.Entry
		want  string
	}{
		{
			core.Entry{Type: core.EntryEarning, Date: "2025-06-01", Category: core.Earning99, Amount: core.Money{Cents: 2550}},
			"Ganho: 2025-06-01, Categoria: 99, Valor: R$25.50",
		},
		{
			core.Entry{Type: core.EntryExpense, Date: "2025-06-02", Category: core.ExpenseFuel, Amount: core.Money{Cents: 8000}, Description: "tanque cheio"},
			"Despesa: 2025-06-02, Categoria: Combustível, Valor: R$80.00, Desc: tanque cheio",
		},
		{
			core.Entry{Type: core.EntryExpense, Date: "2025-06-02", Category: core.ExpenseOther, Amount: core.Money{Cents: 100}},
			"Despesa: 2025-06-02, Categoria: Outros, Valor: R$1.00, Desc: N/A",
		},
		{
			core.Entry{Type: core.EntryShift, Date: "2025-06-03", StartTime: "08:00", EndTime: "02:00", DurationMinutes: 1080},
			"Jornada: 2025-06-03, Duração: 1080 minutos",
		},
	}
	for i, tc := range cases {
		if got := FormatEntry(tc.entry); got != tc.want {
			t.Fatalf("case %d:\n got %q\nwant %q", i, got, tc.want)
		}
	}
}

func TestBuildUserPromptStructure(t *testing.T) {
	prompt := BuildUserPrompt(someEntries(5))
	if !strings.HasPrefix(prompt, "Dados do Motorista:\n") {
		t.Fatalf("missing header: %q", prompt)
	}
	for _, instruction := range []string{
		"1. Uma breve análise geral",
		"2. Identificação das maiores fontes",
		"3. Dicas para aumentar a lucratividade",
		"4. Sugestões para reduzir os custos",
	} {
		if !strings.Contains(prompt, instruction) {
			t.Fatalf("missing instruction %q", instruction)
		}
	}
}
