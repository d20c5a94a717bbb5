package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12.345", 1234, true},
		{"12.346", 1235, true},
		{"0.01", 1, true},
		{"25", 2500, true},
		{" 25.50 ", 2550, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-1", 0, false},
		{"+1", 0, false},
		{"0", 0, false},
		{"1.2.3", 0, false},
	}
	for i, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("case %d (%q): %v", i, tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("case %d (%q): got %d, want %d", i, tc.in, got, tc.want)
			}
		} else if err == nil {
			t.Fatalf("case %d (%q): expected error", i, tc.in)
		}
	}
}

func TestMoneyBRL(t *testing.T) {
	if got := (Money{Cents: 2550}).BRL(); got != "R$25.50" {
		t.Fatalf("got %q", got)
	}
	if got := (Money{Cents: 5}).BRL(); got != "R$0.05" {
		t.Fatalf("got %q", got)
	}
}
