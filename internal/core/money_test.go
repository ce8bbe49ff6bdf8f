package core

import (
	"encoding/json"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"12.34", 1234, false},
		{"12,34", 1234, false},
		{"12.345", 1234, false}, // rounds down
		{"12.346", 1235, false}, // rounds up
		{"0.01", 1, false},
		{"200", 20000, false},
		{"", 0, true},
		{"abc", 0, true},
		{"-5", 0, true},
		{"0", 0, true},
		{"1.2.3", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q: got %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseOptionalCentsTreatsEmptyAsZero(t *testing.T) {
	if got, err := ParseOptionalCents(""); err != nil || got != 0 {
		t.Fatalf("got %d, %v", got, err)
	}
	if got, err := ParseOptionalCents("  "); err != nil || got != 0 {
		t.Fatalf("got %d, %v", got, err)
	}
	if got, err := ParseOptionalCents("0"); err != nil || got != 0 {
		t.Fatalf("got %d, %v", got, err)
	}
	if got, err := ParseOptionalCents("3,50"); err != nil || got != 350 {
		t.Fatalf("got %d, %v", got, err)
	}
	if _, err := ParseOptionalCents("x"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	cases := []int64{0, 1, 99, 100, 1234, 22550, 100000000}
	for _, cents := range cases {
		b, err := json.Marshal(Money{Cents: cents})
		if err != nil {
			t.Fatalf("marshal %d: %v", cents, err)
		}
		var m Money
		if err := json.Unmarshal(b, &m); err != nil {
			t.Fatalf("unmarshal %s: %v", b, err)
		}
		if m.Cents != cents {
			t.Fatalf("round trip %d -> %s -> %d", cents, b, m.Cents)
		}
	}
}

func TestMoneyUnmarshalNumber(t *testing.T) {
	var m Money
	if err := json.Unmarshal([]byte("225.5"), &m); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if m.Cents != 22550 {
		t.Fatalf("got %d, want 22550", m.Cents)
	}
	if err := json.Unmarshal([]byte(`"150.00"`), &m); err != nil {
		t.Fatalf("numeric string should parse, got %v", err)
	}
	if m.Cents != 15000 {
		t.Fatalf("got %d, want 15000", m.Cents)
	}
}

func TestFormatBRL(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "R$ 0,00"},
		{150, "R$ 1,50"},
		{123456, "R$ 1.234,56"},
		{100000000, "R$ 1.000.000,00"},
		{-6000, "-R$ 60,00"},
	}
	for _, tc := range cases {
		if got := FormatBRL(tc.cents); got != tc.want {
			t.Fatalf("%d: got %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := Money{Cents: 10000}
	b := Money{Cents: 4000}
	if a.Add(b).Cents != 14000 {
		t.Fatalf("add broken")
	}
	if a.Sub(b).Cents != 6000 {
		t.Fatalf("sub broken")
	}
	if b.Sub(a).Cents != -6000 {
		t.Fatalf("negative balance must survive")
	}
}
