package decimal

import (
	"testing"

	stddec "github.com/shopspring/decimal"
)

func money(v float64) Money { return NewMoneyFromDecimal(stddec.NewFromFloat(v)) }

func TestConstructors(t *testing.T) {
	m := money(12.345)
	if m.String() != "12.35" {
		t.Fatalf("String mismatch: got %s", m.String())
	}

	d := stddec.NewFromFloat(10.125)
	m2 := NewMoneyFromDecimal(d)
	if !m2.Decimal.Equal(d) {
		t.Fatalf("NewMoneyFromDecimal mismatch: got %s want %s", m2.Decimal, d)
	}
}

func TestRound(t *testing.T) {
	if got := money(10.126).Round(); !got.Decimal.Equal(stddec.RequireFromString("10.13")) {
		t.Fatalf("Round got %s", got.Decimal)
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "₹0.00"},
		{999.5, "₹999.50"},
		{1000, "₹1,000.00"},
		{123456.78, "₹1,23,456.78"},
		{12345678, "₹1,23,45,678.00"},
		{-250000, "-₹2,50,000.00"},
	}
	for _, c := range cases {
		if got := money(c.in).Format(); got != c.want {
			t.Fatalf("Format(%v) got %s want %s", c.in, got, c.want)
		}
	}
}
