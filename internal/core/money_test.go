package core

import "testing"

func TestDiv(t *testing.T) {
	tests := []struct {
		name string
		a    Cents
		n    int64
		want Cents
	}{
		{"even split", 1000, 4, 250},
		{"rounds to nearest up", 1001, 2, 501},
		{"rounds to nearest down", 1001, 3, 334},
		{"division by zero returns zero", 1000, 0, 0},
		{"negative dividend", -1000, 4, -250},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Div(tt.a, tt.n); got != tt.want {
				t.Errorf("Div(%d, %d) = %d, want %d", tt.a, tt.n, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(150, 0, 100); got != 100 {
		t.Errorf("Clamp(150, 0, 100) = %d, want 100", got)
	}
	if got := Clamp(-5, 0, 100); got != 0 {
		t.Errorf("Clamp(-5, 0, 100) = %d, want 0", got)
	}
	if got := Clamp(42, 0, 100); got != 42 {
		t.Errorf("Clamp(42, 0, 100) = %d, want 42", got)
	}
}

func TestParseAmountToCents(t *testing.T) {
	cases := []struct {
		in  string
		out Cents
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-12.34", -1234, true},
		{"$4.99", 499, true},
		{"-$4.99", -499, true},
		{"1,234.56", 123456, true},
		{"0", 0, true},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
		{"$", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmountToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Errorf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Errorf("%q expected error", tc.in)
			}
		}
	}
}

func TestAbsMaxMin(t *testing.T) {
	if Abs(-5) != 5 || Abs(5) != 5 {
		t.Error("Abs is wrong")
	}
	if Max(3, 7) != 7 || Min(3, 7) != 3 {
		t.Error("Max/Min are wrong")
	}
}

func TestFormatCents(t *testing.T) {
	cases := []struct {
		in  Cents
		out string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{499, "4.99"},
		{123456, "1234.56"},
		{-499, "-4.99"},
		{-5, "-0.05"},
	}
	for _, tc := range cases {
		if got := FormatCents(tc.in); got != tc.out {
			t.Errorf("FormatCents(%d) = %q, want %q", tc.in, got, tc.out)
		}
	}
}
