package core

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Integer-cents arithmetic. Every monetary computation in the module
// routes through these helpers so no float drift can accumulate.

func Add(a, b Cents) Cents { return a + b }

func Sub(a, b Cents) Cents { return a - b }

func Mul(a Cents, n int64) Cents { return a * Cents(n) }

// Div divides a by n rounding to the nearest cent. Division by zero
// returns zero instead of panicking.
func Div(a Cents, n int64) Cents {
	if n == 0 {
		return 0
	}
	return Cents(math.Round(float64(a) / float64(n)))
}

func Abs(a Cents) Cents {
	if a < 0 {
		return -a
	}
	return a
}

func Max(a, b Cents) Cents {
	if a > b {
		return a
	}
	return b
}

func Min(a, b Cents) Cents {
	if a < b {
		return a
	}
	return b
}

// Clamp limits v to the inclusive range [lo, hi].
func Clamp(v, lo, hi Cents) Cents {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FormatCents renders cents as a plain signed decimal, "-12.34".
func FormatCents(c Cents) string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return sign + strconv.FormatInt(int64(c)/100, 10) + "." + pad2(int64(c)%100)
}

func pad2(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

// ParseAmountToCents parses a currency-formatted decimal string into
// signed cents. Currency symbols, thousands separators and surrounding
// whitespace are stripped; the third decimal digit rounds half-up.
// Returns an error for anything that is not a plain signed decimal.
func ParseAmountToCents(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, Validationf("empty amount")
	}

	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, Validationf("invalid amount %q", s)
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	if intPart == "0" && fracPart == "" && len(parts) == 2 {
		return 0, Validationf("invalid amount %q", s)
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, Validationf("invalid amount %q", s)
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, Validationf("invalid amount %q", s)
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, Validationf("invalid amount %q", s)
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return 0, Validationf("amount %q overflows", s)
	}

	// Two fractional digits, half-up rounding on the third.
	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			frac += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				frac++
			}
		}
	}

	cents := Cents(iv*100 + frac)
	if negative {
		cents = -cents
	}
	return cents, nil
}
