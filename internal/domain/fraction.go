package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Fraction is an exact rational quantity. Recipe amounts are written as
// fractions, and scaling by 3/2 must not turn 1/3 cup into 0.49999 cups,
// so all quantity arithmetic stays in rationals. Always kept normalized:
// positive denominator, reduced to lowest terms. The zero value behaves
// as 0.
type Fraction struct {
	Num int64 `json:"num"`
	Den int64 `json:"den"`
}

// NewFraction creates a normalized fraction. A zero denominator is treated
// as 1.
func NewFraction(num, den int64) Fraction {
	if den == 0 {
		den = 1
	}
	if den < 0 {
		num, den = -num, -den
	}
	g := gcd(abs(num), den)
	return Fraction{Num: num / g, Den: den / g}
}

// FractionFromInt creates a whole-number fraction
func FractionFromInt(n int64) Fraction {
	return Fraction{Num: n, Den: 1}
}

// FractionFromFloat approximates a float as a fraction with up to six
// decimal places. Used only at parse boundaries; internal arithmetic never
// goes through floats.
func FractionFromFloat(f float64) Fraction {
	const scale = 1000000
	return NewFraction(int64(math.Round(f*scale)), scale)
}

// ParseFraction parses "3", "3/2" or "1.5" into an exact fraction
func ParseFraction(s string) (Fraction, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Fraction{}, fmt.Errorf("empty fraction")
	}

	if numStr, denStr, found := strings.Cut(s, "/"); found {
		num, errN := strconv.ParseInt(strings.TrimSpace(numStr), 10, 64)
		den, errD := strconv.ParseInt(strings.TrimSpace(denStr), 10, 64)
		if errN != nil || errD != nil || den == 0 {
			return Fraction{}, fmt.Errorf("invalid fraction %q", s)
		}
		return NewFraction(num, den), nil
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return FractionFromInt(n), nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return FractionFromFloat(f), nil
	}
	return Fraction{}, fmt.Errorf("invalid fraction %q", s)
}

// den returns the denominator, treating the zero value as 0/1
func (f Fraction) den() int64 {
	if f.Den == 0 {
		return 1
	}
	return f.Den
}

// Add returns f + other
func (f Fraction) Add(other Fraction) Fraction {
	return NewFraction(f.Num*other.den()+other.Num*f.den(), f.den()*other.den())
}

// Sub returns f - other
func (f Fraction) Sub(other Fraction) Fraction {
	return NewFraction(f.Num*other.den()-other.Num*f.den(), f.den()*other.den())
}

// Mul returns f * other. Cross-reduction keeps intermediate products small
// enough that chained conversions do not overflow int64.
func (f Fraction) Mul(other Fraction) Fraction {
	g1 := gcd(abs(f.Num), other.den())
	g2 := gcd(abs(other.Num), f.den())
	return NewFraction((f.Num/g1)*(other.Num/g2), (f.den()/g2)*(other.den()/g1))
}

// Div returns f / other
func (f Fraction) Div(other Fraction) Fraction {
	return f.Mul(Fraction{Num: other.den(), Den: other.Num}.normalizeSign())
}

func (f Fraction) normalizeSign() Fraction {
	if f.Den < 0 {
		return Fraction{Num: -f.Num, Den: -f.Den}
	}
	return f
}

// Cmp returns -1, 0 or 1 as f is less than, equal to or greater than other
func (f Fraction) Cmp(other Fraction) int {
	diff := f.Num*other.den() - other.Num*f.den()
	switch {
	case diff < 0:
		return -1
	case diff > 0:
		return 1
	default:
		return 0
	}
}

// IsZero reports whether the fraction equals zero
func (f Fraction) IsZero() bool {
	return f.Num == 0
}

// IsPositive reports whether the fraction is strictly greater than zero
func (f Fraction) IsPositive() bool {
	return f.Num > 0
}

// IsNegative reports whether the fraction is strictly less than zero
func (f Fraction) IsNegative() bool {
	return f.Num < 0
}

// Float64 returns an approximate decimal value for display only
func (f Fraction) Float64() float64 {
	return float64(f.Num) / float64(f.den())
}

// String renders "3/2", or just "3" for whole numbers
func (f Fraction) String() string {
	if f.den() == 1 {
		return strconv.FormatInt(f.Num, 10)
	}
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a == 0 {
		return 1
	}
	return a
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
