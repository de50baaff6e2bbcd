// Package money holds exact monetary arithmetic in minor currency units.
package money

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	centsPerUnit = 100
	// Symbol is the display symbol for Philippine pesos.
	Symbol = "₱"
)

var ErrInvalidAmount = errors.New("invalid monetary amount")

// Amount is a monetary value in centavos. The zero value is zero pesos.
type Amount int64

// FromUnits converts whole pesos to an Amount.
func FromUnits(units int64) Amount {
	return Amount(units * centsPerUnit)
}

// FromCents wraps a centavo count.
func FromCents(cents int64) Amount {
	return Amount(cents)
}

// Cents returns the raw centavo count.
func (a Amount) Cents() int64 {
	return int64(a)
}

// Percent returns pct percent of a, rounded half away from zero to the centavo.
func (a Amount) Percent(pct int64) Amount {
	v := int64(a) * pct
	q, r := v/100, v%100
	switch {
	case r >= 50:
		q++
	case r <= -50:
		q--
	}
	return Amount(q)
}

// MulRatio scales a by num/den with the same rounding as Percent.
func (a Amount) MulRatio(num, den int64) Amount {
	if den == 0 {
		return 0
	}
	v := int64(a) * num
	q, r := v/den, v%den
	if 2*r >= den {
		q++
	} else if 2*r <= -den {
		q--
	}
	return Amount(q)
}

// Sum adds amounts.
func Sum(amounts ...Amount) Amount {
	var total Amount
	for _, a := range amounts {
		total += a
	}
	return total
}

// String renders the amount as a plain decimal with no trailing zeros, e.g. "6090" or "61.7".
func (a Amount) String() string {
	v := int64(a)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	whole, frac := v/centsPerUnit, v%centsPerUnit
	if frac == 0 {
		return sign + strconv.FormatInt(whole, 10)
	}
	fs := strings.TrimRight(fmt.Sprintf("%02d", frac), "0")
	return sign + strconv.FormatInt(whole, 10) + "." + fs
}

// MarshalJSON encodes the amount as a JSON number in whole units.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts a JSON number or numeric string with at most two decimals.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	s := string(bytes.Trim(data, `"`))
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Parse reads a decimal string such as "1500", "-3.5" or "61.70".
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" && !hasFrac {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if len(frac) > 2 {
		trimmed := strings.TrimRight(frac, "0")
		if len(trimmed) > 2 {
			return 0, fmt.Errorf("%w: more than two decimals in %q", ErrInvalidAmount, s)
		}
		frac = trimmed
	}
	if whole == "" {
		whole = "0"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || w < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	var f int64
	if frac != "" {
		for len(frac) < 2 {
			frac += "0"
		}
		f, err = strconv.ParseInt(frac, 10, 64)
		if err != nil || f < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
	}
	v := w*centsPerUnit + f
	if neg {
		v = -v
	}
	return Amount(v), nil
}

var printer = message.NewPrinter(language.English)

// Format renders the amount for display, e.g. "₱6,090.00".
func Format(a Amount) string {
	v := int64(a)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	whole, frac := v/centsPerUnit, v%centsPerUnit
	return fmt.Sprintf("%s%s%s.%02d", sign, Symbol, printer.Sprintf("%d", whole), frac)
}
