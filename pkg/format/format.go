// Package format renders and parses the Brazilian currency and date formats
// used throughout the client.
package format

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	// DisplayDate is the dd/mm/yyyy layout shown in tables and forms.
	DisplayDate = "02/01/2006"
	isoDate     = "2006-01-02"
)

// Currency renders an amount as "R$ 1.234,56".
func Currency(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	cents := int64(math.Round(v * 100))
	whole := cents / 100
	frac := cents % 100

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	out := fmt.Sprintf("R$ %s,%02d", b.String(), frac)
	if neg {
		return "-" + out
	}
	return out
}

// ParseAmount accepts either Brazilian ("1.234,56") or plain ("1234.56")
// notation and returns the numeric value. Currency fields are always parsed
// before transmission.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("amount is required")
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}

// Date renders a time as dd/mm/yyyy, or a dash for the zero value.
func Date(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format(DisplayDate)
}

// DateTime renders a timestamp as dd/mm/yyyy hh:mm:ss.
func DateTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("02/01/2006 15:04:05")
}

// ParseDate accepts dd/mm/yyyy or yyyy-mm-dd input.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("date is required")
	}
	for _, layout := range []string{DisplayDate, isoDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (use dd/mm/yyyy)", s)
}
